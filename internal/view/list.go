package view

import (
	"sort"
	"strings"
	"time"

	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/timefmt"
)

// Row is one render-ready roster entry.
type Row struct {
	Contact      chat.Contact
	Preview      string
	When         string
	LastActivity int64 // unix ms
}

// DeriveList computes the ordered, filtered roster from a store
// snapshot. Pure: it never mutates the snapshot and is safe to call
// on every keystroke.
//
// Rules: case-insensitive name match on query; category filter with
// archived conversations visible only under FilterArchived; pinned
// conversations first (stable among themselves), then most recent
// activity descending. Activity is the last message timestamp, or
// now minus lastSeenMinutes when the thread is empty.
func DeriveList(snap chat.Snapshot, query string, filter Filter, now time.Time) []Row {
	needle := strings.ToLower(query)

	var rows []Row
	for _, c := range snap.Contacts {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		switch filter {
		case FilterUnread:
			if c.Unread == 0 {
				continue
			}
		case FilterGroup:
			if !c.IsGroup {
				continue
			}
		case FilterArchived:
			if !c.Archived {
				continue
			}
		}
		if filter != FilterArchived && c.Archived {
			continue
		}
		rows = append(rows, buildRow(c, snap.Threads[c.ID], now))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Contact.Pin != rows[j].Contact.Pin {
			return rows[i].Contact.Pin
		}
		return rows[i].LastActivity > rows[j].LastActivity
	})
	return rows
}

func buildRow(c chat.Contact, thread []chat.Message, now time.Time) Row {
	row := Row{Contact: c}
	if len(thread) > 0 {
		last := thread[len(thread)-1]
		row.Preview = last.Text
		if c.IsGroup && last.User != "" {
			row.Preview = last.User + ": " + last.Text
		}
		row.When = timefmt.RelativeMs(last.CreatedAt, now)
		row.LastActivity = last.CreatedAt
		return row
	}
	// No history: fall back to the contact's static preview and derive
	// activity from presence.
	row.Preview = c.LastMessage
	row.LastActivity = now.Add(-time.Duration(c.LastSeenMinutes) * time.Minute).UnixMilli()
	return row
}
