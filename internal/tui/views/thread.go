package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/timefmt"
	"github.com/rivo/tview"
)

// Thread renders the open conversation as a selectable message list so
// per-message actions (edit, reply, forward, pin, delete) have a target.
type Thread struct {
	*tview.List
	msgs []chat.Message
	self string
}

// NewThread creates the conversation pane.
func NewThread() *Thread {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetWrapAround(false)
	list.SetBorder(true).SetTitle(" Conversation ")

	return &Thread{List: list}
}

// SetTitleFor sets the pane title to the open contact.
func (t *Thread) SetTitleFor(c chat.Contact) {
	t.SetTitle(fmt.Sprintf(" %s ", c.DisplayName()))
}

// Update refreshes the message list, keeping the newest message in view.
func (t *Thread) Update(msgs []chat.Message, self string, now time.Time) {
	t.msgs = msgs
	t.self = self
	t.Clear()

	byID := make(map[string]chat.Message, len(msgs))
	for _, m := range msgs {
		byID[m.ID] = m
	}

	for _, m := range msgs {
		main := fmt.Sprintf("[::b]%s[-:-:-]  [::d]%s[-:-:-]", tview.Escape(m.User), timefmt.RelativeMs(m.CreatedAt, now))
		if m.Pinned {
			main += " [::d][pinned][-:-:-]"
		}
		if m.Edited {
			main += " [::d](edited)[-:-:-]"
		}

		body := tview.Escape(m.Text)
		if m.ReplyTo != "" {
			// A dangling reply_to renders without quoted context.
			if orig, ok := byID[m.ReplyTo]; ok {
				body = fmt.Sprintf("[::d]> %s: %s[-:-:-]\n%s", tview.Escape(orig.User), tview.Escape(truncate(orig.Text, 48)), body)
			}
		}
		t.AddItem(main, body, 0, nil)
	}

	if count := t.GetItemCount(); count > 0 {
		t.SetCurrentItem(count - 1)
	}
}

// SelectedMessage returns the id of the highlighted message.
func (t *Thread) SelectedMessage() string {
	idx := t.GetCurrentItem()
	if idx >= 0 && idx < len(t.msgs) {
		return t.msgs[idx].ID
	}
	return ""
}

// SelectedIsOwn reports whether the highlighted message was sent by
// the local user. Edit and delete only apply to own messages.
func (t *Thread) SelectedIsOwn() bool {
	idx := t.GetCurrentItem()
	return idx >= 0 && idx < len(t.msgs) && t.msgs[idx].User == t.self
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
