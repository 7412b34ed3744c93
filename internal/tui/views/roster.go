package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/huddle/internal/view"
	"github.com/rivo/tview"
)

// Roster is the contact list table with the search box above it.
type Roster struct {
	*tview.Flex
	Search *tview.InputField
	table  *tview.Table

	rows   []view.Row
	onOpen func(contactID string)
}

// NewRoster creates the roster pane.
func NewRoster() *Roster {
	search := tview.NewInputField().
		SetLabel(" / ").
		SetPlaceholder("Search contacts...").
		SetFieldWidth(0)

	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Chats ")

	r := &Roster{
		Flex:   tview.NewFlex().SetDirection(tview.FlexRow),
		Search: search,
		table:  table,
	}
	r.Flex.AddItem(search, 1, 0, false)
	r.Flex.AddItem(table, 0, 1, true)

	table.SetSelectedFunc(func(row, col int) {
		if id := r.SelectedContact(); id != "" && r.onOpen != nil {
			r.onOpen(id)
		}
	})
	return r
}

// SetOnOpen sets the callback when a conversation is opened.
func (r *Roster) SetOnOpen(fn func(contactID string)) {
	r.onOpen = fn
}

// SetFilterLabel reflects the active category filter in the title.
func (r *Roster) SetFilterLabel(label string) {
	r.table.SetTitle(fmt.Sprintf(" Chats [%s] ", label))
}

// Table exposes the inner table for focus handling.
func (r *Roster) Table() *tview.Table { return r.table }

// Update refreshes the roster with derived rows.
func (r *Roster) Update(rows []view.Row) {
	r.rows = rows
	r.table.Clear()

	r.table.SetCell(0, 0, tview.NewTableCell(" Name").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	r.table.SetCell(0, 1, tview.NewTableCell(" Last Message").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	r.table.SetCell(0, 2, tview.NewTableCell(" Time").SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))

	for i, row := range rows {
		c := row.Contact
		name := c.DisplayName()
		var marks []string
		if c.Pin {
			marks = append(marks, "^")
		}
		if c.Unread > 0 {
			marks = append(marks, fmt.Sprintf("(%d)", c.Unread))
		}
		if len(marks) > 0 {
			name = fmt.Sprintf("%s %s", name, strings.Join(marks, " "))
		}

		r.table.SetCell(i+1, 0, tview.NewTableCell(" "+name).SetMaxWidth(30).SetExpansion(1))
		r.table.SetCell(i+1, 1, tview.NewTableCell(" "+row.Preview).SetMaxWidth(40).SetExpansion(2))
		r.table.SetCell(i+1, 2, tview.NewTableCell(" "+row.When).SetMaxWidth(12))
	}
}

// SelectedContact returns the id of the highlighted contact.
func (r *Roster) SelectedContact() string {
	row, _ := r.table.GetSelection()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(r.rows) {
		return r.rows[idx].Contact.ID
	}
	return ""
}
