package views

import (
	"fmt"

	"github.com/matheus3301/huddle/internal/chat"
	"github.com/rivo/tview"
)

// DetailsTab selects which attachment category the details page lists.
type DetailsTab int

const (
	TabMedia DetailsTab = iota
	TabFiles
	TabLinks
)

var tabNames = []string{"Media", "Files", "Links"}

// Details is the contact info page with the media/files/links tabs.
type Details struct {
	*tview.Flex
	header *tview.TextView
	tabs   *tview.TextView
	body   *tview.TextView

	contact chat.Contact
	items   []chat.Attachment
	tab     DetailsTab
}

// NewDetails creates the details page.
func NewDetails() *Details {
	header := tview.NewTextView().SetDynamicColors(true)
	header.SetBorder(true).SetTitle(" Contact Info ")

	tabs := tview.NewTextView().SetDynamicColors(true)

	body := tview.NewTextView().SetDynamicColors(true)
	body.SetBorder(true)

	d := &Details{
		Flex:   tview.NewFlex().SetDirection(tview.FlexRow),
		header: header,
		tabs:   tabs,
		body:   body,
	}
	d.Flex.AddItem(header, 6, 0, false)
	d.Flex.AddItem(tabs, 1, 0, false)
	d.Flex.AddItem(body, 0, 1, true)
	return d
}

// Update refreshes the page for a contact and its attachments.
func (d *Details) Update(c chat.Contact, items []chat.Attachment) {
	d.contact = c
	d.items = items
	d.render()
}

// NextTab cycles to the next attachment category.
func (d *Details) NextTab() {
	d.tab = (d.tab + 1) % DetailsTab(len(tabNames))
	d.render()
}

func (d *Details) render() {
	c := d.contact
	d.header.Clear()
	fmt.Fprintf(d.header, " [::b]%s[-:-:-]\n", tview.Escape(c.DisplayName()))
	fmt.Fprintf(d.header, " %s\n", tview.Escape(c.Status))
	if c.IsGroup {
		fmt.Fprint(d.header, " Group conversation\n")
	} else if c.LastSeenMinutes > 0 {
		fmt.Fprintf(d.header, " Last seen %d min ago\n", c.LastSeenMinutes)
	}
	if c.Blocked {
		fmt.Fprint(d.header, " [red]Blocked[-]\n")
	}

	d.tabs.Clear()
	for i, name := range tabNames {
		if DetailsTab(i) == d.tab {
			fmt.Fprintf(d.tabs, " [::bu]%s[-:-:-] ", name)
		} else {
			fmt.Fprintf(d.tabs, " [::d]%s[-:-:-] ", name)
		}
	}

	d.body.Clear()
	count := 0
	for _, a := range d.items {
		if !d.inTab(a.Kind) {
			continue
		}
		count++
		switch a.Kind {
		case chat.AttachmentPhoto, chat.AttachmentVideo:
			fmt.Fprintf(d.body, " %s  [::d]%s[-:-:-]\n", tview.Escape(a.Caption), tview.Escape(a.URL))
		case chat.AttachmentFile:
			fmt.Fprintf(d.body, " %s  [::d]%s[-:-:-]\n", tview.Escape(a.Name), tview.Escape(a.Size))
		case chat.AttachmentLink:
			fmt.Fprintf(d.body, " %s  [::d]%s[-:-:-]\n", tview.Escape(a.Title), tview.Escape(a.URL))
		}
	}
	if count == 0 {
		fmt.Fprintf(d.body, " [::d]No %s yet[-:-:-]\n", tabNames[d.tab])
	}
}

func (d *Details) inTab(kind chat.AttachmentKind) bool {
	switch d.tab {
	case TabMedia:
		return kind == chat.AttachmentPhoto || kind == chat.AttachmentVideo
	case TabFiles:
		return kind == chat.AttachmentFile
	case TabLinks:
		return kind == chat.AttachmentLink
	}
	return false
}
