package views

import (
	"fmt"

	"github.com/rivo/tview"
)

// Confirm is the yes/no modal guarding destructive contact actions.
type Confirm struct {
	*tview.Modal
	onResult func(confirmed bool)
}

// NewConfirm creates the confirmation modal.
func NewConfirm() *Confirm {
	c := &Confirm{Modal: tview.NewModal()}
	c.AddButtons([]string{"Confirm", "Cancel"})
	c.SetDoneFunc(func(_ int, label string) {
		if c.onResult != nil {
			c.onResult(label == "Confirm")
		}
	})
	return c
}

// SetOnResult sets the callback invoked when a button is pressed.
func (c *Confirm) SetOnResult(fn func(confirmed bool)) {
	c.onResult = fn
}

// Prompt fills the modal for the given action and contact name.
func (c *Confirm) Prompt(title, question, contactName string) {
	c.SetTitle(" " + title + " ")
	c.SetText(fmt.Sprintf("%s %s?", question, contactName))
}
