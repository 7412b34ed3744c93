package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Composer is the message input at the bottom of the conversation pane.
type Composer struct {
	*tview.InputField
	onSend func(text string)
}

// NewComposer creates the message input.
func NewComposer() *Composer {
	input := tview.NewInputField().
		SetLabel(" > ").
		SetPlaceholder("Type a message...").
		SetFieldWidth(0)
	input.SetBorder(true)

	c := &Composer{InputField: input}
	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := input.GetText()
		input.SetText("")
		if c.onSend != nil {
			c.onSend(text)
		}
	})
	return c
}

// SetOnSend sets the callback invoked when Enter is pressed.
func (c *Composer) SetOnSend(fn func(text string)) {
	c.onSend = fn
}

// SetMode adjusts the label to show the compose mode.
func (c *Composer) SetMode(label string) {
	if label == "" {
		c.SetLabel(" > ")
		return
	}
	c.SetLabel(" " + label + "> ")
}

// Prefill replaces the current input text.
func (c *Composer) Prefill(text string) {
	c.SetText(text)
}
