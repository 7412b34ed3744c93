package views

import (
	"github.com/rivo/tview"
)

// Topics is the fixed list offered by the report dialog.
var Topics = []string{
	"Spam",
	"Harassment",
	"Inappropriate content",
	"Fake account",
	"Other",
}

// Report is the abuse report dialog.
type Report struct {
	*tview.Flex
	form  *tview.Form
	errln *tview.TextView

	boxes []*tview.Checkbox
	note  *tview.InputField

	onSubmit func(topics []string, note string)
	onCancel func()
}

// NewReport creates the report dialog.
func NewReport() *Report {
	errln := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	form := tview.NewForm()
	form.SetBorder(true)

	inner := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errln, 1, 0, false)

	r := &Report{
		Flex:  centered(inner, 50, 16),
		form:  form,
		errln: errln,
	}
	return r
}

// SetOnSubmit sets the callback for the submit button.
func (r *Report) SetOnSubmit(fn func(topics []string, note string)) {
	r.onSubmit = fn
}

// SetOnCancel sets the callback for the cancel button.
func (r *Report) SetOnCancel(fn func()) {
	r.onCancel = fn
}

// Show rebuilds the dialog for the given contact.
func (r *Report) Show(contactName string) {
	r.boxes = r.boxes[:0]
	r.errln.SetText("")

	r.form.Clear(true)
	r.form.SetTitle(" Report " + contactName + " ")

	for _, topic := range Topics {
		box := tview.NewCheckbox().SetLabel(topic)
		r.boxes = append(r.boxes, box)
		r.form.AddFormItem(box)
	}
	r.note = tview.NewInputField().SetLabel("Note").SetFieldWidth(40)
	r.form.AddFormItem(r.note)

	r.form.AddButton("Submit", func() {
		if r.onSubmit != nil {
			r.onSubmit(r.checked(), r.note.GetText())
		}
	})
	r.form.AddButton("Cancel", func() {
		if r.onCancel != nil {
			r.onCancel()
		}
	})
	r.form.SetFocus(0)
}

// SetError shows a validation message, keeping the dialog open.
func (r *Report) SetError(msg string) {
	if msg == "" {
		r.errln.SetText("")
		return
	}
	r.errln.SetText("[red]" + tview.Escape(msg) + "[-]")
}

func (r *Report) checked() []string {
	var out []string
	for i, box := range r.boxes {
		if box.IsChecked() {
			out = append(out, Topics[i])
		}
	}
	return out
}
