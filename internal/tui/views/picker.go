package views

import (
	"github.com/matheus3301/huddle/internal/chat"
	"github.com/rivo/tview"
)

// Picker is the contact selection modal. It backs three flows: starting
// a chat (single select), forwarding a message (multi select) and
// creating a group (multi select plus the group fields).
type Picker struct {
	*tview.Flex
	form  *tview.Form
	errln *tview.TextView

	single    bool
	groupForm bool
	ids       []string
	boxes     []*tview.Checkbox

	nameField  *tview.InputField
	photoField *tview.InputField
	descField  *tview.InputField

	onConfirm func(ids []string, name, photo, description string)
	onCancel  func()
}

// NewPicker creates the picker modal.
func NewPicker() *Picker {
	errln := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	form := tview.NewForm()
	form.SetBorder(true)

	inner := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errln, 1, 0, false)

	p := &Picker{
		Flex:  centered(inner, 50, 20),
		form:  form,
		errln: errln,
	}
	return p
}

// SetOnConfirm sets the callback for the confirm button.
func (p *Picker) SetOnConfirm(fn func(ids []string, name, photo, description string)) {
	p.onConfirm = fn
}

// SetOnCancel sets the callback for the cancel button.
func (p *Picker) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Show rebuilds the form for the given flow. Groups are not offered as
// targets, matching the roster of individual contacts.
func (p *Picker) Show(title string, contacts []chat.Contact, single, groupForm bool) {
	p.single = single
	p.groupForm = groupForm
	p.ids = p.ids[:0]
	p.boxes = p.boxes[:0]
	p.nameField, p.photoField, p.descField = nil, nil, nil
	p.errln.SetText("")

	p.form.Clear(true)
	p.form.SetTitle(" " + title + " ")

	if groupForm {
		p.nameField = tview.NewInputField().SetLabel("Group name").SetFieldWidth(30)
		p.photoField = tview.NewInputField().SetLabel("Photo URL").SetFieldWidth(30)
		p.descField = tview.NewInputField().SetLabel("Description").SetFieldWidth(30)
		p.form.AddFormItem(p.nameField)
		p.form.AddFormItem(p.photoField)
		p.form.AddFormItem(p.descField)
	}

	for _, c := range contacts {
		if c.IsGroup || c.Blocked {
			continue
		}
		box := tview.NewCheckbox().SetLabel(c.DisplayName())
		idx := len(p.boxes)
		if single {
			box.SetChangedFunc(func(checked bool) {
				if !checked {
					return
				}
				for i, other := range p.boxes {
					if i != idx {
						other.SetChecked(false)
					}
				}
			})
		}
		p.ids = append(p.ids, c.ID)
		p.boxes = append(p.boxes, box)
		p.form.AddFormItem(box)
	}

	p.form.AddButton("Confirm", func() {
		if p.onConfirm != nil {
			name, photo, desc := "", "", ""
			if p.groupForm {
				name = p.nameField.GetText()
				photo = p.photoField.GetText()
				desc = p.descField.GetText()
			}
			p.onConfirm(p.checked(), name, photo, desc)
		}
	})
	p.form.AddButton("Cancel", func() {
		if p.onCancel != nil {
			p.onCancel()
		}
	})
	p.form.SetFocus(0)
}

// SetError shows a validation message under the form. The modal stays
// open so the user can correct the input.
func (p *Picker) SetError(msg string) {
	if msg == "" {
		p.errln.SetText("")
		return
	}
	p.errln.SetText("[red]" + tview.Escape(msg) + "[-]")
}

func (p *Picker) checked() []string {
	var out []string
	for i, box := range p.boxes {
		if box.IsChecked() {
			out = append(out, p.ids[i])
		}
	}
	return out
}

// centered wraps a primitive in a fixed-size centered layout.
func centered(p tview.Primitive, width, height int) *tview.Flex {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
