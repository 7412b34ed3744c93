package tui

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/tui/keys"
	"github.com/matheus3301/huddle/internal/tui/model"
	"github.com/matheus3301/huddle/internal/tui/views"
	"github.com/matheus3301/huddle/internal/upload"
	"github.com/matheus3301/huddle/internal/view"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageMain    = "main"
	pageDetails = "details"
	pagePicker  = "picker"
	pageConfirm = "confirm"
	pageReport  = "report"
)

// App is the terminal frontend. One goroutine owns tview; everything
// arriving from the bus goes through QueueUpdateDraw.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	keys   *keys.Registry
	coord  *model.Coordinator
	store  *chat.Store
	bus    *bus.Bus
	upload upload.Uploader
	logger *zap.Logger

	roster   *views.Roster
	thread   *views.Thread
	composer *views.Composer
	details  *views.Details
	picker   *views.Picker
	confirm  *views.Confirm
	report   *views.Report
	status   *views.StatusBar

	stopRefresh chan struct{}
}

// New builds the full screen layout and wires the event handlers.
func New(store *chat.Store, b *bus.Bus, uploader upload.Uploader, logger *zap.Logger, profile string) *App {
	a := &App{
		app:         tview.NewApplication(),
		pages:       tview.NewPages(),
		keys:        keys.NewRegistry(),
		coord:       model.NewCoordinator(store),
		store:       store,
		bus:         b,
		upload:      uploader,
		logger:      logger.Named("tui"),
		stopRefresh: make(chan struct{}),
	}

	a.roster = views.NewRoster()
	a.thread = views.NewThread()
	a.composer = views.NewComposer()
	a.details = views.NewDetails()
	a.picker = views.NewPicker()
	a.confirm = views.NewConfirm()
	a.report = views.NewReport()
	a.status = views.NewStatusBar(profile)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.thread, 0, 1, false).
		AddItem(a.composer, 3, 0, false)

	main := tview.NewFlex().
		AddItem(a.roster, 0, 1, true).
		AddItem(right, 0, 2, false)

	a.pages.AddPage(pageMain, main, true, true)
	a.pages.AddPage(pageDetails, a.details, true, false)
	a.pages.AddPage(pagePicker, a.picker, true, false)
	a.pages.AddPage(pageConfirm, a.confirm, true, false)
	a.pages.AddPage(pageReport, a.report, true, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.status, 1, 0, false)
	a.app.SetRoot(root, true)

	a.wireViews()
	a.registerKeys()
	a.app.SetInputCapture(a.handleKey)

	return a
}

// Run starts the UI loop and blocks until the application exits.
func (a *App) Run() error {
	a.refresh()
	go a.watchBus()
	go a.refreshLoop()
	a.logger.Info("starting ui loop")
	err := a.app.Run()
	close(a.stopRefresh)
	return err
}

// Stop terminates the UI loop.
func (a *App) Stop() {
	a.app.Stop()
}

func (a *App) wireViews() {
	a.roster.SetOnOpen(func(id string) {
		if a.coord.Select(id) {
			a.app.SetFocus(a.thread.List)
		}
		a.refresh()
	})
	a.roster.Search.SetChangedFunc(func(text string) {
		a.coord.SetQuery(text)
		a.refresh()
	})
	a.roster.Search.SetDoneFunc(func(key tcell.Key) {
		a.app.SetFocus(a.roster.Table())
	})

	a.composer.SetOnSend(func(text string) {
		if a.coord.Submit(text) {
			a.composer.SetMode("")
		}
		a.refresh()
	})

	a.confirm.SetOnResult(func(confirmed bool) {
		if confirmed {
			a.coord.Confirm()
		} else {
			a.coord.CancelConfirm()
		}
		a.pages.HidePage(pageConfirm)
		a.app.SetFocus(a.roster.Table())
		a.refresh()
	})

	a.picker.SetOnCancel(func() {
		a.coord.ClosePicker()
		a.pages.HidePage(pagePicker)
		a.app.SetFocus(a.roster.Table())
	})
	a.picker.SetOnConfirm(func(ids []string, name, photo, desc string) {
		mode, forwarding := a.coord.PickerState()
		var err error
		switch {
		case forwarding:
			a.coord.ConfirmForward(ids)
		case mode == model.PickerSingle:
			picked := ""
			if len(ids) > 0 {
				picked = ids[0]
			}
			err = a.coord.ConfirmPickerSingle(picked)
		default:
			err = a.coord.CreateGroup(name, photo, desc, ids)
		}
		if err != nil {
			a.picker.SetError(err.Error())
			return
		}
		a.pages.HidePage(pagePicker)
		a.app.SetFocus(a.roster.Table())
		a.refresh()
	})

	a.report.SetOnCancel(func() {
		a.coord.CancelReport()
		a.pages.HidePage(pageReport)
		a.app.SetFocus(a.roster.Table())
	})
	a.report.SetOnSubmit(func(topics []string, note string) {
		if err := a.coord.SubmitReport(topics, note); err != nil {
			a.report.SetError(err.Error())
			return
		}
		a.pages.HidePage(pageReport)
		a.app.SetFocus(a.roster.Table())
		a.refresh()
	})
}

func (a *App) registerKeys() {
	a.keys.AddGlobal("quit", &keys.Action{
		Key: tcell.KeyCtrlC, Description: "^C quit", Visible: true,
		Handler: func() { a.app.Stop() },
	})

	a.keys.AddPage(pageMain, "search", &keys.Action{
		Key: tcell.KeyRune, Rune: '/', Description: "/ search", Visible: true,
		Handler: func() { a.app.SetFocus(a.roster.Search) },
	})
	a.keys.AddPage(pageMain, "compose", &keys.Action{
		Key: tcell.KeyRune, Rune: 'i', Description: "i write", Visible: true,
		Handler: func() {
			if a.coord.Selected() != "" {
				a.app.SetFocus(a.composer.InputField)
			}
		},
	})
	a.keys.AddPage(pageMain, "new-chat", &keys.Action{
		Key: tcell.KeyRune, Rune: 'n', Description: "n new chat", Visible: true,
		Handler: func() { a.openPicker(model.PickerSingle, false) },
	})
	a.keys.AddPage(pageMain, "new-group", &keys.Action{
		Key: tcell.KeyRune, Rune: 'g', Description: "g new group", Visible: true,
		Handler: func() { a.openPicker(model.PickerMulti, false) },
	})
	a.keys.AddPage(pageMain, "attach", &keys.Action{
		Key: tcell.KeyRune, Rune: 'A', Description: "A attach",
		Handler: func() {
			name := strings.TrimSpace(a.composer.GetText())
			if name == "" {
				name = "attachment"
			}
			a.coord.AttachFile(context.Background(), a.upload, name)
		},
	})
	a.keys.AddPage(pageMain, "details", &keys.Action{
		Key: tcell.KeyRune, Rune: 'd', Description: "d details", Visible: true,
		Handler: func() {
			a.coord.OpenDetails()
			if a.coord.DetailsOpen() {
				a.showDetails()
			}
		},
	})

	// Category filters mirror the filter row: a second press on the
	// active one falls back to All.
	filters := map[rune]view.Filter{
		'1': view.FilterAll,
		'2': view.FilterUnread,
		'3': view.FilterGroup,
		'4': view.FilterArchived,
	}
	for r, f := range filters {
		r, f := r, f
		a.keys.AddPage(pageMain, "filter-"+string(r), &keys.Action{
			Key: tcell.KeyRune, Rune: r,
			Handler: func() {
				a.coord.ToggleFilter(f)
				a.refresh()
			},
		})
	}

	// Message actions act on the highlighted thread entry.
	a.keys.AddPage(pageMain, "edit", &keys.Action{
		Key: tcell.KeyRune, Rune: 'e', Description: "e edit",
		Handler: func() {
			if !a.threadFocused() || !a.thread.SelectedIsOwn() {
				return
			}
			if prefill, ok := a.coord.StartEdit(a.thread.SelectedMessage()); ok {
				a.composer.SetMode("edit")
				a.composer.Prefill(prefill)
				a.app.SetFocus(a.composer.InputField)
			}
		},
	})
	a.keys.AddPage(pageMain, "reply", &keys.Action{
		Key: tcell.KeyRune, Rune: 'r', Description: "r reply",
		Handler: func() {
			if !a.threadFocused() {
				return
			}
			if prefill, ok := a.coord.StartReply(a.thread.SelectedMessage()); ok {
				a.composer.SetMode("reply")
				a.composer.Prefill(prefill)
				a.app.SetFocus(a.composer.InputField)
			}
		},
	})
	a.keys.AddPage(pageMain, "forward", &keys.Action{
		Key: tcell.KeyRune, Rune: 'f', Description: "f forward",
		Handler: func() {
			if !a.threadFocused() {
				return
			}
			if id := a.thread.SelectedMessage(); id != "" {
				a.coord.StartForward(id)
				a.openPicker(model.PickerMulti, true)
			}
		},
	})
	a.keys.AddPage(pageMain, "pin-message", &keys.Action{
		Key: tcell.KeyRune, Rune: 'p',
		Handler: func() {
			if a.threadFocused() {
				a.coord.TogglePinMessage(a.thread.SelectedMessage())
				a.refresh()
				return
			}
			if id := a.roster.SelectedContact(); id != "" {
				a.coord.TogglePinContact(id)
				a.refresh()
			}
		},
	})
	a.keys.AddPage(pageMain, "delete", &keys.Action{
		Key: tcell.KeyRune, Rune: 'x',
		Handler: func() {
			if a.threadFocused() {
				if a.thread.SelectedIsOwn() {
					a.coord.DeleteMessage(a.thread.SelectedMessage())
					a.refresh()
				}
				return
			}
			if id := a.roster.SelectedContact(); id != "" {
				a.coord.PromptDelete(id)
				a.showConfirm()
			}
		},
	})

	// Contact actions act on the highlighted roster entry.
	a.keys.AddPage(pageMain, "archive", &keys.Action{
		Key: tcell.KeyRune, Rune: 'a', Description: "a archive",
		Handler: func() {
			id := a.roster.SelectedContact()
			if id == "" || a.threadFocused() {
				return
			}
			if contact, ok := a.store.Contact(id); ok && contact.Archived {
				a.coord.Unarchive(id)
				a.refresh()
				return
			}
			a.coord.PromptArchive(id)
			a.showConfirm()
		},
	})
	a.keys.AddPage(pageMain, "block", &keys.Action{
		Key: tcell.KeyRune, Rune: 'b', Description: "b block",
		Handler: func() {
			id := a.roster.SelectedContact()
			if id == "" || a.threadFocused() {
				return
			}
			if contact, ok := a.store.Contact(id); ok && contact.Blocked {
				a.coord.Unblock(id)
				a.refresh()
				return
			}
			a.coord.PromptBlock(id)
			a.showConfirm()
		},
	})
	a.keys.AddPage(pageMain, "toggle-read", &keys.Action{
		Key: tcell.KeyRune, Rune: 'u',
		Handler: func() {
			if id := a.roster.SelectedContact(); id != "" && !a.threadFocused() {
				a.coord.ToggleRead(id)
				a.refresh()
			}
		},
	})
	a.keys.AddPage(pageMain, "report", &keys.Action{
		Key: tcell.KeyRune, Rune: 'o', Description: "o report",
		Handler: func() {
			id := a.roster.SelectedContact()
			if a.threadFocused() {
				id = a.coord.Selected()
			}
			if id == "" {
				return
			}
			a.coord.OpenReport(id)
			a.showReport()
		},
	})
	a.keys.AddPage(pageMain, "switch-pane", &keys.Action{
		Key: tcell.KeyTab,
		Handler: func() {
			if a.threadFocused() {
				a.app.SetFocus(a.roster.Table())
				return
			}
			if a.coord.Selected() != "" {
				a.app.SetFocus(a.thread.List)
			}
		},
	})

	a.keys.AddPage(pageDetails, "tab", &keys.Action{
		Key: tcell.KeyTab, Description: "tab switch",
		Handler: func() {
			a.details.NextTab()
		},
	})
}

func (a *App) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	page, _ := a.pages.GetFrontPage()

	if ev.Key() == tcell.KeyEscape {
		return a.handleEscape(page, ev)
	}

	// Text inputs and forms consume their own keys.
	switch a.app.GetFocus().(type) {
	case *tview.InputField, *tview.Checkbox, *tview.Button:
		return ev
	}

	if a.keys.HandleEvent(page, ev) {
		return nil
	}
	return ev
}

// handleEscape unwinds state one layer at a time: modal, details,
// focused input, compose mode, then selection.
func (a *App) handleEscape(page string, ev *tcell.EventKey) *tcell.EventKey {
	switch page {
	case pagePicker:
		a.coord.ClosePicker()
		a.pages.HidePage(pagePicker)
		a.app.SetFocus(a.roster.Table())
		return nil
	case pageConfirm:
		a.coord.CancelConfirm()
		a.pages.HidePage(pageConfirm)
		a.app.SetFocus(a.roster.Table())
		return nil
	case pageReport:
		a.coord.CancelReport()
		a.pages.HidePage(pageReport)
		a.app.SetFocus(a.roster.Table())
		return nil
	case pageDetails:
		a.coord.CloseDetails()
		a.pages.SwitchToPage(pageMain)
		a.app.SetFocus(a.thread.List)
		return nil
	}

	switch a.app.GetFocus() {
	case a.roster.Search:
		a.roster.Search.SetText("")
		a.coord.SetQuery("")
		a.app.SetFocus(a.roster.Table())
		a.refresh()
		return nil
	case a.composer.InputField:
		a.coord.CancelCompose()
		a.composer.SetMode("")
		a.composer.SetText("")
		a.app.SetFocus(a.thread.List)
		return nil
	}

	if mode, _ := a.coord.ComposeState(); mode != model.ComposeNew {
		a.coord.CancelCompose()
		a.composer.SetMode("")
		a.composer.SetText("")
		return nil
	}
	if a.coord.Selected() != "" {
		a.coord.ClearSelection()
		a.app.SetFocus(a.roster.Table())
		a.refresh()
		return nil
	}
	return ev
}

func (a *App) openPicker(mode model.PickerMode, forwarding bool) {
	if !forwarding {
		a.coord.OpenPicker(mode)
	}
	title := "New Chat"
	groupForm := false
	switch {
	case forwarding:
		title = "Forward To"
	case mode == model.PickerMulti:
		title = "New Group"
		groupForm = true
	}
	a.picker.Show(title, a.store.Contacts(), mode == model.PickerSingle, groupForm)
	a.pages.ShowPage(pagePicker)
	a.app.SetFocus(a.picker)
}

func (a *App) showConfirm() {
	action, target, ok := a.coord.ConfirmPending()
	if !ok {
		return
	}
	contact, found := a.store.Contact(target)
	if !found {
		a.coord.CancelConfirm()
		return
	}
	switch action {
	case model.ConfirmDelete:
		a.confirm.Prompt("Delete chat", "Delete the conversation with", contact.DisplayName())
	case model.ConfirmArchive:
		a.confirm.Prompt("Archive chat", "Archive the conversation with", contact.DisplayName())
	case model.ConfirmBlock:
		a.confirm.Prompt("Confirm", "Block", contact.DisplayName())
	}
	a.pages.ShowPage(pageConfirm)
	a.app.SetFocus(a.confirm)
}

func (a *App) showReport() {
	contact, open := a.coord.ReportTarget()
	if !open {
		return
	}
	a.report.Show(contact.DisplayName())
	a.pages.ShowPage(pageReport)
	a.app.SetFocus(a.report)
}

func (a *App) showDetails() {
	contact, ok := a.coord.SelectedContact()
	if !ok {
		return
	}
	a.details.Update(contact, a.coord.Details())
	a.pages.SwitchToPage(pageDetails)
	a.app.SetFocus(a.details)
}

func (a *App) threadFocused() bool {
	return a.app.GetFocus() == a.thread.List
}

// refresh re-derives everything shown on the main page from the store.
func (a *App) refresh() {
	a.roster.Update(a.coord.Rows())
	a.roster.SetFilterLabel(a.coord.Filter().String())

	if contact, ok := a.coord.SelectedContact(); ok {
		a.thread.SetTitleFor(contact)
		a.thread.Update(a.coord.Thread(), a.store.Self(), time.Now())
	} else {
		a.thread.SetTitle(" Conversation ")
		a.thread.Update(nil, a.store.Self(), time.Now())
	}

	if a.coord.DetailsOpen() {
		if contact, ok := a.coord.SelectedContact(); ok {
			a.details.Update(contact, a.coord.Details())
		}
	}
	a.renderStatus()
}

func (a *App) renderStatus() {
	page, _ := a.pages.GetFrontPage()
	a.status.SetFilter(a.coord.Filter().String())
	a.status.SetNotice(a.coord.Flash.Get())
	a.status.SetHints(strings.Join(a.keys.Hints(page), "  "))
	a.status.Render()
}

// watchBus repaints on every store mutation, whichever component
// caused it.
func (a *App) watchBus() {
	events, cancel := a.bus.Subscribe("store", 16)
	defer cancel()
	for {
		select {
		case <-a.stopRefresh:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			a.app.QueueUpdateDraw(a.refresh)
		}
	}
}

// refreshLoop keeps the clock ticking and expires stale notices.
func (a *App) refreshLoop() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopRefresh:
			return
		case <-ticker.C:
			a.app.QueueUpdateDraw(a.renderStatus)
		}
	}
}
