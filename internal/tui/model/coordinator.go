package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/upload"
	"github.com/matheus3301/huddle/internal/view"
)

// ComposeMode describes what a submitted composer text will do.
type ComposeMode int

const (
	ComposeNew ComposeMode = iota
	ComposeEdit
	ComposeReply
)

// ConfirmAction is a destructive contact action awaiting confirmation.
type ConfirmAction string

const (
	ConfirmDelete  ConfirmAction = "delete"
	ConfirmArchive ConfirmAction = "archive"
	ConfirmBlock   ConfirmAction = "block"
)

// PickerMode describes the contact picker modal state.
type PickerMode int

const (
	PickerClosed PickerMode = iota
	PickerSingle
	PickerMulti
)

// Notice display durations, matching the weight of each action.
const (
	noticeShort  = 1400 * time.Millisecond
	noticeEdit   = 1800 * time.Millisecond
	noticeMedium = 2 * time.Second
	noticeFwd    = 2200 * time.Millisecond
	noticeBlock  = 2500 * time.Millisecond
	noticeLong   = 3 * time.Second
)

// Coordinator tracks which conversation is open, which modal is
// active and the compose mode, and routes every mutation to the
// store. All methods are synchronous; the store appears atomic to
// the single UI goroutine driving this type.
type Coordinator struct {
	mu    sync.Mutex
	store *chat.Store
	Flash Flash

	query  string
	filter view.Filter

	selectedID  string
	detailsOpen bool

	composeMode   ComposeMode
	composeTarget string

	picker        PickerMode
	pickerForward bool
	forwardMsgID  string
	forwardFromID string

	confirmAction ConfirmAction
	confirmTarget string

	reportTarget string
}

// NewCoordinator creates a coordinator and restores the previously
// open conversation when it is still selectable.
func NewCoordinator(store *chat.Store) *Coordinator {
	c := &Coordinator{store: store}
	if id, ok := store.SavedSelection(); ok {
		if contact, found := store.Contact(id); found && !contact.Blocked {
			c.selectedID = id
		}
	}
	return c
}

// Rows derives the render-ready roster for the current query/filter.
func (c *Coordinator) Rows() []view.Row {
	c.mu.Lock()
	query, filter := c.query, c.filter
	c.mu.Unlock()
	return view.DeriveList(c.store.Snapshot(), query, filter, time.Now())
}

// Thread returns the open conversation's messages.
func (c *Coordinator) Thread() []chat.Message {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	return c.store.Thread(id)
}

// Select opens a conversation and clears its unread count. Blocked
// contacts are rejected with a notice and no state change.
func (c *Coordinator) Select(contactID string) bool {
	contact, ok := c.store.Contact(contactID)
	if !ok {
		return false
	}
	if contact.Blocked {
		c.Flash.Set("This contact is blocked. Unblock to open chat.", noticeBlock)
		return false
	}

	c.mu.Lock()
	c.selectedID = contactID
	c.composeMode = ComposeNew
	c.composeTarget = ""
	c.detailsOpen = false
	c.mu.Unlock()

	c.store.MarkRead(contactID)
	c.store.SaveSelection(contactID)
	return true
}

// ClearSelection returns to the no-conversation state.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	c.selectedID = ""
	c.composeMode = ComposeNew
	c.composeTarget = ""
	c.detailsOpen = false
	c.mu.Unlock()
	c.store.SaveSelection("")
}

// Selected returns the open conversation id, empty when none.
func (c *Coordinator) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// SelectedContact returns the open conversation's contact.
func (c *Coordinator) SelectedContact() (chat.Contact, bool) {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return chat.Contact{}, false
	}
	return c.store.Contact(id)
}

// SetQuery updates the roster search query.
func (c *Coordinator) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// Query returns the roster search query.
func (c *Coordinator) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// ToggleFilter applies a category filter click (single-select,
// re-click clears).
func (c *Coordinator) ToggleFilter(f view.Filter) {
	c.mu.Lock()
	c.filter = view.Toggle(c.filter, f)
	c.mu.Unlock()
}

// Filter returns the active category filter.
func (c *Coordinator) Filter() view.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// StartEdit enters edit mode for a message and returns the prefill
// text for the composer. Unknown ids are ignored.
func (c *Coordinator) StartEdit(messageID string) (string, bool) {
	msg, ok := c.findMessage(messageID)
	if !ok {
		return "", false
	}
	c.mu.Lock()
	c.composeMode = ComposeEdit
	c.composeTarget = messageID
	c.mu.Unlock()
	c.Flash.Set("Editing message", noticeEdit)
	return msg.Text, true
}

// StartReply enters reply mode for a message and returns the quoted
// prefill text.
func (c *Coordinator) StartReply(messageID string) (string, bool) {
	msg, ok := c.findMessage(messageID)
	if !ok {
		return "", false
	}
	c.mu.Lock()
	c.composeMode = ComposeReply
	c.composeTarget = messageID
	c.mu.Unlock()
	c.Flash.Set("Replying", noticeShort)
	return fmt.Sprintf("@%s %s", msg.User, msg.Text), true
}

// CancelCompose returns the composer to the default state.
func (c *Coordinator) CancelCompose() {
	c.mu.Lock()
	c.composeMode = ComposeNew
	c.composeTarget = ""
	c.mu.Unlock()
	c.Flash.Clear()
}

// ComposeState returns the current compose mode and its target
// message id.
func (c *Coordinator) ComposeState() (ComposeMode, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composeMode, c.composeTarget
}

// Submit routes composer text: an edit in edit mode, otherwise a new
// message (with reply linkage in reply mode). Always returns the
// composer to the default state on success.
func (c *Coordinator) Submit(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	id := c.selectedID
	mode := c.composeMode
	target := c.composeTarget
	c.composeMode = ComposeNew
	c.composeTarget = ""
	c.mu.Unlock()

	if id == "" {
		return false
	}

	switch mode {
	case ComposeEdit:
		c.store.Edit(id, target, text)
		c.Flash.Set("Message edited", noticeMedium)
	case ComposeReply:
		c.store.Append(id, text, target)
	default:
		c.store.Append(id, text, "")
	}
	return true
}

// DeleteMessage removes a message from the open conversation.
func (c *Coordinator) DeleteMessage(messageID string) {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return
	}
	c.store.Delete(id, messageID)
}

// TogglePinMessage flips a message's pinned flag.
func (c *Coordinator) TogglePinMessage(messageID string) {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return
	}
	c.store.TogglePin(id, messageID)
	c.Flash.Set("Message pin updated", noticeShort)
}

// PromptDelete asks for confirmation before deleting a conversation.
func (c *Coordinator) PromptDelete(contactID string) { c.prompt(ConfirmDelete, contactID) }

// PromptArchive asks for confirmation before archiving.
func (c *Coordinator) PromptArchive(contactID string) { c.prompt(ConfirmArchive, contactID) }

// PromptBlock asks for confirmation before blocking.
func (c *Coordinator) PromptBlock(contactID string) { c.prompt(ConfirmBlock, contactID) }

func (c *Coordinator) prompt(action ConfirmAction, contactID string) {
	c.mu.Lock()
	c.confirmAction = action
	c.confirmTarget = contactID
	c.mu.Unlock()
}

// ConfirmPending returns the action awaiting confirmation, if any.
func (c *Coordinator) ConfirmPending() (ConfirmAction, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmAction, c.confirmTarget, c.confirmAction != ""
}

// Confirm applies the pending destructive action. The action runs
// only here, never on the click that opened the dialog.
func (c *Coordinator) Confirm() {
	c.mu.Lock()
	action := c.confirmAction
	target := c.confirmTarget
	c.confirmAction = ""
	c.confirmTarget = ""
	selected := c.selectedID
	c.mu.Unlock()

	switch action {
	case ConfirmDelete:
		c.store.DeleteContact(target)
	case ConfirmArchive:
		c.store.SetArchived(target, true)
	case ConfirmBlock:
		c.store.SetBlocked(target, true)
	default:
		return
	}
	if selected == target {
		c.ClearSelection()
	}
}

// CancelConfirm dismisses the confirmation dialog without acting.
func (c *Coordinator) CancelConfirm() {
	c.mu.Lock()
	c.confirmAction = ""
	c.confirmTarget = ""
	c.mu.Unlock()
}

// Unarchive restores a conversation to the default view. Not gated:
// it is not destructive.
func (c *Coordinator) Unarchive(contactID string) {
	c.store.SetArchived(contactID, false)
}

// Unblock lifts a block. The blocked flag is the only source of
// truth, so the roster label recovers on its own.
func (c *Coordinator) Unblock(contactID string) {
	c.store.SetBlocked(contactID, false)
}

// TogglePinContact pins or unpins a conversation in the roster.
func (c *Coordinator) TogglePinContact(contactID string) {
	contact, ok := c.store.Contact(contactID)
	if !ok {
		return
	}
	c.store.SetPinned(contactID, !contact.Pin)
}

// ToggleRead flips between read and one unread marker.
func (c *Coordinator) ToggleRead(contactID string) {
	contact, ok := c.store.Contact(contactID)
	if !ok {
		return
	}
	if contact.Unread > 0 {
		c.store.MarkRead(contactID)
		c.Flash.Set("Notifications cleared", noticeMedium)
		return
	}
	c.store.SetUnread(contactID, 1)
	c.Flash.Set("1 unread", noticeMedium)
}

// AttachFile runs the upload collaborator for a composer attachment
// and surfaces the result as a notice. With the placeholder uploader
// this always reports failure.
func (c *Coordinator) AttachFile(ctx context.Context, up upload.Uploader, name string) {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return
	}
	if _, err := up.Upload(ctx, name, strings.NewReader("")); err != nil {
		c.Flash.Set("Attachments are unavailable. Storage is not configured.", noticeLong)
		return
	}
	c.Flash.Set("Attachment uploaded", noticeMedium)
}

// OpenReport opens the report dialog for a contact.
func (c *Coordinator) OpenReport(contactID string) {
	c.mu.Lock()
	c.reportTarget = contactID
	c.mu.Unlock()
}

// ReportTarget returns the contact being reported, if the dialog is
// open.
func (c *Coordinator) ReportTarget() (chat.Contact, bool) {
	c.mu.Lock()
	id := c.reportTarget
	c.mu.Unlock()
	if id == "" {
		return chat.Contact{}, false
	}
	return c.store.Contact(id)
}

// SubmitReport validates and queues a report. Validation failures
// are returned for inline display next to the dialog controls, not
// flashed.
func (c *Coordinator) SubmitReport(topics []string, note string) error {
	c.mu.Lock()
	id := c.reportTarget
	c.mu.Unlock()
	if id == "" {
		return errors.New("no contact selected for report")
	}
	if len(topics) == 0 {
		return errors.New("please select at least one topic")
	}

	c.store.QueueReport(id, topics, strings.TrimSpace(note))
	c.mu.Lock()
	c.reportTarget = ""
	c.mu.Unlock()
	c.Flash.Set("Report submitted. Thank you.", noticeLong)
	return nil
}

// CancelReport dismisses the report dialog.
func (c *Coordinator) CancelReport() {
	c.mu.Lock()
	c.reportTarget = ""
	c.mu.Unlock()
}

// OpenPicker opens the contact picker for a new chat (single) or a
// new group (multi).
func (c *Coordinator) OpenPicker(mode PickerMode) {
	c.mu.Lock()
	c.picker = mode
	c.pickerForward = false
	c.forwardMsgID = ""
	c.forwardFromID = ""
	c.mu.Unlock()
}

// StartForward opens the multi picker to fan a message out to other
// conversations.
func (c *Coordinator) StartForward(messageID string) {
	c.mu.Lock()
	if c.selectedID == "" {
		c.mu.Unlock()
		return
	}
	c.picker = PickerMulti
	c.pickerForward = true
	c.forwardMsgID = messageID
	c.forwardFromID = c.selectedID
	c.mu.Unlock()
}

// PickerState returns the picker mode and whether it is forwarding.
func (c *Coordinator) PickerState() (PickerMode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.picker, c.pickerForward
}

// ClosePicker dismisses the picker and any forwarding state.
func (c *Coordinator) ClosePicker() {
	c.mu.Lock()
	c.picker = PickerClosed
	c.pickerForward = false
	c.forwardMsgID = ""
	c.forwardFromID = ""
	c.mu.Unlock()
}

// ConfirmPickerSingle starts a chat with the picked contact.
// Returns a field error when nothing is picked.
func (c *Coordinator) ConfirmPickerSingle(contactID string) error {
	if contactID == "" {
		return errors.New("please select a user to start chat")
	}
	c.ClosePicker()
	c.Select(contactID)
	return nil
}

// ConfirmForward fans the pending message out to the chosen targets.
// Forwarding state resets whether or not the operation succeeds; only
// the notice differs.
func (c *Coordinator) ConfirmForward(targetIDs []string) {
	c.mu.Lock()
	msgID := c.forwardMsgID
	fromID := c.forwardFromID
	c.mu.Unlock()
	defer c.ClosePicker()

	if msgID == "" || fromID == "" {
		return
	}
	if err := c.store.Forward(fromID, msgID, targetIDs); err != nil {
		c.Flash.Set("Unable to forward message", noticeMedium)
		return
	}
	c.Flash.Set("Message forwarded", noticeFwd)
}

// CreateGroup validates the group form and creates the conversation.
// Field errors come back to the form; nothing is flashed for them.
func (c *Coordinator) CreateGroup(name, photo, description string, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return errors.New("please select at least one member")
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("please enter a group name")
	}

	group := c.store.CreateGroup(strings.TrimSpace(name), photo, description, memberIDs)
	c.ClosePicker()
	c.Select(group.ID)
	return nil
}

// OpenDetails shows the media/files/links page for the open
// conversation. This is the routing surface: one addressable page
// keyed by contact id.
func (c *Coordinator) OpenDetails() {
	c.mu.Lock()
	if c.selectedID != "" {
		c.detailsOpen = true
	}
	c.mu.Unlock()
}

// CloseDetails returns to the thread view.
func (c *Coordinator) CloseDetails() {
	c.mu.Lock()
	c.detailsOpen = false
	c.mu.Unlock()
}

// DetailsOpen reports whether the details page is showing.
func (c *Coordinator) DetailsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailsOpen
}

// Details returns the gallery for the open conversation.
func (c *Coordinator) Details() []chat.Attachment {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	return c.store.Details(id)
}

func (c *Coordinator) findMessage(messageID string) (chat.Message, bool) {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return chat.Message{}, false
	}
	for _, m := range c.store.Thread(id) {
		if m.ID == messageID {
			return m, true
		}
	}
	return chat.Message{}, false
}
