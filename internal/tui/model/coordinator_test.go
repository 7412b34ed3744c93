package model

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/persist"
	"github.com/matheus3301/huddle/internal/upload"
	"github.com/matheus3301/huddle/internal/view"
	"go.uber.org/zap"
)

func testStore(t *testing.T) *chat.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := persist.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := chat.New(db, bus.New(), zap.NewNop(), "You")
	s.Hydrate()
	return s
}

func testCoordinator(t *testing.T) (*Coordinator, *chat.Store) {
	t.Helper()
	s := testStore(t)
	return NewCoordinator(s), s
}

func TestSelectClearsUnread(t *testing.T) {
	c, s := testCoordinator(t)

	s.SetUnread("c2", 4)
	if !c.Select("c2") {
		t.Fatal("Select(c2) rejected")
	}
	contact, _ := s.Contact("c2")
	if contact.Unread != 0 {
		t.Errorf("unread = %d after open, want 0", contact.Unread)
	}
	if c.Selected() != "c2" {
		t.Errorf("selected = %q, want c2", c.Selected())
	}
}

func TestBlockedSelectionRejected(t *testing.T) {
	c, s := testCoordinator(t)
	c.Select("c1")
	s.SetBlocked("c2", true)

	if c.Select("c2") {
		t.Error("selecting a blocked contact must be rejected")
	}
	if c.Selected() != "c1" {
		t.Errorf("selected = %q, want unchanged c1", c.Selected())
	}
	if c.Flash.Get() == "" {
		t.Error("rejection should surface a notice")
	}
}

func TestEditFlow(t *testing.T) {
	c, s := testCoordinator(t)
	c.Select("c1")
	msg := s.Append("c1", "draft", "")
	before := len(s.Thread("c1"))

	prefill, ok := c.StartEdit(msg.ID)
	if !ok || prefill != "draft" {
		t.Fatalf("StartEdit = %q, %v", prefill, ok)
	}

	if !c.Submit("final") {
		t.Fatal("Submit rejected")
	}

	thread := s.Thread("c1")
	if len(thread) != before {
		t.Errorf("edit created a new message: %d -> %d", before, len(thread))
	}
	got := thread[len(thread)-1]
	if got.Text != "final" || !got.Edited {
		t.Errorf("edited message = %+v", got)
	}
	if mode, target := c.ComposeState(); mode != ComposeNew || target != "" {
		t.Error("composer should return to the default state after edit")
	}
}

func TestReplyFlow(t *testing.T) {
	c, s := testCoordinator(t)
	c.Select("c1")
	orig := s.Append("c1", "question?", "")

	prefill, ok := c.StartReply(orig.ID)
	if !ok || !strings.Contains(prefill, "question?") || !strings.Contains(prefill, "@You") {
		t.Fatalf("StartReply prefill = %q, %v", prefill, ok)
	}

	c.Submit("answer")
	thread := s.Thread("c1")
	got := thread[len(thread)-1]
	if got.ReplyTo != orig.ID {
		t.Errorf("reply_to = %q, want %q", got.ReplyTo, orig.ID)
	}
}

func TestSubmitEmptyIsNoOp(t *testing.T) {
	c, s := testCoordinator(t)
	c.Select("c1")
	before := len(s.Thread("c1"))

	if c.Submit("   ") {
		t.Error("whitespace-only submit should be rejected")
	}
	if len(s.Thread("c1")) != before {
		t.Error("thread changed on empty submit")
	}
}

func TestConfirmGating(t *testing.T) {
	c, s := testCoordinator(t)

	c.PromptBlock("c3")
	if contact, _ := s.Contact("c3"); contact.Blocked {
		t.Fatal("prompt alone must not apply the action")
	}

	c.CancelConfirm()
	c.Confirm() // nothing pending
	if contact, _ := s.Contact("c3"); contact.Blocked {
		t.Fatal("cancelled prompt must not apply the action")
	}

	c.PromptBlock("c3")
	c.Confirm()
	if contact, _ := s.Contact("c3"); !contact.Blocked {
		t.Error("confirm should apply the pending block")
	}
}

func TestConfirmDeleteClearsSelection(t *testing.T) {
	c, s := testCoordinator(t)
	c.Select("c4")

	c.PromptDelete("c4")
	c.Confirm()

	if _, ok := s.Contact("c4"); ok {
		t.Error("contact still present after confirmed delete")
	}
	if c.Selected() != "" {
		t.Errorf("selected = %q after deleting the open chat, want empty", c.Selected())
	}
}

func TestForwardResetsStateOnSuccessAndFailure(t *testing.T) {
	c, s := testCoordinator(t)
	c.Select("c1")
	msg := s.Append("c1", "hi", "")

	c.StartForward(msg.ID)
	if mode, fwd := c.PickerState(); mode != PickerMulti || !fwd {
		t.Fatalf("picker state = %v fwd=%v after StartForward", mode, fwd)
	}

	c.ConfirmForward([]string{"c2"})
	if mode, fwd := c.PickerState(); mode != PickerClosed || fwd {
		t.Error("forward state must reset after success")
	}
	thread := s.Thread("c2")
	if len(thread) == 0 || !strings.Contains(thread[len(thread)-1].Text, "hi") {
		t.Error("forward did not reach the target")
	}

	// Failure path: the original message is gone by confirm time.
	c.StartForward(msg.ID)
	s.Delete("c1", msg.ID)
	c.ConfirmForward([]string{"c3"})
	if mode, fwd := c.PickerState(); mode != PickerClosed || fwd {
		t.Error("forward state must reset after failure too")
	}
	if c.Flash.Get() == "" {
		t.Error("failed forward should surface a notice")
	}
}

func TestReportValidation(t *testing.T) {
	c, s := testCoordinator(t)

	c.OpenReport("c1")
	if err := c.SubmitReport(nil, "note"); err == nil {
		t.Error("report without topics should fail validation")
	}
	if len(s.PendingReports()) != 0 {
		t.Error("invalid report must not be queued")
	}

	if err := c.SubmitReport([]string{"Spam"}, "note"); err != nil {
		t.Fatalf("SubmitReport() error = %v", err)
	}
	if len(s.PendingReports()) != 1 {
		t.Error("valid report should be queued")
	}
	if _, open := c.ReportTarget(); open {
		t.Error("report dialog should close after submit")
	}
}

func TestCreateGroupValidation(t *testing.T) {
	c, s := testCoordinator(t)

	if err := c.CreateGroup("Team", "", "", nil); err == nil {
		t.Error("group without members should fail")
	}
	if err := c.CreateGroup("  ", "", "", []string{"c1"}); err == nil {
		t.Error("group without a name should fail")
	}

	if err := c.CreateGroup("Team", "", "desc", []string{"c1", "c2"}); err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	contact, ok := s.Contact(c.Selected())
	if !ok || !contact.IsGroup || contact.Name != "Team" {
		t.Errorf("selected after create = %+v", contact)
	}
}

func TestPickerSingleValidation(t *testing.T) {
	c, _ := testCoordinator(t)
	c.OpenPicker(PickerSingle)

	if err := c.ConfirmPickerSingle(""); err == nil {
		t.Error("confirming with no selection should fail")
	}
	if err := c.ConfirmPickerSingle("c2"); err != nil {
		t.Fatalf("ConfirmPickerSingle() error = %v", err)
	}
	if c.Selected() != "c2" {
		t.Errorf("selected = %q, want c2", c.Selected())
	}
}

func TestFilterToggleThroughCoordinator(t *testing.T) {
	c, _ := testCoordinator(t)

	c.ToggleFilter(view.FilterUnread)
	if c.Filter() != view.FilterUnread {
		t.Errorf("filter = %v, want Unread", c.Filter())
	}
	c.ToggleFilter(view.FilterUnread)
	if c.Filter() != view.FilterAll {
		t.Errorf("filter = %v, want All after re-click", c.Filter())
	}
}

func TestAttachFileNotice(t *testing.T) {
	c, _ := testCoordinator(t)
	up := upload.NewPlaceholder()

	c.AttachFile(context.Background(), up, "photo.jpg")
	if c.Flash.Get() != "" {
		t.Error("attach without a conversation should be a no-op")
	}

	c.Select("c1")
	c.AttachFile(context.Background(), up, "photo.jpg")
	if c.Flash.Get() == "" {
		t.Error("failed upload should surface a notice")
	}
}

func TestDetailsRequiresSelection(t *testing.T) {
	c, _ := testCoordinator(t)

	c.OpenDetails()
	if c.DetailsOpen() {
		t.Error("details must not open without a conversation")
	}

	c.Select("c1")
	c.OpenDetails()
	if !c.DetailsOpen() {
		t.Error("details should open for the selected conversation")
	}
	c.CloseDetails()
	if c.DetailsOpen() {
		t.Error("details should close")
	}
}

func TestSelectionRestoredAcrossCoordinators(t *testing.T) {
	s := testStore(t)
	c1 := NewCoordinator(s)
	c1.Select("c3")

	c2 := NewCoordinator(s)
	if c2.Selected() != "c3" {
		t.Errorf("restored selection = %q, want c3", c2.Selected())
	}

	// A blocked contact must not be restored.
	s.SetBlocked("c3", true)
	c3 := NewCoordinator(s)
	if c3.Selected() != "" {
		t.Errorf("blocked contact restored as selection: %q", c3.Selected())
	}
}
