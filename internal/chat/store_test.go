package chat

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/persist"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *persist.DB {
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
	return db
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(testDB(t), bus.New(), zap.NewNop(), "You")
	s.Hydrate()
	return s
}

func TestHydrateDefaults(t *testing.T) {
	s := testStore(t)

	contacts := s.Contacts()
	if len(contacts) == 0 {
		t.Fatal("expected default roster")
	}
	for i, c := range contacts {
		wantUnread := 0
		if i%5 == 0 {
			wantUnread = 2
		}
		if c.Unread != wantUnread {
			t.Errorf("contact %d unread = %d, want %d", i, c.Unread, wantUnread)
		}
		if c.Status == "online" && c.LastSeenMinutes != 0 {
			t.Errorf("online contact %s lastSeenMinutes = %d, want 0", c.ID, c.LastSeenMinutes)
		}
		if c.Status != "online" && c.LastSeenMinutes != i*3+5 {
			t.Errorf("offline contact %s lastSeenMinutes = %d, want %d", c.ID, c.LastSeenMinutes, i*3+5)
		}
		wantGroup := strings.HasPrefix(c.ID, "g") || strings.Contains(c.Status, "members")
		if c.IsGroup != wantGroup {
			t.Errorf("contact %s isGroup = %v, want %v", c.ID, c.IsGroup, wantGroup)
		}
	}
}

func TestHydrateToleratesCorruptBlob(t *testing.T) {
	db := testDB(t)
	if err := db.Put(persist.KeyContacts, []byte("{broken")); err != nil {
		t.Fatal(err)
	}

	s := New(db, bus.New(), zap.NewNop(), "You")
	s.Hydrate()

	if len(s.Contacts()) == 0 {
		t.Error("corrupt blob should fall back to default roster")
	}
}

func TestSendRoundTrip(t *testing.T) {
	s := testStore(t)
	s.SetArchived("c1", true)

	msg := s.Append("c1", "hello there", "")

	thread := s.Thread("c1")
	if len(thread) == 0 || thread[len(thread)-1].ID != msg.ID {
		t.Fatal("appended message is not the last thread element")
	}
	if thread[len(thread)-1].Text != "hello there" {
		t.Errorf("text = %q", thread[len(thread)-1].Text)
	}
	c, _ := s.Contact("c1")
	if c.Archived {
		t.Error("send should revive an archived conversation")
	}
}

func TestEditNotFoundIsNoOp(t *testing.T) {
	s := testStore(t)
	before := s.Thread("c1")

	s.Edit("c1", "no-such-id", "changed")

	after := s.Thread("c1")
	if len(before) != len(after) {
		t.Fatalf("thread length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("message %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestEditSetsEditedFields(t *testing.T) {
	s := testStore(t)
	msg := s.Append("c1", "typo", "")

	s.Edit("c1", msg.ID, "fixed")

	thread := s.Thread("c1")
	got := thread[len(thread)-1]
	if got.Text != "fixed" || !got.Edited || got.EditedAt == 0 {
		t.Errorf("edited message = %+v", got)
	}
}

func TestDeleteThenRefetch(t *testing.T) {
	s := testStore(t)
	msg := s.Append("c1", "delete me", "")

	s.Delete("c1", msg.ID)

	for _, m := range s.Thread("c1") {
		if m.ID == msg.ID {
			t.Fatal("deleted message still present")
		}
	}
	// Deleting again is a no-op, not an error.
	s.Delete("c1", msg.ID)
}

func TestTogglePinMessage(t *testing.T) {
	s := testStore(t)
	msg := s.Append("c1", "pin me", "")

	s.TogglePin("c1", msg.ID)
	thread := s.Thread("c1")
	if !thread[len(thread)-1].Pinned {
		t.Error("message not pinned after toggle")
	}

	s.TogglePin("c1", msg.ID)
	thread = s.Thread("c1")
	if thread[len(thread)-1].Pinned {
		t.Error("message still pinned after second toggle")
	}
}

func TestForwardFanOut(t *testing.T) {
	s := testStore(t)
	msg := s.Append("c1", "hi", "")
	s.SetArchived("c2", true)
	s.SetArchived("c3", true)
	before2 := len(s.Thread("c2"))
	before3 := len(s.Thread("c3"))

	if err := s.Forward("c1", msg.ID, []string{"c2", "c3"}); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	for _, target := range []string{"c2", "c3"} {
		thread := s.Thread(target)
		last := thread[len(thread)-1]
		if !strings.Contains(last.Text, "hi") || !strings.Contains(last.Text, "You") {
			t.Errorf("forwarded text = %q, want original text and sender", last.Text)
		}
		if last.ID == msg.ID {
			t.Error("forwarded copy must get a fresh id")
		}
		c, _ := s.Contact(target)
		if c.Archived {
			t.Errorf("target %s still archived after forward", target)
		}
	}
	if len(s.Thread("c2")) != before2+1 || len(s.Thread("c3")) != before3+1 {
		t.Error("forward must append exactly one message per target")
	}
}

func TestForwardMissingSourceFails(t *testing.T) {
	s := testStore(t)
	before := len(s.Thread("c2"))

	if err := s.Forward("c1", "no-such-id", []string{"c2"}); err == nil {
		t.Fatal("Forward() with missing source should fail")
	}
	if len(s.Thread("c2")) != before {
		t.Error("failed forward must not append to targets")
	}
}

func TestBlockKeepsNameIntact(t *testing.T) {
	s := testStore(t)
	orig, _ := s.Contact("c1")

	s.SetBlocked("c1", true)
	c, _ := s.Contact("c1")
	if c.Name != orig.Name {
		t.Errorf("Name mutated on block: %q -> %q", orig.Name, c.Name)
	}
	if !strings.Contains(c.DisplayName(), "(Blocked)") {
		t.Errorf("DisplayName() = %q, want blocked marker", c.DisplayName())
	}

	s.SetBlocked("c1", false)
	c, _ = s.Contact("c1")
	if c.DisplayName() != orig.Name {
		t.Errorf("DisplayName() after unblock = %q, want %q", c.DisplayName(), orig.Name)
	}
}

func TestCreateGroupAndDeleteContact(t *testing.T) {
	s := testStore(t)

	group := s.CreateGroup("Study Group", "", "weekly sync", []string{"c1", "c2"})
	if !group.IsGroup {
		t.Error("created group must have IsGroup set")
	}
	if group.Status != "3 members" {
		t.Errorf("status = %q, want 3 members", group.Status)
	}
	contacts := s.Contacts()
	if contacts[0].ID != group.ID {
		t.Error("new group should be at the top of the roster")
	}

	s.Append(group.ID, "welcome", "")
	s.DeleteContact(group.ID)
	if _, ok := s.Contact(group.ID); ok {
		t.Error("contact still present after delete")
	}
	if len(s.Thread(group.ID)) != 0 {
		t.Error("thread should be cleared with its contact")
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	db := testDB(t)
	s1 := New(db, bus.New(), zap.NewNop(), "You")
	s1.Hydrate()
	msg := s1.Append("c1", "durable", "")
	s1.SetPinned("c2", true)

	s2 := New(db, bus.New(), zap.NewNop(), "You")
	s2.Hydrate()

	thread := s2.Thread("c1")
	if len(thread) == 0 || thread[len(thread)-1].ID != msg.ID {
		t.Error("appended message did not survive rehydration")
	}
	c, _ := s2.Contact("c2")
	if !c.Pin {
		t.Error("pin flag did not survive rehydration")
	}
}

func TestReportQueue(t *testing.T) {
	s := testStore(t)

	r := s.QueueReport("c1", []string{"Spam"}, "keeps sending links")
	pending := s.PendingReports()
	if len(pending) != 1 || pending[0].ID != r.ID {
		t.Fatalf("pending = %+v, want the queued report", pending)
	}

	s.MarkReportSubmitted(r.ID)
	if len(s.PendingReports()) != 0 {
		t.Error("submitted report still pending")
	}
}

func TestSavedSelection(t *testing.T) {
	s := testStore(t)

	if _, ok := s.SavedSelection(); ok {
		t.Error("fresh store should have no saved selection")
	}
	s.SaveSelection("c3")
	if id, ok := s.SavedSelection(); !ok || id != "c3" {
		t.Errorf("SavedSelection() = %q, %v", id, ok)
	}
	s.SaveSelection("")
	if _, ok := s.SavedSelection(); ok {
		t.Error("selection should be cleared")
	}
}
