package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/persist"
	"go.uber.org/zap"
)

// Store owns the authoritative in-memory state: the roster and the
// per-contact message threads. Every mutation flushes through the
// blob store on a best-effort basis; a failed flush is logged and
// swallowed, the in-memory state stays authoritative for the session.
type Store struct {
	mu     sync.RWMutex
	db     *persist.DB
	bus    *bus.Bus
	logger *zap.Logger
	self   string

	now   func() time.Time
	newID func() string

	contacts []Contact
	threads  map[string][]Message
	reports  []Report
	details  map[string][]Attachment
}

// New creates an empty store. Call Hydrate before use.
func New(db *persist.DB, b *bus.Bus, logger *zap.Logger, self string) *Store {
	return &Store{
		db:      db,
		bus:     b,
		logger:  logger,
		self:    self,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		threads: make(map[string][]Message),
		details: seedDetails(),
	}
}

// Self returns the sender label for locally composed messages.
func (s *Store) Self() string { return s.self }

// Hydrate loads contacts, threads and queued reports from the blob
// store, falling back to the built-in defaults when a blob is absent
// or unreadable. It never fails: any load problem means "use defaults".
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var contacts []Contact
	if s.db.LoadJSON(persist.KeyContacts, &contacts) && len(contacts) > 0 {
		s.contacts = contacts
	} else {
		s.contacts = seedContacts()
	}

	threads := make(map[string][]Message)
	if s.db.LoadJSON(persist.KeyThreads, &threads) && len(threads) > 0 {
		s.threads = threads
	} else {
		s.threads = seedThreads(s.now(), s.self)
	}

	var reports []Report
	if s.db.LoadJSON(persist.KeyReports, &reports) {
		s.reports = reports
	}

	s.logger.Info("store hydrated",
		zap.Int("contacts", len(s.contacts)),
		zap.Int("threads", len(s.threads)),
		zap.Int("reports", len(s.reports)))
}

// Contacts returns a copy of the current roster.
func (s *Store) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Contact returns a single contact by id.
func (s *Store) Contact(id string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// Thread returns a copy of the message sequence for a contact, empty
// if none exists.
func (s *Store) Thread(contactID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.threads[contactID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Snapshot returns a copy of the roster and all threads for the view
// layer. The result shares no memory with the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Contacts: make([]Contact, len(s.contacts)),
		Threads:  make(map[string][]Message, len(s.threads)),
	}
	copy(snap.Contacts, s.contacts)
	for id, msgs := range s.threads {
		cp := make([]Message, len(msgs))
		copy(cp, msgs)
		snap.Threads[id] = cp
	}
	return snap
}

// Append adds a locally composed message to a contact's thread.
// New activity revives an archived conversation.
func (s *Store) Append(contactID, text, replyTo string) Message {
	s.mu.Lock()
	msg := Message{
		ID:        s.newID(),
		User:      s.self,
		Text:      text,
		CreatedAt: s.now().UnixMilli(),
		ReplyTo:   replyTo,
	}
	s.threads[contactID] = append(s.threads[contactID], msg)
	s.unarchiveLocked(contactID)
	s.flushLocked()
	s.mu.Unlock()

	s.publish(bus.KindThreadChanged, contactID)
	return msg
}

// Edit replaces a message's text in place and marks it edited.
// Unknown message ids are a silent no-op.
func (s *Store) Edit(contactID, messageID, text string) {
	s.mu.Lock()
	changed := false
	msgs := s.threads[contactID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Text = text
			msgs[i].Edited = true
			msgs[i].EditedAt = s.now().UnixMilli()
			changed = true
			break
		}
	}
	if changed {
		s.flushLocked()
	}
	s.mu.Unlock()

	if changed {
		s.publish(bus.KindThreadChanged, contactID)
	}
}

// Delete removes a message by id. Unknown ids are a silent no-op.
func (s *Store) Delete(contactID, messageID string) {
	s.mu.Lock()
	changed := false
	msgs := s.threads[contactID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			s.threads[contactID] = append(msgs[:i], msgs[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		s.flushLocked()
	}
	s.mu.Unlock()

	if changed {
		s.publish(bus.KindThreadChanged, contactID)
	}
}

// TogglePin flips a message's pinned flag. Unknown ids are a no-op.
func (s *Store) TogglePin(contactID, messageID string) {
	s.mu.Lock()
	changed := false
	msgs := s.threads[contactID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Pinned = !msgs[i].Pinned
			changed = true
			break
		}
	}
	if changed {
		s.flushLocked()
	}
	s.mu.Unlock()

	if changed {
		s.publish(bus.KindThreadChanged, contactID)
	}
}

// Forward copies a message into each target thread, prefixed with the
// original sender, and revives archived targets. Fails when the source
// message no longer exists.
func (s *Store) Forward(sourceID, messageID string, targets []string) error {
	s.mu.Lock()
	var orig *Message
	for i, m := range s.threads[sourceID] {
		if m.ID == messageID {
			orig = &s.threads[sourceID][i]
			break
		}
	}
	if orig == nil {
		s.mu.Unlock()
		return fmt.Errorf("forward: message %s not found in %s", messageID, sourceID)
	}

	text := fmt.Sprintf("Fwd: %s: %s", orig.User, orig.Text)
	for _, target := range targets {
		msg := Message{
			ID:        s.newID(),
			User:      s.self,
			Text:      text,
			CreatedAt: s.now().UnixMilli(),
		}
		s.threads[target] = append(s.threads[target], msg)
		s.unarchiveLocked(target)
	}
	s.flushLocked()
	s.mu.Unlock()

	for _, target := range targets {
		s.publish(bus.KindThreadChanged, target)
	}
	return nil
}

// SetPinned pins or unpins a conversation in the roster.
func (s *Store) SetPinned(contactID string, pinned bool) {
	s.updateContact(contactID, func(c *Contact) { c.Pin = pinned })
}

// SetArchived moves a conversation in or out of the archive.
func (s *Store) SetArchived(contactID string, archived bool) {
	s.updateContact(contactID, func(c *Contact) { c.Archived = archived })
}

// SetBlocked blocks or unblocks a contact. The flag is the single
// source of truth; display decoration is derived in DisplayName.
func (s *Store) SetBlocked(contactID string, blocked bool) {
	s.updateContact(contactID, func(c *Contact) { c.Blocked = blocked })
}

// SetUnread overrides the unseen-message count for a contact.
func (s *Store) SetUnread(contactID string, unread int) {
	s.updateContact(contactID, func(c *Contact) { c.Unread = unread })
}

// MarkRead clears the unseen-message count for a contact.
func (s *Store) MarkRead(contactID string) {
	s.SetUnread(contactID, 0)
}

// CreateGroup adds a new group conversation to the top of the roster
// with an empty thread. The member count includes the local user.
func (s *Store) CreateGroup(name, photo, description string, members []string) Contact {
	s.mu.Lock()
	group := Contact{
		ID:          "g" + s.newID()[:8],
		Name:        name,
		Status:      fmt.Sprintf("%d members", len(members)+1),
		LastMessage: description,
		Avatar:      photo,
		IsGroup:     true,
	}
	s.contacts = append([]Contact{group}, s.contacts...)
	s.threads[group.ID] = []Message{}
	s.flushLocked()
	s.mu.Unlock()

	s.publish(bus.KindContactsChanged, group.ID)
	return group
}

// DeleteContact removes a contact and its thread.
func (s *Store) DeleteContact(contactID string) {
	s.mu.Lock()
	for i, c := range s.contacts {
		if c.ID == contactID {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			break
		}
	}
	delete(s.threads, contactID)
	s.flushLocked()
	s.mu.Unlock()

	s.publish(bus.KindContactsChanged, contactID)
}

// Details returns the media/files/links gallery for a contact.
func (s *Store) Details(contactID string) []Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.details[contactID]
	out := make([]Attachment, len(items))
	copy(out, items)
	return out
}

// SavedSelection returns the persisted open-conversation id, if any.
func (s *Store) SavedSelection() (string, bool) {
	data, ok, err := s.db.Get(persist.KeySelected)
	if err != nil || !ok || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// SaveSelection persists the open-conversation id; empty clears it.
func (s *Store) SaveSelection(contactID string) {
	var err error
	if contactID == "" {
		err = s.db.Delete(persist.KeySelected)
	} else {
		err = s.db.Put(persist.KeySelected, []byte(contactID))
	}
	if err != nil {
		s.logger.Warn("persist selection failed", zap.Error(err))
	}
}

func (s *Store) updateContact(contactID string, fn func(*Contact)) {
	s.mu.Lock()
	changed := false
	for i := range s.contacts {
		if s.contacts[i].ID == contactID {
			fn(&s.contacts[i])
			changed = true
			break
		}
	}
	if changed {
		s.flushLocked()
	}
	s.mu.Unlock()

	if changed {
		s.publish(bus.KindContactsChanged, contactID)
	}
}

func (s *Store) unarchiveLocked(contactID string) {
	for i := range s.contacts {
		if s.contacts[i].ID == contactID {
			s.contacts[i].Archived = false
			return
		}
	}
}

// flushLocked writes all blobs. Best effort: failures are logged and
// the in-memory state remains authoritative.
func (s *Store) flushLocked() {
	if err := s.db.SaveJSON(persist.KeyContacts, s.contacts); err != nil {
		s.logger.Warn("persist contacts failed", zap.Error(err))
	}
	if err := s.db.SaveJSON(persist.KeyThreads, s.threads); err != nil {
		s.logger.Warn("persist threads failed", zap.Error(err))
	}
	if err := s.db.SaveJSON(persist.KeyReports, s.reports); err != nil {
		s.logger.Warn("persist reports failed", zap.Error(err))
	}
}

func (s *Store) publish(kind bus.Kind, contactID string) {
	if s.bus == nil {
		return
	}
	s.bus.Announce(kind, contactID)
}
