package chat

// Contact is a peer or group entry in the roster.
type Contact struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	LastMessage     string `json:"lastMessage"`
	Avatar          string `json:"avatar"`
	Unread          int    `json:"unread"`
	Archived        bool   `json:"archived"`
	Blocked         bool   `json:"blocked"`
	Pin             bool   `json:"pin"`
	LastSeenMinutes int    `json:"lastSeenMinutes"`
	IsGroup         bool   `json:"isGroup"`
}

// DisplayName returns the roster label for the contact. Blocked state
// is decorated here; Name itself is never rewritten, so unblocking
// restores the plain label.
func (c Contact) DisplayName() string {
	if c.Blocked {
		return c.Name + " (Blocked)"
	}
	return c.Name
}

// Message is one entry in a contact's thread. ReplyTo is a weak
// reference: the target may have been deleted, and renderers must
// treat a dangling id as "no reply context".
type Message struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
	Edited    bool   `json:"edited,omitempty"`
	EditedAt  int64  `json:"edited_at,omitempty"`
	Pinned    bool   `json:"pinned,omitempty"`
	ReplyTo   string `json:"reply_to,omitempty"`
}

// Report submission states.
const (
	ReportQueued    = "queued"
	ReportSubmitted = "submitted"
	ReportFailed    = "failed"
)

// Report is a user-filed report against a contact, queued locally and
// submitted to the remote backend on a best-effort basis.
type Report struct {
	ID        string   `json:"id"`
	ContactID string   `json:"contactId"`
	Topics    []string `json:"topics"`
	Note      string   `json:"note"`
	Reporter  string   `json:"reporter"`
	CreatedAt int64    `json:"created_at"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
}

// AttachmentKind tags the entries shown on the details page.
type AttachmentKind string

const (
	AttachmentPhoto AttachmentKind = "photo"
	AttachmentVideo AttachmentKind = "video"
	AttachmentFile  AttachmentKind = "file"
	AttachmentLink  AttachmentKind = "link"
)

// Attachment is one media, file or link entry for a conversation.
// Caption applies to photos/videos, Name and Size to files, Title to
// links; unused fields stay empty for the other kinds.
type Attachment struct {
	ID      string         `json:"id"`
	Kind    AttachmentKind `json:"kind"`
	URL     string         `json:"url"`
	Caption string         `json:"caption,omitempty"`
	Name    string         `json:"name,omitempty"`
	Size    string         `json:"size,omitempty"`
	Title   string         `json:"title,omitempty"`
}

// Snapshot is a read-only copy of the roster and threads handed to
// the view layer. It shares no memory with the store.
type Snapshot struct {
	Contacts []Contact
	Threads  map[string][]Message
}
