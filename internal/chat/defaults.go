package chat

import (
	"strings"
	"time"
)

// defaultContacts is the built-in roster used when nothing has been
// persisted yet (or the persisted blob is unreadable).
func defaultContacts() []Contact {
	return []Contact{
		{ID: "c1", Name: "Ana Souza", Status: "online", LastMessage: "See you tomorrow!", Avatar: "avatars/ana.png"},
		{ID: "c2", Name: "Bruno Lima", Status: "last seen recently", LastMessage: "Thanks for the help", Avatar: "avatars/bruno.png"},
		{ID: "g1", Name: "Weekend Trip", Status: "5 members", LastMessage: "Who brings the tent?", Avatar: "avatars/trip.png"},
		{ID: "c3", Name: "Carla Mendes", Status: "online", LastMessage: "Call me when free", Avatar: "avatars/carla.png"},
		{ID: "c4", Name: "Diego Torres", Status: "last seen recently", LastMessage: "ok!", Avatar: "avatars/diego.png"},
		{ID: "c5", Name: "Elisa Ramos", Status: "last seen recently", LastMessage: "Sent the files", Avatar: "avatars/elisa.png"},
		{ID: "g2", Name: "Family", Status: "8 members", LastMessage: "Dinner on Sunday", Avatar: "avatars/family.png"},
		{ID: "c6", Name: "Felipe Costa", Status: "online", LastMessage: "On my way", Avatar: "avatars/felipe.png"},
		{ID: "c7", Name: "Gabriela Nunes", Status: "last seen recently", LastMessage: "Nice photos!", Avatar: "avatars/gabriela.png"},
		{ID: "c8", Name: "Henrique Alves", Status: "last seen recently", LastMessage: "Let's sync Monday", Avatar: "avatars/henrique.png"},
	}
}

// seedContacts applies the deterministic synthetic fields to the
// default roster: every 5th contact starts with 2 unread, offline
// contacts get lastSeenMinutes = index*3+5, and group membership is
// derived from the id prefix or a membership status.
func seedContacts() []Contact {
	contacts := defaultContacts()
	for i := range contacts {
		c := &contacts[i]
		if i%5 == 0 {
			c.Unread = 2
		}
		if c.Status != "online" {
			c.LastSeenMinutes = i*3 + 5
		}
		c.IsGroup = strings.HasPrefix(c.ID, "g") || strings.Contains(c.Status, "members")
	}
	return contacts
}

// seedThreads builds a small default message history anchored to now.
func seedThreads(now time.Time, self string) map[string][]Message {
	ms := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }
	return map[string][]Message{
		"c1": {
			{ID: "m-c1-1", User: "Ana Souza", Text: "Are we still on for lunch?", CreatedAt: ms(3 * time.Hour)},
			{ID: "m-c1-2", User: self, Text: "Yes! Noon works for me", CreatedAt: ms(2 * time.Hour)},
			{ID: "m-c1-3", User: "Ana Souza", Text: "See you tomorrow!", CreatedAt: ms(90 * time.Minute)},
		},
		"c2": {
			{ID: "m-c2-1", User: self, Text: "Did the build pass?", CreatedAt: ms(26 * time.Hour)},
			{ID: "m-c2-2", User: "Bruno Lima", Text: "Thanks for the help", CreatedAt: ms(25 * time.Hour)},
		},
		"g1": {
			{ID: "m-g1-1", User: "Carla Mendes", Text: "I can drive on Saturday", CreatedAt: ms(8 * time.Hour)},
			{ID: "m-g1-2", User: "Diego Torres", Text: "Who brings the tent?", CreatedAt: ms(5 * time.Hour)},
		},
	}
}

// seedDetails is the media/files/links gallery shown on the details
// page. Kept in memory only, like the rest of the demo fixtures.
func seedDetails() map[string][]Attachment {
	return map[string][]Attachment{
		"c1": {
			{ID: "a1", Kind: AttachmentPhoto, URL: "media/ana-beach.jpg", Caption: "Beach day"},
			{ID: "a2", Kind: AttachmentPhoto, URL: "media/ana-hike.jpg", Caption: "Trail"},
			{ID: "a3", Kind: AttachmentFile, URL: "files/itinerary.pdf", Name: "itinerary.pdf", Size: "240 KB"},
			{ID: "a4", Kind: AttachmentLink, URL: "https://example.com/recipe", Title: "That recipe"},
		},
		"g1": {
			{ID: "a5", Kind: AttachmentVideo, URL: "media/trip-teaser.mp4", Caption: "Teaser"},
			{ID: "a6", Kind: AttachmentFile, URL: "files/packing-list.txt", Name: "packing-list.txt", Size: "2 KB"},
		},
	}
}
