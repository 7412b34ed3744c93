package bus

import (
	"sync"
	"time"
)

// Bus fans domain events out to topic subscribers. Delivery is
// non-blocking: a subscriber that falls behind loses events, which is
// acceptable because every consumer re-reads the store on wake.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscriber
	next int
}

type subscriber struct {
	id    int
	topic string
	ch    chan Event
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Announce publishes an event of the given kind about refID, stamped
// with the current time.
func (b *Bus) Announce(kind Kind, refID string) {
	evt := Event{Kind: kind, RefID: refID, At: time.Now()}
	topic := kind.Topic()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.topic != topic {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
		}
	}
}

// Subscribe returns a channel receiving every event whose kind belongs
// to the topic, and a function that cancels the subscription.
func (b *Bus) Subscribe(topic string, bufSize int) (<-chan Event, func()) {
	ch := make(chan Event, bufSize)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs = append(b.subs, &subscriber{id: id, topic: topic, ch: ch})
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}
