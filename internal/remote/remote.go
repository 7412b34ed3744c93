// Package remote defines the backend collaborator surface. The demo
// ships only a stub: queries resolve empty, inserts succeed with no
// data, realtime subscriptions are a no-op. Callers must never assume
// a call did anything.
package remote

import "context"

// Record is a single row exchanged with the backend.
type Record map[string]any

// Client is the query/insert/subscribe capability surface.
type Client interface {
	// Query returns all rows of a table.
	Query(ctx context.Context, table string) ([]Record, error)
	// Insert writes one row to a table.
	Insert(ctx context.Context, table string, rec Record) error
	// Subscribe registers a handler for change events on a table and
	// returns a cancel function.
	Subscribe(ctx context.Context, table string, handler func(Record)) (func(), error)
}
