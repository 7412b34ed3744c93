package remote

import "context"

// Stub is the not-configured backend: always available, never useful.
type Stub struct{}

// NewStub creates the no-op backend client.
func NewStub() *Stub { return &Stub{} }

// Query resolves to an empty result set.
func (*Stub) Query(_ context.Context, _ string) ([]Record, error) {
	return nil, nil
}

// Insert succeeds with no data.
func (*Stub) Insert(_ context.Context, _ string, _ Record) error {
	return nil
}

// Subscribe never delivers events; the returned cancel is a no-op.
func (*Stub) Subscribe(_ context.Context, _ string, _ func(Record)) (func(), error) {
	return func() {}, nil
}
