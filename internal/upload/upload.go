// Package upload defines the file-upload collaborator. Attachments
// are out of scope for the demo, so the shipped implementation always
// fails with ErrNotConfigured.
package upload

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned while no object storage is wired up.
var ErrNotConfigured = errors.New("upload: storage not configured")

// Uploader stores a named object and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	// PublicURL resolves an object key to a public URL, if available.
	PublicURL(key string) (string, bool)
}

// Placeholder is the not-configured uploader.
type Placeholder struct{}

// NewPlaceholder creates the always-failing uploader.
func NewPlaceholder() *Placeholder { return &Placeholder{} }

// Upload always fails with ErrNotConfigured.
func (*Placeholder) Upload(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrNotConfigured
}

// PublicURL never resolves.
func (*Placeholder) PublicURL(_ string) (string, bool) {
	return "", false
}
