package dataaccess

import (
	"context"
	"errors"
)

// ErrNotExist is returned by a Backend when the requested document has never been saved.
var ErrNotExist = errors.New("document does not exist")

const (
	// BackendFile is the label for the file backend.
	BackendFile = "file"

	// BackendMongo is the label for the Mongo backend.
	BackendMongo = "mongo"

	// BackendMemory is the label for the in-memory backend.
	BackendMemory = "memory"
)

// Backend persists whole documents by name. There are no partial updates: every Save replaces
// the full document and every Load returns the full document.
type Backend interface {
	// Name returns the label of the backend, used for metrics and logs.
	Name() string

	// Load returns the raw JSON of the named document, or ErrNotExist.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the named document with data.
	Save(ctx context.Context, name string, data []byte) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
