package dataaccess

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
)

// Document is a whole JSON document held in memory and written back in full on every mutation.
//
// It is loaded once when opened. All access goes through a single mutex so a mutation and its
// save are never interleaved with another mutation in the same process. Nothing coordinates
// separate processes sharing a backend: the last writer wins.
type Document[T any] struct {
	// l is the logger.
	l *slog.Logger

	// name is the name of the document in the backend.
	name string

	// backend persists the document.
	backend Backend

	// empty returns the value used when nothing could be loaded.
	empty func() T

	mu    sync.Mutex
	value T
}

// OpenDocument loads the named document from the backend.
//
// A document that fails to load or parse is logged and replaced by the empty value. The bot keeps
// running with an empty store rather than refusing to start.
func OpenDocument[T any](ctx context.Context, l *slog.Logger, backend Backend, name string, empty func() T) *Document[T] {
	d := &Document[T]{
		l:       l.With(slog.String(logging.KeyDal, name)),
		name:    name,
		backend: backend,
		empty:   empty,
		value:   empty(),
	}

	if err := d.load(ctx); err != nil {
		monitoring.StoreFailures.WithLabelValues(backend.Name(), "load", name).Inc()
		d.l.Error("Error loading document, starting empty", slog.String(logging.KeyError, err.Error()))
	}

	return d
}

func (d *Document[T]) load(ctx context.Context) error {
	data, err := d.backend.Load(ctx, d.name)
	if errors.Is(err, ErrNotExist) {
		d.l.Debug("Document does not exist yet, starting empty")
		return nil
	} else if err != nil {
		return fmt.Errorf("error loading document: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	v := d.empty()
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("error decoding document: %w", err)
	}

	d.value = v
	return nil
}

// Name returns the name of the document.
func (d *Document[T]) Name() string {
	return d.name
}

// Read calls fn with the current value. fn must not keep references to the value after it returns.
func (d *Document[T]) Read(fn func(v T)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn(d.value)
}

// Mutate calls fn with the current value and then saves the whole document.
//
// fn must validate before it changes anything: when it returns an error the document is not saved
// and the error is returned as is. A failed save is logged and swallowed, the in-memory value is
// kept and will be written by the next successful mutation.
func (d *Document[T]) Mutate(ctx context.Context, fn func(v T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := fn(d.value); err != nil {
		return err
	}

	if err := d.save(ctx); err != nil {
		monitoring.StoreFailures.WithLabelValues(d.backend.Name(), "save", d.name).Inc()
		d.l.Error("Error saving document", slog.String(logging.KeyError, err.Error()))
	}
	return nil
}

func (d *Document[T]) save(ctx context.Context) error {
	data, err := json.MarshalIndent(d.value, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}

	if err := d.backend.Save(ctx, d.name, data); err != nil {
		return fmt.Errorf("error saving document: %w", err)
	}
	return nil
}
