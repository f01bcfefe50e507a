package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess/monitoring"
	"github.com/tidwall/jsonc"
)

// FileBackend stores each document as a JSON file in a directory.
type FileBackend struct {
	// dir is the directory holding the documents.
	dir string
}

// NewFileBackend creates a new file backend rooted at dir.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{
		dir: dir,
	}
}

func (f *FileBackend) Name() string {
	return BackendFile
}

// Load reads the document file. Comments and trailing commas are tolerated so that the files can be edited by hand.
func (f *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	defer monitoring.Observe(BackendFile, "load", name)()

	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	} else if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	return jsonc.ToJSON(data), nil
}

// Save writes the whole document to a temporary file and renames it over the old one.
func (f *FileBackend) Save(_ context.Context, name string, data []byte) error {
	defer monitoring.Observe(BackendFile, "save", name)()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op once renamed.

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %s: %w", name, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("error replacing %s: %w", name, err)
	}
	return nil
}

// Ping checks that the data directory exists.
func (f *FileBackend) Ping(_ context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("error checking data directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", f.dir)
	}
	return nil
}
