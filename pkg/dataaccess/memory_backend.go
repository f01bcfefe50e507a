package dataaccess

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in memory. It is used in tests.
type MemoryBackend struct {
	mu sync.Mutex

	docs map[string][]byte

	// LoadErr is returned from every Load when set.
	LoadErr error

	// SaveErr is returned from every Save when set.
	SaveErr error

	// Saves counts the successful saves per document.
	Saves map[string]int
}

// NewMemoryBackend creates a new, empty memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		docs:  make(map[string][]byte),
		Saves: make(map[string]int),
	}
}

func (m *MemoryBackend) Name() string {
	return BackendMemory
}

func (m *MemoryBackend) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}

	data, ok := m.docs[name]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.docs[name] = append([]byte(nil), data...)
	m.Saves[name]++
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

// Raw returns the stored bytes of a document.
func (m *MemoryBackend) Raw(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.docs[name]
	return data, ok
}

// SaveCount returns the number of successful saves of a document.
func (m *MemoryBackend) SaveCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Saves[name]
}
