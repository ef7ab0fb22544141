// Package store persists opaque values under string keys, either in SQLite
// or in memory.
package store

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
)

// ErrNotFound is returned by Get for a key that holds no value.
var ErrNotFound = errors.New("key not found")

// KV is a string-keyed byte store.
type KV interface {
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

var _ KV = (*Memory)(nil)

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = slices.Clone(value)
	m.writes++
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.writes++
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.values))
}

// Writes counts Put and Delete calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
