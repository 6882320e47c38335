package testutil

import (
	"context"
	"sort"
	"sync"
)

// MemoryKV is an in-memory key-value store with injectable write failures.
//
// Thread-safety: all methods are safe for concurrent use.
type MemoryKV struct {
	mu      sync.Mutex
	data    map[string]string
	putErr  error
	delErr  error
	puts    int
	deletes int
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Seed sets key without counting it as a write.
func (m *MemoryKV) Seed(key, value string) *MemoryKV {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return m
}

// FailWrites makes every later Put and Delete return err. nil clears it.
func (m *MemoryKV) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
	m.delErr = err
}

// Get implements the stores' KV interface.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Put implements the stores' KV interface.
func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = value
	return nil
}

// Delete implements the stores' KV interface.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	m.deletes++
	delete(m.data, key)
	return nil
}

// Value returns the raw stored value for key.
func (m *MemoryKV) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Keys returns the stored keys, sorted.
func (m *MemoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Puts returns the number of successful Put calls.
func (m *MemoryKV) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
