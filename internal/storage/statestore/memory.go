package statestore

import (
	"sync"
)

// MemoryBackend is an in-memory Backend for tests and standalone runs.
type MemoryBackend struct {
	mu     sync.RWMutex
	data   map[[32]byte][]byte
	closed bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[[32]byte][]byte)}
}

// Name returns the name of this backend.
func (m *MemoryBackend) Name() string {
	return "memory"
}

// Get returns the value stored under key.
func (m *MemoryBackend) Get(key [32]byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrBackendClosed
	}
	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores value under key.
func (m *MemoryBackend) Put(key [32]byte, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrBackendClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes the entry under key.
func (m *MemoryBackend) Delete(key [32]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrBackendClosed
	}
	delete(m.data, key)
	return nil
}

// Has reports whether key has an entry.
func (m *MemoryBackend) Has(key [32]byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false, ErrBackendClosed
	}
	_, ok := m.data[key]
	return ok, nil
}

// ForEach visits every entry.
func (m *MemoryBackend) ForEach(fn func(key [32]byte, value []byte) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrBackendClosed
	}
	for key, value := range m.data {
		out := make([]byte, len(value))
		copy(out, value)
		if !fn(key, out) {
			return nil
		}
	}
	return nil
}

// Close clears the backend.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.data = nil
	return nil
}
