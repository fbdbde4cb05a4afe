// Package statestore persists ledger state entries under their 32-byte
// keys. Backends are registered by name so the database type stays a
// configuration concern.
package statestore

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrBackendClosed is returned when operating on a closed backend.
	ErrBackendClosed = errors.New("backend is closed")

	// ErrNotFound is returned when a key has no entry.
	ErrNotFound = errors.New("entry not found")
)

// Backend is a flat key-value store for state entries. Implementations
// must be safe for concurrent use.
type Backend interface {
	// Name identifies the backend and its location.
	Name() string

	// Get returns the value stored under key, ErrNotFound if absent.
	Get(key [32]byte) ([]byte, error)

	// Put stores value under key, overwriting any previous value.
	Put(key [32]byte, value []byte) error

	// Delete removes the entry under key. Deleting a missing key is not
	// an error.
	Delete(key [32]byte) error

	// Has reports whether key has an entry.
	Has(key [32]byte) (bool, error)

	// ForEach visits every entry. Iteration stops when fn returns false.
	ForEach(fn func(key [32]byte, value []byte) bool) error

	// Close releases the backend's resources.
	Close() error
}

// Config carries backend construction parameters.
type Config struct {
	// Type selects the registered backend factory.
	Type string

	// Path is the on-disk location for persistent backends.
	Path string

	// Compressor names the value compressor, empty for none.
	Compressor string

	// CacheSize is the entry count of the read cache, zero to disable.
	CacheSize int
}

// FactoryFunc constructs a backend from its config.
type FactoryFunc func(cfg Config) (Backend, error)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]FactoryFunc)
)

// RegisterBackend registers a backend factory under a type name.
func RegisterBackend(name string, factory FactoryFunc) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = factory
}

// Open constructs the backend named by cfg.Type.
func Open(cfg Config) (Backend, error) {
	factoryMu.RLock()
	factory, ok := factories[cfg.Type]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
	return factory(cfg)
}

func init() {
	RegisterBackend("memory", func(cfg Config) (Backend, error) {
		return NewMemoryBackend(), nil
	})
	RegisterBackend("pebble", NewPebbleBackend)
}
