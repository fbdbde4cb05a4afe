// Package ledger maintains committed state on top of a statestore
// backend. It is the LedgerView operations ultimately commit into.
package ledger

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/storage/statestore"
)

// ErrEntryExists is returned by Insert when the key already holds an
// entry; ErrEntryMissing by Update and Erase when it does not.
var (
	ErrEntryExists  = errors.New("entry already exists")
	ErrEntryMissing = errors.New("entry does not exist")
)

// Ledger is the committed state map. Reads go through an LRU cache;
// writes go straight to the backend and refresh the cache.
type Ledger struct {
	store statestore.Backend
	cache *lru.Cache[[32]byte, []byte]
}

// New creates a ledger over the given backend. cacheSize of zero
// disables the read cache.
func New(store statestore.Backend, cacheSize int) (*Ledger, error) {
	l := &Ledger{store: store}
	if cacheSize > 0 {
		cache, err := lru.New[[32]byte, []byte](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating entry cache: %w", err)
		}
		l.cache = cache
	}
	return l, nil
}

// Read returns the entry under k, nil if absent.
func (l *Ledger) Read(k keylet.Keylet) ([]byte, error) {
	if l.cache != nil {
		if value, ok := l.cache.Get(k.Key); ok {
			out := make([]byte, len(value))
			copy(out, value)
			return out, nil
		}
	}
	value, err := l.store.Get(k.Key)
	if errors.Is(err, statestore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Add(k.Key, value)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Exists reports whether k holds an entry.
func (l *Ledger) Exists(k keylet.Keylet) (bool, error) {
	if l.cache != nil && l.cache.Contains(k.Key) {
		return true, nil
	}
	return l.store.Has(k.Key)
}

// Insert adds a new entry under k.
func (l *Ledger) Insert(k keylet.Keylet, data []byte) error {
	exists, err := l.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}
	return l.put(k.Key, data)
}

// Update replaces the entry under k.
func (l *Ledger) Update(k keylet.Keylet, data []byte) error {
	exists, err := l.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEntryMissing
	}
	return l.put(k.Key, data)
}

// Erase removes the entry under k.
func (l *Ledger) Erase(k keylet.Keylet) error {
	exists, err := l.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEntryMissing
	}
	if l.cache != nil {
		l.cache.Remove(k.Key)
	}
	return l.store.Delete(k.Key)
}

// ForEach visits every committed entry.
func (l *Ledger) ForEach(fn func(key [32]byte, data []byte) bool) error {
	return l.store.ForEach(fn)
}

func (l *Ledger) put(key [32]byte, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	if err := l.store.Put(key, stored); err != nil {
		return err
	}
	if l.cache != nil {
		l.cache.Add(key, stored)
	}
	return nil
}
