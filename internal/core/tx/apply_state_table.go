package tx

import (
	"bytes"
	"fmt"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
)

// Action represents the type of modification to a ledger entry.
type Action int

const (
	// ActionCache means the entry was read but not modified.
	ActionCache Action = iota
	// ActionInsert means a new entry was created.
	ActionInsert
	// ActionModify means an existing entry was modified.
	ActionModify
	// ActionErase means an entry was deleted.
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes.
type TrackedEntry struct {
	Action   Action
	Original []byte // nil for inserts
	Current  []byte // nil after erase
}

// ApplyStateTable wraps a LedgerView and buffers all modifications.
// Nothing reaches the base view until Apply; an operation that fails
// partway simply discards the table, which is what makes multi-entry
// operations all-or-nothing.
type ApplyStateTable struct {
	base  LedgerView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable over the given base.
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached.
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base.
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists.
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry.
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action != ActionErase {
			return fmt.Errorf("entry already exists")
		}
		// Re-inserting a deleted entry becomes a modify.
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("entry already exists")
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionInsert,
		Original: nil,
		Current:  data,
	}

	return nil
}

// Update modifies an existing entry.
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("entry not found (deleted)")
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// An insert stays an insert with the new data.
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}

	return nil
}

// Erase removes an entry.
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("entry already deleted")
		}
		if entry.Action == ActionInsert {
			// Insert then delete cancels out.
			delete(t.items, k.Key)
			return nil
		}
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}

	return nil
}

// IsErased returns true if the entry at the given key has been erased.
func (t *ApplyStateTable) IsErased(k keylet.Keylet) bool {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action == ActionErase
	}
	return false
}

// ForEach iterates over all state entries as the table sees them:
// buffered changes shadow the base.
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	seen := make(map[[32]byte]bool, len(t.items))
	for key, entry := range t.items {
		seen[key] = true
		if entry.Action == ActionErase {
			continue
		}
		if !fn(key, entry.Current) {
			return nil
		}
	}
	return t.base.ForEach(func(key [32]byte, data []byte) bool {
		if seen[key] {
			return true
		}
		return fn(key, data)
	})
}

// Apply commits all buffered changes to the base view.
func (t *ApplyStateTable) Apply() error {
	for key, entry := range t.items {
		switch entry.Action {
		case ActionCache:
			continue

		case ActionInsert:
			if err := t.base.Insert(keylet.Keylet{Key: key}, entry.Current); err != nil {
				return err
			}

		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
			if err := t.base.Update(keylet.Keylet{Key: key}, entry.Current); err != nil {
				return err
			}

		case ActionErase:
			if entry.Original == nil {
				continue
			}
			if err := t.base.Erase(keylet.Keylet{Key: key}); err != nil {
				return err
			}
		}
	}
	return nil
}
