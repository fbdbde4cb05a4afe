package statestore

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"

	"github.com/magiclamp-finance/lampd/internal/storage/statestore/compression"
)

// PebbleBackend stores entries in a PebbleDB database, compressing
// values with the configured compressor before they hit the LSM.
type PebbleBackend struct {
	db         *pebble.DB
	compressor compression.Compressor
	path       string
	open       int64
}

// NewPebbleBackend opens or creates a PebbleDB backend at cfg.Path.
func NewPebbleBackend(cfg Config) (Backend, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("pebble backend requires a path")
	}
	name := cfg.Compressor
	if name == "" {
		name = "none"
	}
	compressor, err := compression.Get(name)
	if err != nil {
		return nil, fmt.Errorf("resolving compressor: %w", err)
	}

	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	opts := &pebble.Options{
		MaxOpenFiles:                1000,
		MemTableSize:                64 << 20,
		MemTableStopWritesThreshold: 4,
		LBaseMaxBytes:               64 << 20,
	}
	for i := range opts.Levels {
		opts.Levels[i].FilterPolicy = bloom.FilterPolicy(10)
		// Values are compressed above the store already.
		opts.Levels[i].Compression = pebble.NoCompression
	}

	db, err := pebble.Open(cfg.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("opening pebble database: %w", err)
	}

	p := &PebbleBackend{
		db:         db,
		compressor: compressor,
		path:       cfg.Path,
	}
	atomic.StoreInt64(&p.open, 1)
	return p, nil
}

// Name returns the name of this backend.
func (p *PebbleBackend) Name() string {
	return fmt.Sprintf("pebble(%s)", p.path)
}

func (p *PebbleBackend) isOpen() bool {
	return atomic.LoadInt64(&p.open) != 0
}

// Get returns the value stored under key.
func (p *PebbleBackend) Get(key [32]byte) ([]byte, error) {
	if !p.isOpen() {
		return nil, ErrBackendClosed
	}
	value, closer, err := p.db.Get(key[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()
	out, err := p.compressor.Decompress(value)
	if err != nil {
		return nil, fmt.Errorf("decompressing entry: %w", err)
	}
	return out, nil
}

// Put stores value under key.
func (p *PebbleBackend) Put(key [32]byte, value []byte) error {
	if !p.isOpen() {
		return ErrBackendClosed
	}
	compressed, err := p.compressor.Compress(value)
	if err != nil {
		return fmt.Errorf("compressing entry: %w", err)
	}
	if err := p.db.Set(key[:], compressed, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

// Delete removes the entry under key.
func (p *PebbleBackend) Delete(key [32]byte) error {
	if !p.isOpen() {
		return ErrBackendClosed
	}
	if err := p.db.Delete(key[:], pebble.Sync); err != nil {
		return fmt.Errorf("pebble delete: %w", err)
	}
	return nil
}

// Has reports whether key has an entry.
func (p *PebbleBackend) Has(key [32]byte) (bool, error) {
	if !p.isOpen() {
		return false, ErrBackendClosed
	}
	_, closer, err := p.db.Get(key[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pebble get: %w", err)
	}
	closer.Close()
	return true, nil
}

// ForEach visits every entry.
func (p *PebbleBackend) ForEach(fn func(key [32]byte, value []byte) bool) error {
	if !p.isOpen() {
		return ErrBackendClosed
	}
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("pebble iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		raw := iter.Key()
		if len(raw) != 32 {
			continue
		}
		var key [32]byte
		copy(key[:], raw)
		value, err := p.compressor.Decompress(iter.Value())
		if err != nil {
			return fmt.Errorf("decompressing entry: %w", err)
		}
		if !fn(key, value) {
			break
		}
	}
	return iter.Error()
}

// Close closes the database.
func (p *PebbleBackend) Close() error {
	if !atomic.CompareAndSwapInt64(&p.open, 1, 0) {
		return nil
	}
	return p.db.Close()
}
