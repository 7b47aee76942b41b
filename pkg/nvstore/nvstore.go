// Package nvstore is the non-volatile storage backend for sysconfig.Store.
// It stands in for the embedded device's NVS flash partition, implemented
// over BadgerDB the way the teacher codebase's pkg/kv wraps Badger for its
// own key-value needs — trimmed here to the single Save/Load pair the
// device config blob requires.
package nvstore

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when the requested key has never been written.
var ErrNotFound = errors.New("nvstore: key not found")

// Store is a BadgerDB-backed implementation of sysconfig.Persister.
type Store struct {
	db *badger.DB
}

// Options configures where and how the store keeps its data.
type Options struct {
	// Dir is the directory holding Badger's data files. Ignored if InMemory.
	Dir string
	// InMemory runs Badger with no disk persistence, for tests and for
	// "factory reset every boot" style runs of the simulator.
	InMemory bool
}

// Open creates or opens the NVS store.
func Open(opts Options) (*Store, error) {
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(nil)
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying Badger handles.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes blob under key, overwriting any previous value.
func (s *Store) Save(_ context.Context, key string, blob []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
}

// Load reads the blob stored under key. Returns ErrNotFound if the key has
// never been written — the caller (sysconfig.Store.Load) treats that the
// same as any other NVS read failure and falls back to defaults.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}
