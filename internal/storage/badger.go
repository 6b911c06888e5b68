package storage

import (
	"context"
	"os"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// BadgerStore implements Store on top of a local BadgerDB instance.
// Badger transactions give SetBatch and Delete their all-or-nothing
// semantics.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// NewBadgerStore opens (or creates) a file-backed store at the given path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	//nolint:mnd // 0700: the store holds encrypted key material, owner-only
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}

	opts := badger.DefaultOptions(path).
		WithSyncWrites(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger database")
	}

	log.Debug().Str("path", path).Msg("Opened wallet storage")

	return &BadgerStore{db: db}, nil
}

// NewInMemoryStore opens a store that lives entirely in memory. Used by
// tests and ephemeral setups.
func NewInMemoryStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory badger database")
	}

	return &BadgerStore{db: db}, nil
}

// Get returns the value stored under key or ErrKeyNotFound.
func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)

		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read key")
	}

	return value, nil
}

// Set stores the value under key.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetBatch(ctx, map[string][]byte{key: value})
}

// SetBatch stores all entries in a single transaction.
func (s *BadgerStore) SetBatch(_ context.Context, entries map[string][]byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for key, value := range entries {
			if err := txn.Set([]byte(key), value); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to write batch")
	}

	return nil
}

// Delete removes the keys in a single transaction, ignoring missing keys.
func (s *BadgerStore) Delete(_ context.Context, keys ...string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete keys")
	}

	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
