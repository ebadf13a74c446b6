package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/chesscore/internal/board"
)

// Storage keys
const keyPositionPrefix = "position/"

// BadgerStore wraps BadgerDB for persistent storage
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a BadgerDB in dir, or an in-memory one if dir is empty.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db}, nil
}

// Close closes the database
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(name string) []byte {
	return []byte(keyPositionPrefix + name)
}

// Save saves the position
func (s *BadgerStore) Save(name string, b *board.Board) (Record, error) {
	rec, err := newRecord(name, b)
	if err != nil {
		return Record{}, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(positionKey(name), data)
	})
	return rec, err
}

// Load loads a saved position
func (s *BadgerStore) Load(name string, opts ...board.Option) (*board.Board, error) {
	var rec Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return board.ParseFEN(rec.FEN, opts...)
}

// List returns all saved positions in key order
func (s *BadgerStore) List() ([]Record, error) {
	var records []Record

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPositionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return records, err
}

// Delete removes a saved position
func (s *BadgerStore) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(positionKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}
		return txn.Delete(positionKey(name))
	})
}
