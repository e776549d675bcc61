package storage

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// BadgerBackend stores each record under its store key as a JSON object
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadgerBackend opens a badger database in dir. An empty dir or
// inMemory keeps everything in memory.
func OpenBadgerBackend(dir string, inMemory bool) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" || inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) load(ctx context.Context) ([]entry, error) {
	var entries []entry
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			if err := item.Value(func(val []byte) error {
				data, err := decodeObject(val)
				if err != nil {
					return fmt.Errorf("decode %s: %w", key, err)
				}
				entries = append(entries, entry{Key: key, Data: data})
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return entries, nil
}

// persist writes every record and drops keys that are no longer in the
// mapping, all in one transaction
func (b *BadgerBackend) persist(ctx context.Context, records []*model.Record) error {
	keep := make(map[string]struct{}, len(records))
	for _, rec := range records {
		keep[rec.Key()] = struct{}{}
	}

	return b.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			if _, ok := keep[string(key)]; !ok {
				stale = append(stale, key)
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil && err != badger.ErrKeyNotFound {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		for _, rec := range records {
			data, err := encodeRecord(rec)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(rec.Key()), data); err != nil {
				return fmt.Errorf("set %s: %w", rec.Key(), err)
			}
		}
		return nil
	})
}

func (b *BadgerBackend) close() error {
	return b.db.Close()
}
