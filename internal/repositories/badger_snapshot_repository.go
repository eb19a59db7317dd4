package repository

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSnapshotRepository keeps snapshots in an embedded BadgerDB. Badger
// transactions are not cancellable, so ctx is only checked up front.
type BadgerSnapshotRepository struct {
	db *badger.DB
}

func NewBadgerSnapshotRepository(db *badger.DB) *BadgerSnapshotRepository {
	return &BadgerSnapshotRepository{db: db}
}

func (r *BadgerSnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *BadgerSnapshotRepository) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (r *BadgerSnapshotRepository) Close() error {
	return r.db.Close()
}
