package repository

import (
	"context"
	"errors"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository stores opaque snapshot payloads by key.
type SnapshotRepository interface {
	// Get returns ErrSnapshotNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	Put(ctx context.Context, key string, data []byte) error

	Close() error
}
