package config

import (
	"fmt"

	"github.com/rs/zerolog"

	repository "todo-list.com/todo-list/internal/repositories"
)

// NewSnapshotRepository opens the backend selected by cfg.StorageDriver.
func NewSnapshotRepository(cfg Config, logger zerolog.Logger) (repository.SnapshotRepository, error) {
	switch cfg.StorageDriver {
	case DriverSQLite:
		db, err := NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLiteSnapshotRepository(db), nil
	case DriverRedis:
		client, err := NewRedisClient(cfg.RedisAddr())
		if err != nil {
			return nil, err
		}
		return repository.NewRedisSnapshotRepository(client), nil
	case DriverBadger:
		db, err := NewBadgerDB(cfg.BadgerPath, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewBadgerSnapshotRepository(db), nil
	}
	return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
}
