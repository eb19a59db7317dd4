package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "todo-list.com/todo-list/internal/models"
)

type SQLiteSnapshotRepository struct {
	db *gorm.DB
}

func NewSQLiteSnapshotRepository(db *gorm.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var snapshot model.Snapshot
	err := r.db.WithContext(ctx).First(&snapshot, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return snapshot.Data, nil
}

func (r *SQLiteSnapshotRepository) Put(ctx context.Context, key string, data []byte) error {
	snapshot := &model.Snapshot{
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(snapshot).Error
}

func (r *SQLiteSnapshotRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
