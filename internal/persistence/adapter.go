package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"todo-list.com/todo-list/internal/metrics"
	model "todo-list.com/todo-list/internal/models"
	repository "todo-list.com/todo-list/internal/repositories"
)

// Adapter moves the todo collection in and out of a snapshot repository.
// Transform failures never stop it: it logs them and keeps whatever data it
// can, so a bad snapshot is degraded rather than dropped.
type Adapter struct {
	repo    repository.SnapshotRepository
	key     string
	logger  zerolog.Logger
	clock   func() time.Time
	metrics *metrics.Metrics
	encode  func([]model.Todo) ([]byte, error)
}

type AdapterOption func(*Adapter)

func WithAdapterClock(clock func() time.Time) AdapterOption {
	return func(a *Adapter) {
		a.clock = clock
	}
}

func WithAdapterMetrics(m *metrics.Metrics) AdapterOption {
	return func(a *Adapter) {
		a.metrics = m
	}
}

func NewAdapter(repo repository.SnapshotRepository, key string, logger zerolog.Logger, opts ...AdapterOption) *Adapter {
	if key == "" {
		key = DefaultKey
	}

	a := &Adapter{
		repo:   repo,
		key:    key,
		logger: logger,
		clock:  time.Now,
		encode: Encode,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Key() string {
	return a.key
}

// Save writes todos under the adapter's key. If the wire transform fails the
// untransformed collection is written instead.
func (a *Adapter) Save(ctx context.Context, todos []model.Todo) error {
	data, err := a.encode(todos)
	if err != nil {
		a.metrics.ObservePersistFailure("encode")
		a.logger.Error().Err(err).Msg("failed to encode todos, storing untransformed state")

		data, err = json.Marshal(todos)
		if err != nil {
			return fmt.Errorf("encode todos: %w", err)
		}
	}

	if err := a.repo.Put(ctx, a.key, data); err != nil {
		a.metrics.ObservePersistFailure("put")
		return fmt.Errorf("put snapshot %s: %w", a.key, err)
	}

	a.logger.Debug().Int("count", len(todos)).Int("bytes", len(data)).Msg("saved todos")
	return nil
}

// Load returns the stored todos, or none when nothing has been saved yet.
// Only storage failures are returned as errors.
func (a *Adapter) Load(ctx context.Context) ([]model.Todo, error) {
	data, err := a.repo.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot %s: %w", a.key, err)
	}

	todos, err := Decode(data)
	if err == nil {
		return todos, nil
	}

	a.metrics.ObservePersistFailure("decode")
	a.logger.Warn().Err(err).Msg("snapshot failed strict decode, recovering leniently")

	snapshot, err := decodeLoose(data)
	if err != nil {
		return nil, a.backupUnreadable(ctx, data, err)
	}
	return recoverTodos(snapshot, a.clock(), a.logger), nil
}

// backupUnreadable copies a payload that cannot be read at all to a side key
// so the next save does not destroy it.
func (a *Adapter) backupUnreadable(ctx context.Context, data []byte, cause error) error {
	backupKey := fmt.Sprintf("%s.corrupt.%d", a.key, a.clock().Unix())

	a.metrics.ObservePersistFailure("unreadable")
	a.logger.Error().
		Err(cause).
		Str("backup_key", backupKey).
		Msg("snapshot unreadable, backing it up and starting empty")

	if err := a.repo.Put(ctx, backupKey, data); err != nil {
		return fmt.Errorf("back up unreadable snapshot to %s: %w", backupKey, err)
	}
	return nil
}
