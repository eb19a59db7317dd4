package repository

import (
	"context"

	"github.com/redis/rueidis"
)

type RedisSnapshotRepository struct {
	client rueidis.Client
}

func NewRedisSnapshotRepository(client rueidis.Client) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{client: client}
}

func (r *RedisSnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := r.client.B().Get().Key(key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *RedisSnapshotRepository) Put(ctx context.Context, key string, data []byte) error {
	cmd := r.client.B().Set().Key(key).Value(rueidis.BinaryString(data)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisSnapshotRepository) Close() error {
	r.client.Close()
	return nil
}
