package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each record as a JSON string and indexes the ids in a
// sorted set scored by creation time.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) recordKey(id uuid.UUID) string {
	return s.prefix + ":registration:" + id.String()
}

func (s *RedisStorage) indexKey() string {
	return s.prefix + ":registrations"
}

func (s *RedisStorage) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}

	ok, err := s.client.SetNX(ctx, s.recordKey(rec.ID), data, 0).Result()
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
	}

	err = s.client.ZAdd(ctx, s.indexKey(), redis.Z{
		Score:  float64(rec.CreatedAt.UnixMilli()),
		Member: rec.ID.String(),
	}).Err()
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}

func (s *RedisStorage) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, errors.Join(ErrStorageUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode registration %s: %w", id, err)
	}
	return rec, nil
}

// Count returns the number of indexed registrations.
func (s *RedisStorage) Count(ctx context.Context) (int64, error) {
	n, err := s.client.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, errors.Join(ErrStorageUnavailable, err)
	}
	return n, nil
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
