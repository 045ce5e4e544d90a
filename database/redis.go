package database

import (
	"context"
	"errors"
	"fmt"

	"geofacts/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the slot under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client *redis.Client, slot string) *RedisStore {
	return &RedisStore{client: client, key: "geofacts:" + slot}
}

func (s *RedisStore) Load(ctx context.Context) (models.SearchHistory, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.SearchHistory{}, nil
	}
	if err != nil {
		return models.SearchHistory{}, fmt.Errorf("load history: %w", err)
	}
	return decodeHistory(raw)
}

func (s *RedisStore) Save(ctx context.Context, h models.SearchHistory) error {
	raw, err := encodeHistory(h)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Close() error {
	return s.client.Close()
}
