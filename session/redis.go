package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "librosearch:session:"

// redisStore persists sessions in Redis with a sliding TTL.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) Get(ctx context.Context, id string) (*Context, error) {
	key := redisKeyPrefix + id
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session %s: %w", id, err)
	}

	var data Context
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}

	// Reading a session keeps the conversation alive.
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return &data, nil
}

func (s *redisStore) Put(ctx context.Context, data *Context) error {
	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	val, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", data.ID, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+data.ID, val, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing session %s: %w", data.ID, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
