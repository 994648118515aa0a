package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/arachchispices/spicestore/internal/common/config"
	"github.com/arachchispices/spicestore/internal/common/errorx"
)

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared between replicas. Expiry is delegated to Redis TTLs.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg *config.SessionRedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Create stores the principal under a fresh random session ID.
func (s *RedisStore) Create(ctx context.Context, p *Principal, ttl time.Duration) (string, error) {
	id := uuid.New().String()
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the principal for the given session ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*Principal, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.ErrNoSession
		}
		return nil, err
	}
	var p Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the session if present.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
