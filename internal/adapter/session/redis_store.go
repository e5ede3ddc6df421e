package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps active session tokens in Redis so logout can
// revoke a token before its signature expires.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+tokenID, userID, ttl).Err()
}

// UserID returns domain.ErrNotFound for unknown or revoked tokens.
func (s *RedisStore) UserID(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Revoke is idempotent; revoking an absent token is not an error.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, keyPrefix+tokenID).Err()
}

// Client exposes the underlying connection for adapters that share it.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}
