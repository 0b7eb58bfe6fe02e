package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gemvault/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:page:"

// RedisPageStore keeps page snapshots in Redis so sessions survive restarts
// and can be shared between replicas
type RedisPageStore struct {
	client *redis.Client
}

// NewRedisPageStore connects to the Redis instance at redisURL
func NewRedisPageStore(redisURL string) (*RedisPageStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisPageStore{client: redis.NewClient(opt)}, nil
}

// Ping checks that Redis is reachable
func (s *RedisPageStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}
	return nil
}

// Get retrieves a page snapshot
func (s *RedisPageStore) Get(ctx context.Context, id string) (*domain.PageSnapshot, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}

	var snapshot domain.PageSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode page %s: %w", id, err)
	}
	return &snapshot, nil
}

// Save stores a page snapshot with TTL
func (s *RedisPageStore) Save(ctx context.Context, snapshot *domain.PageSnapshot, ttl time.Duration) error {
	if snapshot == nil || snapshot.ID == "" {
		return domain.ErrInvalidRequest
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, redisKeyPrefix+snapshot.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}
	return nil
}

// Delete removes a page
func (s *RedisPageStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}
	return nil
}

// Close releases the Redis connection pool
func (s *RedisPageStore) Close() error {
	return s.client.Close()
}
