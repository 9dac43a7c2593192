package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultSubscriptionsKey = "subscriptions"
	pingTimeout             = 5 * time.Second
)

// RedisStore keeps values as plain strings and the active subscriptions in a Redis set.
type RedisStore struct {
	client           *redis.Client
	prefix           string
	subscriptionsKey string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, opts ...Option) *RedisStore {
	s := &RedisStore{
		client:           client,
		subscriptionsKey: defaultSubscriptionsKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, password string, db int, opts ...Option) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return NewRedisStore(client, opts...), nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get implements KV.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Put implements KV. Values never expire; retirement is driven by the scheduler.
func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// ListActive implements SubscriptionSet.
func (s *RedisStore) ListActive(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.key(s.subscriptionsKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	return members, nil
}

// Add implements SubscriptionSet.
func (s *RedisStore) Add(ctx context.Context, member string) (bool, error) {
	n, err := s.client.SAdd(ctx, s.key(s.subscriptionsKey), member).Result()
	if err != nil {
		return false, fmt.Errorf("redis sadd: %w", err)
	}
	return n > 0, nil
}

// Remove implements SubscriptionSet.
func (s *RedisStore) Remove(ctx context.Context, member string) (bool, error) {
	n, err := s.client.SRem(ctx, s.key(s.subscriptionsKey), member).Result()
	if err != nil {
		return false, fmt.Errorf("redis srem: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
