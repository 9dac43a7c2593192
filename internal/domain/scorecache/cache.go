// Package scorecache reads and writes cached score snapshots and content
// bindings on top of an opaque key-value store.
package scorecache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/pkg/logger"
	"github.com/okian/livescores/pkg/metrics"
)

// KV is the subset of the key-value store the cache needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Cache implements the ScoreInfo cache. Snapshots are replaced whole; there are
// no partial writes and no versioning.
type Cache struct {
	kv     KV
	logger logger.Logger
}

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithLogger sets a custom logger for the cache.
func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Cache over kv.
func New(kv KV, opts ...Option) *Cache {
	c := &Cache{
		kv:     kv,
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached snapshot for sub, or nil if it was never written or
// cannot be decoded. Only store failures are returned as errors.
func (c *Cache) Get(ctx context.Context, sub model.Subscription) (*model.ScoreInfo, error) {
	raw, ok, err := c.kv.Get(ctx, sub.Key())
	if err != nil {
		metrics.RecordCacheRead("error")
		return nil, fmt.Errorf("read %s: %w", sub.Key(), err)
	}
	if !ok {
		metrics.RecordCacheRead("miss")
		return nil, nil
	}

	var info model.ScoreInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		metrics.RecordCacheRead("malformed")
		c.logger.Warn(ctx, "malformed cached snapshot treated as miss",
			logger.String("key", sub.Key()),
			logger.Error(err),
		)
		return nil, nil
	}
	metrics.RecordCacheRead("hit")
	return &info, nil
}

// Put serializes info and stores it under sub's key, overwriting any prior snapshot.
func (c *Cache) Put(ctx context.Context, sub model.Subscription, info *model.ScoreInfo) error {
	if info == nil {
		return fmt.Errorf("put %s: nil snapshot", sub.Key())
	}
	b, err := json.Marshal(info)
	if err != nil {
		metrics.RecordCacheWrite("error")
		return fmt.Errorf("encode snapshot for %s: %w", sub.Key(), err)
	}
	if err := c.kv.Put(ctx, sub.Key(), string(b)); err != nil {
		metrics.RecordCacheWrite("error")
		return fmt.Errorf("write %s: %w", sub.Key(), err)
	}
	metrics.RecordCacheWrite("ok")
	return nil
}

// SubscriptionForContent resolves the subscription bound to contentID.
// It returns model.ErrMissingContentID for an empty id, and nil when no
// (decodable) binding exists.
func (c *Cache) SubscriptionForContent(ctx context.Context, contentID string) (*model.Subscription, error) {
	key, err := model.PostKey(contentID)
	if err != nil {
		return nil, err
	}
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	sub, err := model.ParseSubscription(raw)
	if err != nil {
		c.logger.Warn(ctx, "malformed content binding treated as miss",
			logger.String("key", key),
			logger.Error(err),
		)
		return nil, nil
	}
	return &sub, nil
}

// BindContent records that contentID shows sub. One binding per content id;
// rebinding replaces the previous one.
func (c *Cache) BindContent(ctx context.Context, contentID string, sub model.Subscription) error {
	key, err := model.PostKey(contentID)
	if err != nil {
		return err
	}
	raw, err := sub.Marshal()
	if err != nil {
		return err
	}
	if err := c.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
