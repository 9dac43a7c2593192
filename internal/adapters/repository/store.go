// Package repository defines the key-value and subscription-set contracts the
// refresh core persists through, plus in-memory and Redis implementations.
package repository

import "context"

// KV is an opaque string key-value store with atomic per-key get/put.
type KV interface {
	// Get returns the value stored under key. ok is false when the key was never written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put stores value under key, unconditionally overwriting.
	Put(ctx context.Context, key, value string) error
}

// SubscriptionSet holds the serialized active subscriptions.
type SubscriptionSet interface {
	// ListActive returns every member of the active set, in no particular order.
	ListActive(ctx context.Context) ([]string, error)
	// Add inserts member. Returns true if it was not present before.
	Add(ctx context.Context, member string) (bool, error)
	// Remove deletes member. Returns true if it was present.
	Remove(ctx context.Context, member string) (bool, error)
}

// Store bundles both contracts; every implementation in this package satisfies it.
type Store interface {
	KV
	SubscriptionSet
	Close() error
}
