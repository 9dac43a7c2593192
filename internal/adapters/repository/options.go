package repository

// Option applies a configuration option to the RedisStore.
type Option func(*RedisStore)

// WithKeyPrefix namespaces every key written by the store, e.g. "livescores:".
func WithKeyPrefix(prefix string) Option {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithSubscriptionsKey overrides the Redis key of the active subscription set.
func WithSubscriptionsKey(key string) Option {
	return func(s *RedisStore) {
		if key != "" {
			s.subscriptionsKey = key
		}
	}
}
