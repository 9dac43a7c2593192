package repository

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a process-local Store. Useful for tests and single-instance runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	active map[string]struct{}
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		active: make(map[string]struct{}),
	}
}

// Get implements KV.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrStoreClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Put implements KV.
func (m *MemoryStore) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	m.values[key] = value
	return nil
}

// ListActive implements SubscriptionSet. Members are sorted for stable output.
func (m *MemoryStore) ListActive(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	out := make([]string, 0, len(m.active))
	for member := range m.active {
		out = append(out, member)
	}
	sort.Strings(out)
	return out, nil
}

// Add implements SubscriptionSet.
func (m *MemoryStore) Add(ctx context.Context, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrStoreClosed
	}
	if _, ok := m.active[member]; ok {
		return false, nil
	}
	m.active[member] = struct{}{}
	return true, nil
}

// Remove implements SubscriptionSet.
func (m *MemoryStore) Remove(ctx context.Context, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrStoreClosed
	}
	if _, ok := m.active[member]; !ok {
		return false, nil
	}
	delete(m.active, member)
	return true, nil
}

// Close marks the store closed; subsequent calls fail with ErrStoreClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
