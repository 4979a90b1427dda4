package gate

import (
	"context"
	"sync"
	"time"
)

// CachedResolver wraps a TenantResolver with TTL-based caching so the store
// is not hit on every request. Misses (no tenant) are cached too.
type CachedResolver[K comparable] struct {
	inner TenantResolver[K]
	cache map[K]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// NewCachedResolver wraps a resolver with caching.
func NewCachedResolver[K comparable](inner TenantResolver[K], ttl time.Duration) *CachedResolver[K] {
	return &CachedResolver[K]{
		inner: inner,
		cache: make(map[K]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *CachedResolver[K]) Resolve(ctx context.Context, key K) (*Tenant, error) {
	r.mu.RLock()
	entry, ok := r.cache[key]
	r.mu.RUnlock()
	if ok && r.now().Before(entry.expiresAt) {
		return entry.tenant, nil
	}

	t, err := r.inner.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = &cacheEntry{tenant: t, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return t, nil
}

// Invalidate drops one key. Call it when a tenant's status changes or its
// session ends.
func (r *CachedResolver[K]) Invalidate(key K) {
	r.mu.Lock()
	delete(r.cache, key)
	r.mu.Unlock()
}
