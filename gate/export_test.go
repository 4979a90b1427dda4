package gate

import (
	"context"
	"sync"
)

// StaticResolver is an in-memory resolver for the package tests.
type StaticResolver[K comparable] struct {
	mu      sync.RWMutex
	tenants map[K]*Tenant
}

func NewStaticResolver[K comparable]() *StaticResolver[K] {
	return &StaticResolver[K]{tenants: make(map[K]*Tenant)}
}

func (r *StaticResolver[K]) Set(key K, t *Tenant) {
	r.mu.Lock()
	r.tenants[key] = t
	r.mu.Unlock()
}

func (r *StaticResolver[K]) Resolve(_ context.Context, key K) (*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tenants[key]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}
