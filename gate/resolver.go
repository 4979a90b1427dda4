package gate

import "context"

// TenantResolver finds the tenant for a key. A nil tenant with a nil error
// means none exists.
type TenantResolver[K comparable] interface {
	Resolve(ctx context.Context, key K) (*Tenant, error)
}

// ResolverFunc adapts a function to TenantResolver.
type ResolverFunc[K comparable] func(ctx context.Context, key K) (*Tenant, error)

func (f ResolverFunc[K]) Resolve(ctx context.Context, key K) (*Tenant, error) { return f(ctx, key) }
