// Package gate decides whether a signed-in identity may use the application.
// Access depends on the tenant (company) the identity administers: super
// admins always pass, other tenants pass only once approved. On top of the
// allow/deny decision, role grants expressed as "resource:action" permissions
// guard individual operations.
//
// The package has no dependency on storage or domain models; callers supply
// a TenantResolver keyed by whatever identifies a session (an email address
// in this application).
package gate

import "context"

// Gate resolves tenants for keys of type K and applies the access policy.
type Gate[K comparable] struct {
	resolver TenantResolver[K]
	grants   map[Role][]Permission
}

// New creates a Gate. grants maps each role to the permissions it holds;
// pass DefaultGrants() for the standard kiosk roles.
func New[K comparable](resolver TenantResolver[K], grants map[Role][]Permission) *Gate[K] {
	return &Gate[K]{resolver: resolver, grants: grants}
}

// DefaultGrants gives tenant admins full control over their own visitors
// and company, and super admins everything.
func DefaultGrants() map[Role][]Permission {
	return map[Role][]Permission{
		RoleAdmin: {
			NewPermission("visitor", WildcardAll),
			NewPermission("alert", ActionTrigger),
			NewPermission("company", ActionView),
			NewPermission("company", ActionUpdate),
		},
		RoleSuperAdmin: {PermissionSuperAdmin},
	}
}

// ResolveAccess looks up the tenant for key and decides access. The error
// is non-nil only when the resolver itself failed; a missing tenant is a
// denial, not an error.
func (g *Gate[K]) ResolveAccess(ctx context.Context, key K) (Access, error) {
	var zero K
	if key == zero {
		return Access{Reason: ErrUnauthorized}, nil
	}
	t, err := g.resolver.Resolve(ctx, key)
	if err != nil {
		return Access{Reason: err}, err
	}
	return Decide(t), nil
}

// Authorize returns nil when key has access and its role grants
// resourceType:action.
func (g *Gate[K]) Authorize(ctx context.Context, key K, action Action, resourceType string) error {
	access, err := g.ResolveAccess(ctx, key)
	if err != nil {
		return err
	}
	if !access.Allowed {
		return access.Reason
	}
	requested := NewPermission(resourceType, action)
	for _, p := range g.grants[access.Tenant.Role] {
		if p.Matches(requested) {
			return nil
		}
	}
	return ErrUnauthorized
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[K]) Can(ctx context.Context, key K, action Action, resourceType string) bool {
	return g.Authorize(ctx, key, action, resourceType) == nil
}
