package gate

// Role of a tenant account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Status is the approval state of a tenant.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Tenant is the slice of a company the gate needs.
type Tenant struct {
	ID     string
	Role   Role
	Status Status
}

// Access is the outcome of a gate decision. Reason explains a denial.
type Access struct {
	Allowed bool
	Reason  error
	Tenant  *Tenant
}

func (a Access) IsSuperAdmin() bool {
	return a.Allowed && a.Tenant != nil && a.Tenant.Role == RoleSuperAdmin
}

// Decide applies the access policy: allowed iff the tenant is a super admin
// or approved. A nil tenant means no company exists for the identity.
func Decide(t *Tenant) Access {
	if t == nil {
		return Access{Reason: ErrNoCompany}
	}
	if t.Role == RoleSuperAdmin || t.Status == StatusApproved {
		return Access{Allowed: true, Tenant: t}
	}
	switch t.Status {
	case StatusPending:
		return Access{Reason: ErrPending, Tenant: t}
	case StatusRejected:
		return Access{Reason: ErrRejected, Tenant: t}
	}
	return Access{Reason: ErrUnauthorized, Tenant: t}
}
