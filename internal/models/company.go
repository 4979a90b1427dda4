package models

import "time"

// CompanyStatus is the approval state of a company account.
type CompanyStatus string

const (
	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusApproved CompanyStatus = "approved"
	CompanyStatusRejected CompanyStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyStatusPending, CompanyStatusApproved, CompanyStatusRejected:
		return true
	}
	return false
}

// CompanyRole distinguishes regular tenant admins from the platform super admin.
type CompanyRole string

const (
	CompanyRoleAdmin      CompanyRole = "admin"
	CompanyRoleSuperAdmin CompanyRole = "super_admin"
)

// Company is a tenant of the kiosk. Exactly one company exists per admin email.
// Companies are never hard-deleted; only status, profile fields and logo change.
type Company struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	Name       string        `gorm:"size:255;not null" json:"name"`
	Address    string        `gorm:"size:500" json:"address"`
	Phone      string        `gorm:"size:50" json:"phone"`
	AdminEmail string        `gorm:"size:255;uniqueIndex;not null" json:"admin_email"`
	Status     CompanyStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Role       CompanyRole   `gorm:"size:20;not null;default:admin" json:"role"`
	// LogoURL holds an inline data URI, nil when no logo is set.
	LogoURL   *string   `gorm:"type:text" json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) IsSuperAdmin() bool { return c.Role == CompanyRoleSuperAdmin }

// HasLogo reports whether a non-empty logo is stored.
func (c *Company) HasLogo() bool { return c.LogoURL != nil && *c.LogoURL != "" }
