package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/store"
	"go.uber.org/zap"
)

// CompanyByEmail returns the company administered by email, or nil when
// there is none. A miss is not an error.
func (r *Registry) CompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	var c models.Company
	err := r.findOne(ctx, store.From(tableCompanies).Where(store.Eq("admin_email", normalizeEmail(email))), &c)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Registry) CompanyByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := r.findOne(ctx, store.From(tableCompanies).Where(store.Eq("id", id)), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ResolveDemoCompany returns the oldest approved tenant, or nil when there
// is none. The platform super admin is never picked. Kiosk pages use it for
// unknown company ids when the demo fallback is switched on.
func (r *Registry) ResolveDemoCompany(ctx context.Context) (*models.Company, error) {
	var c models.Company
	q := store.From(tableCompanies).
		Where(
			store.Eq("status", models.CompanyStatusApproved),
			store.Neq("role", models.CompanyRoleSuperAdmin),
		).
		OrderBy("created_at", false).
		Take(1)
	err := r.findOne(ctx, q, &c)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a new pending admin company. Role and status set on
// c are respected so the super admin seed can reuse it.
func (r *Registry) CreateCompany(ctx context.Context, c *models.Company) error {
	c.AdminEmail = normalizeEmail(c.AdminEmail)
	existing, err := r.CompanyByEmail(ctx, c.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}
	c.ID = r.newID()
	c.CreatedAt = r.clock()
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	if c.Status == "" {
		c.Status = models.CompanyStatusPending
	}
	if c.Role == "" {
		c.Role = models.CompanyRoleAdmin
	}
	if err := r.store.Insert(ctx, tableCompanies, c); err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	r.log.Info("company created", zap.String("company_id", c.ID), zap.String("status", string(c.Status)))
	return nil
}

// UpdateCompanyProfile changes the editable profile fields.
func (r *Registry) UpdateCompanyProfile(ctx context.Context, id, name, phone string) error {
	return r.updateCompany(ctx, id, map[string]any{
		"name":  strings.TrimSpace(name),
		"phone": strings.TrimSpace(phone),
	})
}

// SetCompanyLogo stores a data URI, or clears the logo when logo is nil.
func (r *Registry) SetCompanyLogo(ctx context.Context, id string, logo *string) error {
	return r.updateCompany(ctx, id, map[string]any{"logo_url": logo})
}

// SetCompanyStatus changes the approval status and returns the updated company.
func (r *Registry) SetCompanyStatus(ctx context.Context, id string, status models.CompanyStatus) (*models.Company, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid company status %q", status)
	}
	if err := r.updateCompany(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	r.log.Info("company status changed", zap.String("company_id", id), zap.String("status", string(status)))
	return r.CompanyByID(ctx, id)
}

func (r *Registry) updateCompany(ctx context.Context, id string, patch map[string]any) error {
	n, err := r.store.Update(ctx, store.From(tableCompanies).Where(store.Eq("id", id)), patch)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CompaniesByStatus lists companies newest first. Super admin accounts are
// left out of the listing.
func (r *Registry) CompaniesByStatus(ctx context.Context, status models.CompanyStatus) ([]models.Company, error) {
	var out []models.Company
	q := store.From(tableCompanies).
		Where(store.Eq("status", status), store.Neq("role", models.CompanyRoleSuperAdmin)).
		OrderBy("created_at", true)
	if err := r.store.FindMany(ctx, q, &out); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return out, nil
}
