package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/store"
	"go.uber.org/zap"
)

func (r *Registry) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.findOne(ctx, store.From(tableUsers).Where(store.Eq("email", normalizeEmail(email))), &u)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Registry) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.findOne(ctx, store.From(tableUsers).Where(store.Eq("id", id)), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Registry) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	email = normalizeEmail(email)
	existing, err := r.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	u := &models.User{ID: r.newID(), Email: email, PasswordHash: passwordHash, CreatedAt: r.clock()}
	if err := r.store.Insert(ctx, tableUsers, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// SignUp creates the login and its pending company. When the user insert
// fails the company is removed again, so the email stays free for a retry.
func (r *Registry) SignUp(ctx context.Context, c *models.Company, passwordHash string) (*models.User, error) {
	if u, err := r.UserByEmail(ctx, c.AdminEmail); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}
	c.Status = models.CompanyStatusPending
	c.Role = models.CompanyRoleAdmin
	if err := r.CreateCompany(ctx, c); err != nil {
		return nil, err
	}
	u, err := r.CreateUser(ctx, c.AdminEmail, passwordHash)
	if err != nil {
		if _, rmErr := r.store.Remove(ctx, store.From(tableCompanies).Where(store.Eq("id", c.ID))); rmErr != nil {
			r.log.Error("sign-up rollback failed",
				zap.String("company_id", c.ID),
				zap.Error(rmErr),
			)
			return nil, errors.Join(err, fmt.Errorf("remove company: %w", rmErr))
		}
		return nil, err
	}
	return u, nil
}

// EnsureSuperAdmin creates the platform super admin (company and login) when
// missing. It is safe to call on every start.
func (r *Registry) EnsureSuperAdmin(ctx context.Context, email, passwordHash, name string) error {
	c, err := r.CompanyByEmail(ctx, email)
	if err != nil {
		return err
	}
	if c == nil {
		c = &models.Company{
			Name:       name,
			AdminEmail: email,
			Status:     models.CompanyStatusApproved,
			Role:       models.CompanyRoleSuperAdmin,
		}
		if err := r.CreateCompany(ctx, c); err != nil {
			return err
		}
	}
	u, err := r.UserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		if _, err := r.CreateUser(ctx, email, passwordHash); err != nil {
			return err
		}
		r.log.Info("super admin seeded", zap.String("company_id", c.ID))
	}
	return nil
}
