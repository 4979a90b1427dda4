// Package session binds the signed session cookie to the company gate. Every
// authenticated request resolves an explicit Session that handlers read from
// the request context; a denied session is torn down on the spot.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/gate"
	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/registry"
)

// Session is the signed-in state of one request.
type Session struct {
	UserID  string
	Email   string
	Company *models.Company
	Access  gate.Access
}

// CompanyID returns the id of the session company, empty when none.
func (s *Session) CompanyID() string {
	if s == nil || s.Company == nil {
		return ""
	}
	return s.Company.ID
}

func (s *Session) IsSuperAdmin() bool { return s != nil && s.Access.IsSuperAdmin() }

// Registry is the lookup surface the manager needs.
type Registry interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
	CompanyByEmail(ctx context.Context, email string) (*models.Company, error)
}

// Manager resolves, starts and ends sessions.
type Manager struct {
	cookies *auth.Manager
	reg     Registry
	tenants *gate.CachedResolver[string]
	gate    *gate.Gate[string]
	log     *zap.Logger
}

// NewManager wires the cookie manager to the company gate. Gate decisions are
// cached per email for ttl.
func NewManager(cookies *auth.Manager, reg Registry, ttl time.Duration, log *zap.Logger) *Manager {
	inner := gate.ResolverFunc[string](func(ctx context.Context, email string) (*gate.Tenant, error) {
		c, err := reg.CompanyByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return TenantOf(c), nil
	})
	tenants := gate.NewCachedResolver[string](inner, ttl)
	return &Manager{
		cookies: cookies,
		reg:     reg,
		tenants: tenants,
		gate:    gate.New[string](tenants, gate.DefaultGrants()),
		log:     log,
	}
}

// TenantOf maps a company to the gate's view of it. A nil company yields a
// nil tenant, which the gate denies.
func TenantOf(c *models.Company) *gate.Tenant {
	if c == nil {
		return nil
	}
	return &gate.Tenant{ID: c.ID, Role: gate.Role(c.Role), Status: gate.Status(c.Status)}
}

// Resolve builds the session for userID. The error is non-nil only for store
// failures; an unknown user or a denied company comes back as a session with
// Access.Allowed false.
func (m *Manager) Resolve(ctx context.Context, userID string) (*Session, error) {
	u, err := m.reg.UserByID(ctx, userID)
	if errors.Is(err, registry.ErrNotFound) {
		return &Session{UserID: userID, Access: gate.Access{Reason: gate.ErrUnauthorized}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	s := &Session{UserID: u.ID, Email: u.Email}
	s.Access, err = m.gate.ResolveAccess(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve session access: %w", err)
	}
	if !s.Access.Allowed {
		return s, nil
	}
	s.Company, err = m.reg.CompanyByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve session company: %w", err)
	}
	if s.Company == nil {
		// Removed between the cached decision and now.
		m.tenants.Invalidate(u.Email)
		s.Access = gate.Access{Reason: gate.ErrNoCompany}
	}
	return s, nil
}

// Begin checks access for a user that just proved its password and sets the
// session cookie when allowed. Denied users get no cookie.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, u *models.User) (*Session, error) {
	m.tenants.Invalidate(u.Email)
	s, err := m.Resolve(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if s.Access.Allowed {
		m.cookies.CreateSession(w, u.ID)
	}
	return s, nil
}

// End clears the cookie and forgets the cached decision for the session email.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) {
	if s := FromContext(r.Context()); s != nil && s.Email != "" {
		m.tenants.Invalidate(s.Email)
	} else if uid, ok := m.cookies.ParseSession(r); ok {
		if u, err := m.reg.UserByID(r.Context(), uid); err == nil {
			m.tenants.Invalidate(u.Email)
		}
	}
	m.cookies.ClearSession(w)
}

// Refresh drops the cached decision for email so the next request sees a
// changed company status.
func (m *Manager) Refresh(email string) {
	m.tenants.Invalidate(email)
}

// Require admits only requests with an allowed session. Denied sessions are
// signed out and sent to the login page (401 for JSON clients); store
// failures answer 500.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			uid, ok = m.cookies.ParseSession(r)
		}
		if !ok {
			deny(w, r)
			return
		}
		s, err := m.Resolve(r.Context(), uid)
		if err != nil {
			m.log.Error("session resolve failed", zap.String("user_id", uid), zap.Error(err))
			httpx.JSONError(w, http.StatusInternalServerError, string(i18n.InternalError), nil)
			return
		}
		if !s.Access.Allowed {
			m.log.Info("session denied",
				zap.String("user_id", uid),
				zap.String("email", s.Email),
				zap.NamedError("reason", s.Access.Reason),
			)
			m.cookies.ClearSession(w)
			deny(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequirePermission must run inside Require. It checks the role grants of
// the session company: 403 for JSON clients, browsers go back to the
// dashboard.
func (m *Manager) RequirePermission(action gate.Action, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := FromContext(r.Context())
			if s == nil || !m.gate.Can(r.Context(), s.Email, action, resource) {
				if httpx.WantsJSON(r) {
					httpx.JSONError(w, http.StatusForbidden, string(i18n.Forbidden), nil)
					return
				}
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin admits only sessions allowed to approve companies.
func (m *Manager) RequireSuperAdmin(next http.Handler) http.Handler {
	return m.RequirePermission(gate.ActionApprove, "company")(next)
}

func deny(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnauthorized, string(i18n.AccessDenied), nil)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request session, nil outside Require.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
