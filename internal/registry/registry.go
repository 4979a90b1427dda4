// Package registry is the typed record layer over store.Store: companies,
// users, visitors and alerts. It owns id assignment, timestamps and the
// visitor retention rules; callers never build store queries themselves.
package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/qrcode"
	"github.com/diewo77/go-visitors/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound   = errors.New("not_found")
	ErrEmailTaken = errors.New("email_taken")
)

const (
	tableCompanies = "companies"
	tableUsers     = "users"
	tableVisitors  = "visitors"
	tableAlerts    = "alerts"
)

type Registry struct {
	store     store.Store
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
	codes     *qrcode.Generator
	retention time.Duration
}

type Option func(*Registry)

// WithClock overrides the time source. Times are stored in UTC.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithIDs(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

// WithRetention sets how long checked-out visitors stay visible.
func WithRetention(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.retention = d
		}
	}
}

func New(s store.Store, log *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		store:     s,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
		retention: models.DefaultRetention,
	}
	for _, o := range opts {
		o(r)
	}
	r.codes = qrcode.NewGenerator(r.now)
	return r
}

func (r *Registry) clock() time.Time { return r.now().UTC() }

// Now returns the registry clock, shared with callers that stamp documents.
func (r *Registry) Now() time.Time { return r.clock() }

// Ping checks the backing store.
func (r *Registry) Ping(ctx context.Context) error { return r.store.Ping(ctx) }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// findOne wraps FindOne, mapping store.ErrNotFound to ErrNotFound.
func (r *Registry) findOne(ctx context.Context, q store.Query, dest any) error {
	err := r.store.FindOne(ctx, q, dest)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
