// Package policy wires the session gate and the handlers into one router
// configuration shared by the server and its tests.
package policy

import (
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/internal/alarm"
	"github.com/diewo77/go-visitors/internal/handlers"
	"github.com/diewo77/go-visitors/internal/notify"
	"github.com/diewo77/go-visitors/internal/session"
)

// DefaultGateTTL is how long a company gate decision is cached per email.
const DefaultGateTTL = time.Minute

// RouterConfig holds configured handlers and the session gate.
type RouterConfig struct {
	// Sessions guards the signed-in routes.
	Sessions *session.Manager

	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Reception *handlers.ReceptionHandler
	Alarm     *handlers.AlarmHandler
	Kiosk     *handlers.KioskHandler
	Settings  *handlers.SettingsHandler
	Approval  *handlers.ApprovalHandler
}

// Options are the pieces RouterConfig needs beyond the handler deps.
type Options struct {
	Cookies  *auth.Manager
	GateTTL  time.Duration
	AlarmObs alarm.Observer
}

// NewRouterConfig creates a fully configured router setup.
//
// Example usage:
//
//	cfg := policy.NewRouterConfig(deps, policy.Options{Cookies: cookies})
//	mux.Handle("GET /dashboard", cfg.Sessions.Require(http.HandlerFunc(cfg.Dashboard.Dashboard)))
func NewRouterConfig(d handlers.Deps, opts Options) *RouterConfig {
	ttl := opts.GateTTL
	if ttl <= 0 {
		ttl = DefaultGateTTL
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Notifier == nil {
		d.Notifier = notify.NewSimulation(d.Log)
	}
	sessions := session.NewManager(opts.Cookies, d.Registry, ttl, d.Log)

	svc := alarm.NewService(d.Registry, d.Notifier, opts.AlarmObs, d.Log, d.NotifyTimeout, d.Location)

	return &RouterConfig{
		Sessions:  sessions,
		Auth:      handlers.NewAuthHandler(d, sessions),
		Dashboard: handlers.NewDashboardHandler(d),
		Reception: handlers.NewReceptionHandler(d),
		Alarm:     handlers.NewAlarmHandler(d, svc),
		Kiosk:     handlers.NewKioskHandler(d),
		Settings:  handlers.NewSettingsHandler(d),
		Approval:  handlers.NewApprovalHandler(d, sessions),
	}
}
