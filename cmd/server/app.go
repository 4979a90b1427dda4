package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/gate"
	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/internal/metrics"
	"github.com/diewo77/go-visitors/internal/middleware"
	"github.com/diewo77/go-visitors/internal/policy"
)

// Pinger checks the record store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	handler   http.Handler
	routerCfg *policy.RouterConfig
	store     Pinger
	monitor   *metrics.Monitor
	log       *zap.Logger
}

// AppOptions carries the process-wide pieces the routes need.
type AppOptions struct {
	Cookies     *auth.Manager
	Store       Pinger
	Monitor     *metrics.Monitor
	Log         *zap.Logger
	DefaultLang string
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *policy.RouterConfig, opts AppOptions) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
		store:     opts.Store,
		monitor:   opts.Monitor,
		log:       opts.Log,
	}
	if app.log == nil {
		app.log = zap.NewNop()
	}
	app.setupRoutes()

	var obs middleware.ResponseObserver
	if app.monitor != nil {
		obs = app.monitor
	}
	// Logging sits right on the mux so it sees the matched pattern.
	app.handler = middleware.Chain(app.mux,
		middleware.Recover(app.log),
		middleware.Prefs(opts.DefaultLang),
		opts.Cookies.Middleware,
		middleware.Logging(app.log, obs),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	rc := a.routerCfg

	// Public routes
	ah := rc.Auth
	a.mux.HandleFunc("GET /{$}", a.landingPage)
	a.mux.HandleFunc("GET /login", ah.LoginPage)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /signup", ah.SignupPage)
	a.mux.HandleFunc("POST /signup", ah.Signup)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	// Kiosk routes, company id in the path
	kh := rc.Kiosk
	a.mux.HandleFunc("GET /guest/{companyID}", kh.GuestPage)
	a.mux.HandleFunc("POST /guest/{companyID}", kh.GuestRegister)
	a.mux.HandleFunc("GET /guest/{companyID}/visitors/{visitorID}/badge.pdf", kh.GuestBadge)
	a.mux.HandleFunc("GET /checkout/{companyID}", kh.CheckoutPage)
	a.mux.HandleFunc("POST /checkout/{companyID}", kh.CheckoutSubmit)
	a.mux.HandleFunc("GET /panel/{companyID}", kh.Panel)
	a.mux.HandleFunc("GET /panel/{companyID}/count", kh.PanelCount)
	a.mux.HandleFunc("GET /lobby/{companyID}", kh.Lobby)
	a.mux.HandleFunc("GET /privacy", kh.Privacy)

	// Authenticated routes (session gate)
	dh := rc.Dashboard
	a.mux.Handle("GET /dashboard", a.requireAuth(dh.Dashboard))
	a.mux.Handle("POST /visitors/{id}/checkout", a.requireAuth(dh.CheckOut))
	a.mux.Handle("GET /visitors/{id}/badge.pdf", a.requireAuth(dh.Badge))
	a.mux.Handle("GET /guests.pdf", a.requireAuth(dh.GuestsPDF))
	a.mux.Handle("GET /guests.xlsx", a.requireAuth(dh.GuestsXLSX))

	a.mux.Handle("GET /reception", a.requireAuth(rc.Reception.Page))
	a.mux.Handle("POST /reception", a.requireAuth(rc.Reception.Register))

	a.mux.Handle("GET /alarm", a.requireAuth(rc.Alarm.Confirm))
	a.mux.Handle("POST /alarm", a.requireGrant(gate.ActionTrigger, "alert", rc.Alarm.Trigger))

	sh := rc.Settings
	a.mux.Handle("GET /settings", a.requireAuth(sh.Page))
	a.mux.Handle("POST /settings", a.requireGrant(gate.ActionUpdate, "company", sh.Update))
	a.mux.Handle("POST /settings/logo", a.requireGrant(gate.ActionUpdate, "company", sh.UploadLogo))
	a.mux.Handle("POST /settings/logo/delete", a.requireGrant(gate.ActionUpdate, "company", sh.DeleteLogo))

	// Super admin routes
	a.mux.Handle("GET /admin/approval", a.requireAdmin(rc.Approval.List))
	a.mux.Handle("POST /admin/approval/{id}/{action}", a.requireAdmin(rc.Approval.Decide))

	// Ops
	a.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	a.mux.HandleFunc("GET /healthz", a.healthz)
	if a.monitor != nil {
		a.mux.Handle("GET /metrics", a.monitor.Handler())
	}
}

// requireAuth wraps a handler to require an allowed session.
func (a *App) requireAuth(next http.HandlerFunc) http.Handler {
	return a.routerCfg.Sessions.Require(next)
}

// requireGrant requires an allowed session whose role holds resource:action.
func (a *App) requireGrant(action gate.Action, resource string, next http.HandlerFunc) http.Handler {
	return a.routerCfg.Sessions.Require(a.routerCfg.Sessions.RequirePermission(action, resource)(next))
}

// requireAdmin wraps a handler to require the super admin.
func (a *App) requireAdmin(next http.HandlerFunc) http.Handler {
	return a.routerCfg.Sessions.Require(a.routerCfg.Sessions.RequireSuperAdmin(next))
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// healthz pings the store and reports degraded when it does not answer.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	err := a.store.Ping(ctx)
	if a.monitor != nil {
		a.monitor.SetDependencyAvailability("store", err == nil)
	}
	if err != nil {
		a.log.Warn("health check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
