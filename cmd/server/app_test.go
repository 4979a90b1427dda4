package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/internal/handlers"
	"github.com/diewo77/go-visitors/internal/metrics"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/policy"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/scheduler"
	"github.com/diewo77/go-visitors/internal/store/storetest"
	"github.com/diewo77/go-visitors/templates"
	"github.com/diewo77/go-visitors/view"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func newTestApp(t *testing.T, store Pinger) (*App, *registry.Registry, *auth.Manager) {
	t.Helper()
	log := zap.NewNop()
	reg := registry.New(storetest.New(t), log)
	if store == nil {
		store = reg
	}
	cookies := auth.NewManager("test-secret", false)
	monitor := metrics.NewMonitor("go-visitors-test", log)
	rc := policy.NewRouterConfig(handlers.Deps{
		Registry: reg,
		View:     view.New(templates.FS, view.WithDefaults(handlers.PageDefaults)),
		Log:      log,
		Metrics:  monitor,
	}, policy.Options{Cookies: cookies, AlarmObs: monitor})
	app := NewApp(rc, AppOptions{
		Cookies:     cookies,
		Store:       store,
		Monitor:     monitor,
		Log:         log,
		DefaultLang: "en",
	})
	return app, reg, cookies
}

func serveApp(app *App, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	w := serveApp(app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serveApp(app, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	down, _, _ := newTestApp(t, downStore{})
	w = serveApp(down, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded"}`, w.Body.String())
}

func TestMetricsEndpoint_RecordsRoutes(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	serveApp(app, http.MethodGet, "/health")

	w := serveApp(app, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "http_response_time_seconds")
	assert.Contains(t, body, `route="GET /health"`)
}

func TestRoutes_Gating(t *testing.T) {
	app, reg, cookies := newTestApp(t, nil)
	ctx := context.Background()
	c := &models.Company{Name: "Fjord AS", AdminEmail: "ok@fjord.no", Address: "Storgata 1", Phone: "12345678"}
	u, err := reg.SignUp(ctx, c, "hash")
	require.NoError(t, err)
	_, err = reg.SetCompanyStatus(ctx, c.ID, models.CompanyStatusApproved)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	cookies.CreateSession(rec, u.ID)
	session := rec.Result().Cookies()[0]

	w := serveApp(app, http.MethodGet, "/")
	assert.Equal(t, "/login", w.Header().Get("Location"))
	w = serveApp(app, http.MethodGet, "/", session)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	for _, path := range []string{"/dashboard", "/reception", "/alarm", "/settings", "/guests.pdf"} {
		w = serveApp(app, http.MethodGet, path)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		w = serveApp(app, http.MethodGet, path, session)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// Regular admins are sent back to their dashboard.
	w = serveApp(app, http.MethodGet, "/admin/approval", session)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = serveApp(app, http.MethodGet, "/lobby/"+c.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fjord AS")

	w = serveApp(app, http.MethodGet, "/login?lang=no")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `lang="no"`))
}

func TestBackgroundTasks_Sweep(t *testing.T) {
	log := zap.NewNop()
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	reg := registry.New(storetest.New(t), log, registry.WithClock(func() time.Time { return now }))
	ctx := context.Background()
	v := &models.Visitor{FullName: "Ola", Phone: "98765432", HostName: "Kari", CompanyID: "c1"}
	require.NoError(t, reg.CheckIn(ctx, v))
	_, err := reg.CheckOut(ctx, "c1", v.ID)
	require.NoError(t, err)
	now = now.Add(25 * time.Hour)

	s := scheduler.New(log)
	require.NoError(t, addBackgroundTasks(s, reg, metrics.NewMonitor("sweep-test", log), 10*time.Millisecond, time.Hour))
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		list, err := reg.VisitorsForCompany(ctx, "c1")
		if err != nil {
			return false
		}
		n, err := reg.CountCheckedIn(ctx, "c1")
		return err == nil && n == 0 && len(list) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
