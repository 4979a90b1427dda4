package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/internal/alarm"
	"github.com/diewo77/go-visitors/internal/middleware"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/notify"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/session"
	"github.com/diewo77/go-visitors/internal/store/storetest"
	"github.com/diewo77/go-visitors/templates"
	"github.com/diewo77/go-visitors/view"
)

const testPassword = "Secret123!"

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []string
	hosts  []notify.HostArrival
	failTo string
}

func (n *recordingNotifier) Notify(_ context.Context, to, _ string) notify.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, to)
	if to == n.failTo {
		return notify.Result{Provider: "test", Error: "rejected"}
	}
	return notify.Result{Success: true, Provider: "test"}
}

func (n *recordingNotifier) NotifyHost(_ context.Context, a notify.HostArrival) notify.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hosts = append(n.hosts, a)
	return notify.Result{Success: true, Provider: "test"}
}

type countingMetrics struct {
	checkIns  map[string]int
	checkOuts map[string]int
	swept     int64
}

func (m *countingMetrics) CheckIn(ch string)               { m.checkIns[ch]++ }
func (m *countingMetrics) CheckOut(ch string)              { m.checkOuts[ch]++ }
func (m *countingMetrics) Notification(string, bool, bool) {}
func (m *countingMetrics) Swept(n int64)                   { m.swept += n }

type testEnv struct {
	reg      *registry.Registry
	cookies  *auth.Manager
	sessions *session.Manager
	notifier *recordingNotifier
	metrics  *countingMetrics
	handler  http.Handler
	// skew moves the registry clock, not the cookie or cache clocks.
	skew time.Duration
}

func newTestEnv(t *testing.T, demo bool) *testEnv {
	t.Helper()
	e := &testEnv{}
	log := zap.NewNop()
	reg := registry.New(storetest.New(t), log, registry.WithClock(func() time.Time { return time.Now().Add(e.skew) }))
	cookies := auth.NewManager("test-secret", false)
	sessions := session.NewManager(cookies, reg, time.Minute, log)
	n := &recordingNotifier{}
	m := &countingMetrics{checkIns: map[string]int{}, checkOuts: map[string]int{}}
	d := Deps{
		Registry:     reg,
		View:         view.New(templates.FS, view.WithDefaults(PageDefaults)),
		Log:          log,
		Notifier:     n,
		Metrics:      m,
		DemoFallback: demo,
	}

	ah := NewAuthHandler(d, sessions)
	dh := NewDashboardHandler(d)
	rh := NewReceptionHandler(d)
	alh := NewAlarmHandler(d, alarm.NewService(reg, n, nil, log, time.Second, time.UTC))
	kh := NewKioskHandler(d)
	sh := NewSettingsHandler(d)
	aph := NewApprovalHandler(d, sessions)

	authed := func(h http.HandlerFunc) http.Handler { return sessions.Require(h) }
	admin := func(h http.HandlerFunc) http.Handler { return sessions.Require(sessions.RequireSuperAdmin(h)) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", ah.LoginPage)
	mux.HandleFunc("POST /login", ah.Login)
	mux.HandleFunc("GET /signup", ah.SignupPage)
	mux.HandleFunc("POST /signup", ah.Signup)
	mux.HandleFunc("POST /logout", ah.Logout)
	mux.HandleFunc("GET /guest/{companyID}", kh.GuestPage)
	mux.HandleFunc("POST /guest/{companyID}", kh.GuestRegister)
	mux.HandleFunc("GET /guest/{companyID}/visitors/{visitorID}/badge.pdf", kh.GuestBadge)
	mux.HandleFunc("GET /checkout/{companyID}", kh.CheckoutPage)
	mux.HandleFunc("POST /checkout/{companyID}", kh.CheckoutSubmit)
	mux.HandleFunc("GET /panel/{companyID}", kh.Panel)
	mux.HandleFunc("GET /panel/{companyID}/count", kh.PanelCount)
	mux.HandleFunc("GET /lobby/{companyID}", kh.Lobby)
	mux.HandleFunc("GET /privacy", kh.Privacy)
	mux.Handle("GET /dashboard", authed(dh.Dashboard))
	mux.Handle("POST /visitors/{id}/checkout", authed(dh.CheckOut))
	mux.Handle("GET /visitors/{id}/badge.pdf", authed(dh.Badge))
	mux.Handle("GET /guests.pdf", authed(dh.GuestsPDF))
	mux.Handle("GET /guests.xlsx", authed(dh.GuestsXLSX))
	mux.Handle("GET /reception", authed(rh.Page))
	mux.Handle("POST /reception", authed(rh.Register))
	mux.Handle("GET /alarm", authed(alh.Confirm))
	mux.Handle("POST /alarm", authed(alh.Trigger))
	mux.Handle("GET /settings", authed(sh.Page))
	mux.Handle("POST /settings", authed(sh.Update))
	mux.Handle("POST /settings/logo", authed(sh.UploadLogo))
	mux.Handle("POST /settings/logo/delete", authed(sh.DeleteLogo))
	mux.Handle("GET /admin/approval", admin(aph.List))
	mux.Handle("POST /admin/approval/{id}/{action}", admin(aph.Decide))

	e.reg = reg
	e.cookies = cookies
	e.sessions = sessions
	e.notifier = n
	e.metrics = m
	e.handler = middleware.Prefs("en")(cookies.Middleware(mux))
	return e
}

// company signs up a company with a real password and sets its status.
func (e *testEnv) company(t *testing.T, email string, status models.CompanyStatus) (*models.Company, *models.User) {
	t.Helper()
	ctx := context.Background()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	c := &models.Company{Name: "Fjord AS", AdminEmail: email, Address: "Storgata 1, Oslo", Phone: "12345678"}
	u, err := e.reg.SignUp(ctx, c, hash)
	require.NoError(t, err)
	if status != models.CompanyStatusPending {
		c, err = e.reg.SetCompanyStatus(ctx, c.ID, status)
		require.NoError(t, err)
	}
	return c, u
}

func (e *testEnv) cookie(u *models.User) *http.Cookie {
	rec := httptest.NewRecorder()
	e.cookies.CreateSession(rec, u.ID)
	return rec.Result().Cookies()[0]
}

func (e *testEnv) checkIn(t *testing.T, companyID, name, phone string) *models.Visitor {
	t.Helper()
	v := &models.Visitor{FullName: name, Phone: phone, HostName: "Kari", CompanyID: companyID, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@guest.no"}
	require.NoError(t, e.reg.CheckIn(context.Background(), v))
	return v
}

type reqOpt func(*http.Request)

func withCookie(c *http.Cookie) reqOpt { return func(r *http.Request) { r.AddCookie(c) } }

func asJSON(r *http.Request) { r.Header.Set("Accept", "application/json") }

func (e *testEnv) do(method, target string, body io.Reader, opts ...reqOpt) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, body)
	for _, o := range opts {
		o(r)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)
	return w
}

func (e *testEnv) postForm(target string, vals url.Values, opts ...reqOpt) *httptest.ResponseRecorder {
	opts = append([]reqOpt{func(r *http.Request) {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}}, opts...)
	return e.do(http.MethodPost, target, strings.NewReader(vals.Encode()), opts...)
}

func (e *testEnv) postJSON(target string, payload any, opts ...reqOpt) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	opts = append([]reqOpt{func(r *http.Request) {
		r.Header.Set("Content-Type", "application/json")
	}}, opts...)
	return e.do(http.MethodPost, target, strings.NewReader(string(b)), opts...)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func visitorForm() url.Values {
	return url.Values{
		"full_name":    {"Ola Nordmann"},
		"company_name": {"Acme"},
		"phone":        {"98765432"},
		"email":        {"Ola@Example.com"},
		"host_name":    {"Kari"},
		"host_email":   {"kari@fjord.no"},
		"privacy":      {"on"},
	}
}
