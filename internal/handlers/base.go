// Package handlers serves every page and endpoint in two formats: HTML for
// browsers and JSON for clients that ask for it (Accept: application/json or
// a JSON request body).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/middleware"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/notify"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/session"
	"github.com/diewo77/go-visitors/validation"
	"github.com/diewo77/go-visitors/view"
)

const maxJSONBody = 1 << 20

// Metrics receives domain counters. Nil is allowed.
type Metrics interface {
	CheckIn(channel string)
	CheckOut(channel string)
	Notification(kind string, success, simulation bool)
	Swept(n int64)
}

type nopMetrics struct{}

func (nopMetrics) CheckIn(string)                  {}
func (nopMetrics) CheckOut(string)                 {}
func (nopMetrics) Notification(string, bool, bool) {}
func (nopMetrics) Swept(int64)                     {}

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Registry *registry.Registry
	View     *view.Renderer
	Log      *zap.Logger
	Notifier notify.Notifier
	Metrics  Metrics
	// Location is the zone for printed times.
	Location *time.Location
	// NotifyTimeout bounds a host arrival email.
	NotifyTimeout time.Duration
	// DemoFallback lets kiosk pages with an unknown company id use the
	// oldest approved tenant.
	DemoFallback bool
}

type base struct {
	reg      *registry.Registry
	view     *view.Renderer
	log      *zap.Logger
	notifier notify.Notifier
	metrics  Metrics
	loc      *time.Location
	timeout  time.Duration
	demo     bool
}

func newBase(d Deps) base {
	b := base{
		reg:      d.Registry,
		view:     d.View,
		log:      d.Log,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		loc:      d.Location,
		timeout:  d.NotifyTimeout,
		demo:     d.DemoFallback,
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.metrics == nil {
		b.metrics = nopMetrics{}
	}
	if b.loc == nil {
		b.loc = time.UTC
	}
	if b.timeout <= 0 {
		b.timeout = 10 * time.Second
	}
	if b.notifier == nil {
		b.notifier = notify.NewSimulation(b.log)
	}
	return b
}

func (b *base) now() time.Time { return b.reg.Now().In(b.loc) }

// render writes an HTML page. The pending flash message is added unless the
// handler set one.
func (b *base) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = middleware.TakeFlash(w, r)
	}
	if err := b.view.RenderStatus(w, r, status, name, data); err != nil {
		b.log.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, i18n.Text(i18n.FromContext(r.Context()), i18n.InternalError), http.StatusInternalServerError)
	}
}

// fail answers with an error code: JSON for API clients, the error page
// otherwise.
func (b *base) fail(w http.ResponseWriter, r *http.Request, status int, code i18n.Key) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, string(code), nil)
		return
	}
	b.render(w, r, status, "error.html", map[string]any{"Status": status, "Message": string(code)})
}

// storeFailed logs a registry error and answers 500.
func (b *base) storeFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	b.log.Error(op+" failed", zap.Error(err), zap.String("path", r.URL.Path))
	b.fail(w, r, http.StatusInternalServerError, i18n.InternalError)
}

// invalid answers 422 with the violations: as JSON details, or by
// re-rendering the form page with data.
func (b *base) invalid(w http.ResponseWriter, r *http.Request, name string, data map[string]any, errs validation.Violations) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", errs)
		return
	}
	data["Errors"] = errs
	b.render(w, r, http.StatusUnprocessableEntity, name, data)
}

// decode fills dst from a JSON body, or returns the submitted form values.
// A nil url.Values with a nil error means dst was filled from JSON.
func decode(w http.ResponseWriter, r *http.Request, dst any) (url.Values, error) {
	if httpx.IsJSONBody(r) {
		return nil, httpx.DecodeJSON(w, r, maxJSONBody, dst)
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// notifyHost sends the "guest arrived" email when the visitor named a host
// email. Failures are logged only.
func (b *base) notifyHost(ctx context.Context, c *models.Company, v *models.Visitor) {
	if v.HostEmail == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	name := ""
	if c != nil {
		name = c.Name
	}
	res := b.notifier.NotifyHost(ctx, notify.HostArrival{
		HostEmail:    v.HostEmail,
		GuestName:    v.FullName,
		GuestCompany: v.CompanyName,
		CompanyName:  name,
		ArrivalTime:  v.CheckInTime.In(b.loc),
	})
	b.metrics.Notification("host_arrival", res.Success, res.Simulation)
	if !res.Success {
		b.log.Warn("host notification failed",
			zap.String("visitor_id", v.ID),
			zap.String("provider", res.Provider),
			zap.String("error", res.Error),
		)
	}
}

// companyFromPath loads the company named by the companyID path value. With
// the demo fallback enabled an unknown id resolves to the demo company.
func (b *base) companyFromPath(ctx context.Context, r *http.Request) (*models.Company, error) {
	id := r.PathValue("companyID")
	c, err := b.reg.CompanyByID(ctx, id)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, registry.ErrNotFound) {
		return nil, err
	}
	if !b.demo {
		return nil, registry.ErrNotFound
	}
	c, err = b.reg.ResolveDemoCompany(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, registry.ErrNotFound
	}
	b.log.Info("kiosk company not found, using demo company", zap.String("requested", id), zap.String("company_id", c.ID))
	return c, nil
}

// PageDefaults fills the data every layout reads from the request session.
// It is meant for view.WithDefaults; keys the handler set are kept.
func PageDefaults(r *http.Request, data map[string]any) {
	s := session.FromContext(r.Context())
	if _, ok := data["Session"]; !ok && s != nil {
		data["Session"] = s
	}
	if _, ok := data["Company"]; !ok && s != nil && s.Company != nil {
		data["Company"] = s.Company
	}
}
