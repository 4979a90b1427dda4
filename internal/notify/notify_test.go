package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diewo77/go-visitors/internal/config"
	"github.com/diewo77/go-visitors/internal/logging"
	"github.com/diewo77/go-visitors/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken"`
}

func newServer(t *testing.T, status int, body string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func emailCfg(endpoint string) notify.EmailJSConfig {
	return notify.EmailJSConfig{
		Endpoint:   endpoint,
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "pub",
		PrivateKey: "priv",
		Timeout:    2 * time.Second,
	}
}

func TestNew_SimulationWithoutCredentials(t *testing.T) {
	n := notify.New(&config.EnvSpec{EmailJSServiceID: "svc"}, logging.NewNoopLogger())
	_, ok := n.(*notify.Simulation)
	assert.True(t, ok, "incomplete credentials select simulation")

	n = notify.New(&config.EnvSpec{EmailJSServiceID: "svc", EmailJSTemplateID: "tpl", EmailJSPublicKey: "pub"}, logging.NewNoopLogger())
	_, ok = n.(*notify.EmailJS)
	assert.True(t, ok)
}

func TestSimulation(t *testing.T) {
	s := notify.NewSimulation(logging.NewNoopLogger())
	r := s.Notify(context.Background(), "guest@example.com", "Fire alarm")
	assert.True(t, r.Success)
	assert.True(t, r.Simulation)
	assert.Equal(t, notify.ProviderSimulation, r.Provider)
	assert.Empty(t, r.Error)

	r2 := s.NotifyHost(context.Background(), notify.HostArrival{HostEmail: "host@example.com", GuestName: "Ola"})
	assert.True(t, r2.Success)
	assert.NotEqual(t, r.MessageID, r2.MessageID)
}

func TestEmailJS_Notify(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, "OK", &got)

	r := notify.NewEmailJS(emailCfg(srv.URL), logging.NewNoopLogger()).
		Notify(context.Background(), "guest@example.com", "Evacuate now")

	assert.Equal(t, notify.Result{Success: true, Provider: notify.ProviderEmailJS, MessageID: "OK"}, r)
	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "priv", got.AccessToken)
	assert.Equal(t, "guest@example.com", got.TemplateParams["to_email"])
	assert.Equal(t, "Evacuate now", got.TemplateParams["message"])
	assert.Equal(t, "AccessManager Security System", got.TemplateParams["from_name"])
}

func TestEmailJS_ProviderError(t *testing.T) {
	srv := newServer(t, http.StatusBadRequest, "The template ID is invalid", nil)
	r := notify.NewEmailJS(emailCfg(srv.URL), logging.NewNoopLogger()).
		Notify(context.Background(), "guest@example.com", "x")
	assert.False(t, r.Success)
	assert.False(t, r.Simulation)
	assert.Equal(t, "The template ID is invalid", r.Error)
}

func TestEmailJS_TransportError(t *testing.T) {
	srv := newServer(t, http.StatusOK, "OK", nil)
	srv.Close()
	r := notify.NewEmailJS(emailCfg(srv.URL), logging.NewNoopLogger()).
		Notify(context.Background(), "guest@example.com", "x")
	assert.False(t, r.Success)
	assert.NotEmpty(t, r.Error)
}

func TestEmailJS_NotifyHost(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, "OK", &got)
	cfg := emailCfg(srv.URL)
	cfg.HostTemplateID = "host_tpl"

	at := time.Date(2025, 3, 3, 9, 15, 0, 0, time.UTC)
	r := notify.NewEmailJS(cfg, logging.NewNoopLogger()).NotifyHost(context.Background(), notify.HostArrival{
		HostEmail: "host@acme.no", GuestName: "Kari", CompanyName: "Acme", ArrivalTime: at,
	})
	require.True(t, r.Success)
	assert.Equal(t, "host_tpl", got.TemplateID)
	assert.Equal(t, "host@acme.no", got.TemplateParams["host_email"])
	assert.Equal(t, "Not specified", got.TemplateParams["guest_company"])
	assert.Equal(t, "Monday, March 3, 2025 at 09:15", got.TemplateParams["arrival_time"])
	assert.Equal(t, "AccessManager Notifications", got.TemplateParams["from_name"])
}
