// Package notify delivers visitor notifications by email through EmailJS,
// or logs them when no provider is configured.
package notify

import (
	"context"
	"time"

	"github.com/diewo77/go-visitors/internal/config"
	"go.uber.org/zap"
)

const (
	ProviderEmailJS    = "emailjs"
	ProviderSimulation = "simulation"
)

// Result is the outcome of one send. Senders never return Go errors; a failed
// delivery is reported through Success and Error.
type Result struct {
	Success    bool   `json:"success"`
	Simulation bool   `json:"simulation"`
	Provider   string `json:"provider"`
	MessageID  string `json:"message_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// HostArrival is the payload of the "your guest has arrived" email.
type HostArrival struct {
	HostEmail    string
	GuestName    string
	GuestCompany string
	CompanyName  string
	ArrivalTime  time.Time
}

type Notifier interface {
	Notify(ctx context.Context, to, message string) Result
	NotifyHost(ctx context.Context, a HostArrival) Result
}

// New returns an EmailJS sender when credentials are complete, otherwise a
// simulation sender.
func New(cfg *config.EnvSpec, log *zap.Logger) Notifier {
	if !cfg.EmailConfigured() {
		log.Info("email provider not configured, notifications run in simulation mode")
		return NewSimulation(log)
	}
	return NewEmailJS(EmailJSConfig{
		Endpoint:       cfg.EmailJSEndpoint,
		ServiceID:      cfg.EmailJSServiceID,
		TemplateID:     cfg.EmailJSTemplateID,
		HostTemplateID: cfg.EmailJSHostTemplateID,
		PublicKey:      cfg.EmailJSPublicKey,
		PrivateKey:     cfg.EmailJSPrivateKey,
		Timeout:        cfg.NotifyTimeout,
	}, log)
}

// arrivalTimeLayout renders like "Monday, March 3, 2025 at 09:15".
const arrivalTimeLayout = "Monday, January 2, 2006 at 15:04"

func guestCompany(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
