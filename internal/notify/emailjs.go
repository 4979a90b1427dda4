package notify

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	alertFromName = "AccessManager Security System"
	hostFromName  = "AccessManager Notifications"
)

type EmailJSConfig struct {
	Endpoint       string
	ServiceID      string
	TemplateID     string
	HostTemplateID string // falls back to TemplateID
	PublicKey      string
	PrivateKey     string // optional, sent as accessToken
	Timeout        time.Duration
}

// EmailJS sends through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	client *resty.Client
	log    *zap.Logger
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

func NewEmailJS(cfg EmailJSConfig, log *zap.Logger) *EmailJS {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &EmailJS{cfg: cfg, client: client, log: log}
}

func (e *EmailJS) Notify(ctx context.Context, to, message string) Result {
	return e.send(ctx, e.cfg.TemplateID, to, map[string]string{
		"to_email":  to,
		"message":   message,
		"from_name": alertFromName,
	})
}

func (e *EmailJS) NotifyHost(ctx context.Context, a HostArrival) Result {
	tpl := e.cfg.HostTemplateID
	if tpl == "" {
		tpl = e.cfg.TemplateID
	}
	return e.send(ctx, tpl, a.HostEmail, map[string]string{
		"host_email":    a.HostEmail,
		"to_email":      a.HostEmail,
		"guest_name":    a.GuestName,
		"guest_company": guestCompany(a.GuestCompany),
		"company_name":  a.CompanyName,
		"arrival_time":  a.ArrivalTime.Format(arrivalTimeLayout),
		"from_name":     hostFromName,
	})
}

func (e *EmailJS) send(ctx context.Context, templateID, to string, params map[string]string) Result {
	res := Result{Provider: ProviderEmailJS}
	body := sendRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         e.cfg.PublicKey,
		TemplateParams: params,
		AccessToken:    e.cfg.PrivateKey,
	}
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(e.cfg.Endpoint)
	if err != nil {
		e.log.Error("emailjs request failed", zap.String("to", to), zap.Error(err))
		res.Error = err.Error()
		return res
	}
	text := strings.TrimSpace(resp.String())
	if resp.IsError() {
		e.log.Error("emailjs rejected message",
			zap.String("to", to),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", text),
		)
		res.Error = text
		if res.Error == "" {
			res.Error = resp.Status()
		}
		return res
	}
	e.log.Info("email sent", zap.String("to", to), zap.String("provider", ProviderEmailJS))
	res.Success = true
	res.MessageID = text
	return res
}
