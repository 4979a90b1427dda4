// Package alarm runs the fire alarm: it records the alert, emails every
// checked-in visitor and produces the evacuation list.
package alarm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/docgen"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/notify"
	"go.uber.org/zap"
)

// Registry is the slice of the visitor registry the alarm needs.
type Registry interface {
	Now() time.Time
	CurrentVisitors(ctx context.Context, companyID string) ([]models.Visitor, error)
	RecordAlert(ctx context.Context, companyID, triggeredBy string, typ models.AlertType) (*models.Alert, error)
}

// Observer receives alarm metrics. Nil disables them.
type Observer interface {
	Alarm()
	Notification(kind string, success, simulation bool)
}

type Service struct {
	reg      Registry
	notifier notify.Notifier
	obs      Observer
	log      *zap.Logger
	timeout  time.Duration
	loc      *time.Location
}

// NewService wires the alarm. timeout bounds each recipient's send; loc is
// the zone printed on the evacuation list.
func NewService(reg Registry, n notify.Notifier, obs Observer, log *zap.Logger, timeout time.Duration, loc *time.Location) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{reg: reg, notifier: n, obs: obs, log: log, timeout: timeout, loc: loc}
}

type Request struct {
	Company     *models.Company
	TriggeredBy string
	Lang        i18n.Lang
}

// Delivery is the outcome for one visitor.
type Delivery struct {
	VisitorID string        `json:"visitor_id"`
	Visitor   string        `json:"visitor"`
	Result    notify.Result `json:"result"`
}

// Summary is what the operator sees after the alarm.
type Summary struct {
	AlertID    string     `json:"alert_id"`
	Guests     int        `json:"guests"`
	Attempted  int        `json:"attempted"`
	Succeeded  int        `json:"succeeded"`
	Simulation bool       `json:"simulation"`
	Results    []Delivery `json:"results"`
	FileName   string     `json:"file_name"`
	PDF        []byte     `json:"-"`
}

var ErrNoCompany = errors.New("alarm: missing company")

// Trigger runs the alarm once. Only a failure to load visitors or to record
// the alert aborts it; notification failures end up in the summary. A PDF
// failure is returned together with the partial summary.
func (s *Service) Trigger(ctx context.Context, req Request) (*Summary, error) {
	if req.Company == nil || req.Company.ID == "" {
		return nil, ErrNoCompany
	}
	visitors, err := s.reg.CurrentVisitors(ctx, req.Company.ID)
	if err != nil {
		return nil, fmt.Errorf("alarm: load visitors: %w", err)
	}
	alert, err := s.reg.RecordAlert(ctx, req.Company.ID, req.TriggeredBy, models.AlertTypeFire)
	if err != nil {
		return nil, fmt.Errorf("alarm: %w", err)
	}
	if s.obs != nil {
		s.obs.Alarm()
	}
	s.log.Warn("fire alarm triggered",
		zap.String("company_id", req.Company.ID),
		zap.String("triggered_by", req.TriggeredBy),
		zap.Int("guests", len(visitors)),
	)

	sum := &Summary{AlertID: alert.ID, Guests: len(visitors), Results: []Delivery{}}
	message := i18n.Textf(req.Lang, i18n.EmergencyMessage, companyName(req.Company))
	for _, v := range visitors {
		if v.Email == "" {
			continue
		}
		sum.Attempted++
		res := s.send(ctx, v.Email, message)
		if res.Success {
			sum.Succeeded++
		}
		if res.Simulation {
			sum.Simulation = true
		}
		if s.obs != nil {
			s.obs.Notification("alarm", res.Success, res.Simulation)
		}
		sum.Results = append(sum.Results, Delivery{VisitorID: v.ID, Visitor: v.FullName, Result: res})
	}

	now := s.reg.Now()
	sum.FileName = docgen.FileName(docgen.Evacuation, req.Lang, now.In(s.loc), "pdf")
	pdf, err := docgen.RenderList(docgen.BuildList(docgen.ListInput{
		Kind:        docgen.Evacuation,
		Lang:        req.Lang,
		CompanyName: companyName(req.Company),
		Visitors:    visitors,
		GeneratedAt: now,
		Location:    s.loc,
	}))
	if err != nil {
		return sum, fmt.Errorf("alarm: evacuation list: %w", err)
	}
	sum.PDF = pdf

	s.log.Info("fire alarm notifications done",
		zap.String("alert_id", alert.ID),
		zap.Int("attempted", sum.Attempted),
		zap.Int("succeeded", sum.Succeeded),
		zap.Bool("simulation", sum.Simulation),
	)
	return sum, nil
}

func (s *Service) send(ctx context.Context, to, message string) notify.Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.notifier.Notify(ctx, to, message)
}

func companyName(c *models.Company) string {
	if c.Name == "" {
		return "-"
	}
	return c.Name
}
