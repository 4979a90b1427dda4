package registry

import (
	"context"
	"fmt"

	"github.com/diewo77/go-visitors/internal/models"
	"go.uber.org/zap"
)

// RecordAlert writes the audit record of a triggered alarm.
func (r *Registry) RecordAlert(ctx context.Context, companyID, triggeredBy string, typ models.AlertType) (*models.Alert, error) {
	a := &models.Alert{
		ID:          r.newID(),
		Type:        typ,
		TriggeredBy: normalizeEmail(triggeredBy),
		CompanyID:   companyID,
		CreatedAt:   r.clock(),
	}
	if err := r.store.Insert(ctx, tableAlerts, a); err != nil {
		return nil, fmt.Errorf("record alert: %w", err)
	}
	r.log.Warn("alert recorded", zap.String("alert_id", a.ID), zap.String("type", string(typ)), zap.String("company_id", companyID))
	return a, nil
}
