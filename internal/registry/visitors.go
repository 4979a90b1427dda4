package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/store"
	"go.uber.org/zap"
)

// CheckIn registers v at its company with status in. ID, QR code and
// timestamps are assigned here; any values set by the caller are replaced.
func (r *Registry) CheckIn(ctx context.Context, v *models.Visitor) error {
	if v.CompanyID == "" {
		return errors.New("check in: missing company id")
	}
	now := r.clock()
	v.ID = r.newID()
	v.QRCodeID = r.codes.Next(v.ID)
	v.Status = models.VisitorStatusIn
	v.CheckInTime = now
	v.CheckOutTime = nil
	v.CreatedAt = now
	v.FullName = strings.TrimSpace(v.FullName)
	v.Email = normalizeEmail(v.Email)
	v.HostEmail = normalizeEmail(v.HostEmail)
	if err := r.store.Insert(ctx, tableVisitors, v); err != nil {
		return fmt.Errorf("check in: %w", err)
	}
	r.log.Info("visitor checked in", zap.String("visitor_id", v.ID), zap.String("company_id", v.CompanyID))
	return nil
}

func (r *Registry) VisitorByID(ctx context.Context, companyID, id string) (*models.Visitor, error) {
	var v models.Visitor
	q := store.From(tableVisitors).Where(store.Eq("id", id), store.Eq("company_id", companyID))
	if err := r.findOne(ctx, q, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CheckOut moves a checked-in visitor of companyID to status out. The record
// is retained; the retention sweep removes it later.
func (r *Registry) CheckOut(ctx context.Context, companyID, id string) (*models.Visitor, error) {
	v, err := r.VisitorByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := v.CheckOut(r.clock()); err != nil {
		return nil, err
	}
	q := store.From(tableVisitors).Where(
		store.Eq("id", id),
		store.Eq("company_id", companyID),
		store.Eq("status", models.VisitorStatusIn),
	)
	n, err := r.store.Update(ctx, q, map[string]any{
		"status":         v.Status,
		"check_out_time": *v.CheckOutTime,
	})
	if err != nil {
		return nil, fmt.Errorf("check out: %w", err)
	}
	if n == 0 {
		// Someone else checked the visitor out in between.
		return nil, models.ErrAlreadyCheckedOut
	}
	r.log.Info("visitor checked out", zap.String("visitor_id", id), zap.String("company_id", companyID))
	return v, nil
}

// VisitorsForCompany returns the dashboard view: everyone checked in plus
// visitors checked out within the retention window, newest check-in first.
func (r *Registry) VisitorsForCompany(ctx context.Context, companyID string) ([]models.Visitor, error) {
	var all []models.Visitor
	q := store.From(tableVisitors).Where(store.Eq("company_id", companyID)).OrderBy("check_in_time", true)
	if err := r.store.FindMany(ctx, q, &all); err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	return models.FilterVisible(all, r.clock(), r.retention), nil
}

// CurrentVisitors lists visitors with status in, newest check-in first.
func (r *Registry) CurrentVisitors(ctx context.Context, companyID string) ([]models.Visitor, error) {
	var out []models.Visitor
	q := store.From(tableVisitors).
		Where(store.Eq("company_id", companyID), store.Eq("status", models.VisitorStatusIn)).
		OrderBy("check_in_time", true)
	if err := r.store.FindMany(ctx, q, &out); err != nil {
		return nil, fmt.Errorf("list current visitors: %w", err)
	}
	return out, nil
}

// FindCheckedInByPhone matches checked-in visitors whose phone contains
// fragment. An empty fragment matches nothing.
func (r *Registry) FindCheckedInByPhone(ctx context.Context, companyID, fragment string) ([]models.Visitor, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, nil
	}
	var out []models.Visitor
	q := store.From(tableVisitors).
		Where(
			store.Eq("company_id", companyID),
			store.Eq("status", models.VisitorStatusIn),
			store.Contains("phone", fragment),
		).
		OrderBy("check_in_time", true)
	if err := r.store.FindMany(ctx, q, &out); err != nil {
		return nil, fmt.Errorf("search visitors: %w", err)
	}
	return out, nil
}

func (r *Registry) CountCheckedIn(ctx context.Context, companyID string) (int64, error) {
	return r.store.Count(ctx, store.From(tableVisitors).Where(
		store.Eq("company_id", companyID),
		store.Eq("status", models.VisitorStatusIn),
	))
}

// SweepExpired deletes checked-out visitors older than the retention
// window. An empty companyID sweeps every company. Records without a
// checkout time fall back to created_at.
func (r *Registry) SweepExpired(ctx context.Context, companyID string) (int64, error) {
	cutoff := r.clock().Add(-r.retention)
	base := []store.Filter{store.Eq("status", models.VisitorStatusOut)}
	if companyID != "" {
		base = append(base, store.Eq("company_id", companyID))
	}

	byCheckout := store.From(tableVisitors).Where(base...).Where(store.Lt("check_out_time", cutoff))
	n1, err := r.store.Remove(ctx, byCheckout)
	if err != nil {
		return 0, fmt.Errorf("sweep visitors: %w", err)
	}
	legacy := store.From(tableVisitors).Where(base...).Where(store.IsNull("check_out_time"), store.Lt("created_at", cutoff))
	n2, err := r.store.Remove(ctx, legacy)
	if err != nil {
		return n1, fmt.Errorf("sweep legacy visitors: %w", err)
	}
	if n := n1 + n2; n > 0 {
		r.log.Info("expired visitors removed", zap.Int64("count", n), zap.String("company_id", companyID))
	}
	return n1 + n2, nil
}

// Stats are the dashboard counters.
type Stats struct {
	Current         int `json:"current"`
	CheckedInToday  int `json:"checked_in_today"`
	CheckedOutToday int `json:"checked_out_today"`
}

// ComputeStats derives dashboard counters from a visible visitor list.
func ComputeStats(visitors []models.Visitor, now time.Time) Stats {
	var s Stats
	y, m, d := now.Date()
	for _, v := range visitors {
		if v.IsCheckedIn() {
			s.Current++
		}
		iy, im, id := v.CheckInTime.In(now.Location()).Date()
		if iy == y && im == m && id == d {
			s.CheckedInToday++
		}
	}
	s.CheckedOutToday = models.CheckedOutOn(visitors, now)
	return s
}
