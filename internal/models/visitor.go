package models

import (
	"errors"
	"time"
)

// VisitorStatus tracks whether a visitor is on the premises.
type VisitorStatus string

const (
	VisitorStatusIn  VisitorStatus = "in"
	VisitorStatusOut VisitorStatus = "out"
)

// DefaultRetention is how long a checked-out visitor stays visible before the
// retention sweep removes the record.
const DefaultRetention = 24 * time.Hour

var ErrAlreadyCheckedOut = errors.New("visitor_already_checked_out")

// Visitor is one visit to a company. Status "in" implies CheckOutTime is nil.
type Visitor struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	FullName    string `gorm:"size:255;not null" json:"full_name"`
	CompanyName string `gorm:"size:255" json:"company_name"` // visitor's employer
	Phone       string `gorm:"size:50;index" json:"phone"`
	Email       string `gorm:"size:255" json:"email"`
	HostName    string `gorm:"size:255" json:"host_name"`
	HostEmail   string `gorm:"size:255" json:"host_email"`
	QRCodeID    string `gorm:"size:100" json:"qr_code_id"`
	// CompanyID is the host company (tenant).
	CompanyID    string        `gorm:"size:36;index;not null" json:"company_id"`
	CheckInTime  time.Time     `gorm:"not null" json:"check_in_time"`
	CheckOutTime *time.Time    `json:"check_out_time"`
	Status       VisitorStatus `gorm:"size:10;index;not null;default:in" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (Visitor) TableName() string { return "visitors" }

func (v *Visitor) IsCheckedIn() bool { return v.Status == VisitorStatusIn }

// CheckOut moves the visitor to status out. The checkout time is never
// earlier than the check-in time.
func (v *Visitor) CheckOut(now time.Time) error {
	if v.Status == VisitorStatusOut {
		return ErrAlreadyCheckedOut
	}
	if now.Before(v.CheckInTime) {
		now = v.CheckInTime
	}
	v.Status = VisitorStatusOut
	v.CheckOutTime = &now
	return nil
}

// CheckedOutAt returns the checkout time, falling back to CreatedAt for
// legacy "out" records without one. ok is false for checked-in visitors.
func (v *Visitor) CheckedOutAt() (t time.Time, ok bool) {
	if v.Status != VisitorStatusOut {
		return time.Time{}, false
	}
	if v.CheckOutTime != nil {
		return *v.CheckOutTime, true
	}
	return v.CreatedAt, true
}

// Expired reports whether a checked-out visitor fell out of the retention window.
func (v *Visitor) Expired(now time.Time, window time.Duration) bool {
	out, ok := v.CheckedOutAt()
	if !ok {
		return false
	}
	return out.Before(now.Add(-window))
}

// FilterVisible keeps checked-in visitors and checked-out visitors still inside
// the retention window, preserving order.
func FilterVisible(visitors []Visitor, now time.Time, window time.Duration) []Visitor {
	out := make([]Visitor, 0, len(visitors))
	for _, v := range visitors {
		if v.Expired(now, window) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CheckedOutOn counts visitors checked out on the calendar day of now.
func CheckedOutOn(visitors []Visitor, now time.Time) int {
	y, m, d := now.Date()
	n := 0
	for _, v := range visitors {
		out, ok := v.CheckedOutAt()
		if !ok {
			continue
		}
		oy, om, od := out.In(now.Location()).Date()
		if oy == y && om == m && od == d {
			n++
		}
	}
	return n
}
