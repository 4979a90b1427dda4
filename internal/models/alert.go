package models

import "time"

// AlertType classifies an emergency alert.
type AlertType string

const AlertTypeFire AlertType = "fire"

// Alert is a write-only audit record of a triggered emergency.
type Alert struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Type        AlertType `gorm:"size:20;not null" json:"type"`
	TriggeredBy string    `gorm:"size:255;not null" json:"triggered_by"`
	CompanyID   string    `gorm:"size:36;index;not null" json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Alert) TableName() string { return "alerts" }
