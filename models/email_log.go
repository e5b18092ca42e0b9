package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EmailKindBreakRequest = "break_request"
	EmailKindBreakdown    = "breakdown"
)

// EmailLog records every management alert the mailer attempted, successful or
// not. Alerts are fire-and-forget, so this table is the only place a failed
// send is visible.
type EmailLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string         `gorm:"size:20;index;not null" json:"kind"`
	RecordID   string         `gorm:"size:100;index;not null" json:"record_id"`
	Recipients pq.StringArray `gorm:"type:text[]" json:"recipients"`
	Subject    string         `gorm:"size:255;not null" json:"subject"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	Sent       bool           `gorm:"not null;default:false" json:"sent"`
	Error      string         `gorm:"type:text;not null;default:''" json:"error"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (EmailLog) TableName() string {
	return "email_logs"
}

func (e *EmailLog) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
