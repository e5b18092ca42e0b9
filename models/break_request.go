package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BreakTypeFatigue = "fatigue"
	BreakTypeLunch   = "lunch"
)

// BreakRequest is a driver's submission asking for a fatigue or lunch break.
// submission_date is stamped server-side at creation and records are never
// mutated afterwards.
type BreakRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string    `gorm:"column:user_id;size:100;index;not null" json:"user_id"`
	BreakType      string    `gorm:"column:break_type;size:20;not null" json:"break_type"`
	BreakDuration  int       `gorm:"column:break_duration;not null" json:"break_duration"`
	SubmissionDate int64     `gorm:"column:submission_date;index;not null" json:"submission_date"`
	Notes          string    `gorm:"column:notes;type:text;not null;default:''" json:"notes"`
	DriverName     string    `gorm:"column:driver_name;size:200;not null" json:"driver_name"`
	CompanyName    string    `gorm:"column:company_name;size:200;not null" json:"company_name"`
	Location       string    `gorm:"column:location;size:255;not null" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

func (BreakRequest) TableName() string {
	return "break_requests"
}

func (b *BreakRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BreakRequestInput is the validated creation payload.
type BreakRequestInput struct {
	BreakType     string
	BreakDuration int
	DriverName    string
	CompanyName   string
	Location      string
}

// ValidateBreakRequestPayload checks the decoded JSON body field by field so
// that a missing field, a mistyped field and a bad enum value each produce
// their own message.
func ValidateBreakRequestPayload(body map[string]any) (*BreakRequestInput, error) {
	if body == nil {
		return nil, errors.New("Request body is required")
	}

	rawType, ok := body["break_type"]
	if !ok || rawType == nil || rawType == "" {
		return nil, errors.New("break_type is required")
	}
	breakType, ok := rawType.(string)
	if !ok {
		return nil, errors.New("break_type must be a string")
	}
	if breakType != BreakTypeFatigue && breakType != BreakTypeLunch {
		return nil, errors.New(`break_type must be either "fatigue" or "lunch"`)
	}

	rawDuration, ok := body["break_duration"]
	if !ok || rawDuration == nil {
		return nil, errors.New("break_duration is required")
	}
	duration, ok := rawDuration.(float64)
	if !ok {
		return nil, errors.New("break_duration must be a number")
	}

	input := &BreakRequestInput{BreakType: breakType, BreakDuration: int(duration)}

	for _, f := range []struct {
		key  string
		dest *string
	}{
		{"driver_name", &input.DriverName},
		{"company_name", &input.CompanyName},
		{"location", &input.Location},
	} {
		raw, ok := body[f.key]
		if !ok || raw == nil || raw == "" {
			return nil, errors.New(f.key + " is required")
		}
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New(f.key + " must be a string")
		}
		*f.dest = s
	}

	return input, nil
}
