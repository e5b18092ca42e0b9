package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// BreakdownReport describes a vehicle breakdown and its resolution lifecycle.
// Only status and resolution_notes change after creation, and only through
// the resolve operation.
type BreakdownReport struct {
	ID                        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                    string    `gorm:"column:user_id;size:100;index;not null" json:"user_id"`
	TruckRegistrationNumber   string    `gorm:"column:truck_registration_number;size:100;not null" json:"truck_registration_number"`
	FleetNumber               string    `gorm:"column:fleet_number;size:100;not null" json:"fleet_number"`
	DriverFullNames           string    `gorm:"column:driver_full_names;size:200;not null" json:"driver_full_names"`
	CellphoneNumber           string    `gorm:"column:cellphone_number;size:50;not null" json:"cellphone_number"`
	SupervisorName            string    `gorm:"column:supervisor_name;size:200;not null" json:"supervisor_name"`
	SupervisorCellphoneNumber string    `gorm:"column:supervisor_cellphone_number;size:50;not null" json:"supervisor_cellphone_number"`
	CompanyName               string    `gorm:"column:company_name;size:200;not null" json:"company_name"`
	BreakdownLocation         string    `gorm:"column:breakdown_location;size:255;not null" json:"breakdown_location"`
	IssueDescription          string    `gorm:"column:issue_description;type:text;not null" json:"issue_description"`
	SubmissionDate            int64     `gorm:"column:submission_date;index;not null" json:"submission_date"`
	Status                    string    `gorm:"column:status;size:20;not null;default:pending" json:"status"`
	Notes                     string    `gorm:"column:notes;type:text;not null;default:''" json:"notes"`
	ResolutionNotes           string    `gorm:"column:resolution_notes;type:text;not null;default:''" json:"resolution_notes"`
	SlipPicture               string    `gorm:"column:slip_picture;size:512;not null" json:"slip_picture"`
	Seal1Picture              string    `gorm:"column:seal_1_picture;size:512;not null" json:"seal_1_picture"`
	Seal2Picture              string    `gorm:"column:seal_2_picture;size:512;not null" json:"seal_2_picture"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

func (BreakdownReport) TableName() string {
	return "breakdown_reports"
}

func (b *BreakdownReport) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BreakdownFormFields lists the required multipart string fields, in the
// order they are validated.
var BreakdownFormFields = []string{
	"truck_registration_number",
	"fleet_number",
	"driver_full_names",
	"cellphone_number",
	"supervisor_name",
	"supervisor_cellphone_number",
	"company_name",
	"breakdown_location",
	"issue_description",
}

// ValidateBreakdownFields checks the multipart form values field by field.
// Returns the values keyed by field name.
func ValidateBreakdownFields(get func(string) string) (map[string]string, error) {
	values := make(map[string]string, len(BreakdownFormFields))
	for _, field := range BreakdownFormFields {
		v := get(field)
		if v == "" {
			return nil, errors.New(field + " is required")
		}
		values[field] = v
	}
	return values, nil
}

// ValidateStatus checks a resolve-operation status value.
func ValidateStatus(status string) error {
	switch status {
	case StatusPending, StatusInProgress, StatusResolved:
		return nil
	}
	return errors.New("Invalid status. Must be one of: pending, resolved, in_progress")
}
