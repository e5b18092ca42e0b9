package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StormUser is the lightweight profile record keyed by the external user id
// asserted at the edge. Rows are created on first sight and never updated.
type StormUser struct {
	ID        string    `gorm:"primaryKey;size:100" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Handle    string    `gorm:"size:100;not null;default:''" json:"handle"`
	Email     string    `gorm:"size:100;not null;default:''" json:"email"`
	CreatedAt time.Time `json:"-"`
}

func (StormUser) TableName() string {
	return "storm_users"
}

// GetOrCreateStormUser returns the profile for externalID, creating it with
// the given display name when absent. The insert is ON CONFLICT DO NOTHING
// followed by a re-read, so concurrent first calls for the same id converge
// on a single row.
func GetOrCreateStormUser(db *gorm.DB, externalID, name string) (*StormUser, error) {
	row := StormUser{ID: externalID, Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, err
	}
	var out StormUser
	if err := db.First(&out, "id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
