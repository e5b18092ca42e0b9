package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles recognized by the access checks. Anything other than RoleManager is
// treated as a regular driver account.
const (
	RoleDriver  = "driver"
	RoleManager = "manager"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID   string    `gorm:"size:100;uniqueIndex;not null" json:"external_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Handle       string    `gorm:"size:100" json:"handle"`
	Email        string    `gorm:"size:100" json:"email"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:driver" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
