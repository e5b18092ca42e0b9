package handlers

import (
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p9e.in/fleetops/config"
	"p9e.in/fleetops/mailer"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/storage"
)

// dbHandler builds a Handler on a fresh in-memory database with the real
// migrations applied, local picture storage and unconfigured (no-op) alerts.
func dbHandler(t *testing.T) *Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	// a second pooled connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(db, log, &storage.LocalStore{Dir: t.TempDir()}, &mailer.Alerts{DB: db, Log: log})
}

func seedUser(t *testing.T, db *gorm.DB, externalID, username, password, role string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		ExternalID:   externalID,
		Name:         username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}
