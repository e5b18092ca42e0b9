package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"p9e.in/fleetops/models"
)

// Seed creates the bootstrap manager account plus a handful of sample
// records. Skipped entirely when any user already exists, so it is safe to
// run on every start.
func Seed(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("users already present, skipping seed data")
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "password"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ExternalID:   "idn_d1f21rgoo9s6edus1jdg",
		Name:         "System Admin",
		Handle:       "systemadmin",
		Email:        "admin@trucking.com",
		Username:     "systemadmin",
		PasswordHash: string(hash),
		Role:         models.RoleManager,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	now := time.Now().Unix()
	reports := []models.BreakdownReport{
		{
			UserID:                    "driver-01",
			TruckRegistrationNumber:   "TRK-123",
			FleetNumber:               "F01",
			DriverFullNames:           "John Doe",
			CellphoneNumber:           "555-1234",
			SupervisorName:            "Super Visor",
			SupervisorCellphoneNumber: "555-5678",
			CompanyName:               "Trucking Inc",
			BreakdownLocation:         "N1 Highway",
			IssueDescription:          "Engine Overheating",
			SubmissionDate:            now - 86400,
			Status:                    models.StatusPending,
			Notes:                     "Steam from engine",
			SlipPicture:               "slip.jpg",
			Seal1Picture:              "seal1.jpg",
			Seal2Picture:              "seal2.jpg",
		},
		{
			UserID:                    "driver-02",
			TruckRegistrationNumber:   "TRK-456",
			FleetNumber:               "F02",
			DriverFullNames:           "Jane Smith",
			CellphoneNumber:           "555-4321",
			SupervisorName:            "Super Visor",
			SupervisorCellphoneNumber: "555-5678",
			CompanyName:               "Trucking Inc",
			BreakdownLocation:         "R21 Off-ramp",
			IssueDescription:          "Flat Tire",
			SubmissionDate:            now - 172800,
			Status:                    models.StatusResolved,
			Notes:                     "Front left tire",
			ResolutionNotes:           "Replaced tire",
			SlipPicture:               "slip.jpg",
			Seal1Picture:              "seal1.jpg",
			Seal2Picture:              "seal2.jpg",
		},
	}
	if err := db.Create(&reports).Error; err != nil {
		return err
	}

	requests := []models.BreakRequest{
		{
			UserID:         "driver-03",
			BreakType:      models.BreakTypeFatigue,
			BreakDuration:  30,
			SubmissionDate: now - 43200,
			Notes:          "Long day",
			DriverName:     "Peter Jones",
			CompanyName:    "Trucking Inc",
			Location:       "Midrand",
		},
		{
			UserID:         "driver-04",
			BreakType:      models.BreakTypeLunch,
			BreakDuration:  60,
			SubmissionDate: now - 259200,
			Notes:          "Lunch break",
			DriverName:     "Mary Williams",
			CompanyName:    "Trucking Inc",
			Location:       "Centurion",
		},
	}
	if err := db.Create(&requests).Error; err != nil {
		return err
	}

	log.WithField("username", admin.Username).Info("seeded bootstrap manager and sample records")
	return nil
}
