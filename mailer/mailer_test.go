package mailer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p9e.in/fleetops/models"
)

func TestSplitRecipients(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "ops@trucking.com", []string{"ops@trucking.com"}},
		{"multiple with spaces", "a@b.com, c@d.com ,e@f.com", []string{"a@b.com", "c@d.com", "e@f.com"}},
		{"empty", "", nil},
		{"trailing comma", "a@b.com,", []string{"a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRecipients(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestConfigConfigured(t *testing.T) {
	full := Config{Host: "smtp.example.com", From: "noreply@trucking.com", Recipients: []string{"ops@trucking.com"}}
	if !full.Configured() {
		t.Error("full config reported unconfigured")
	}

	for _, cfg := range []Config{
		{From: "noreply@trucking.com", Recipients: []string{"ops@trucking.com"}},
		{Host: "smtp.example.com", Recipients: []string{"ops@trucking.com"}},
		{Host: "smtp.example.com", From: "noreply@trucking.com"},
	} {
		if cfg.Configured() {
			t.Errorf("incomplete config %+v reported configured", cfg)
		}
	}
}

type stubSender struct {
	to      []string
	subject string
	err     error
}

func (s *stubSender) Send(to []string, subject, body string) error {
	s.to = to
	s.subject = subject
	return s.err
}

func testAlerts(t *testing.T, sender Sender) *Alerts {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.EmailLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := Config{
		Host:       "smtp.example.com",
		From:       "noreply@trucking.com",
		Recipients: []string{"ops@trucking.com", "fleet@trucking.com"},
	}
	return &Alerts{DB: db, Log: log, Sender: sender, Cfg: cfg}
}

func TestNotifyBreakRequestRecordsEmailLog(t *testing.T) {
	sender := &stubSender{}
	a := testAlerts(t, sender)

	req := models.BreakRequest{ID: uuid.New(), UserID: "u1", BreakType: models.BreakTypeLunch}
	a.NotifyBreakRequest(req)

	if len(sender.to) != 2 {
		t.Fatalf("sent to %v, want both management addresses", sender.to)
	}

	var entry models.EmailLog
	if err := a.DB.First(&entry).Error; err != nil {
		t.Fatalf("email log entry not written: %v", err)
	}
	if entry.Kind != models.EmailKindBreakRequest || entry.RecordID != req.ID.String() {
		t.Errorf("entry = kind %q record %q", entry.Kind, entry.RecordID)
	}
	if !entry.Sent || entry.Error != "" {
		t.Errorf("entry = sent %v error %q, want a clean send", entry.Sent, entry.Error)
	}
	if len(entry.Recipients) != 2 ||
		entry.Recipients[0] != "ops@trucking.com" || entry.Recipients[1] != "fleet@trucking.com" {
		t.Errorf("recipients = %v, want both addresses round-tripped", entry.Recipients)
	}
}

func TestNotifyBreakdownRecordsFailedSend(t *testing.T) {
	sender := &stubSender{err: errors.New("connection refused")}
	a := testAlerts(t, sender)

	rep := models.BreakdownReport{ID: uuid.New(), TruckRegistrationNumber: "TRK-123"}
	a.NotifyBreakdown(rep)

	var entry models.EmailLog
	if err := a.DB.First(&entry).Error; err != nil {
		t.Fatalf("email log entry not written: %v", err)
	}
	if entry.Sent || entry.Error != "connection refused" {
		t.Errorf("entry = sent %v error %q, want recorded failure", entry.Sent, entry.Error)
	}
	if entry.Kind != models.EmailKindBreakdown {
		t.Errorf("kind = %q", entry.Kind)
	}
}

func TestBreakdownBodyMentionsKeyFields(t *testing.T) {
	rep := models.BreakdownReport{
		ID:                      uuid.New(),
		UserID:                  "driver-01",
		TruckRegistrationNumber: "TRK-123",
		DriverFullNames:         "John Doe",
		BreakdownLocation:       "N1 Highway",
		IssueDescription:        "Engine Overheating",
		SubmissionDate:          1700000000,
		Status:                  models.StatusPending,
	}

	body := BreakdownBody(rep)
	for _, want := range []string{"TRK-123", "John Doe", "N1 Highway", "Engine Overheating", "driver-01", "pending"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBreakRequestBodyMentionsKeyFields(t *testing.T) {
	req := models.BreakRequest{
		ID:             uuid.New(),
		UserID:         "u1",
		BreakType:      models.BreakTypeLunch,
		BreakDuration:  60,
		SubmissionDate: 1700000000,
		DriverName:     "Peter Jones",
		CompanyName:    "Trucking Inc",
		Location:       "Midrand",
	}

	body := BreakRequestBody(req)
	for _, want := range []string{"lunch", "60 minutes", "Peter Jones", "Trucking Inc", "Midrand", "u1"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}
