// Package mailer sends management alert emails for newly submitted break
// requests and breakdown reports. Sends are always best-effort: callers
// dispatch on a goroutine, failures are logged and recorded in email_logs,
// and the originating request never fails because of them.
package mailer

import (
	"encoding/json"
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

// Sender delivers one message. SMTPSender is the default; tests and
// provider-backed transports supply their own.
type Sender interface {
	Send(to []string, subject, body string) error
}

// Config carries the SMTP transport settings. Values may arrive
// base64-encoded from the deployment environment.
type Config struct {
	Host       string
	Port       string
	User       string
	Pass       string
	From       string
	Recipients []string
}

// ConfigFromEnv reads and decodes the EMAIL_* variables.
func ConfigFromEnv() Config {
	port := os.Getenv("EMAIL_PORT")
	if port == "" {
		port = "587"
	}
	return Config{
		Host:       utils.TryDecodeBase64(os.Getenv("EMAIL_HOST")),
		Port:       port,
		User:       utils.TryDecodeBase64(os.Getenv("EMAIL_USER")),
		Pass:       utils.TryDecodeBase64(os.Getenv("EMAIL_PASS")),
		From:       utils.TryDecodeBase64(os.Getenv("EMAIL_FROM")),
		Recipients: SplitRecipients(utils.TryDecodeBase64(os.Getenv("MANAGEMENT_EMAILS"))),
	}
}

// SplitRecipients parses the comma-separated management list, trimming
// whitespace and dropping empties.
func SplitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Configured reports whether the transport has enough settings to send.
func (c Config) Configured() bool {
	return c.Host != "" && c.From != "" && len(c.Recipients) > 0
}

// SMTPSender sends through plain SMTP with optional auth.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to []string, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.From, strings.Join(to, ","), subject, body)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	addr := s.cfg.Host + ":" + s.cfg.Port
	return smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg))
}

// Alerts is the notification entry point handed to the handlers.
type Alerts struct {
	DB     *gorm.DB
	Log    *logrus.Logger
	Sender Sender
	Cfg    Config
}

func NewAlerts(db *gorm.DB, log *logrus.Logger) *Alerts {
	cfg := ConfigFromEnv()
	return &Alerts{DB: db, Log: log, Sender: NewSMTPSender(cfg), Cfg: cfg}
}

// NotifyBreakRequest emails the management list about a new break request.
func (a *Alerts) NotifyBreakRequest(req models.BreakRequest) {
	subject := "New Break Request Submitted"
	a.deliver(models.EmailKindBreakRequest, req.ID.String(), subject, BreakRequestBody(req), req)
}

// NotifyBreakdown emails the management list about a new breakdown report.
func (a *Alerts) NotifyBreakdown(rep models.BreakdownReport) {
	subject := "URGENT: Truck Breakdown Report - " + rep.TruckRegistrationNumber
	a.deliver(models.EmailKindBreakdown, rep.ID.String(), subject, BreakdownBody(rep), rep)
}

func (a *Alerts) deliver(kind, recordID, subject, body string, payload any) {
	if !a.Cfg.Configured() {
		a.Log.Warn("email configuration missing, skipping email alert")
		return
	}

	err := a.Sender.Send(a.Cfg.Recipients, subject, body)

	entry := models.EmailLog{
		Kind:       kind,
		RecordID:   recordID,
		Recipients: pq.StringArray(a.Cfg.Recipients),
		Subject:    subject,
		Sent:       err == nil,
	}
	if raw, merr := json.Marshal(payload); merr == nil {
		entry.Payload = datatypes.JSON(raw)
	}
	if err != nil {
		entry.Error = err.Error()
		a.Log.WithFields(logrus.Fields{"kind": kind, "record_id": recordID}).
			WithError(err).Error("failed to send email alert")
	} else {
		a.Log.WithFields(logrus.Fields{"kind": kind, "record_id": recordID}).
			Info("email alert sent to management")
	}

	if dberr := a.DB.Create(&entry).Error; dberr != nil {
		a.Log.WithError(dberr).Error("failed to record email log entry")
	}
}

// BreakRequestBody renders the plain-text alert for a break request.
func BreakRequestBody(req models.BreakRequest) string {
	return fmt.Sprintf(
		"A new break request has been submitted.\n\n"+
			"Type: %s\nDuration: %d minutes\nDriver: %s\nCompany: %s\nLocation: %s\n"+
			"User ID: %s\nSubmission Date: %s",
		req.BreakType, req.BreakDuration, req.DriverName, req.CompanyName, req.Location,
		req.UserID, time.Unix(req.SubmissionDate, 0).UTC().Format(time.RFC3339))
}

// BreakdownBody renders the plain-text alert for a breakdown report.
func BreakdownBody(rep models.BreakdownReport) string {
	return fmt.Sprintf(
		"Truck Breakdown Alert\n\n"+
			"Truck Registration Number: %s\nFleet Number: %s\nDriver: %s\nDriver Phone: %s\n"+
			"Supervisor: %s\nSupervisor Phone: %s\nCompany: %s\nLocation: %s\n"+
			"Issue Description: %s\nReported By: %s\nReport Time: %s\nStatus: %s\n"+
			"Slip Picture: %s\nSeal 1 Picture: %s\nSeal 2 Picture: %s",
		rep.TruckRegistrationNumber, rep.FleetNumber, rep.DriverFullNames, rep.CellphoneNumber,
		rep.SupervisorName, rep.SupervisorCellphoneNumber, rep.CompanyName, rep.BreakdownLocation,
		rep.IssueDescription, rep.UserID,
		time.Unix(rep.SubmissionDate, 0).UTC().Format(time.RFC3339), rep.Status,
		rep.SlipPicture, rep.Seal1Picture, rep.Seal2Picture)
}
