package mailer

import (
	"fmt"
	"log"
	"time"

	"geotrack-backend/config"
	"geotrack-backend/internal/model"
	"geotrack-backend/internal/repository"

	"gopkg.in/gomail.v2"
)

// Mailer emails workers when an admin decides one of their clock-ins.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	users  repository.UserRepository
}

// NewFromEnv builds a Mailer from MAIL_* environment variables. Returns
// nil when MAIL_HOST is unset so callers can run without mail configured.
func NewFromEnv(users repository.UserRepository) *Mailer {
	host := config.GetEnv("MAIL_HOST", "")
	if host == "" {
		return nil
	}

	user := config.GetEnv("MAIL_USER", "")
	dialer := gomail.NewDialer(
		host,
		config.GetEnvAsInt("MAIL_PORT", 587),
		user,
		config.GetEnv("MAIL_PASS", ""),
	)

	return &Mailer{
		dialer: dialer,
		from:   config.GetEnv("MAIL_FROM", user),
		users:  users,
	}
}

// NotifyStatusChange sends the decision email in the background so the
// review request returns immediately. Send failures are only logged.
func (m *Mailer) NotifyStatusChange(record model.AttendanceRecord) {
	go func() {
		user, err := m.users.FindByID(record.UserID)
		if err != nil {
			log.Printf("mailer: no user for record %s: %v", record.ID, err)
			return
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", user.Email)
		msg.SetHeader("Subject", fmt.Sprintf("Clock-in %s", record.Status))
		msg.SetBody("text/html", body(record))

		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("mailer: send to %s failed: %v", user.Email, err)
		}
	}()
}

func body(record model.AttendanceRecord) string {
	when := time.UnixMilli(record.Timestamp).UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your clock-in from %s has been <b>%s</b>.</p>",
		record.UserName, when, record.Status,
	)
}
