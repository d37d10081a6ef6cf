// Package mail implement best-effort outbound email notification.
// Delivery failures are logged and never surfaced to the caller's request flow.
package mail

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// Mailer sends a plain-text email. Implementations must be safe for
// concurrent use from request handlers.
type Mailer interface {
	Send(toEmail string, subject string, body string) error
}

// SendgridMailer delivers email through the SendGrid v3 API.
type SendgridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendgridMailer builds a mailer from SENDGRID_API_KEY and MAIL_FROM
// environments. It returns nil when no API key is configured so callers
// can fall back to a no-op mailer.
func NewSendgridMailer() *SendgridMailer {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}
	fromAddr := os.Getenv("MAIL_FROM")
	if fromAddr == "" {
		fromAddr = "no-reply@staffboard.example.com"
	}
	return &SendgridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: "StaffBoard",
		fromAddr: fromAddr,
	}
}

// Send delivers a single plain-text email.
func (m *SendgridMailer) Send(toEmail string, subject string, body string) error {
	from := sgmail.NewEmail(m.fromName, m.fromAddr)
	to := sgmail.NewEmail("", toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, body, "")

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// NoopMailer discards every message. Used in tests and when SendGrid is not configured.
type NoopMailer struct{}

// Send implements Mailer by doing nothing.
func (NoopMailer) Send(string, string, string) error { return nil }

// DefaultMailer returns the SendGrid mailer when configured, otherwise a no-op mailer.
func DefaultMailer() Mailer {
	if m := NewSendgridMailer(); m != nil {
		return m
	}
	log.Println("SENDGRID_API_KEY not set, email notifications disabled")
	return NoopMailer{}
}

// BestEffort sends through m and logs the failure instead of returning it.
// Email must never block or roll back the state change that triggered it.
func BestEffort(m Mailer, toEmail string, subject string, body string) {
	if toEmail == "" {
		return
	}
	if err := m.Send(toEmail, subject, body); err != nil {
		log.Printf("failed to send %q to %s: %v", subject, toEmail, err)
	}
}
