package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
)

// Mailer sends a single plain-text email. Kept narrow so invitation logic
// can be tested against a stub.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.MailConfig) (Mailer, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials are required")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	// gomail upgrades to STARTTLS on port 587 by itself.
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &smtpMailer{
		dialer: dialer,
		from:   from,
	}, nil
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
