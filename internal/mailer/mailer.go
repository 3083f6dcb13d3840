// Package mailer sends transactional email. Only the verification mail is
// sent today; delivery failures are logged by callers and never block signup.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/etown-exchange/api/internal/config"
)

// Mailer sends email to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// VerificationBody renders the account verification email.
func VerificationBody(verifyURL string) string {
	return fmt.Sprintf(
		"Welcome to Etown Exchange!\r\n\r\n"+
			"Please verify your account by opening the link below:\r\n\r\n%s\r\n\r\n"+
			"If you didn't create an account, you can ignore this email.\r\n",
		verifyURL,
	)
}
