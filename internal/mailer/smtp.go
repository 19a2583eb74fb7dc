// Package mailer sends e-mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/dtroode/dokugo-server/internal/model"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ model.Mailer = (*SMTP)(nil)

// SMTP sends HTML messages through a gomail dialer.
type SMTP struct {
	dialer dialer
	from   string
}

// NewSMTP creates a mailer for the given SMTP account.
func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers a single HTML message to one recipient.
func (m *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("no recipients specified")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
