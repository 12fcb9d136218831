// Package notify delivers notifications over SMTP and HTTP webhooks.
package notify

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"

	"github.com/matchstack-dev/matchstack/internal/config"
)

// ErrDisabled is returned by senders whose channel is not configured.
var ErrDisabled = errors.New("notification channel disabled")

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through one SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when no SMTP host is configured.
func NewSMTPMailer(cfg config.NotificationConfig) *SMTPMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

// Send dials, sends and hangs up. gomail has no context support, so ctx is only checked up front.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m == nil {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
