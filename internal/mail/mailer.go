package mail

import (
	"fmt"

	"soundhub/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email. Callers treat send failures as
// non-fatal: they are logged, never surfaced to the end user.
type Mailer interface {
	// Send delivers one HTML email.
	Send(to, subject, htmlBody string) error
}

// smtpMailer implements Mailer over SMTP.
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(cfg config.SMTPConfig, logger zerolog.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers one HTML email.
func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}

// noopMailer discards outbound mail. Used when SMTP is disabled, mirroring
// local development setups without a mail relay.
type noopMailer struct {
	logger zerolog.Logger
}

// NewNoopMailer creates a mailer that logs and drops every message.
func NewNoopMailer(logger zerolog.Logger) Mailer {
	return &noopMailer{logger: logger.With().Str("component", "mailer").Logger()}
}

func (m *noopMailer) Send(to, subject, _ string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Msg("SMTP disabled, dropping email")
	return nil
}
