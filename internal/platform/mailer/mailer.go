// Package mailer provides outbound email delivery for notification jobs.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// Mailer defines the interface for sending a single email message.
type Mailer interface {
	// Send delivers the message body to the recipient address.
	// The context bounds the delivery attempt.
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMTPMailer implements Mailer over a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates a Mailer that relays through the configured
// SMTP host. Authentication is only used when a username is configured.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

// Ensure SMTPMailer implements Mailer interface
var _ Mailer = (*SMTPMailer)(nil)

// Send implements Mailer.Send using net/smtp.
func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}
	return nil
}

// LogMailer is a Mailer that only logs the message. It is the fallback
// when no SMTP host is configured, which is the expected mode for local
// development and tests.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a new LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With(slog.String("component", "log_mailer"))}
}

// Ensure LogMailer implements Mailer interface
var _ Mailer = (*LogMailer)(nil)

// Send implements Mailer.Send by logging the message instead of
// delivering it.
func (m *LogMailer) Send(ctx context.Context, recipient, subject, body string) error {
	m.logger.Info("email delivery skipped (no SMTP host configured)",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(body)))
	return nil
}

// FromConfig returns the SMTP mailer when a host is configured and the
// log-only mailer otherwise.
func FromConfig(cfg config.MailConfig, logger *slog.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}
