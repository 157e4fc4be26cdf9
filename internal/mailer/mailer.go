// Package mailer delivers password-reset mail. Only the logging
// implementation is wired today; SMTP settings are carried in config so a
// real sender can slot in behind the same interface.
package mailer

import (
	"context"
	"log/slog"
)

// Mailer sends a password-reset link to an email address.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}

// LogMailer records the reset request instead of delivering it.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the reset event. The token itself is not logged.
func (m *LogMailer) SendPasswordReset(ctx context.Context, email, resetToken string) error {
	m.logger.Info("password reset requested", "email", email)
	return nil
}
