package service

import (
	"context"
	"log/slog"
)

// Mailer delivers transactional mail. The default implementation only
// logs; a real SMTP sender can be dropped in without touching the
// services.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CodeStore holds short-lived one-time codes keyed by purpose and
// email. Verify consumes the code on a successful match so each code
// works at most once.
type CodeStore interface {
	Store(ctx context.Context, purpose, email, code string) error
	Verify(ctx context.Context, purpose, email, code string) (bool, error)
}

type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a Mailer that writes outgoing mail to the log
// instead of sending it. Used in development and tests.
func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("outgoing mail", "to", to, "subject", subject, "body", body)
	return nil
}
