package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/eniolaomotee/Bookly/internal/logger"
)

// Mailer delivers an HTML message to a list of recipients.
// Callers treat delivery as fire and forget: failures are logged,
// never surfaced to the HTTP client.
type Mailer interface {
	Send(ctx context.Context, recipients []string, subject string, htmlBody string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string // host:port
	from string
}

func NewSMTPMailer(addr string, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, recipients []string, subject string, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, recipients, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// LogMailer writes messages to the log instead of sending them.
// Used in development and tests when no SMTP relay is configured.
type LogMailer struct {
	logger logger.Logger
}

func NewLogMailer(l logger.Logger) *LogMailer {
	return &LogMailer{logger: l}
}

func (m *LogMailer) Send(ctx context.Context, recipients []string, subject string, htmlBody string) error {
	m.logger.Info("mail not sent, log only mailer configured",
		"recipients", strings.Join(recipients, ", "),
		"subject", subject,
		"body_size", len(htmlBody),
	)

	return nil
}
