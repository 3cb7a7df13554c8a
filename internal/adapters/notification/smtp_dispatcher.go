package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/platform/config"
)

// SMTPDispatcher delivers outbox notifications over SMTP. It satisfies the
// NotificationDispatcher port; review commits never wait on it beyond the
// single post-commit send attempt.
type SMTPDispatcher struct {
	host       string
	port       string
	username   string
	password   string
	from       string
	tlsEnabled bool
}

// NewSMTPDispatcher builds a dispatcher from the SMTP section of the config.
// Returns nil when no SMTP host is configured, which leaves notifications
// queued in the outbox.
func NewSMTPDispatcher(cfg *config.Config) *SMTPDispatcher {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPDispatcher{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		username:   cfg.SMTPUsername,
		password:   cfg.SMTPPassword,
		from:       cfg.SMTPFrom,
		tlsEnabled: cfg.SMTPTLSEnabled,
	}
}

var _ portssvc.NotificationDispatcher = (*SMTPDispatcher)(nil)

// Dispatch sends one notification to its recipient.
func (d *SMTPDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := sasl.NewPlainClient("", d.username, d.password)
	addr := d.host + ":" + d.port
	body := strings.NewReader(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		d.from, n.RecipientEmail, n.Subject, n.Body))

	var err error
	if d.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, d.from, []string{n.RecipientEmail}, body)
	} else {
		err = smtp.SendMail(addr, auth, d.from, []string{n.RecipientEmail}, body)
	}
	if err != nil {
		return fmt.Errorf("smtp send to %s: %w", n.RecipientEmail, err)
	}
	return nil
}
