// Package mailer relays contact form submissions to the site operator.
package mailer

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"

	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/mail"
)

const dateLayout = "January 02, 2006"

type Mailer struct {
	mail  mail.Mail
	cfg   config.Config
	clock clock.Clocker
	ins   instrument.Instrumentation
}

func NewMailer(m mail.Mail, cfg config.Config, clk clock.Clocker, ins instrument.Instrumentation) *Mailer {
	return &Mailer{mail: m, cfg: cfg, clock: clk, ins: ins}
}

// SendContactMessage forwards a visitor message to the operator mailbox.
func (m *Mailer) SendContactMessage(ctx context.Context, name, email, phone, message string) error {
	ctx, span := m.ins.Tracer("blog.outbound.mailer").Start(ctx, "SendContactMessage")
	defer span.End()

	body := fmt.Sprintf(`<html><body>
<p>New contact message received on %s.</p>
<p><strong>Name:</strong> %s<br>
<strong>Email:</strong> %s<br>
<strong>Phone:</strong> %s</p>
<p>%s</p>
</body></html>`,
		m.clock.Now().Format(dateLayout),
		html.EscapeString(name),
		html.EscapeString(email),
		html.EscapeString(phone),
		html.EscapeString(message),
	)

	msg := mail.Message{
		From:     m.cfg.GetString("mail.from"),
		To:       []string{m.cfg.GetString("mail.operator")},
		Subject:  "New Contact Message from " + name,
		HTMLBody: body,
	}

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if sendErr := m.mail.Send(ctx, msg); sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
