// Package mailer sends identity one-time-code emails.
package mailer

import (
	"context"
	"fmt"
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

// SendRegistrationCode emails the verification code for a pending registration.
func (m *Mailer) SendRegistrationCode(ctx context.Context, to, name, code string) error {
	body := fmt.Sprintf(`<html><body>
<p>Hello %s,</p>
<p>Thank you for signing up with Code-With-Raj on %s.</p>
<p>Your one-time verification code is:</p>
<h2>%s</h2>
<p>Enter this code to verify your email address. If you did not sign up, you can ignore this email.</p>
<p>Regards,<br>Code-With-Raj</p>
</body></html>`, name, m.clock.Now().Format(dateLayout), code)

	return m.send(ctx, "SendRegistrationCode", mail.Message{
		From:     m.cfg.GetString("mail.from"),
		To:       []string{to},
		Subject:  "Email Verification OTP",
		HTMLBody: body,
	})
}

// SendPasswordResetCode emails the code that authorizes a password reset.
func (m *Mailer) SendPasswordResetCode(ctx context.Context, to, name, code string) error {
	body := fmt.Sprintf(`<html><body>
<p>Hello %s,</p>
<p>We received a request on %s to reset the password for your Code-With-Raj account.</p>
<p>Your one-time reset code is:</p>
<h2>%s</h2>
<p>If you did not request a password reset, you can ignore this email and your password will stay unchanged.</p>
<p>Regards,<br>Code-With-Raj</p>
</body></html>`, name, m.clock.Now().Format(dateLayout), code)

	return m.send(ctx, "SendPasswordResetCode", mail.Message{
		From:     m.cfg.GetString("mail.from"),
		To:       []string{to},
		Subject:  "Password Reset OTP",
		HTMLBody: body,
	})
}

// send delivers with a short fibonacci backoff since SMTP hiccups are common.
func (m *Mailer) send(ctx context.Context, name string, msg mail.Message) error {
	ctx, span := m.ins.Tracer("identity.outbound.mailer").Start(ctx, name)
	defer span.End()

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
