package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/codewithraj/blog/internal/pkg/mail"
)

type ConsumeUserRegisteredInput struct {
	UserID   int64
	Email    string
	FullName string
}

// ConsumeUserRegistered sends the welcome email for a verified registration.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	body := fmt.Sprintf(`<html><body>
<p>Hello %s,</p>
<p>Your email address has been verified and your Code-With-Raj account is ready.</p>
<p>You can now comment on posts and reach out through the contact page.</p>
<p>Regards,<br>Code-With-Raj</p>
</body></html>`, html.EscapeString(in.FullName))

	err := s.repoMail.Send(ctx, mail.Message{
		From:     s.cfg.GetString("mail.from"),
		To:       []string{in.Email},
		Subject:  "Welcome to Code-With-Raj",
		HTMLBody: body,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
