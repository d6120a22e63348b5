package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot starts a password reset by emailing a one-time code.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("No account link with this email !", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	payload := entity.ChallengePayload{FullName: user.FullName}
	code, err := s.issueChallenge(ctx, entity.ChallengePurposePasswordReset, user.Email, payload, s.otpTTL())
	if err != nil {
		return err
	}

	if err := s.repoMailer.SendPasswordResetCode(ctx, user.Email, user.FullName, code); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset code", "email", user.Email, "error", err)
		return goerror.NewBusiness("We could not send the reset email, please try again.", goerror.CodeDelivery)
	}

	return nil
}
