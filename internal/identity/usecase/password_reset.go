package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email      string `validate:"required,email"`
	ResetToken string `validate:"required"`
	Password   string `validate:"required,password"`
}

// PasswordReset sets a new password after a reset token has been granted.
// The grant is consumed whether or not the token matches.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.ResetToken = strings.TrimSpace(in.ResetToken)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	ch, err := s.repoChallenge.Take(ctx, entity.ChallengePurposePasswordResetGrant, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Password reset session has ended, please request a new one.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to take password reset grant", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if ch.Expired(s.clock.Now()) {
		return goerror.NewBusiness("Password reset session has expired, please request a new one.", goerror.CodeExpired)
	}

	if !s.hmac.Verify(ch.CodeHash, in.ResetToken) {
		return goerror.NewBusiness("Invalid password reset request, please request a new one.", goerror.CodeMismatch)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("No account link with this email !", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	passwordHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
