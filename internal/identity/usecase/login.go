package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Login verifies credentials and issues a session.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*AuthOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("That email does not exist, please try again.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	passwordHash, err := s.repoDB.GetPasswordByUserID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get password", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(passwordHash, in.Password) {
		return nil, goerror.NewBusiness("Password incorrect, please try again.", goerror.CodeUnauthorized)
	}

	return s.issueSession(ctx, user.ID, user.Email, user.FullName)
}
