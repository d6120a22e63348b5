package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type RegisterInput struct {
	FullName string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

// Register starts a registration by storing a pending challenge and emailing
// a verification code. No account row exists until the code is verified.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return goerror.NewBusiness("You've already signed up with this email, login instead.", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	passwordHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	payload := entity.ChallengePayload{FullName: in.FullName, PasswordHash: string(passwordHash)}
	code, err := s.issueChallenge(ctx, entity.ChallengePurposeRegistration, in.Email, payload, s.otpTTL())
	if err != nil {
		return err
	}

	if err := s.repoMailer.SendRegistrationCode(ctx, in.Email, in.FullName, code); err != nil {
		slog.ErrorContext(ctx, "failed to send registration code", "email", in.Email, "error", err)
		return goerror.NewBusiness("We could not send the verification email, please try again.", goerror.CodeDelivery)
	}

	return nil
}
