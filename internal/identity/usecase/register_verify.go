package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/shared/event"
)

type RegisterVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

// RegisterVerify checks the emailed code, creates the account, and signs the
// user in. A wrong code consumes the challenge and issues a fresh one.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*AuthOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch, err := s.repoChallenge.Take(ctx, entity.ChallengePurposeRegistration, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("No pending registration for this email, please register again.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to take registration challenge", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if ch.Expired(s.clock.Now()) {
		return nil, goerror.NewBusiness("OTP expired, please register again.", goerror.CodeExpired)
	}

	if !s.hmac.Verify(ch.CodeHash, in.Code) {
		code, issueErr := s.issueChallenge(ctx, ch.Purpose, ch.Email, ch.Payload, s.otpTTL())
		if issueErr != nil {
			return nil, issueErr
		}
		if mailErr := s.repoMailer.SendRegistrationCode(ctx, ch.Email, ch.Payload.FullName, code); mailErr != nil {
			slog.ErrorContext(ctx, "failed to resend registration code", "email", ch.Email, "error", mailErr)
			return nil, goerror.NewBusiness("We could not send the verification email, please try again.", goerror.CodeDelivery)
		}

		return nil, goerror.NewBusiness("OTP mismatched, another OTP send to your email address.", goerror.CodeMismatch)
	}

	user := entity.User{
		ID:        s.uid.Generate(),
		Email:     ch.Email,
		FullName:  ch.Payload.FullName,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repoDB.CreateRegistration(ctx, user, ch.Payload.PasswordHash); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("You've already signed up with this email, login instead.", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create registration", "email", user.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, event.UserRegisteredMessage{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", user.ID, "error", err)
	}

	return s.issueSession(ctx, user.ID, user.Email, user.FullName)
}
