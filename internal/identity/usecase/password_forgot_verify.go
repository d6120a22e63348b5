package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type PasswordForgotVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

type PasswordForgotVerifyOutput struct {
	// ResetToken authorizes one password change for the email.
	ResetToken string
}

// PasswordForgotVerify checks the emailed reset code and exchanges it for a
// short-lived reset token. A wrong code consumes the challenge and issues a
// fresh one.
func (s *Usecase) PasswordForgotVerify(ctx context.Context, in PasswordForgotVerifyInput) (*PasswordForgotVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgotVerify")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch, err := s.repoChallenge.Take(ctx, entity.ChallengePurposePasswordReset, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("No pending password reset for this email, please request a new one.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to take password reset challenge", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if ch.Expired(s.clock.Now()) {
		return nil, goerror.NewBusiness("OTP expired, please request a new one.", goerror.CodeExpired)
	}

	if !s.hmac.Verify(ch.CodeHash, in.Code) {
		code, issueErr := s.issueChallenge(ctx, ch.Purpose, ch.Email, ch.Payload, s.otpTTL())
		if issueErr != nil {
			return nil, issueErr
		}
		if mailErr := s.repoMailer.SendPasswordResetCode(ctx, ch.Email, ch.Payload.FullName, code); mailErr != nil {
			slog.ErrorContext(ctx, "failed to resend password reset code", "email", ch.Email, "error", mailErr)
			return nil, goerror.NewBusiness("We could not send the reset email, please try again.", goerror.CodeDelivery)
		}

		return nil, goerror.NewBusiness("OTP mismatched, another OTP send to your email address.", goerror.CodeMismatch)
	}

	resetToken := s.uuid.Generate()
	tokenHash, err := s.hmac.Hash(resetToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash reset token", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	grant := entity.Challenge{
		Purpose:   entity.ChallengePurposePasswordResetGrant,
		Email:     ch.Email,
		CodeHash:  string(tokenHash),
		Payload:   ch.Payload,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.GetMinute("modules.identity.reset_grant_ttl_minutes")),
	}
	if err := s.repoChallenge.Save(ctx, grant); err != nil {
		slog.ErrorContext(ctx, "failed to save password reset grant", "email", ch.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordForgotVerifyOutput{ResetToken: resetToken}, nil
}
