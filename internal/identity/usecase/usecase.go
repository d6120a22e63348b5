package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/hash"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/pkg/otp"
	"github.com/codewithraj/blog/internal/pkg/uid"
	"github.com/codewithraj/blog/internal/pkg/validator"
	"github.com/codewithraj/blog/internal/shared/event"
)

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetPasswordByUserID(ctx context.Context, userID int64) (string, error)
	CreateRegistration(ctx context.Context, user entity.User, passwordHash string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type repoChallenge interface {
	Save(ctx context.Context, ch entity.Challenge) error
	Take(ctx context.Context, p entity.ChallengePurpose, email string) (*entity.Challenge, error)
}

type repoMailer interface {
	SendRegistrationCode(ctx context.Context, to, name, code string) error
	SendPasswordResetCode(ctx context.Context, to, name, code string) error
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg event.UserRegisteredMessage) error
}

type Usecase struct {
	repoDB        repoDB
	repoChallenge repoChallenge
	repoMailer    repoMailer
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	hmac          hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoChallenge repoChallenge
	RepoMailer    repoMailer
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	HMAC          hash.Hash
	OTP           otp.Generator
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoChallenge: dep.RepoChallenge,
		repoMailer:    dep.RepoMailer,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		hmac:          dep.HMAC,
		otp:           dep.OTP,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// issueChallenge generates a fresh code, stores its hash under the purpose
// and email, and returns the plaintext code for delivery.
func (s *Usecase) issueChallenge(ctx context.Context, p entity.ChallengePurpose, email string, payload entity.ChallengePayload, ttl time.Duration) (string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "error", err)
		return "", goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash code", "error", err)
		return "", goerror.NewServer(err)
	}

	now := s.clock.Now()
	ch := entity.Challenge{
		Purpose:   p,
		Email:     email,
		CodeHash:  string(codeHash),
		Payload:   payload,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.repoChallenge.Save(ctx, ch); err != nil {
		slog.ErrorContext(ctx, "failed to save challenge", "purpose", p.String(), "error", err)
		return "", goerror.NewServer(err)
	}

	return code, nil
}

// AuthOutput carries a freshly issued session for a signed-in user.
type AuthOutput struct {
	Token     string
	ExpiresAt time.Time
	UserID    int64
	Email     string
	FullName  string
}

func (s *Usecase) issueSession(ctx context.Context, userID int64, email, fullName string) (*AuthOutput, error) {
	token, err := s.jwt.Generate(userID, email, fullName)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AuthOutput{
		Token:     token,
		ExpiresAt: s.clock.Now().Add(s.sessionTTL()),
		UserID:    userID,
		Email:     email,
		FullName:  fullName,
	}, nil
}

func (s *Usecase) otpTTL() time.Duration {
	return s.cfg.GetMinute("modules.identity.otp_ttl_minutes")
}

func (s *Usecase) sessionTTL() time.Duration {
	return s.cfg.GetHour("modules.identity.session_ttl_hours")
}
