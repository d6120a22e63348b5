package blog

import (
	"github.com/codewithraj/blog/internal/blog/inbound"
	"github.com/codewithraj/blog/internal/blog/outbound/db"
	"github.com/codewithraj/blog/internal/blog/outbound/mailer"
	"github.com/codewithraj/blog/internal/blog/outbound/mq"
	"github.com/codewithraj/blog/internal/blog/usecase"
	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/gate"
	"github.com/codewithraj/blog/internal/pkg/hash"
	"github.com/codewithraj/blog/internal/pkg/idempotency"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/mail"
	"github.com/codewithraj/blog/internal/pkg/messaging"
	"github.com/codewithraj/blog/internal/pkg/router"
	"github.com/codewithraj/blog/internal/pkg/storage"
	"github.com/codewithraj/blog/internal/pkg/uid"
	"github.com/codewithraj/blog/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Gate        *gate.Gate                 `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMailer:    mailer.NewMailer(dep.Mail, dep.Config, dep.Clock, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Gate:          dep.Gate,
		Storage:       dep.Storage,
		HMAC:          dep.HMAC,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
