package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/gate"
	"github.com/codewithraj/blog/internal/pkg/goroutine"
	"github.com/codewithraj/blog/internal/pkg/hash"
	"github.com/codewithraj/blog/internal/pkg/idempotency"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/pkg/mail"
	"github.com/codewithraj/blog/internal/pkg/messaging"
	"github.com/codewithraj/blog/internal/pkg/otp"
	"github.com/codewithraj/blog/internal/pkg/router"
	"github.com/codewithraj/blog/internal/pkg/storage"
	"github.com/codewithraj/blog/internal/pkg/uid"
	"github.com/codewithraj/blog/internal/pkg/validator"
	"github.com/codewithraj/blog/internal/pkg/view"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT
	gate      *gate.Gate
	view      *view.Renderer

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
