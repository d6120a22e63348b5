package usecase

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/gate"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/hash"
	"github.com/codewithraj/blog/internal/pkg/idempotency"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/pkg/storage"
	"github.com/codewithraj/blog/internal/pkg/uid"
	"github.com/codewithraj/blog/internal/pkg/validator"
	"github.com/codewithraj/blog/internal/shared/event"
)

type repoDB interface {
	ListPosts(ctx context.Context) ([]entity.Post, error)
	GetPostByID(ctx context.Context, id int64) (*entity.Post, error)
	CreatePost(ctx context.Context, post entity.Post) error
	UpdatePost(ctx context.Context, post entity.Post) error
	DeletePostCascade(ctx context.Context, id int64) error

	ListCommentsByPost(ctx context.Context, postID int64) ([]entity.Comment, error)
	GetCommentByID(ctx context.Context, id int64) (*entity.Comment, error)
	CreateComment(ctx context.Context, comment entity.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

type repoMailer interface {
	SendContactMessage(ctx context.Context, name, email, phone, message string) error
}

type repoMessaging interface {
	PublishCommentCreated(ctx context.Context, msg event.CommentCreatedMessage) error
}

type Usecase struct {
	repoDB        repoDB
	repoMailer    repoMailer
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	gate          *gate.Gate
	storage       storage.Storage
	hmac          hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMailer    repoMailer
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Gate          *gate.Gate
	Storage       storage.Storage
	HMAC          hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMailer:    dep.RepoMailer,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		gate:          dep.Gate,
		storage:       dep.Storage,
		hmac:          dep.HMAC,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("blog.usecase").Start(ctx, name)
}

// requireUser returns the session claims or an unauthorized business error.
func (s *Usecase) requireUser(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("You need to login or register to do that.", goerror.CodeUnauthorized)
	}
	return clm, nil
}

// requireAdmin returns the session claims when they belong to the privileged
// identity, or a forbidden business error.
func (s *Usecase) requireAdmin(ctx context.Context) (*jwt.Claims, error) {
	clm, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if s.gate.Check(clm) != gate.Allow {
		return nil, goerror.NewBusiness("Only the site owner can do that.", goerror.CodeForbidden)
	}
	return clm, nil
}

// EnsureAdmin reports whether the current session may manage posts.
func (s *Usecase) EnsureAdmin(ctx context.Context) error {
	_, err := s.requireAdmin(ctx)
	return err
}

// Upload is an optional image file submitted with a post form.
type Upload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// storeImage uploads the file and returns its public URL.
func (s *Usecase) storeImage(ctx context.Context, postID int64, up *Upload) (string, error) {
	ext := strings.ToLower(path.Ext(up.Filename))
	key := "posts/" + strconv.FormatInt(postID, 10) + "/" + s.uuid.Generate() + ext

	info, err := s.storage.PutObject(ctx, key, up.Reader, storage.PutOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to store post image", "key", key, "error", err)
		return "", goerror.NewServer(err)
	}

	return info.URL, nil
}
