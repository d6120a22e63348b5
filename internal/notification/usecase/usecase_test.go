package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/mail"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newUsecase(t *testing.T, repo *fakeMail) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
server:
  base_url: https://blog.example.com
mail:
  from: no-reply@example.com
  operator: owner@example.com
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	return New(Dependency{
		RepoMail:   repo,
		Config:     cfg,
		Clock:      fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeUserRegistered(t *testing.T) {
	repo := &fakeMail{}
	uc := newUsecase(t, repo)

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   7,
		Email:    "jane@example.com",
		FullName: "Jane Doe",
	})
	if err != nil {
		t.Fatalf("ConsumeUserRegistered() error = %v", err)
	}

	if len(repo.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(repo.sent))
	}
	msg := repo.sent[0]
	if msg.To[0] != "jane@example.com" || msg.Subject != "Welcome to Code-With-Raj" {
		t.Errorf("message = %+v", msg)
	}
	if !strings.Contains(msg.HTMLBody, "Jane Doe") {
		t.Error("body should greet the user by name")
	}
}

func TestConsumeCommentCreated(t *testing.T) {
	repo := &fakeMail{}
	uc := newUsecase(t, repo)

	err := uc.ConsumeCommentCreated(context.Background(), ConsumeCommentCreatedInput{
		CommentID:  3,
		PostID:     11,
		PostTitle:  "A Day in the Life",
		AuthorName: "A Reader",
		Body:       "Great read!",
	})
	if err != nil {
		t.Fatalf("ConsumeCommentCreated() error = %v", err)
	}

	if len(repo.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(repo.sent))
	}
	msg := repo.sent[0]
	if msg.To[0] != "owner@example.com" {
		t.Errorf("To = %v, want operator mailbox", msg.To)
	}
	if !strings.Contains(msg.HTMLBody, "https://blog.example.com/post/11") {
		t.Errorf("body should link the post, got %q", msg.HTMLBody)
	}
}

func TestConsumeUserRegisteredSendFailure(t *testing.T) {
	repo := &fakeMail{err: errors.New("smtp down")}
	uc := newUsecase(t, repo)

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   7,
		Email:    "jane@example.com",
		FullName: "Jane Doe",
	})
	if err == nil {
		t.Fatal("expected error when delivery fails")
	}
}
