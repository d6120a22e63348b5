package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/idempotency"
)

type ContactInput struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"omitempty,max=30"`
	Message string `validate:"required,max=5000"`
}

// Contact relays a message to the site operator. Submissions are
// idempotency-guarded so a double submit does not send twice.
func (s *Usecase) Contact(ctx context.Context, in ContactInput) error {
	ctx, span := s.startSpan(ctx, "Contact")
	defer span.End()

	clm, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	digest, err := s.hmac.Hash(in.Name + "|" + in.Email + "|" + in.Phone + "|" + in.Message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash contact submission", "error", err)
		return goerror.NewServer(err)
	}
	key := "contact:" + strconv.FormatInt(clm.UserID, 10) + ":" + string(digest)

	err = s.idemp.Exec(ctx, key, func(ctx context.Context) error {
		return s.repoMailer.SendContactMessage(ctx, in.Name, in.Email, in.Phone, in.Message)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted), errors.Is(err, idempotency.ErrAlreadyInProgress):
		// Duplicate submit of the same message; the first one counts.
		return nil
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return goerror.NewBusiness("We could not send your message, please try again later.", goerror.CodeDelivery)
	default:
		slog.ErrorContext(ctx, "failed to send contact message", "user_id", clm.UserID, "error", err)
		return goerror.NewBusiness("We could not send your message, please try again later.", goerror.CodeDelivery)
	}
}
