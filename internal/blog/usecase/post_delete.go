package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/codewithraj/blog/internal/pkg/goerror"
)

// DeletePost removes a post and all of its comments. Only the privileged
// identity may delete.
func (s *Usecase) DeletePost(ctx context.Context, id int64) error {
	ctx, span := s.startSpan(ctx, "DeletePost")
	defer span.End()

	if _, err := s.requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.repoDB.DeletePostCascade(ctx, id); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("The post you are looking for does not exist.", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo delete post", "post_id", id, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
