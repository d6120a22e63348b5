package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/codewithraj/blog/internal/pkg/goerror"
)

// DeleteComment removes a comment and returns the post it belonged to so the
// caller can redirect back. Only the privileged identity may delete.
func (s *Usecase) DeleteComment(ctx context.Context, id int64) (int64, error) {
	ctx, span := s.startSpan(ctx, "DeleteComment")
	defer span.End()

	if _, err := s.requireAdmin(ctx); err != nil {
		return 0, err
	}

	comment, err := s.repoDB.GetCommentByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return 0, goerror.NewBusiness("The comment no longer exists.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", id, "error", err)
		return 0, goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteComment(ctx, id); err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo delete comment", "comment_id", id, "error", err)
		return 0, goerror.NewServer(err)
	}

	return comment.PostID, nil
}
