package usecase

import (
	"context"
	"log/slog"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

// ListPosts returns all posts, newest first.
func (s *Usecase) ListPosts(ctx context.Context) ([]entity.Post, error) {
	ctx, span := s.startSpan(ctx, "ListPosts")
	defer span.End()

	posts, err := s.repoDB.ListPosts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list posts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return posts, nil
}
