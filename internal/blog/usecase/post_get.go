package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type GetPostOutput struct {
	Post     entity.Post
	Comments []entity.Comment
}

// GetPost returns a post with its comments.
func (s *Usecase) GetPost(ctx context.Context, id int64) (*GetPostOutput, error) {
	ctx, span := s.startSpan(ctx, "GetPost")
	defer span.End()

	post, err := s.repoDB.GetPostByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("The post you are looking for does not exist.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	comments, err := s.repoDB.ListCommentsByPost(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list comments", "post_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GetPostOutput{Post: *post, Comments: comments}, nil
}
