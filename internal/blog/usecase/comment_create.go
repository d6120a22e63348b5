package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/shared/event"
)

type CreateCommentInput struct {
	PostID int64  `validate:"required"`
	Body   string `validate:"required,max=2000"`
}

// CreateComment stores a comment by the signed-in user and announces it.
func (s *Usecase) CreateComment(ctx context.Context, in CreateCommentInput) error {
	ctx, span := s.startSpan(ctx, "CreateComment")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("You need to login or register to comment.", goerror.CodeUnauthorized)
	}

	in.Body = strings.TrimSpace(in.Body)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	post, err := s.repoDB.GetPostByID(ctx, in.PostID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("The post you are looking for does not exist.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.PostID, "error", err)
		return goerror.NewServer(err)
	}

	comment := entity.Comment{
		ID:         s.uid.Generate(),
		PostID:     post.ID,
		AuthorID:   clm.UserID,
		AuthorName: clm.FullName,
		Body:       in.Body,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repoDB.CreateComment(ctx, comment); err != nil {
		slog.ErrorContext(ctx, "failed to repo create comment", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishCommentCreated(ctx, event.CommentCreatedMessage{
		CommentID:  comment.ID,
		PostID:     post.ID,
		PostTitle:  post.Title,
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish comment created", "comment_id", comment.ID, "error", err)
	}

	return nil
}
