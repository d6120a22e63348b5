package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type UpdatePostInput struct {
	ID       int64  `validate:"required"`
	Title    string `validate:"required,min=3,max=200"`
	Subtitle string `validate:"required,max=200"`
	Body     string `validate:"required"`
	ImageURL string `validate:"omitempty,url"`
	Image    *Upload
}

// UpdatePost edits an existing post. Only the privileged identity may edit.
func (s *Usecase) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	ctx, span := s.startSpan(ctx, "UpdatePost")
	defer span.End()

	if _, err := s.requireAdmin(ctx); err != nil {
		return err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	post, err := s.repoDB.GetPostByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("The post you are looking for does not exist.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL

	if in.Image != nil {
		url, err := s.storeImage(ctx, post.ID, in.Image)
		if err != nil {
			return err
		}
		post.ImageURL = url
	}

	if err := s.repoDB.UpdatePost(ctx, *post); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("A post with that title already exists.", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo update post", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
