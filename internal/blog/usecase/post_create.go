package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type CreatePostInput struct {
	Title    string `validate:"required,min=3,max=200"`
	Subtitle string `validate:"required,max=200"`
	Body     string `validate:"required"`
	ImageURL string `validate:"omitempty,url"`
	Image    *Upload
}

// CreatePost publishes a new post. Only the privileged identity may post.
// An uploaded image takes precedence over a pasted image URL.
func (s *Usecase) CreatePost(ctx context.Context, in CreatePostInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer span.End()

	clm, err := s.requireAdmin(ctx)
	if err != nil {
		return 0, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := s.validator.Validate(in); err != nil {
		return 0, goerror.NewInvalidInput(err)
	}

	post := entity.Post{
		ID:         s.uid.Generate(),
		AuthorID:   clm.UserID,
		AuthorName: clm.FullName,
		Title:      in.Title,
		Subtitle:   in.Subtitle,
		Body:       in.Body,
		ImageURL:   in.ImageURL,
		CreatedAt:  s.clock.Now(),
	}

	if in.Image != nil {
		url, err := s.storeImage(ctx, post.ID, in.Image)
		if err != nil {
			return 0, err
		}
		post.ImageURL = url
	}

	if err := s.repoDB.CreatePost(ctx, post); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return 0, goerror.NewBusiness("A post with that title already exists.", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create post", "title", post.Title, "error", err)
		return 0, goerror.NewServer(err)
	}

	return post.ID, nil
}
