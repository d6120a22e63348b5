package inbound

import (
	"context"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/blog/usecase"
	"github.com/codewithraj/blog/internal/pkg/router"
)

type uc interface {
	ListPosts(ctx context.Context) ([]entity.Post, error)
	GetPost(ctx context.Context, id int64) (*usecase.GetPostOutput, error)
	CreatePost(ctx context.Context, in usecase.CreatePostInput) (int64, error)
	UpdatePost(ctx context.Context, in usecase.UpdatePostInput) error
	DeletePost(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, in usecase.CreateCommentInput) error
	DeleteComment(ctx context.Context, id int64) (int64, error)

	Contact(ctx context.Context, in usecase.ContactInput) error
	EnsureAdmin(ctx context.Context) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/", end.Index)
	r.GET("/about", end.About)

	r.GET("/post/:id", end.PostPage)
	r.POST("/post/:id/comments", end.CreateComment)
	r.GET("/delete-comment/:id", end.DeleteComment)

	r.GET("/new-post", end.NewPostPage)
	r.POST("/new-post", end.NewPost)
	r.GET("/edit-post/:id", end.EditPostPage)
	r.POST("/edit-post/:id", end.EditPost)
	r.GET("/delete-post/:id", end.DeletePost)

	r.GET("/contact", end.ContactPage)
	r.POST("/contact", end.Contact)
}
