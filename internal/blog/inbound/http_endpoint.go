package inbound

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/blog/usecase"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/router"
	"github.com/codewithraj/blog/internal/pkg/view"
)

// HTTPEndpoint serves the public blog pages and the admin post management
// pages.
type HTTPEndpoint struct {
	uc uc
}

type postView struct {
	ID         int64
	Title      string
	Subtitle   string
	Body       string
	ImageURL   string
	AuthorName string
	CreatedAt  time.Time
}

type commentView struct {
	ID         int64
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

func toPostView(p entity.Post) postView {
	return postView{
		ID:         p.ID,
		Title:      p.Title,
		Subtitle:   p.Subtitle,
		Body:       p.Body,
		ImageURL:   p.ImageURL,
		AuthorName: p.AuthorName,
		CreatedAt:  p.CreatedAt,
	}
}

type indexContent struct {
	Posts []postView
}

type postContent struct {
	Post     postView
	Comments []commentView
}

func postPath(id int64) string {
	return "/post/" + strconv.FormatInt(id, 10)
}

func flashDanger(msg string) []view.Flash {
	return []view.Flash{{Category: "danger", Message: msg}}
}

func flashSuccess(msg string) []view.Flash {
	return []view.Flash{{Category: "success", Message: msg}}
}

func businessError(err error) *goerror.Error {
	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Type() != goerror.TypeServer {
		return gerr
	}
	return nil
}

func (h *HTTPEndpoint) Index(r *router.Request) (*router.Response, error) {
	posts, err := h.uc.ListPosts(r.Context())
	if err != nil {
		return nil, err
	}

	return &router.Response{
		Page:  "index.html",
		Title: "Code With Raj",
		Content: indexContent{
			Posts: lo.Map(posts, func(p entity.Post, _ int) postView { return toPostView(p) }),
		},
	}, nil
}

func (h *HTTPEndpoint) About(r *router.Request) (*router.Response, error) {
	return &router.Response{Page: "about.html", Title: "About Me"}, nil
}

func (h *HTTPEndpoint) PostPage(r *router.Request) (*router.Response, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.GetPost(r.Context(), id)
	if err != nil {
		if gerr := businessError(err); gerr != nil && gerr.Code() == goerror.CodeNotFound {
			return &router.Response{RedirectTo: "/", Flashes: flashDanger(gerr.Msg())}, nil
		}
		return nil, err
	}

	return h.renderPost(out, nil, nil), nil
}

func (h *HTTPEndpoint) renderPost(out *usecase.GetPostOutput, formErrs map[string]string, form map[string]string) *router.Response {
	status := http.StatusOK
	if len(formErrs) > 0 {
		status = http.StatusUnprocessableEntity
	}

	return &router.Response{
		Status: status,
		Page:   "post.html",
		Title:  out.Post.Title,
		Errors: formErrs,
		Form:   form,
		Content: postContent{
			Post: toPostView(out.Post),
			Comments: lo.Map(out.Comments, func(c entity.Comment, _ int) commentView {
				return commentView{ID: c.ID, AuthorName: c.AuthorName, Body: c.Body, CreatedAt: c.CreatedAt}
			}),
		},
	}
}

func (h *HTTPEndpoint) CreateComment(r *router.Request) (*router.Response, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}
	body := r.GetForm("comment")

	err = h.uc.CreateComment(r.Context(), usecase.CreateCommentInput{PostID: id, Body: body})
	if err == nil {
		return &router.Response{RedirectTo: postPath(id)}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeUnauthorized:
		return &router.Response{
			RedirectTo: "/login",
			Flashes:    flashDanger("You need to login or register to comment."),
		}, nil
	case goerror.CodeNotFound:
		return &router.Response{RedirectTo: "/", Flashes: flashDanger(gerr.Msg())}, nil
	case goerror.CodeInvalidInput:
		out, getErr := h.uc.GetPost(r.Context(), id)
		if getErr != nil {
			return nil, getErr
		}
		errs := gerr.Fields()
		if msg, ok := errs["body"]; ok {
			errs = map[string]string{"comment": msg}
		}
		return h.renderPost(out, errs, map[string]string{"comment": body}), nil
	default:
		return &router.Response{RedirectTo: postPath(id), Flashes: flashDanger(gerr.Msg())}, nil
	}
}

func (h *HTTPEndpoint) DeleteComment(r *router.Request) (*router.Response, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	postID, err := h.uc.DeleteComment(r.Context(), id)
	if err != nil {
		if gerr := businessError(err); gerr != nil && gerr.Code() == goerror.CodeNotFound {
			return &router.Response{RedirectTo: "/", Flashes: flashDanger(gerr.Msg())}, nil
		}
		return nil, err
	}

	return &router.Response{
		RedirectTo: postPath(postID),
		Flashes:    flashSuccess("Comment deleted."),
	}, nil
}

func postForm(r *router.Request) (map[string]string, *usecase.Upload, error) {
	form := map[string]string{
		"title":    r.GetForm("title"),
		"subtitle": r.GetForm("subtitle"),
		"img_url":  r.GetForm("img_url"),
		"body":     r.GetForm("body"),
	}

	file, header, err := r.MultipartFile("image")
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return form, nil, nil
	}

	return form, &usecase.Upload{
		Reader:      file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// postFormErrors maps validation failures onto the form field names used by
// the post editor template.
func postFormErrors(gerr *goerror.Error) map[string]string {
	fields := gerr.Fields()
	if fields == nil {
		return nil
	}

	out := make(map[string]string, len(fields))
	for field, msg := range fields {
		if field == "image_url" {
			field = "img_url"
		}
		out[field] = msg
	}

	return out
}

func (h *HTTPEndpoint) NewPostPage(r *router.Request) (*router.Response, error) {
	if err := h.uc.EnsureAdmin(r.Context()); err != nil {
		return nil, err
	}

	return &router.Response{Page: "make-post.html", Title: "New Post"}, nil
}

func (h *HTTPEndpoint) NewPost(r *router.Request) (*router.Response, error) {
	form, upload, err := postForm(r)
	if err != nil {
		return nil, err
	}

	id, err := h.uc.CreatePost(r.Context(), usecase.CreatePostInput{
		Title:    form["title"],
		Subtitle: form["subtitle"],
		Body:     form["body"],
		ImageURL: form["img_url"],
		Image:    upload,
	})
	if err == nil {
		return &router.Response{RedirectTo: postPath(id), Flashes: flashSuccess("Post published.")}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeInvalidInput:
		return &router.Response{
			Status: http.StatusUnprocessableEntity,
			Page:   "make-post.html",
			Title:  "New Post",
			Errors: postFormErrors(gerr),
			Form:   form,
		}, nil
	case goerror.CodeConflict:
		return &router.Response{
			Page:    "make-post.html",
			Title:   "New Post",
			Flashes: flashDanger(gerr.Msg()),
			Form:    form,
		}, nil
	default:
		return nil, err
	}
}

func (h *HTTPEndpoint) EditPostPage(r *router.Request) (*router.Response, error) {
	if err := h.uc.EnsureAdmin(r.Context()); err != nil {
		return nil, err
	}

	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.GetPost(r.Context(), id)
	if err != nil {
		if gerr := businessError(err); gerr != nil && gerr.Code() == goerror.CodeNotFound {
			return &router.Response{RedirectTo: "/", Flashes: flashDanger(gerr.Msg())}, nil
		}
		return nil, err
	}

	return &router.Response{
		Page:  "make-post.html",
		Title: "Edit Post",
		Form: map[string]string{
			"title":    out.Post.Title,
			"subtitle": out.Post.Subtitle,
			"img_url":  out.Post.ImageURL,
			"body":     out.Post.Body,
		},
	}, nil
}

func (h *HTTPEndpoint) EditPost(r *router.Request) (*router.Response, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	form, upload, err := postForm(r)
	if err != nil {
		return nil, err
	}

	err = h.uc.UpdatePost(r.Context(), usecase.UpdatePostInput{
		ID:       id,
		Title:    form["title"],
		Subtitle: form["subtitle"],
		Body:     form["body"],
		ImageURL: form["img_url"],
		Image:    upload,
	})
	if err == nil {
		return &router.Response{RedirectTo: postPath(id), Flashes: flashSuccess("Post updated.")}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeInvalidInput:
		return &router.Response{
			Status: http.StatusUnprocessableEntity,
			Page:   "make-post.html",
			Title:  "Edit Post",
			Errors: postFormErrors(gerr),
			Form:   form,
		}, nil
	case goerror.CodeNotFound:
		return &router.Response{RedirectTo: "/", Flashes: flashDanger(gerr.Msg())}, nil
	case goerror.CodeConflict:
		return &router.Response{
			Page:    "make-post.html",
			Title:   "Edit Post",
			Flashes: flashDanger(gerr.Msg()),
			Form:    form,
		}, nil
	default:
		return nil, err
	}
}

func (h *HTTPEndpoint) DeletePost(r *router.Request) (*router.Response, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeletePost(r.Context(), id); err != nil {
		if gerr := businessError(err); gerr != nil && gerr.Code() == goerror.CodeNotFound {
			return &router.Response{RedirectTo: "/", Flashes: flashDanger(gerr.Msg())}, nil
		}
		return nil, err
	}

	return &router.Response{RedirectTo: "/", Flashes: flashSuccess("Post deleted.")}, nil
}

func (h *HTTPEndpoint) ContactPage(r *router.Request) (*router.Response, error) {
	return &router.Response{Page: "contact.html", Title: "Contact Me"}, nil
}

func (h *HTTPEndpoint) Contact(r *router.Request) (*router.Response, error) {
	form := map[string]string{
		"name":    r.GetForm("name"),
		"email":   r.GetForm("email"),
		"phone":   r.GetForm("phone"),
		"message": r.GetForm("message"),
	}

	err := h.uc.Contact(r.Context(), usecase.ContactInput{
		Name:    form["name"],
		Email:   form["email"],
		Phone:   form["phone"],
		Message: form["message"],
	})
	if err == nil {
		return &router.Response{
			RedirectTo: "/contact",
			Flashes:    flashSuccess("Successfully sent your message."),
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeUnauthorized:
		return &router.Response{RedirectTo: "/login", Flashes: flashDanger(gerr.Msg())}, nil
	case goerror.CodeInvalidInput:
		return &router.Response{
			Status: http.StatusUnprocessableEntity,
			Page:   "contact.html",
			Title:  "Contact Me",
			Errors: gerr.Fields(),
			Form:   form,
		}, nil
	default:
		return &router.Response{
			Page:    "contact.html",
			Title:   "Contact Me",
			Flashes: flashDanger(gerr.Msg()),
			Form:    form,
		}, nil
	}
}
