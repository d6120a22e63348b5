package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"

	"github.com/codewithraj/blog/internal/pkg/mail"
)

type ConsumeCommentCreatedInput struct {
	CommentID  int64
	PostID     int64
	PostTitle  string
	AuthorName string
	Body       string
}

// ConsumeCommentCreated notifies the site operator about a new comment.
func (s *Usecase) ConsumeCommentCreated(ctx context.Context, in ConsumeCommentCreatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCommentCreated")
	defer span.End()

	body := fmt.Sprintf(`<html><body>
<p><strong>%s</strong> commented on <strong>%s</strong>:</p>
<p>%s</p>
<p><a href="%s">View the post</a></p>
</body></html>`,
		html.EscapeString(in.AuthorName),
		html.EscapeString(in.PostTitle),
		html.EscapeString(in.Body),
		s.cfg.GetString("server.base_url")+"/post/"+strconv.FormatInt(in.PostID, 10),
	)

	err := s.repoMail.Send(ctx, mail.Message{
		From:     s.cfg.GetString("mail.from"),
		To:       []string{s.cfg.GetString("mail.operator")},
		Subject:  "New comment on " + in.PostTitle,
		HTMLBody: body,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send comment notification", "comment_id", in.CommentID, "error", err)
		return err
	}

	return nil
}
