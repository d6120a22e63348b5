package db

import (
	"context"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

func (s *DB) ListCommentsByPost(ctx context.Context, postID int64) (_ []entity.Comment, err error) {
	ctx, span := s.startSpan(ctx, "ListCommentsByPost")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT c.id, c.post_id, c.author_id, u.full_name, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`

	rows, err := s.conn.Query(ctx, query, postID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err = rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return comments, nil
}

func (s *DB) GetCommentByID(ctx context.Context, id int64) (_ *entity.Comment, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT c.id, c.post_id, c.author_id, u.full_name, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	var c entity.Comment
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &c, nil
}

func (s *DB) CreateComment(ctx context.Context, comment entity.Comment) (err error) {
	ctx, span := s.startSpan(ctx, "CreateComment")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO comments (id, post_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Body, comment.CreatedAt)
	return s.mapError(err)
}

func (s *DB) DeleteComment(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteComment")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
