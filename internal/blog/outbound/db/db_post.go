package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

func (s *DB) ListPosts(ctx context.Context) (_ []entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "ListPosts")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT p.id, p.author_id, u.full_name, p.title, p.subtitle, p.body, p.image_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var posts []entity.Post
	for rows.Next() {
		var p entity.Post
		if err = rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return posts, nil
}

func (s *DB) GetPostByID(ctx context.Context, id int64) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "GetPostByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT p.id, p.author_id, u.full_name, p.title, p.subtitle, p.body, p.image_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	var p entity.Post
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) CreatePost(ctx context.Context, post entity.Post) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO posts (id, author_id, title, subtitle, body, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query,
		post.ID, post.AuthorID, post.Title, post.Subtitle, post.Body, post.ImageURL, post.CreatedAt)
	return s.mapError(err)
}

func (s *DB) UpdatePost(ctx context.Context, post entity.Post) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePost")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE posts SET title = $2, subtitle = $3, body = $4, image_url = $5
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, post.ID, post.Title, post.Subtitle, post.Body, post.ImageURL)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// DeletePostCascade removes the post and its comments in one transaction.
func (s *DB) DeletePostCascade(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeletePostCascade")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return s.mapError(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return tx.Commit(ctx)
}
