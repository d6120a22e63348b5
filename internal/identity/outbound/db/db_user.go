package db

import (
	"context"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT id, email, full_name, created_at FROM users WHERE email = $1`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.FullName, &user.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetPasswordByUserID(ctx context.Context, userID int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetPasswordByUserID")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT password_hash FROM user_credentials WHERE user_id = $1`

	var hash string
	if err = s.conn.QueryRow(ctx, query, userID).Scan(&hash); err != nil {
		return "", s.mapError(err)
	}

	return hash, nil
}

func (s *DB) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE user_credentials SET password_hash = $2, updated_at = now() WHERE user_id = $1`

	tag, err := s.conn.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
