package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/codewithraj/blog/internal/identity/entity"
)

// CreateRegistration inserts the user row and its credential row atomically.
func (s *DB) CreateRegistration(ctx context.Context, user entity.User, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRegistration")
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

	const insertUser = `INSERT INTO users (id, email, full_name, created_at) VALUES ($1, $2, $3, $4)`
	if _, err = tx.Exec(ctx, insertUser, user.ID, user.Email, user.FullName, user.CreatedAt); err != nil {
		return s.mapError(err)
	}

	const insertCredential = `INSERT INTO user_credentials (user_id, password_hash, updated_at) VALUES ($1, $2, $3)`
	if _, err = tx.Exec(ctx, insertCredential, user.ID, passwordHash, user.CreatedAt); err != nil {
		return s.mapError(err)
	}

	return tx.Commit(ctx)
}
