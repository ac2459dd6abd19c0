package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/panda-market/internal/domain"
)

// TokenRepo defines the persistence operations for refresh tokens. A token
// row existing is what makes a refresh token valid; rotation deletes the
// presented row and inserts the replacement in one transaction (see
// AuthService.Refresh).
type TokenRepo interface {
	// Save persists a refresh token for the user.
	Save(ctx context.Context, token string, userID int64) error

	// Get retrieves a stored refresh token.
	// Returns domain.ErrNotFound if the token was never stored or was revoked.
	Get(ctx context.Context, token string) (domain.RefreshToken, error)

	// Delete revokes a refresh token. Returns domain.ErrNotFound if the
	// token does not exist.
	Delete(ctx context.Context, token string) error
}

// pgTokenRepo is the Postgres implementation of TokenRepo.
type pgTokenRepo struct {
	db db
}

// NewTokenRepo constructs a TokenRepo backed by the provided db connection.
func NewTokenRepo(db db) TokenRepo {
	return &pgTokenRepo{db: db}
}

func (r *pgTokenRepo) Save(ctx context.Context, token string, userID int64) error {
	const q = `
		INSERT INTO refresh_tokens (token, user_id)
		VALUES (@token, @user_id)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TokenRepo.Save: %w", err)
	}
	return nil
}

func (r *pgTokenRepo) Get(ctx context.Context, token string) (domain.RefreshToken, error) {
	const q = `
		SELECT token, user_id, created_at
		FROM refresh_tokens
		WHERE token = @token`

	var t domain.RefreshToken
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}).
		Scan(&t.Token, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RefreshToken{}, fmt.Errorf("repo.TokenRepo.Get: %w", domain.ErrNotFound)
		}
		return domain.RefreshToken{}, fmt.Errorf("repo.TokenRepo.Get: %w", err)
	}
	return t, nil
}

func (r *pgTokenRepo) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM refresh_tokens WHERE token = @token`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token})
	if err != nil {
		return fmt.Errorf("repo.TokenRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TokenRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
