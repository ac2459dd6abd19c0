// Package repo contains all database access logic for the Panda Market API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/panda-market/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB extends db with transaction support. It is satisfied by *pgxpool.Pool
// and, via savepoints, by pgx.Tx — so a Store built on a test transaction
// still supports InTx.
type DB interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles one instance of every repository, all backed by the same
// connection or transaction.
type Repos struct {
	Products ProductRepo
	Tags     TagRepo
	Articles ArticleRepo
	Comments CommentRepo
	Posts    PostRepo
	Users    UserRepo
	Tokens   TokenRepo
}

// NewRepos constructs the full repository set over the provided connection.
func NewRepos(db db) Repos {
	return Repos{
		Products: NewProductRepo(db),
		Tags:     NewTagRepo(db),
		Articles: NewArticleRepo(db),
		Comments: NewCommentRepo(db),
		Posts:    NewPostRepo(db),
		Users:    NewUserRepo(db),
		Tokens:   NewTokenRepo(db),
	}
}

// Store owns the database handle and hands out repositories, both directly
// and scoped to a transaction. It replaces any notion of a package-level
// client: everything that touches the database receives a Store (or one of
// its repos) explicitly.
type Store struct {
	Repos
	db DB
}

// NewStore constructs a Store. In production pass *pgxpool.Pool; in tests
// pass a pgx.Tx for rollback isolation.
func NewStore(db DB) *Store {
	return &Store{Repos: NewRepos(db), db: db}
}

// InTx runs fn inside a single transaction. The transaction is rolled back
// if fn returns an error (or panics), and committed otherwise. Commit-time
// unique constraint violations are mapped to domain.ErrConflict so callers
// racing on the same unique value see a conflict, not a driver error.
func (s *Store) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Store.InTx: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.Store.InTx: commit: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.Store.InTx: commit: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
