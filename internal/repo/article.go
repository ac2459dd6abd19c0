package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/panda-market/internal/domain"
)

// ArticleRepo defines the persistence operations for Articles.
type ArticleRepo interface {
	// Create inserts a new article and returns the persisted record.
	Create(ctx context.Context, a domain.Article) (domain.Article, error)

	// GetByID retrieves a single article by its primary key.
	// Returns domain.ErrNotFound if no article with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Article, error)

	// List returns one page of articles matching p and the total count.
	List(ctx context.Context, p domain.ListParams) ([]domain.Article, int64, error)

	// UpdateFields applies the non-nil fields of patch. Returns
	// domain.ErrNotFound if the article does not exist.
	UpdateFields(ctx context.Context, id int64, patch domain.ArticlePatch) (domain.Article, error)

	// Delete removes an article by ID. Returns domain.ErrNotFound if it does
	// not exist. Its comments cascade.
	Delete(ctx context.Context, id int64) error
}

// pgArticleRepo is the Postgres implementation of ArticleRepo.
type pgArticleRepo struct {
	db db
}

// NewArticleRepo constructs an ArticleRepo backed by the provided db connection.
func NewArticleRepo(db db) ArticleRepo {
	return &pgArticleRepo{db: db}
}

// Create inserts a new article row and returns the full persisted record.
func (r *pgArticleRepo) Create(ctx context.Context, a domain.Article) (domain.Article, error) {
	const q = `
		INSERT INTO articles (title, content)
		VALUES (@title, @content)
		RETURNING id, title, content, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"title": a.Title, "content": a.Content})
	result, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, fmt.Errorf("repo.ArticleRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an article by primary key.
func (r *pgArticleRepo) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	const q = `
		SELECT id, title, content, created_at, updated_at
		FROM articles
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, fmt.Errorf("repo.ArticleRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of articles and the total matching count. The
// keyword filter matches each word of p.Query against title or content.
func (r *pgArticleRepo) List(ctx context.Context, p domain.ListParams) ([]domain.Article, int64, error) {
	where, args := articleSearchClause(p.Query)
	order := "id ASC"
	if p.Sort == domain.SortRecent {
		order = "created_at DESC"
	}
	args["offset"] = p.Offset
	args["limit"] = p.Limit

	countQ := "SELECT count(*) FROM articles" + where
	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ArticleRepo.List: count: %w", err)
	}

	listQ := `
		SELECT id, title, content, created_at, updated_at
		FROM articles` + where + `
		ORDER BY ` + order + `
		OFFSET @offset LIMIT @limit`

	rows, err := r.db.Query(ctx, listQ, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ArticleRepo.List: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ArticleRepo.List: scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ArticleRepo.List: rows: %w", err)
	}
	return articles, total, nil
}

// articleSearchClause builds the WHERE clause for keyword search over
// title and content, one required ILIKE pair per word.
func articleSearchClause(query string) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	words := strings.Fields(query)
	if len(words) == 0 {
		return "", args
	}

	conds := make([]string, len(words))
	for i, w := range words {
		key := fmt.Sprintf("w%d", i)
		args[key] = "%" + w + "%"
		conds[i] = fmt.Sprintf("(title ILIKE @%s OR content ILIKE @%s)", key, key)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// UpdateFields applies the provided fields in one UPDATE statement and
// returns the updated record. Nil patch fields keep their current value via
// COALESCE.
func (r *pgArticleRepo) UpdateFields(ctx context.Context, id int64, patch domain.ArticlePatch) (domain.Article, error) {
	const q = `
		UPDATE articles
		SET title      = COALESCE(@title, title),
		    content    = COALESCE(@content, content),
		    updated_at = now()
		WHERE id = @id
		RETURNING id, title, content, created_at, updated_at`

	args := pgx.NamedArgs{"id": id, "title": patch.Title, "content": patch.Content}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, fmt.Errorf("repo.ArticleRepo.UpdateFields: %w", err)
	}
	return result, nil
}

// Delete removes an article by primary key.
func (r *pgArticleRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM articles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ArticleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ArticleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanArticle maps a single database row into a domain.Article.
func scanArticle(s scanner) (domain.Article, error) {
	var a domain.Article
	err := s.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Article{}, domain.ErrNotFound
		}
		return domain.Article{}, err
	}
	return a, nil
}
