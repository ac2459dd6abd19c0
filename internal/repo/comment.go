package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/panda-market/internal/domain"
)

// CommentRepo defines the persistence operations for Comments. A comment
// belongs to exactly one parent, a product or an article; the schema
// enforces this with a CHECK constraint.
type CommentRepo interface {
	// CreateForProduct inserts a comment under a product.
	CreateForProduct(ctx context.Context, productID int64, content string) (domain.Comment, error)

	// CreateForArticle inserts a comment under an article.
	CreateForArticle(ctx context.Context, articleID int64, content string) (domain.Comment, error)

	// ListByProduct returns one cursor page of a product's comments, newest
	// first. The page's NextCursor is set when a full page was returned.
	ListByProduct(ctx context.Context, productID int64, p domain.CursorParams) (domain.CommentPage, error)

	// ListByArticle is ListByProduct for article comments.
	ListByArticle(ctx context.Context, articleID int64, p domain.CursorParams) (domain.CommentPage, error)

	// Update replaces a comment's content. Returns domain.ErrNotFound if the
	// comment does not exist.
	Update(ctx context.Context, id int64, content string) (domain.Comment, error)

	// Delete removes a comment by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id int64) error
}

// pgCommentRepo is the Postgres implementation of CommentRepo.
type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

func (r *pgCommentRepo) CreateForProduct(ctx context.Context, productID int64, content string) (domain.Comment, error) {
	const q = `
		INSERT INTO comments (content, product_id)
		VALUES (@content, @product_id)
		RETURNING id, content, product_id, article_id, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"content": content, "product_id": productID})
	result, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.CreateForProduct: %w", err)
	}
	return result, nil
}

func (r *pgCommentRepo) CreateForArticle(ctx context.Context, articleID int64, content string) (domain.Comment, error) {
	const q = `
		INSERT INTO comments (content, article_id)
		VALUES (@content, @article_id)
		RETURNING id, content, product_id, article_id, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"content": content, "article_id": articleID})
	result, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.CreateForArticle: %w", err)
	}
	return result, nil
}

func (r *pgCommentRepo) ListByProduct(ctx context.Context, productID int64, p domain.CursorParams) (domain.CommentPage, error) {
	page, err := r.listByParent(ctx, "product_id", productID, p)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("repo.CommentRepo.ListByProduct: %w", err)
	}
	return page, nil
}

func (r *pgCommentRepo) ListByArticle(ctx context.Context, articleID int64, p domain.CursorParams) (domain.CommentPage, error) {
	page, err := r.listByParent(ctx, "article_id", articleID, p)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("repo.CommentRepo.ListByArticle: %w", err)
	}
	return page, nil
}

// listByParent implements descending-id cursor pagination shared by both
// parent kinds. A page is "full" when it holds exactly p.Limit rows; only
// then is a next cursor handed out, pointing at the last row returned.
func (r *pgCommentRepo) listByParent(ctx context.Context, parentCol string, parentID int64, p domain.CursorParams) (domain.CommentPage, error) {
	q := `
		SELECT id, content, product_id, article_id, created_at, updated_at
		FROM comments
		WHERE ` + parentCol + ` = @parent_id`
	args := pgx.NamedArgs{"parent_id": parentID, "limit": p.Limit}
	if p.Cursor != nil {
		q += ` AND id < @cursor`
		args["cursor"] = *p.Cursor
	}
	q += `
		ORDER BY id DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return domain.CommentPage{}, err
	}
	defer rows.Close()

	page := domain.CommentPage{Items: []domain.Comment{}}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return domain.CommentPage{}, fmt.Errorf("scan: %w", err)
		}
		page.Items = append(page.Items, c)
	}
	if err := rows.Err(); err != nil {
		return domain.CommentPage{}, fmt.Errorf("rows: %w", err)
	}

	if len(page.Items) == p.Limit && p.Limit > 0 {
		last := page.Items[len(page.Items)-1].ID
		page.NextCursor = &last
	}
	return page, nil
}

func (r *pgCommentRepo) Update(ctx context.Context, id int64, content string) (domain.Comment, error) {
	const q = `
		UPDATE comments
		SET content = @content, updated_at = now()
		WHERE id = @id
		RETURNING id, content, product_id, article_id, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "content": content})
	result, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCommentRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM comments WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CommentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CommentRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanComment maps a single database row into a domain.Comment.
func scanComment(s scanner) (domain.Comment, error) {
	var c domain.Comment
	err := s.Scan(&c.ID, &c.Content, &c.ProductID, &c.ArticleID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Comment{}, domain.ErrNotFound
		}
		return domain.Comment{}, err
	}
	return c, nil
}
