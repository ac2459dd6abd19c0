package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/panda-market/internal/domain"
)

// TagRepo defines the persistence operations for Tags and the product_tags
// join table.
type TagRepo interface {
	// Upsert inserts a tag by name, or returns the existing tag if the name
	// already exists. Matching is case-sensitive: "Wood" and "wood" are two
	// distinct rows.
	Upsert(ctx context.Context, name string) (domain.Tag, error)

	// LinkProduct links a tag to a product. Idempotent — no error if already
	// linked.
	LinkProduct(ctx context.Context, productID, tagID int64) error

	// UnlinkProduct removes every product_tags row for the product. Removing
	// from a product with no tags is not an error.
	UnlinkProduct(ctx context.Context, productID int64) error

	// ListNamesByProduct returns the names of all tags linked to a product,
	// ordered by name.
	ListNamesByProduct(ctx context.Context, productID int64) ([]string, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// Upsert inserts a tag or returns the existing row on name conflict.
// The DO UPDATE SET trick forces the RETURNING clause to fire even when
// the conflict handler skips the insert — without it, RETURNING returns
// nothing on DO NOTHING conflicts.
func (r *pgTagRepo) Upsert(ctx context.Context, name string) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (name)
		VALUES (@name)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at`

	var t domain.Tag
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Upsert: %w", err)
	}
	return t, nil
}

// LinkProduct links a tag to a product. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgTagRepo) LinkProduct(ctx context.Context, productID, tagID int64) error {
	const q = `
		INSERT INTO product_tags (product_id, tag_id)
		VALUES (@product_id, @tag_id)
		ON CONFLICT (product_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"product_id": productID, "tag_id": tagID})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.LinkProduct: %w", err)
	}
	return nil
}

// UnlinkProduct deletes all join rows for the product. Tag rows themselves
// are never deleted; orphaned tags are acceptable.
func (r *pgTagRepo) UnlinkProduct(ctx context.Context, productID int64) error {
	const q = `DELETE FROM product_tags WHERE product_id = @product_id`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"product_id": productID})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.UnlinkProduct: %w", err)
	}
	return nil
}

// ListNamesByProduct returns all tag names linked to a product, ordered by name.
func (r *pgTagRepo) ListNamesByProduct(ctx context.Context, productID int64) ([]string, error) {
	const q = `
		SELECT t.name
		FROM tags t
		JOIN product_tags pt ON pt.tag_id = t.id
		WHERE pt.product_id = @product_id
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListNamesByProduct: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("repo.TagRepo.ListNamesByProduct: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListNamesByProduct: rows: %w", err)
	}
	return names, nil
}
