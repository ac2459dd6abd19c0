package repo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/panda-market/internal/domain"
)

// ProductRepo defines the persistence operations for Products.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ProductRepo interface {
	// Create inserts a new product and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). The Tags field
	// is not written here — links live in product_tags and are managed by
	// TagRepo. Returns domain.ErrConflict on a slug collision.
	Create(ctx context.Context, p domain.Product) (domain.Product, error)

	// GetByID retrieves a single product by its primary key, without tags.
	// Returns domain.ErrNotFound if no product with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Product, error)

	// SlugTaken reports whether a product other than excludeID already uses
	// slug. Pass excludeID=0 to consider all products.
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	// List returns one page of product summaries matching p, and the total
	// count ignoring pagination.
	List(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error)

	// UpdateFields applies the non-nil scalar fields of patch, plus slug if
	// non-nil, in a single UPDATE. Returns domain.ErrNotFound if the product
	// does not exist and domain.ErrConflict on a slug collision.
	UpdateFields(ctx context.Context, id int64, patch domain.ProductPatch, slug *string) error

	// Delete removes a product by ID. Returns domain.ErrNotFound if it does
	// not exist. product_tags and comments rows cascade.
	Delete(ctx context.Context, id int64) error
}

// pgProductRepo is the Postgres implementation of ProductRepo.
type pgProductRepo struct {
	db db
}

// NewProductRepo constructs a ProductRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProductRepo(db db) ProductRepo {
	return &pgProductRepo{db: db}
}

// Create inserts a new product row and returns the full persisted record.
func (r *pgProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	const q = `
		INSERT INTO products (name, description, price, slug)
		VALUES (@name, @description, @price, @slug)
		RETURNING id, name, description, price, slug, status, stock, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"slug":        p.Slug,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("repo.ProductRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Product{}, fmt.Errorf("repo.ProductRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a product by primary key. Tags are not joined here.
func (r *pgProductRepo) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	const q = `
		SELECT id, name, description, price, slug, status, stock, created_at, updated_at
		FROM products
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.ProductRepo.GetByID: %w", err)
	}
	return result, nil
}

// SlugTaken probes for an existing product using slug, ignoring excludeID.
func (r *pgProductRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM products
			WHERE slug = @slug AND id <> @exclude_id
		)`

	var taken bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug, "exclude_id": excludeID}).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("repo.ProductRepo.SlugTaken: %w", err)
	}
	return taken, nil
}

// List returns one page of product summaries and the total matching count.
// The keyword filter requires every whitespace-separated word of p.Query to
// match name or description case-insensitively, mirroring the search
// contract of the list endpoint.
func (r *pgProductRepo) List(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error) {
	where, args := productSearchClause(p.Query)
	order := "id ASC"
	if p.Sort == domain.SortRecent {
		order = "created_at DESC"
	}
	args["offset"] = p.Offset
	args["limit"] = p.Limit

	countQ := "SELECT count(*) FROM products" + where
	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ProductRepo.List: count: %w", err)
	}

	listQ := `
		SELECT id, name, price, created_at
		FROM products` + where + `
		ORDER BY ` + order + `
		OFFSET @offset LIMIT @limit`

	rows, err := r.db.Query(ctx, listQ, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ProductRepo.List: %w", err)
	}
	defer rows.Close()

	items := []domain.ProductSummary{}
	for rows.Next() {
		var (
			s     domain.ProductSummary
			price pgtype.Numeric
		)
		if err := rows.Scan(&s.ID, &s.Name, &price, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("repo.ProductRepo.List: scan: %w", err)
		}
		s.Price, err = numericToFloat(price)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ProductRepo.List: price: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ProductRepo.List: rows: %w", err)
	}
	return items, total, nil
}

// productSearchClause builds the WHERE clause for keyword search: one ILIKE
// pair per word, all words required. Returns an empty clause when the query
// is blank.
func productSearchClause(query string) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	words := strings.Fields(query)
	if len(words) == 0 {
		return "", args
	}

	conds := make([]string, len(words))
	for i, w := range words {
		key := fmt.Sprintf("w%d", i)
		args[key] = "%" + w + "%"
		conds[i] = fmt.Sprintf("(name ILIKE @%s OR description ILIKE @%s)", key, key)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// UpdateFields applies the provided fields in one UPDATE statement. The
// COALESCE trick keeps the query static: nil args become NULL, and NULL
// falls back to the current column value.
func (r *pgProductRepo) UpdateFields(ctx context.Context, id int64, patch domain.ProductPatch, slug *string) error {
	const q = `
		UPDATE products
		SET name        = COALESCE(@name, name),
		    description = COALESCE(@description, description),
		    price       = COALESCE(@price, price),
		    status      = COALESCE(@status, status),
		    stock       = COALESCE(@stock, stock),
		    slug        = COALESCE(@slug, slug),
		    updated_at  = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":          id,
		"name":        patch.Name,
		"description": patch.Description,
		"price":       patch.Price,
		"status":      patch.Status,
		"stock":       patch.Stock,
		"slug":        slug,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.ProductRepo.UpdateFields: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.ProductRepo.UpdateFields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProductRepo.UpdateFields: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a product by primary key.
func (r *pgProductRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM products WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ProductRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProductRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanProduct maps a single database row into a domain.Product.
// It handles the NUMERIC(10,2) price conversion.
func scanProduct(s scanner) (domain.Product, error) {
	var (
		p     domain.Product
		price pgtype.Numeric
	)
	err := s.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Slug, &p.Status,
		&p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}
	p.Price, err = numericToFloat(price)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// numericToFloat converts a pgtype.Numeric to float64. Values with at most
// two fractional digits (the column scale) convert exactly.
func numericToFloat(n pgtype.Numeric) (float64, error) {
	if !n.Valid {
		return 0, nil
	}
	v, err := n.Float64Value()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return 0, fmt.Errorf("price out of range")
	}
	return v.Float64, nil
}
