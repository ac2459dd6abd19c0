// Package service contains the business logic for the Panda Market API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// Store runs a function inside a single database transaction, handing it a
// transaction-scoped repository set. The transaction commits when the
// function returns nil and rolls back otherwise.
type Store interface {
	InTx(ctx context.Context, fn func(r repo.Repos) error) error
}

// maxSlugAttempts bounds the unique-slug suffix probe. Hitting the bound is
// reported as a conflict rather than looping forever.
const maxSlugAttempts = 1000

// ProductService implements business logic for Product operations. Create
// and Update maintain two invariants atomically: slug uniqueness across all
// products, and the product_tags rows exactly matching the most recent tag
// list supplied.
type ProductService struct {
	store    Store
	products repo.ProductRepo
	tags     repo.TagRepo
}

// NewProductService constructs a ProductService. Reads go through the plain
// repos; every write runs inside store.InTx.
func NewProductService(store Store, products repo.ProductRepo, tags repo.TagRepo) *ProductService {
	return &ProductService{store: store, products: products, tags: tags}
}

// CreateProductInput carries the validated fields for a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Tags        []string
}

// Create persists a new product with a unique slug and its tag links.
//
// The slug probe runs before the transaction; two concurrent creates can
// therefore resolve the same slug, in which case one loses at the store's
// unique constraint and the whole create fails with domain.ErrConflict —
// never with a partial product visible.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if err := validateCreateProduct(in); err != nil {
		return domain.Product{}, err
	}

	slug, err := resolveSlug(ctx, s.products, Slugify(in.Name), 0)
	if err != nil {
		return domain.Product{}, fmt.Errorf("service.ProductService.Create: %w", err)
	}

	var created domain.Product
	err = s.store.InTx(ctx, func(r repo.Repos) error {
		p, err := r.Products.Create(ctx, domain.Product{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Slug:        slug,
		})
		if err != nil {
			return err
		}
		if err := linkTags(ctx, r.Tags, p.ID, in.Tags); err != nil {
			return err
		}
		p.Tags, err = r.Tags.ListNamesByProduct(ctx, p.ID)
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("service.ProductService.Create: %w", err)
	}
	return created, nil
}

// Update applies a partial update. All provided scalar fields land in one
// UPDATE; the slug is recomputed only when the name changes, excluding the
// product's own id from the probe so re-saving the same name keeps the
// slug; the tag set is replaced only when the Tags key was present in the
// request (an empty non-nil list wipes all tags, a nil one touches none).
// Everything, including the existence check, runs in one transaction.
func (s *ProductService) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if err := validateProductPatch(patch); err != nil {
		return domain.Product{}, err
	}

	var updated domain.Product
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Products.GetByID(ctx, id); err != nil {
			return err
		}

		var slug *string
		if patch.Name != nil {
			resolved, err := resolveSlug(ctx, r.Products, Slugify(*patch.Name), id)
			if err != nil {
				return err
			}
			slug = &resolved
		}

		if err := r.Products.UpdateFields(ctx, id, patch, slug); err != nil {
			return err
		}

		if patch.Tags != nil {
			if err := r.Tags.UnlinkProduct(ctx, id); err != nil {
				return err
			}
			if err := linkTags(ctx, r.Tags, id, *patch.Tags); err != nil {
				return err
			}
		}

		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Tags, err = r.Tags.ListNamesByProduct(ctx, id)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("service.ProductService.Update: %w", err)
	}
	return updated, nil
}

// Get returns a product with its tag names.
func (s *ProductService) Get(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("service.ProductService.Get: %w", err)
	}
	p.Tags, err = s.tags.ListNamesByProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("service.ProductService.Get: %w", err)
	}
	return p, nil
}

// List returns one page of product summaries and the total matching count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ProductService) List(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error) {
	items, total, err := s.products.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ProductService.List: %w", err)
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}
	return items, total, nil
}

// Delete removes a product and, via cascade, its tag links and comments.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ProductService.Delete: %w", err)
	}
	return nil
}

// resolveSlug probes for a free slug starting at base, then base-1, base-2,
// and so on. excludeID removes the product's own row from the probe so an
// unchanged name resolves to its current slug. The probe is not atomic with
// the later insert; the store's unique constraint is the backstop for the
// race window.
func resolveSlug(ctx context.Context, products repo.ProductRepo, base string, excludeID int64) (string, error) {
	slug := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := products.SlugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts: %w", base, maxSlugAttempts, domain.ErrConflict)
}

// linkTags upserts each distinct tag name (case-sensitive, input order) and
// links it to the product. Duplicate names in the input collapse to one link.
func linkTags(ctx context.Context, tags repo.TagRepo, productID int64, names []string) error {
	for _, name := range dedupeTags(names) {
		t, err := tags.Upsert(ctx, name)
		if err != nil {
			return err
		}
		if err := tags.LinkProduct(ctx, productID, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// dedupeTags removes duplicate names, preserving first-occurrence order.
func dedupeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// validateCreateProduct enforces the create preconditions before any store
// access.
func validateCreateProduct(in CreateProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(in.Name) > 255 {
		return fmt.Errorf("%w: name must be at most 255 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if err := validatePrice(in.Price); err != nil {
		return err
	}
	return validateTagNames(in.Tags)
}

// validateProductPatch checks each provided field independently, with the
// same rules as create.
func validateProductPatch(patch domain.ProductPatch) error {
	if patch.IsZero() {
		return fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		if len(*patch.Name) > 255 {
			return fmt.Errorf("%w: name must be at most 255 characters", domain.ErrValidation)
		}
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Status != nil && *patch.Status != domain.ProductStatusOnSale && *patch.Status != domain.ProductStatusSold {
		return fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation,
			domain.ProductStatusOnSale, domain.ProductStatusSold)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	if patch.Tags != nil {
		return validateTagNames(*patch.Tags)
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price must be a finite number", domain.ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

func validateTagNames(names []string) error {
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("%w: tags must not contain empty strings", domain.ErrValidation)
		}
	}
	return nil
}
