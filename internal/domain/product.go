// Package domain contains the core data types for the Panda Market API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Product statuses. A product is on sale until its owner marks it sold.
const (
	ProductStatusOnSale = "on_sale"
	ProductStatusSold   = "sold"
)

// Product is a catalog item offered on the marketplace.
// Slug is a URL-safe identifier derived from Name and unique across all
// products. Tags carries the names of the tags linked to this product,
// ordered by name; it is populated only by reads that join the tag tables.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Slug        string
	Status      string
	Stock       int
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch is a partial update to a product. Nil fields are left
// untouched. Tags distinguishes "absent" (nil — keep the existing tag set)
// from "empty" (non-nil zero-length — remove every tag); that distinction
// is part of the API contract.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Status      *string
	Stock       *int
	Tags        *[]string
}

// IsZero reports whether the patch sets no fields at all.
func (p ProductPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Status == nil && p.Stock == nil && p.Tags == nil
}

// ProductSummary is the trimmed projection used by list responses.
type ProductSummary struct {
	ID        int64
	Name      string
	Price     float64
	CreatedAt time.Time
}
