package domain

import "time"

// Tag is a free-form label attached to products through the product_tags
// join table. Identity is the name, matched case-sensitively: "Wood" and
// "wood" are two distinct tags. Tags are created lazily on first reference
// and never deleted, so orphaned tags are expected.
type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
