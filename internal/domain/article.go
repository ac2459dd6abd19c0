package domain

import "time"

// Article is a free-board article. Unlike products, articles carry no slug
// or tags — they are plain title/content records.
type Article struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticlePatch is a partial update to an article. Nil fields are left untouched.
type ArticlePatch struct {
	Title   *string
	Content *string
}

// IsZero reports whether the patch sets no fields at all.
func (p ArticlePatch) IsZero() bool {
	return p.Title == nil && p.Content == nil
}
