package domain

import "time"

// Comment belongs to exactly one parent: a product or an article.
// The unused parent ID is nil.
type Comment struct {
	ID        int64
	Content   string
	ProductID *int64
	ArticleID *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentPage is one cursor page of comments, newest first.
// NextCursor is nil when this is the last page.
type CommentPage struct {
	Items      []Comment
	NextCursor *int64
}
