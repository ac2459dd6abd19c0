package domain

import "time"

// Post is a community-board entry owned by a user. Only the author may
// update or delete it.
//
// LikeCount and IsLiked are read-side enrichments computed per request;
// IsLiked is always false for anonymous readers.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Image     string
	AuthorID  int64
	Author    *UserRef
	LikeCount int
	IsLiked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRef is the minimal author projection embedded in post responses.
type UserRef struct {
	ID       int64
	Nickname string
}

// PostPatch is a partial update to a post. Nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
	Image   *string
}

// IsZero reports whether the patch sets no fields at all.
func (p PostPatch) IsZero() bool {
	return p.Title == nil && p.Content == nil && p.Image == nil
}
