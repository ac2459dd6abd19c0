package domain

import "time"

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext — it must be stripped before the user is serialized.
type User struct {
	ID        int64
	Email     string
	Nickname  string
	Password  string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken is a persisted refresh token. Tokens are rotated on every
// refresh: the presented token row is deleted and a new one inserted in the
// same transaction.
type RefreshToken struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}
