package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/panda-market/internal/domain"
)

// PostRepo defines the persistence operations for community-board Posts and
// the post_likes join table. Read methods take a viewerID so IsLiked can be
// computed in SQL; pass viewerID=0 for anonymous readers.
type PostRepo interface {
	// Create inserts a new post and returns the persisted record.
	Create(ctx context.Context, p domain.Post) (domain.Post, error)

	// GetByID retrieves a post with author, like count, and the viewer's
	// like state. Returns domain.ErrNotFound if no post with that ID exists.
	GetByID(ctx context.Context, id, viewerID int64) (domain.Post, error)

	// List returns one page of posts, newest first, with the same
	// enrichment as GetByID. The keyword filter matches title or content.
	List(ctx context.Context, p domain.ListParams, viewerID int64) ([]domain.Post, error)

	// UpdateFields applies the non-nil fields of patch. Returns
	// domain.ErrNotFound if the post does not exist.
	UpdateFields(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error)

	// Delete removes a post by ID. Returns domain.ErrNotFound if it does not
	// exist. Likes cascade.
	Delete(ctx context.Context, id int64) error

	// Liked reports whether userID has liked the post.
	Liked(ctx context.Context, postID, userID int64) (bool, error)

	// AddLike records a like. Idempotent — no error if already liked.
	AddLike(ctx context.Context, postID, userID int64) error

	// RemoveLike removes a like. Removing an absent like is not an error.
	RemoveLike(ctx context.Context, postID, userID int64) error
}

// pgPostRepo is the Postgres implementation of PostRepo.
type pgPostRepo struct {
	db db
}

// NewPostRepo constructs a PostRepo backed by the provided db connection.
func NewPostRepo(db db) PostRepo {
	return &pgPostRepo{db: db}
}

// postSelect is the shared projection for post reads: the post row, the
// author's nickname, the like count, and whether @viewer_id liked it.
const postSelect = `
	SELECT p.id, p.title, p.content, COALESCE(p.image, ''), p.author_id,
	       u.nickname,
	       (SELECT count(*) FROM post_likes pl WHERE pl.post_id = p.id),
	       EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = @viewer_id),
	       p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// Create inserts a new post row and returns the full persisted record.
// The author join is done in a second read so RETURNING stays simple.
func (r *pgPostRepo) Create(ctx context.Context, p domain.Post) (domain.Post, error) {
	const q = `
		INSERT INTO posts (title, content, image, author_id)
		VALUES (@title, @content, NULLIF(@image, ''), @author_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"title":     p.Title,
		"content":   p.Content,
		"image":     p.Image,
		"author_id": p.AuthorID,
	}

	var id int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: %w", err)
	}
	created, err := r.GetByID(ctx, id, p.AuthorID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: reload: %w", err)
	}
	return created, nil
}

// GetByID retrieves an enriched post by primary key.
func (r *pgPostRepo) GetByID(ctx context.Context, id, viewerID int64) (domain.Post, error) {
	q := postSelect + `
	WHERE p.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "viewer_id": viewerID})
	result, err := scanPost(row)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of enriched posts ordered by created_at descending.
func (r *pgPostRepo) List(ctx context.Context, p domain.ListParams, viewerID int64) ([]domain.Post, error) {
	q := postSelect
	args := pgx.NamedArgs{"viewer_id": viewerID, "offset": p.Offset, "limit": p.Limit}

	words := strings.Fields(p.Query)
	if len(words) > 0 {
		conds := make([]string, len(words))
		for i, w := range words {
			key := fmt.Sprintf("w%d", i)
			args[key] = "%" + w + "%"
			conds[i] = fmt.Sprintf("(p.title ILIKE @%s OR p.content ILIKE @%s)", key, key)
		}
		q += `
	WHERE ` + strings.Join(conds, " AND ")
	}
	q += `
	ORDER BY p.created_at DESC
	OFFSET @offset LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PostRepo.List: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PostRepo.List: scan: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostRepo.List: rows: %w", err)
	}
	return posts, nil
}

// UpdateFields applies the provided fields in one UPDATE statement.
// Nil patch fields keep their current value via COALESCE.
func (r *pgPostRepo) UpdateFields(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	const q = `
		UPDATE posts
		SET title      = COALESCE(@title, title),
		    content    = COALESCE(@content, content),
		    image      = COALESCE(@image, image),
		    updated_at = now()
		WHERE id = @id
		RETURNING id`

	args := pgx.NamedArgs{"id": id, "title": patch.Title, "content": patch.Content, "image": patch.Image}

	var updatedID int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, fmt.Errorf("repo.PostRepo.UpdateFields: %w", domain.ErrNotFound)
		}
		return domain.Post{}, fmt.Errorf("repo.PostRepo.UpdateFields: %w", err)
	}
	return r.GetByID(ctx, updatedID, 0)
}

// Delete removes a post by primary key.
func (r *pgPostRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PostRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PostRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Liked reports whether the user currently likes the post.
func (r *pgPostRepo) Liked(ctx context.Context, postID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM post_likes WHERE post_id = @post_id AND user_id = @user_id
		)`

	var liked bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"post_id": postID, "user_id": userID}).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("repo.PostRepo.Liked: %w", err)
	}
	return liked, nil
}

// AddLike records a like. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgPostRepo) AddLike(ctx context.Context, postID, userID int64) error {
	const q = `
		INSERT INTO post_likes (post_id, user_id)
		VALUES (@post_id, @user_id)
		ON CONFLICT (post_id, user_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"post_id": postID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.PostRepo.AddLike: %w", err)
	}
	return nil
}

// RemoveLike removes a like if present.
func (r *pgPostRepo) RemoveLike(ctx context.Context, postID, userID int64) error {
	const q = `DELETE FROM post_likes WHERE post_id = @post_id AND user_id = @user_id`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"post_id": postID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.PostRepo.RemoveLike: %w", err)
	}
	return nil
}

// scanPost maps a single enriched row into a domain.Post.
func scanPost(s scanner) (domain.Post, error) {
	var (
		p        domain.Post
		nickname string
	)
	err := s.Scan(&p.ID, &p.Title, &p.Content, &p.Image, &p.AuthorID,
		&nickname, &p.LikeCount, &p.IsLiked, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}
	p.Author = &domain.UserRef{ID: p.AuthorID, Nickname: nickname}
	return p, nil
}
