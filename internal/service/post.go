package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// PostService implements business logic for community-board Post operations.
// Mutations are restricted to the post's author; reads are open, with the
// like enrichment computed for the viewing user when one is known.
type PostService struct {
	posts repo.PostRepo
}

// NewPostService constructs a PostService backed by the provided PostRepo.
func NewPostService(posts repo.PostRepo) *PostService {
	return &PostService{posts: posts}
}

// Create validates and persists a new post for authorID.
func (s *PostService) Create(ctx context.Context, authorID int64, title, content, image string) (domain.Post, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Post{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return domain.Post{}, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	created, err := s.posts.Create(ctx, domain.Post{
		Title:    title,
		Content:  content,
		Image:    image,
		AuthorID: authorID,
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Create: %w", err)
	}
	return created, nil
}

// Get returns a single post. viewerID drives the IsLiked enrichment; pass 0
// for anonymous readers.
func (s *PostService) Get(ctx context.Context, id, viewerID int64) (domain.Post, error) {
	if id <= 0 {
		return domain.Post{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	post, err := s.posts.GetByID(ctx, id, viewerID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Get: %w", err)
	}
	return post, nil
}

// List returns one page of posts, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PostService) List(ctx context.Context, p domain.ListParams, viewerID int64) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx, p, viewerID)
	if err != nil {
		return nil, fmt.Errorf("service.PostService.List: %w", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// Update applies a partial update after verifying userID owns the post.
func (s *PostService) Update(ctx context.Context, id, userID int64, patch domain.PostPatch) (domain.Post, error) {
	if id <= 0 {
		return domain.Post{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if patch.IsZero() {
		return domain.Post{}, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}
	if err := s.requireOwner(ctx, id, userID); err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Update: %w", err)
	}
	updated, err := s.posts.UpdateFields(ctx, id, patch)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a post after verifying userID owns it.
func (s *PostService) Delete(ctx context.Context, id, userID int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if err := s.requireOwner(ctx, id, userID); err != nil {
		return fmt.Errorf("service.PostService.Delete: %w", err)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PostService.Delete: %w", err)
	}
	return nil
}

// ToggleLike likes the post if the user has not liked it, and unlikes it
// otherwise. Returns the resulting like state.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	if postID <= 0 {
		return false, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if _, err := s.posts.GetByID(ctx, postID, userID); err != nil {
		return false, fmt.Errorf("service.PostService.ToggleLike: %w", err)
	}

	liked, err := s.posts.Liked(ctx, postID, userID)
	if err != nil {
		return false, fmt.Errorf("service.PostService.ToggleLike: %w", err)
	}
	if liked {
		if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
			return false, fmt.Errorf("service.PostService.ToggleLike: %w", err)
		}
		return false, nil
	}
	if err := s.posts.AddLike(ctx, postID, userID); err != nil {
		return false, fmt.Errorf("service.PostService.ToggleLike: %w", err)
	}
	return true, nil
}

// requireOwner loads the post and checks authorship.
func (s *PostService) requireOwner(ctx context.Context, postID, userID int64) error {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return fmt.Errorf("not the author: %w", domain.ErrForbidden)
	}
	return nil
}
