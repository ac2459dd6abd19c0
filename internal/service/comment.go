package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// CommentService implements business logic for Comment operations.
// It holds the product and article repos because creating a comment requires
// verifying the parent exists first, so a missing parent surfaces as 404
// rather than a foreign-key failure.
type CommentService struct {
	products repo.ProductRepo
	articles repo.ArticleRepo
	comments repo.CommentRepo
}

// NewCommentService constructs a CommentService backed by the provided repos.
func NewCommentService(products repo.ProductRepo, articles repo.ArticleRepo, comments repo.CommentRepo) *CommentService {
	return &CommentService{products: products, articles: articles, comments: comments}
}

// CreateForProduct validates the parent product and persists a comment under it.
func (s *CommentService) CreateForProduct(ctx context.Context, productID int64, content string) (domain.Comment, error) {
	if err := validateComment(productID, content); err != nil {
		return domain.Comment{}, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.CreateForProduct: %w", err)
	}
	c, err := s.comments.CreateForProduct(ctx, productID, content)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.CreateForProduct: %w", err)
	}
	return c, nil
}

// CreateForArticle validates the parent article and persists a comment under it.
func (s *CommentService) CreateForArticle(ctx context.Context, articleID int64, content string) (domain.Comment, error) {
	if err := validateComment(articleID, content); err != nil {
		return domain.Comment{}, err
	}
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.CreateForArticle: %w", err)
	}
	c, err := s.comments.CreateForArticle(ctx, articleID, content)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.CreateForArticle: %w", err)
	}
	return c, nil
}

// ListByProduct returns one cursor page of a product's comments, newest first.
func (s *CommentService) ListByProduct(ctx context.Context, productID int64, p domain.CursorParams) (domain.CommentPage, error) {
	if productID <= 0 {
		return domain.CommentPage{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	page, err := s.comments.ListByProduct(ctx, productID, p)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("service.CommentService.ListByProduct: %w", err)
	}
	return page, nil
}

// ListByArticle returns one cursor page of an article's comments, newest first.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64, p domain.CursorParams) (domain.CommentPage, error) {
	if articleID <= 0 {
		return domain.CommentPage{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	page, err := s.comments.ListByArticle(ctx, articleID, p)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("service.CommentService.ListByArticle: %w", err)
	}
	return page, nil
}

// Update replaces a comment's content.
func (s *CommentService) Update(ctx context.Context, id int64, content string) (domain.Comment, error) {
	if err := validateComment(id, content); err != nil {
		return domain.Comment{}, err
	}
	c, err := s.comments.Update(ctx, id, content)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Update: %w", err)
	}
	return c, nil
}

// Delete removes a comment by ID.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CommentService.Delete: %w", err)
	}
	return nil
}

func validateComment(id int64, content string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return nil
}
