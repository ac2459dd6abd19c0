package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// ArticleService implements business logic for Article operations.
// Articles are plain title/content records — no slug, no tags.
type ArticleService struct {
	articles repo.ArticleRepo
}

// NewArticleService constructs an ArticleService backed by the provided repo.
func NewArticleService(articles repo.ArticleRepo) *ArticleService {
	return &ArticleService{articles: articles}
}

// Create validates and persists a new article.
func (s *ArticleService) Create(ctx context.Context, title, content string) (domain.Article, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Article{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return domain.Article{}, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	created, err := s.articles.Create(ctx, domain.Article{Title: title, Content: content})
	if err != nil {
		return domain.Article{}, fmt.Errorf("service.ArticleService.Create: %w", err)
	}
	return created, nil
}

// Get returns a single article by ID.
func (s *ArticleService) Get(ctx context.Context, id int64) (domain.Article, error) {
	if id <= 0 {
		return domain.Article{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return domain.Article{}, fmt.Errorf("service.ArticleService.Get: %w", err)
	}
	return a, nil
}

// List returns one page of articles and the total matching count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ArticleService) List(ctx context.Context, p domain.ListParams) ([]domain.Article, int64, error) {
	articles, total, err := s.articles.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ArticleService.List: %w", err)
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, total, nil
}

// Update applies a partial update to an article.
func (s *ArticleService) Update(ctx context.Context, id int64, patch domain.ArticlePatch) (domain.Article, error) {
	if id <= 0 {
		return domain.Article{}, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if patch.IsZero() {
		return domain.Article{}, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Article{}, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return domain.Article{}, fmt.Errorf("%w: content must not be empty", domain.ErrValidation)
	}
	updated, err := s.articles.UpdateFields(ctx, id, patch)
	if err != nil {
		return domain.Article{}, fmt.Errorf("service.ArticleService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an article and, via cascade, its comments.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ArticleService.Delete: %w", err)
	}
	return nil
}
