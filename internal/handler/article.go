package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
)

type createArticleRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type updateArticleRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

type articleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newArticleResponse(a domain.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[createArticleRequest](w, r)
	if !ok {
		return
	}

	article, err := s.articles.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/articles/%d", article.ID))
	httpx.JSON(w, http.StatusCreated, newArticleResponse(article))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	article, err := s.articles.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newArticleResponse(article))
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	items, total, err := s.articles.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]articleResponse, 0, len(items))
	for _, a := range items {
		out = append(out, newArticleResponse(a))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": out,
		"meta":  newListMeta(params, total),
	})
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httpx.DecodeValid[updateArticleRequest](w, r)
	if !ok {
		return
	}

	article, err := s.articles.Update(r.Context(), id, domain.ArticlePatch{Title: req.Title, Content: req.Content})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newArticleResponse(article))
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.articles.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
