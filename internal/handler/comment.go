package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
)

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{ID: c.ID, Content: c.Content, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

type commentPageResponse struct {
	Items      []commentResponse `json:"items"`
	NextCursor *int64            `json:"nextCursor"`
}

func newCommentPageResponse(page domain.CommentPage) commentPageResponse {
	items := make([]commentResponse, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, newCommentResponse(c))
	}
	return commentPageResponse{Items: items, NextCursor: page.NextCursor}
}

func (s *Server) handleCreateProductComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httpx.DecodeValid[commentRequest](w, r)
	if !ok {
		return
	}

	comment, err := s.comments.CreateForProduct(r.Context(), id, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newCommentResponse(comment))
}

func (s *Server) handleCreateArticleComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httpx.DecodeValid[commentRequest](w, r)
	if !ok {
		return
	}

	comment, err := s.comments.CreateForArticle(r.Context(), id, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newCommentResponse(comment))
}

func (s *Server) handleListProductComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page, err := s.comments.ListByProduct(r.Context(), id, cursorParams(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newCommentPageResponse(page))
}

func (s *Server) handleListArticleComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page, err := s.comments.ListByArticle(r.Context(), id, cursorParams(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newCommentPageResponse(page))
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httpx.DecodeValid[commentRequest](w, r)
	if !ok {
		return
	}

	comment, err := s.comments.Update(r.Context(), id, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newCommentResponse(comment))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.comments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
