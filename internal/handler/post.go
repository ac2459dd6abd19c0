package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
	"github.com/pkordes/panda-market/internal/middleware"
)

type createPostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image" validate:"omitempty,max=2048"`
}

type updatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Image   *string `json:"image" validate:"omitempty,max=2048"`
}

type postAuthorResponse struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

type postResponse struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Image     string              `json:"image,omitempty"`
	Author    *postAuthorResponse `json:"author"`
	LikeCount int                 `json:"likeCount"`
	IsLiked   bool                `json:"isLiked"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func newPostResponse(p domain.Post) postResponse {
	resp := postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		LikeCount: p.LikeCount,
		IsLiked:   p.IsLiked,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author != nil {
		resp.Author = &postAuthorResponse{ID: p.Author.ID, Nickname: p.Author.Nickname}
	}
	return resp
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[createPostRequest](w, r)
	if !ok {
		return
	}

	post, err := s.posts.Create(r.Context(), middleware.UserID(r.Context()), req.Title, req.Content, req.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/posts/%d", post.ID))
	httpx.JSON(w, http.StatusCreated, newPostResponse(post))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := s.posts.Get(r.Context(), id, middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newPostResponse(post))
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	posts, err := s.posts.List(r.Context(), params, middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out})
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httpx.DecodeValid[updatePostRequest](w, r)
	if !ok {
		return
	}

	post, err := s.posts.Update(r.Context(), id, middleware.UserID(r.Context()), domain.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newPostResponse(post))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.posts.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTogglePostLike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	liked, err := s.posts.ToggleLike(r.Context(), id, middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"isLiked": liked})
}
