package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
	"github.com/pkordes/panda-market/internal/middleware"
)

type updateMeRequest struct {
	Nickname *string `json:"nickname" validate:"omitempty,min=1,max=50"`
	Image    *string `json:"image" validate:"omitempty,max=2048"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newUserResponse(user))
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[updateMeRequest](w, r)
	if !ok {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), middleware.UserID(r.Context()), req.Nickname, req.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newUserResponse(user))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[changePasswordRequest](w, r)
	if !ok {
		return
	}

	if err := s.users.ChangePassword(r.Context(), middleware.UserID(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
