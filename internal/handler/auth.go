package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/panda-market/internal/httpx"
	"github.com/pkordes/panda-market/internal/middleware"
	"github.com/pkordes/panda-market/internal/service"
	"github.com/pkordes/panda-market/internal/token"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[signupRequest](w, r)
	if !ok {
		return
	}

	user, err := s.auth.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := httpx.DecodeValid[loginRequest](w, r)
	if !ok {
		return
	}

	user, pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.setAuthCookies(w, pair)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user":        newUserResponse(user),
		"accessToken": pair.Access,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refresh := refreshTokenFrom(r)
	if refresh == "" {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized", "refresh token required")
		return
	}

	pair, err := s.auth.Refresh(r.Context(), refresh)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.setAuthCookies(w, pair)
	httpx.JSON(w, http.StatusOK, map[string]string{"accessToken": pair.Access})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if refresh := refreshTokenFrom(r); refresh != "" {
		if err := s.auth.Logout(r.Context(), refresh); err != nil {
			writeError(w, r, err)
			return
		}
	}
	s.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// refreshTokenFrom reads the refresh token from its cookie, falling back to
// a JSON-less form value for clients that cannot send cookies.
func refreshTokenFrom(r *http.Request) string {
	if c, err := r.Cookie(middleware.RefreshCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.PostFormValue("refreshToken")
}

func (s *Server) setAuthCookies(w http.ResponseWriter, pair service.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    pair.Access,
		Path:     "/",
		MaxAge:   int(token.AccessTTL / time.Second),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    pair.Refresh,
		Path:     "/",
		MaxAge:   int(token.RefreshTTL / time.Second),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessCookieName, middleware.RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
