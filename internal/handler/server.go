// Package handler exposes the HTTP API. Each handler decodes and validates
// its request, calls the matching service, and renders JSON; error
// translation is centralized in writeError.
package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/middleware"
	"github.com/pkordes/panda-market/internal/service"
)

// ProductServicer is the product surface the handlers consume.
type ProductServicer interface {
	Create(ctx context.Context, in service.CreateProductInput) (domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.ProductSummary, int64, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ArticleServicer is the article surface the handlers consume.
type ArticleServicer interface {
	Create(ctx context.Context, title, content string) (domain.Article, error)
	Get(ctx context.Context, id int64) (domain.Article, error)
	List(ctx context.Context, params domain.ListParams) ([]domain.Article, int64, error)
	Update(ctx context.Context, id int64, patch domain.ArticlePatch) (domain.Article, error)
	Delete(ctx context.Context, id int64) error
}

// CommentServicer is the comment surface the handlers consume.
type CommentServicer interface {
	CreateForProduct(ctx context.Context, productID int64, content string) (domain.Comment, error)
	CreateForArticle(ctx context.Context, articleID int64, content string) (domain.Comment, error)
	ListByProduct(ctx context.Context, productID int64, params domain.CursorParams) (domain.CommentPage, error)
	ListByArticle(ctx context.Context, articleID int64, params domain.CursorParams) (domain.CommentPage, error)
	Update(ctx context.Context, id int64, content string) (domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// PostServicer is the post surface the handlers consume.
type PostServicer interface {
	Create(ctx context.Context, authorID int64, title, content, image string) (domain.Post, error)
	Get(ctx context.Context, id, viewerID int64) (domain.Post, error)
	List(ctx context.Context, params domain.ListParams, viewerID int64) ([]domain.Post, error)
	Update(ctx context.Context, id, userID int64, patch domain.PostPatch) (domain.Post, error)
	Delete(ctx context.Context, id, userID int64) error
	ToggleLike(ctx context.Context, id, userID int64) (bool, error)
}

// AuthServicer is the authentication surface the handlers consume.
type AuthServicer interface {
	Signup(ctx context.Context, in service.SignupInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (service.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// UserServicer is the account surface the handlers consume.
type UserServicer interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	UpdateProfile(ctx context.Context, id int64, nickname, image *string) (domain.User, error)
	ChangePassword(ctx context.Context, id int64, current, next string) error
}

// Uploader persists uploaded images and returns their public URL path.
type Uploader interface {
	SaveImage(file multipart.File, header *multipart.FileHeader) (string, error)
}

// Server holds the services the HTTP layer delegates to.
type Server struct {
	products ProductServicer
	articles ArticleServicer
	comments CommentServicer
	posts    PostServicer
	auth     AuthServicer
	users    UserServicer
	uploads  Uploader

	verifier      middleware.AccessVerifier
	secureCookies bool
}

// NewServer wires the services into a Server. secureCookies marks auth
// cookies Secure and should be on everywhere except local development.
func NewServer(
	products ProductServicer,
	articles ArticleServicer,
	comments CommentServicer,
	posts PostServicer,
	auth AuthServicer,
	users UserServicer,
	uploads Uploader,
	verifier middleware.AccessVerifier,
	secureCookies bool,
) *Server {
	return &Server{
		products:      products,
		articles:      articles,
		comments:      comments,
		posts:         posts,
		auth:          auth,
		users:         users,
		uploads:       uploads,
		verifier:      verifier,
		secureCookies: secureCookies,
	}
}

// Routes mounts every API route on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	requireAuth := middleware.RequireAuth(s.verifier)
	softAuth := middleware.SoftAuth(s.verifier)

	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/logout", s.handleLogout)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Get("/{id}", s.handleGetProduct)
		r.Get("/{id}/comments", s.handleListProductComments)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", s.handleCreateProduct)
			r.Patch("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
			r.Post("/{id}/comments", s.handleCreateProductComment)
		})
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.handleListArticles)
		r.Get("/{id}", s.handleGetArticle)
		r.Get("/{id}/comments", s.handleListArticleComments)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", s.handleCreateArticle)
			r.Patch("/{id}", s.handleUpdateArticle)
			r.Delete("/{id}", s.handleDeleteArticle)
			r.Post("/{id}/comments", s.handleCreateArticleComment)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(requireAuth)
		r.Patch("/{id}", s.handleUpdateComment)
		r.Delete("/{id}", s.handleDeleteComment)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(softAuth).Get("/", s.handleListPosts)
		r.With(softAuth).Get("/{id}", s.handleGetPost)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", s.handleCreatePost)
			r.Patch("/{id}", s.handleUpdatePost)
			r.Delete("/{id}", s.handleDeletePost)
			r.Post("/{id}/likes", s.handleTogglePostLike)
		})
	})

	r.Route("/users/me", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", s.handleGetMe)
		r.Patch("/", s.handleUpdateMe)
		r.Patch("/password", s.handleChangePassword)
	})

	r.With(requireAuth).Post("/uploads", s.handleUploadImage)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
