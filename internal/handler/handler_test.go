package handler_test

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/handler"
	"github.com/pkordes/panda-market/internal/middleware"
	"github.com/pkordes/panda-market/internal/service"
)

// stubVerifier accepts tokens of the form "user:<id>".
type stubVerifier struct{}

func (stubVerifier) ParseAccess(raw string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(raw, "user:%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("stub: %w", domain.ErrUnauthorized)
	}
	return id, nil
}

// The stub servicers below implement the handler's consumer interfaces with
// function fields, so each test wires only the calls it expects.

type stubProducts struct {
	createFn func(ctx context.Context, in service.CreateProductInput) (domain.Product, error)
	getFn    func(ctx context.Context, id int64) (domain.Product, error)
	listFn   func(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error)
	updateFn func(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubProducts) Create(ctx context.Context, in service.CreateProductInput) (domain.Product, error) {
	return s.createFn(ctx, in)
}
func (s *stubProducts) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.getFn(ctx, id)
}
func (s *stubProducts) List(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error) {
	return s.listFn(ctx, p)
}
func (s *stubProducts) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	return s.updateFn(ctx, id, patch)
}
func (s *stubProducts) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubArticles struct{}

func (stubArticles) Create(context.Context, string, string) (domain.Article, error) {
	return domain.Article{}, nil
}
func (stubArticles) Get(context.Context, int64) (domain.Article, error) {
	return domain.Article{}, nil
}
func (stubArticles) List(context.Context, domain.ListParams) ([]domain.Article, int64, error) {
	return nil, 0, nil
}
func (stubArticles) Update(context.Context, int64, domain.ArticlePatch) (domain.Article, error) {
	return domain.Article{}, nil
}
func (stubArticles) Delete(context.Context, int64) error { return nil }

type stubComments struct{}

func (stubComments) CreateForProduct(context.Context, int64, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}
func (stubComments) CreateForArticle(context.Context, int64, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}
func (stubComments) ListByProduct(context.Context, int64, domain.CursorParams) (domain.CommentPage, error) {
	return domain.CommentPage{}, nil
}
func (stubComments) ListByArticle(context.Context, int64, domain.CursorParams) (domain.CommentPage, error) {
	return domain.CommentPage{}, nil
}
func (stubComments) Update(context.Context, int64, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}
func (stubComments) Delete(context.Context, int64) error { return nil }

type stubPosts struct {
	getFn        func(ctx context.Context, id, viewerID int64) (domain.Post, error)
	toggleLikeFn func(ctx context.Context, id, userID int64) (bool, error)
}

func (stubPosts) Create(context.Context, int64, string, string, string) (domain.Post, error) {
	return domain.Post{}, nil
}
func (s *stubPosts) Get(ctx context.Context, id, viewerID int64) (domain.Post, error) {
	return s.getFn(ctx, id, viewerID)
}
func (stubPosts) List(context.Context, domain.ListParams, int64) ([]domain.Post, error) {
	return nil, nil
}
func (stubPosts) Update(context.Context, int64, int64, domain.PostPatch) (domain.Post, error) {
	return domain.Post{}, nil
}
func (stubPosts) Delete(context.Context, int64, int64) error { return nil }
func (s *stubPosts) ToggleLike(ctx context.Context, id, userID int64) (bool, error) {
	return s.toggleLikeFn(ctx, id, userID)
}

type stubAuth struct {
	loginFn func(ctx context.Context, email, password string) (domain.User, service.TokenPair, error)
}

func (stubAuth) Signup(context.Context, service.SignupInput) (domain.User, error) {
	return domain.User{}, nil
}
func (s *stubAuth) Login(ctx context.Context, email, password string) (domain.User, service.TokenPair, error) {
	return s.loginFn(ctx, email, password)
}
func (stubAuth) Refresh(context.Context, string) (service.TokenPair, error) {
	return service.TokenPair{}, nil
}
func (stubAuth) Logout(context.Context, string) error { return nil }

type stubUsers struct{}

func (stubUsers) Get(context.Context, int64) (domain.User, error) { return domain.User{}, nil }
func (stubUsers) UpdateProfile(context.Context, int64, *string, *string) (domain.User, error) {
	return domain.User{}, nil
}
func (stubUsers) ChangePassword(context.Context, int64, string, string) error { return nil }

type stubUploads struct{}

func (stubUploads) SaveImage(multipart.File, *multipart.FileHeader) (string, error) {
	return "/uploads/x.png", nil
}

type serverStubs struct {
	products *stubProducts
	posts    *stubPosts
	auth     *stubAuth
}

func newTestServer(stubs serverStubs) http.Handler {
	if stubs.products == nil {
		stubs.products = &stubProducts{}
	}
	if stubs.posts == nil {
		stubs.posts = &stubPosts{}
	}
	if stubs.auth == nil {
		stubs.auth = &stubAuth{}
	}
	srv := handler.NewServer(
		stubs.products,
		stubArticles{},
		stubComments{},
		stubs.posts,
		stubs.auth,
		stubUsers{},
		stubUploads{},
		stubVerifier{},
		false,
	)
	return srv.Routes()
}

func doCookieRequest(t *testing.T, h http.Handler, method, path, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: accessToken})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
