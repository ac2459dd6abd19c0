package service_test

import (
	"context"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// fakeStore satisfies service.Store. InTx hands fn the configured repo set
// and counts outcomes so tests can assert commit/rollback behavior.
type fakeStore struct {
	repos     repo.Repos
	commits   int
	rollbacks int
}

func (s *fakeStore) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	if err := fn(s.repos); err != nil {
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

// The fake repos below implement their repo interfaces with function fields.
// A nil field means the test does not expect that call; invoking it panics
// so unexpected repo access fails loudly.

type fakeProductRepo struct {
	createFn       func(ctx context.Context, p domain.Product) (domain.Product, error)
	getByIDFn      func(ctx context.Context, id int64) (domain.Product, error)
	slugTakenFn    func(ctx context.Context, slug string, excludeID int64) (bool, error)
	listFn         func(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error)
	updateFieldsFn func(ctx context.Context, id int64, patch domain.ProductPatch, slug *string) error
	deleteFn       func(ctx context.Context, id int64) error
}

func (f *fakeProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if f.createFn == nil {
		panic("unexpected ProductRepo.Create")
	}
	return f.createFn(ctx, p)
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	if f.getByIDFn == nil {
		panic("unexpected ProductRepo.GetByID")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeProductRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	if f.slugTakenFn == nil {
		panic("unexpected ProductRepo.SlugTaken")
	}
	return f.slugTakenFn(ctx, slug, excludeID)
}

func (f *fakeProductRepo) List(ctx context.Context, p domain.ListParams) ([]domain.ProductSummary, int64, error) {
	if f.listFn == nil {
		panic("unexpected ProductRepo.List")
	}
	return f.listFn(ctx, p)
}

func (f *fakeProductRepo) UpdateFields(ctx context.Context, id int64, patch domain.ProductPatch, slug *string) error {
	if f.updateFieldsFn == nil {
		panic("unexpected ProductRepo.UpdateFields")
	}
	return f.updateFieldsFn(ctx, id, patch, slug)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("unexpected ProductRepo.Delete")
	}
	return f.deleteFn(ctx, id)
}

type fakeTagRepo struct {
	upsertFn             func(ctx context.Context, name string) (domain.Tag, error)
	linkProductFn        func(ctx context.Context, productID, tagID int64) error
	unlinkProductFn      func(ctx context.Context, productID int64) error
	listNamesByProductFn func(ctx context.Context, productID int64) ([]string, error)
}

func (f *fakeTagRepo) Upsert(ctx context.Context, name string) (domain.Tag, error) {
	if f.upsertFn == nil {
		panic("unexpected TagRepo.Upsert")
	}
	return f.upsertFn(ctx, name)
}

func (f *fakeTagRepo) LinkProduct(ctx context.Context, productID, tagID int64) error {
	if f.linkProductFn == nil {
		panic("unexpected TagRepo.LinkProduct")
	}
	return f.linkProductFn(ctx, productID, tagID)
}

func (f *fakeTagRepo) UnlinkProduct(ctx context.Context, productID int64) error {
	if f.unlinkProductFn == nil {
		panic("unexpected TagRepo.UnlinkProduct")
	}
	return f.unlinkProductFn(ctx, productID)
}

func (f *fakeTagRepo) ListNamesByProduct(ctx context.Context, productID int64) ([]string, error) {
	if f.listNamesByProductFn == nil {
		panic("unexpected TagRepo.ListNamesByProduct")
	}
	return f.listNamesByProductFn(ctx, productID)
}

type fakeUserRepo struct {
	createFn         func(ctx context.Context, u domain.User) (domain.User, error)
	getByIDFn        func(ctx context.Context, id int64) (domain.User, error)
	getByEmailFn     func(ctx context.Context, email string) (domain.User, error)
	updateProfileFn  func(ctx context.Context, id int64, nickname, image *string) (domain.User, error)
	updatePasswordFn func(ctx context.Context, id int64, hash string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if f.createFn == nil {
		panic("unexpected UserRepo.Create")
	}
	return f.createFn(ctx, u)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	if f.getByIDFn == nil {
		panic("unexpected UserRepo.GetByID")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if f.getByEmailFn == nil {
		panic("unexpected UserRepo.GetByEmail")
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, nickname, image *string) (domain.User, error) {
	if f.updateProfileFn == nil {
		panic("unexpected UserRepo.UpdateProfile")
	}
	return f.updateProfileFn(ctx, id, nickname, image)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if f.updatePasswordFn == nil {
		panic("unexpected UserRepo.UpdatePassword")
	}
	return f.updatePasswordFn(ctx, id, hash)
}

type fakeTokenRepo struct {
	saveFn   func(ctx context.Context, token string, userID int64) error
	getFn    func(ctx context.Context, token string) (domain.RefreshToken, error)
	deleteFn func(ctx context.Context, token string) error
}

func (f *fakeTokenRepo) Save(ctx context.Context, token string, userID int64) error {
	if f.saveFn == nil {
		panic("unexpected TokenRepo.Save")
	}
	return f.saveFn(ctx, token, userID)
}

func (f *fakeTokenRepo) Get(ctx context.Context, token string) (domain.RefreshToken, error) {
	if f.getFn == nil {
		panic("unexpected TokenRepo.Get")
	}
	return f.getFn(ctx, token)
}

func (f *fakeTokenRepo) Delete(ctx context.Context, token string) error {
	if f.deleteFn == nil {
		panic("unexpected TokenRepo.Delete")
	}
	return f.deleteFn(ctx, token)
}

type fakePostRepo struct {
	createFn       func(ctx context.Context, p domain.Post) (domain.Post, error)
	getByIDFn      func(ctx context.Context, id, viewerID int64) (domain.Post, error)
	listFn         func(ctx context.Context, p domain.ListParams, viewerID int64) ([]domain.Post, error)
	updateFieldsFn func(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error)
	deleteFn       func(ctx context.Context, id int64) error
	likedFn        func(ctx context.Context, postID, userID int64) (bool, error)
	addLikeFn      func(ctx context.Context, postID, userID int64) error
	removeLikeFn   func(ctx context.Context, postID, userID int64) error
}

func (f *fakePostRepo) Create(ctx context.Context, p domain.Post) (domain.Post, error) {
	if f.createFn == nil {
		panic("unexpected PostRepo.Create")
	}
	return f.createFn(ctx, p)
}

func (f *fakePostRepo) GetByID(ctx context.Context, id, viewerID int64) (domain.Post, error) {
	if f.getByIDFn == nil {
		panic("unexpected PostRepo.GetByID")
	}
	return f.getByIDFn(ctx, id, viewerID)
}

func (f *fakePostRepo) List(ctx context.Context, p domain.ListParams, viewerID int64) ([]domain.Post, error) {
	if f.listFn == nil {
		panic("unexpected PostRepo.List")
	}
	return f.listFn(ctx, p, viewerID)
}

func (f *fakePostRepo) UpdateFields(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	if f.updateFieldsFn == nil {
		panic("unexpected PostRepo.UpdateFields")
	}
	return f.updateFieldsFn(ctx, id, patch)
}

func (f *fakePostRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("unexpected PostRepo.Delete")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakePostRepo) Liked(ctx context.Context, postID, userID int64) (bool, error) {
	if f.likedFn == nil {
		panic("unexpected PostRepo.Liked")
	}
	return f.likedFn(ctx, postID, userID)
}

func (f *fakePostRepo) AddLike(ctx context.Context, postID, userID int64) error {
	if f.addLikeFn == nil {
		panic("unexpected PostRepo.AddLike")
	}
	return f.addLikeFn(ctx, postID, userID)
}

func (f *fakePostRepo) RemoveLike(ctx context.Context, postID, userID int64) error {
	if f.removeLikeFn == nil {
		panic("unexpected PostRepo.RemoveLike")
	}
	return f.removeLikeFn(ctx, postID, userID)
}

type fakeArticleRepo struct {
	createFn       func(ctx context.Context, a domain.Article) (domain.Article, error)
	getByIDFn      func(ctx context.Context, id int64) (domain.Article, error)
	listFn         func(ctx context.Context, p domain.ListParams) ([]domain.Article, int64, error)
	updateFieldsFn func(ctx context.Context, id int64, patch domain.ArticlePatch) (domain.Article, error)
	deleteFn       func(ctx context.Context, id int64) error
}

func (f *fakeArticleRepo) Create(ctx context.Context, a domain.Article) (domain.Article, error) {
	if f.createFn == nil {
		panic("unexpected ArticleRepo.Create")
	}
	return f.createFn(ctx, a)
}

func (f *fakeArticleRepo) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	if f.getByIDFn == nil {
		panic("unexpected ArticleRepo.GetByID")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeArticleRepo) List(ctx context.Context, p domain.ListParams) ([]domain.Article, int64, error) {
	if f.listFn == nil {
		panic("unexpected ArticleRepo.List")
	}
	return f.listFn(ctx, p)
}

func (f *fakeArticleRepo) UpdateFields(ctx context.Context, id int64, patch domain.ArticlePatch) (domain.Article, error) {
	if f.updateFieldsFn == nil {
		panic("unexpected ArticleRepo.UpdateFields")
	}
	return f.updateFieldsFn(ctx, id, patch)
}

func (f *fakeArticleRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("unexpected ArticleRepo.Delete")
	}
	return f.deleteFn(ctx, id)
}

type fakeCommentRepo struct {
	createForProductFn func(ctx context.Context, productID int64, content string) (domain.Comment, error)
	createForArticleFn func(ctx context.Context, articleID int64, content string) (domain.Comment, error)
	listByProductFn    func(ctx context.Context, productID int64, p domain.CursorParams) (domain.CommentPage, error)
	listByArticleFn    func(ctx context.Context, articleID int64, p domain.CursorParams) (domain.CommentPage, error)
	updateFn           func(ctx context.Context, id int64, content string) (domain.Comment, error)
	deleteFn           func(ctx context.Context, id int64) error
}

func (f *fakeCommentRepo) CreateForProduct(ctx context.Context, productID int64, content string) (domain.Comment, error) {
	if f.createForProductFn == nil {
		panic("unexpected CommentRepo.CreateForProduct")
	}
	return f.createForProductFn(ctx, productID, content)
}

func (f *fakeCommentRepo) CreateForArticle(ctx context.Context, articleID int64, content string) (domain.Comment, error) {
	if f.createForArticleFn == nil {
		panic("unexpected CommentRepo.CreateForArticle")
	}
	return f.createForArticleFn(ctx, articleID, content)
}

func (f *fakeCommentRepo) ListByProduct(ctx context.Context, productID int64, p domain.CursorParams) (domain.CommentPage, error) {
	if f.listByProductFn == nil {
		panic("unexpected CommentRepo.ListByProduct")
	}
	return f.listByProductFn(ctx, productID, p)
}

func (f *fakeCommentRepo) ListByArticle(ctx context.Context, articleID int64, p domain.CursorParams) (domain.CommentPage, error) {
	if f.listByArticleFn == nil {
		panic("unexpected CommentRepo.ListByArticle")
	}
	return f.listByArticleFn(ctx, articleID, p)
}

func (f *fakeCommentRepo) Update(ctx context.Context, id int64, content string) (domain.Comment, error) {
	if f.updateFn == nil {
		panic("unexpected CommentRepo.Update")
	}
	return f.updateFn(ctx, id, content)
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("unexpected CommentRepo.Delete")
	}
	return f.deleteFn(ctx, id)
}
