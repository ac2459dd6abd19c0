package repo_test

import (
	"testing"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, store *repo.Store, authorID int64, title string) domain.Post {
	t.Helper()
	p, err := store.Posts.Create(ctx(), domain.Post{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return p
}

func TestPostRepo_CreateAndGet(t *testing.T) {
	store := newTestStore(t)

	author := createUser(t, store, "a@b.com", "panda")
	created := createPost(t, store, author.ID, "hello")

	require.NotZero(t, created.ID)
	require.NotNil(t, created.Author)
	require.Equal(t, "panda", created.Author.Nickname)
	require.Zero(t, created.LikeCount)

	got, err := store.Posts.GetByID(ctx(), created.ID, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Title)
	require.False(t, got.IsLiked)
}

func TestPostRepo_likes(t *testing.T) {
	store := newTestStore(t)

	author := createUser(t, store, "a@b.com", "panda")
	fan := createUser(t, store, "f@b.com", "fan")
	post := createPost(t, store, author.ID, "hello")

	require.NoError(t, store.Posts.AddLike(ctx(), post.ID, fan.ID))
	// Idempotent.
	require.NoError(t, store.Posts.AddLike(ctx(), post.ID, fan.ID))

	liked, err := store.Posts.Liked(ctx(), post.ID, fan.ID)
	require.NoError(t, err)
	require.True(t, liked)

	// The viewer sees their own like; others do not.
	asFan, err := store.Posts.GetByID(ctx(), post.ID, fan.ID)
	require.NoError(t, err)
	require.Equal(t, 1, asFan.LikeCount)
	require.True(t, asFan.IsLiked)

	asAuthor, err := store.Posts.GetByID(ctx(), post.ID, author.ID)
	require.NoError(t, err)
	require.Equal(t, 1, asAuthor.LikeCount)
	require.False(t, asAuthor.IsLiked)

	require.NoError(t, store.Posts.RemoveLike(ctx(), post.ID, fan.ID))
	liked, err = store.Posts.Liked(ctx(), post.ID, fan.ID)
	require.NoError(t, err)
	require.False(t, liked)
}

func TestPostRepo_List(t *testing.T) {
	store := newTestStore(t)

	author := createUser(t, store, "a@b.com", "panda")
	createPost(t, store, author.ID, "first post")
	createPost(t, store, author.ID, "second post")
	createPost(t, store, author.ID, "unrelated title")

	posts, err := store.Posts.List(ctx(), domain.ListParams{Limit: 10}, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	filtered, err := store.Posts.List(ctx(), domain.ListParams{Limit: 10, Query: "post"}, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestPostRepo_UpdateFields(t *testing.T) {
	store := newTestStore(t)

	author := createUser(t, store, "a@b.com", "panda")
	post := createPost(t, store, author.ID, "draft")

	title := "final"
	updated, err := store.Posts.UpdateFields(ctx(), post.ID, domain.PostPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "final", updated.Title)
	require.Equal(t, post.Content, updated.Content)

	_, err = store.Posts.UpdateFields(ctx(), 999999, domain.PostPatch{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostRepo_Delete_cascadesLikes(t *testing.T) {
	store := newTestStore(t)

	author := createUser(t, store, "a@b.com", "panda")
	post := createPost(t, store, author.ID, "hello")
	require.NoError(t, store.Posts.AddLike(ctx(), post.ID, author.ID))

	require.NoError(t, store.Posts.Delete(ctx(), post.ID))

	_, err := store.Posts.GetByID(ctx(), post.ID, 0)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, store.Posts.Delete(ctx(), post.ID), domain.ErrNotFound)
}
