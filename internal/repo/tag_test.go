package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagRepo_Upsert(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Tags.Upsert(ctx(), "wood")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// Upserting the same name returns the same row.
	again, err := store.Tags.Upsert(ctx(), "wood")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	// Matching is case-sensitive: a different casing is a different tag.
	other, err := store.Tags.Upsert(ctx(), "Wood")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, other.ID)
}

func TestTagRepo_linkLifecycle(t *testing.T) {
	store := newTestStore(t)

	p := createProduct(t, store, "Chair", "chair")
	wood, err := store.Tags.Upsert(ctx(), "wood")
	require.NoError(t, err)
	oak, err := store.Tags.Upsert(ctx(), "oak")
	require.NoError(t, err)

	require.NoError(t, store.Tags.LinkProduct(ctx(), p.ID, wood.ID))
	require.NoError(t, store.Tags.LinkProduct(ctx(), p.ID, oak.ID))
	// Linking twice is a no-op.
	require.NoError(t, store.Tags.LinkProduct(ctx(), p.ID, wood.ID))

	names, err := store.Tags.ListNamesByProduct(ctx(), p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"oak", "wood"}, names)

	require.NoError(t, store.Tags.UnlinkProduct(ctx(), p.ID))

	names, err = store.Tags.ListNamesByProduct(ctx(), p.ID)
	require.NoError(t, err)
	require.Empty(t, names)

	// The tag rows themselves survive the unlink.
	again, err := store.Tags.Upsert(ctx(), "wood")
	require.NoError(t, err)
	require.Equal(t, wood.ID, again.ID)
}

func TestTagRepo_UnlinkProduct_noLinks(t *testing.T) {
	store := newTestStore(t)

	p := createProduct(t, store, "Chair", "chair")
	require.NoError(t, store.Tags.UnlinkProduct(ctx(), p.ID))
}
