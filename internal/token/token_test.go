package token

import (
	"testing"
	"time"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestManager_roundTrip(t *testing.T) {
	m := NewManager("test-secret")

	access, refresh, err := m.IssuePair(42)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	id, err := m.ParseAccess(access)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)

	id, err = m.ParseRefresh(refresh)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestManager_rejectsWrongKind(t *testing.T) {
	m := NewManager("test-secret")

	access, refresh, err := m.IssuePair(42)
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = m.ParseRefresh(access)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_rejectsWrongSecret(t *testing.T) {
	access, _, err := NewManager("secret-a").IssuePair(42)
	require.NoError(t, err)

	_, err = NewManager("secret-b").ParseAccess(access)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_rejectsExpired(t *testing.T) {
	m := NewManager("test-secret")
	issued := time.Now()
	m.now = func() time.Time { return issued }

	access, _, err := m.IssuePair(42)
	require.NoError(t, err)

	// Within the TTL the token verifies.
	m.now = func() time.Time { return issued.Add(AccessTTL - time.Minute) }
	_, err = m.ParseAccess(access)
	require.NoError(t, err)

	// Past the TTL it does not.
	m.now = func() time.Time { return issued.Add(AccessTTL + time.Minute) }
	_, err = m.ParseAccess(access)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_rejectsGarbage(t *testing.T) {
	m := NewManager("test-secret")

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.ParseAccess(raw)
		require.ErrorIs(t, err, domain.ErrUnauthorized, raw)
	}
}
