package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:          "sess-1",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
		Profile:     domainauth.Profile{ID: "u1", Email: "admin@fitpick.io", RoleID: domainauth.AdminRoleID},
	}

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.AccessToken, got.AccessToken)
	assert.Equal(t, sess.Profile.Email, got.Profile.Email)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	store := NewSessionStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_ExpiredSessionIsPurged(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:          "sess-expired",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.Save(ctx, sess))

	_, err := store.Get(ctx, "sess-expired")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len(), "expired session must be removed on lookup")
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := domainauth.Session{ID: "sess-2", AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, "sess-2"))

	_, err := store.Get(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing session is a no-op.
	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	store := NewSessionStore()
	err := store.Save(context.Background(), domainauth.Session{AccessToken: "tok"})
	assert.Error(t, err)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{
		ID:          "sess-live",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}))
	require.NoError(t, store.Save(ctx, domainauth.Session{
		ID:          "sess-stale",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}))
	require.NoError(t, store.Save(ctx, domainauth.Session{
		ID:          "sess-stale-2",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Hour),
	}))

	assert.Equal(t, 2, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(ctx, "sess-live")
	assert.NoError(t, err)
}
