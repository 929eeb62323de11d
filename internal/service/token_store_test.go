package service

import (
	"context"
	"testing"
	"time"

	"medisafe/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, newTestLogger()), mr
}

func TestTokenStoreSaveExistsRevoke(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()
	key := jwt.StoreKey(jwt.AccessToken, jwt.Subject{UserID: uuid.New()}, "tid")

	require.NoError(t, store.Save(ctx, key, time.Minute))
	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, key, time.Minute))
	require.NoError(t, store.Revoke(ctx, key))
	ok, _ = store.Exists(ctx, key)
	assert.False(t, ok)
}

func TestTokenStoreRevokeUserOnlyTouchesThatUser(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()
	target := jwt.Subject{UserID: uuid.New()}
	other := jwt.Subject{UserID: uuid.New()}

	targetAccess := jwt.StoreKey(jwt.AccessToken, target, "a1")
	targetRefresh := jwt.StoreKey(jwt.RefreshToken, target, "r1")
	otherAccess := jwt.StoreKey(jwt.AccessToken, other, "a2")
	for _, key := range []string{targetAccess, targetRefresh, otherAccess} {
		require.NoError(t, store.Save(ctx, key, time.Hour))
	}

	require.NoError(t, store.RevokeUser(ctx, target.UserID))

	for _, key := range []string{targetAccess, targetRefresh} {
		ok, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	ok, err := store.Exists(ctx, otherAccess)
	require.NoError(t, err)
	assert.True(t, ok)
}
