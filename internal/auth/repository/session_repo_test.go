package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
)

func newSession(token, user string, ttl time.Duration) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{Token: token, Username: user, CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

func setupRedis(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client), mr
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedis(t)

	require.NoError(t, store.Create(ctx, newSession("sess_a", "alice", time.Hour)))

	got, err := store.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	assert.True(t, mr.Exists("bugtracker:session:sess_a"))
	ok, err := mr.SIsMember("bugtracker:user:alice:sessions", "sess_a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "sess_a"))
	_, err = store.Get(ctx, "sess_a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "sess_a"), domain.ErrSessionNotFound)
}

func TestRedisSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedis(t)

	require.NoError(t, store.Create(ctx, newSession("sess_b", "bob", time.Minute)))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sess_b")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.Error(t, store.Create(ctx, newSession("sess_c", "bob", -time.Second)))
}

func TestRedisSessionStore_DeleteByUsername(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedis(t)

	require.NoError(t, store.Create(ctx, newSession("sess_1", "alice", time.Hour)))
	require.NoError(t, store.Create(ctx, newSession("sess_2", "alice", time.Hour)))
	require.NoError(t, store.Create(ctx, newSession("sess_3", "bob", time.Hour)))

	require.NoError(t, store.DeleteByUsername(ctx, "alice"))

	for _, tok := range []string{"sess_1", "sess_2"} {
		_, err := store.Get(ctx, tok)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	}
	_, err := store.Get(ctx, "sess_3")
	assert.NoError(t, err)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, newSession("sess_a", "alice", time.Hour)))
	require.NoError(t, store.Create(ctx, newSession("sess_b", "alice", time.Hour)))

	got, err := store.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = store.Get(ctx, "sess_a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	store.now = time.Now
	require.NoError(t, store.Create(ctx, newSession("sess_c", "alice", time.Hour)))
	require.NoError(t, store.DeleteByUsername(ctx, "alice"))
	_, err = store.Get(ctx, "sess_c")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
