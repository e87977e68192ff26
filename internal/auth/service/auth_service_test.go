package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
	"github.com/kwekamelia/web-grp-lab/internal/auth/repository"
	"github.com/kwekamelia/web-grp-lab/internal/testutil"
)

func newTestService(t *testing.T) (*AuthService, *testutil.FlakyGateway) {
	t.Helper()
	gw := testutil.NewFlakyGateway(testutil.OpenSQLite(t))
	svc, err := NewAuthService(repository.NewUserRepository(gw), repository.NewMemorySessionStore(), time.Hour)
	require.NoError(t, err)
	return svc, gw
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	require.NoError(t, svc.CreateUser(ctx, "alice", "s3cret"))

	t.Run("success", func(t *testing.T) {
		sess, err := svc.Login(ctx, "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice", sess.Username)
		assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

		got, err := svc.Resolve(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "mallory", "s3cret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestLogin_StorageError(t *testing.T) {
	ctx := context.Background()
	svc, gw := newTestService(t)
	require.NoError(t, svc.CreateUser(ctx, "alice", "s3cret"))

	gw.SetFail(true)
	_, err := svc.Login(ctx, "alice", "s3cret")
	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	require.NoError(t, svc.CreateUser(ctx, "alice", "s3cret"))

	sess, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, svc.Logout(ctx, sess.Token), domain.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Logout(ctx, ""), domain.ErrSessionNotFound)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateUser(ctx, "bob", "pw"))
	assert.ErrorIs(t, svc.CreateUser(ctx, "bob", "other"), domain.ErrUserExists)
	assert.ErrorIs(t, svc.CreateUser(ctx, " ", "pw"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.CreateUser(ctx, "carol", ""), domain.ErrInvalidCredentials)

	require.NoError(t, svc.EnsureUser(ctx, "bob", "other"))
	_, err := svc.Login(ctx, "bob", "pw")
	assert.NoError(t, err, "EnsureUser must not overwrite an existing password")
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	require.NoError(t, svc.CreateUser(ctx, "alice", "old"))

	sess, err := svc.Login(ctx, "alice", "old")
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(ctx, "alice", "new"))

	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "sessions are revoked")

	_, err = svc.Login(ctx, "alice", "old")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "alice", "new")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.SetPassword(ctx, "nobody", "x"), domain.ErrUserNotFound)
}
