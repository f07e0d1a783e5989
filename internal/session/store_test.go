package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giraffekitchen/kitchenctl/internal/db"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.OpenDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn)
}

func TestCurrentWithoutSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Current(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveAndCurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	branchID := 2
	user := domain.User{
		ID:       7,
		Email:    "dana@example.com",
		FullName: "Dana Levi",
		Role:     domain.RoleBranchManager,
		BranchID: &branchID,
	}
	require.NoError(t, store.Save(ctx, "token-abc", user))

	sess, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", sess.Token)
	assert.Equal(t, user.Email, sess.User.Email)
	assert.Equal(t, domain.RoleBranchManager, sess.User.Role)
	require.NotNil(t, sess.User.BranchID)
	assert.Equal(t, 2, *sess.User.BranchID)
	assert.False(t, sess.SavedAt.IsZero())
}

func TestSaveReplacesPreviousSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "first", domain.User{ID: 1, Email: "a@example.com", Role: domain.RoleHQ}))
	require.NoError(t, store.Save(ctx, "second", domain.User{ID: 2, Email: "b@example.com", Role: domain.RoleHQ}))

	sess, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", sess.Token)
	assert.Equal(t, "b@example.com", sess.User.Email)
}

func TestHQUserRoundTripsNilBranch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t", domain.User{ID: 1, Email: "hq@example.com", Role: domain.RoleHQ}))

	sess, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess.User.BranchID)
	assert.True(t, sess.User.IsHQ())
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t", domain.User{ID: 1, Email: "a@example.com", Role: domain.RoleHQ}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear(ctx))
}

func TestPreferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	val, err := store.Preference(ctx, "reports.branch")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, store.SetPreference(ctx, "reports.branch", "3"))
	require.NoError(t, store.SetPreference(ctx, "reports.branch", "5"))

	val, err = store.Preference(ctx, "reports.branch")
	require.NoError(t, err)
	assert.Equal(t, "5", val)
}
