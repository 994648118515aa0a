package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/common/errorx"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	p := &Principal{UserID: 1, Username: "alice", Email: "alice@example.com", Role: database.RoleUser}
	id, err := store.Create(ctx, p, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, got.IsAdmin())

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, errorx.ErrNoSession)

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, id))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	id, err := store.Create(ctx, &Principal{UserID: 2}, 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, errorx.ErrNoSession)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Get(context.Background(), "not-a-session")
	assert.ErrorIs(t, err, errorx.ErrNoSession)
}
