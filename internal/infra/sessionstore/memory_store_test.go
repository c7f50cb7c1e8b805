package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/aqi-analyst/internal/domain/insights"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	session := insights.Session{ID: uuid.New(), Filename: "aqi.csv", CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, session))

	got, ok, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.ID, got.ID)
	require.Equal(t, "aqi.csv", got.Filename)
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, ok, err := store.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreSetDigest(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	session := insights.Session{ID: uuid.New()}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.SetDigest(ctx, session.ID, "### DATASET SUMMARY"))

	got, ok, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "### DATASET SUMMARY", got.Digest)
}

func TestMemoryStoreSetDigestUnknownIsNoop(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	require.NoError(t, store.SetDigest(context.Background(), uuid.New(), "digest"))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	session := insights.Session{ID: uuid.New()}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, ok, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Delete(ctx, session.ID))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	session := insights.Session{ID: uuid.New()}
	require.NoError(t, store.Save(ctx, session))

	time.Sleep(25 * time.Millisecond)

	_, ok, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	session := insights.Session{ID: uuid.New()}
	require.NoError(t, store.Save(ctx, session))

	_, ok, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, ok)
}
