package replay_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/replay"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_Accept(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("accepts first counter", func(t *testing.T) {
		t.Parallel()
		store := replay.NewMemoryStore(replay.WithCleanupInterval(0))
		defer store.Close()

		ok, err := store.Accept(ctx, "alice", 100, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects same and older counters", func(t *testing.T) {
		t.Parallel()
		store := replay.NewMemoryStore(replay.WithCleanupInterval(0))
		defer store.Close()

		ok, err := store.Accept(ctx, "alice", 100, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.Accept(ctx, "alice", 100, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Accept(ctx, "alice", 99, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Accept(ctx, "alice", 101, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		store := replay.NewMemoryStore(replay.WithCleanupInterval(0))
		defer store.Close()

		ok, err := store.Accept(ctx, "alice", 100, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.Accept(ctx, "bob", 100, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		store := replay.NewMemoryStore(replay.WithCleanupInterval(0))
		defer store.Close()

		_, err := store.Accept(ctx, "", 1, time.Minute)
		assert.ErrorIs(t, err, replay.ErrEmptyKey)
	})

	t.Run("reset forgets history", func(t *testing.T) {
		t.Parallel()
		store := replay.NewMemoryStore(replay.WithCleanupInterval(0))
		defer store.Close()

		_, err := store.Accept(ctx, "alice", 100, time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Reset(ctx, "alice"))

		ok, err := store.Accept(ctx, "alice", 100, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := replay.NewMemoryStore(replay.WithCleanupInterval(0), replay.WithNow(clock.Now))
	defer store.Close()

	ok, err := store.Accept(ctx, "alice", 100, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(30 * time.Second)
	ok, err = store.Accept(ctx, "alice", 100, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	clock.Advance(31 * time.Second)
	ok, err = store.Accept(ctx, "alice", 100, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_NoTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := replay.NewMemoryStore(replay.WithCleanupInterval(0), replay.WithNow(clock.Now))
	defer store.Close()

	_, err := store.Accept(ctx, "alice", 100, 0)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	ok, err := store.Accept(ctx, "alice", 100, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := replay.NewMemoryStore(replay.WithCleanupInterval(10 * time.Millisecond))
	defer store.Close()

	_, err := store.Accept(ctx, "short", 1, 5*time.Millisecond)
	require.NoError(t, err)
	_, err = store.Accept(ctx, "long", 1, time.Hour)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_ConcurrentSameCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := replay.NewMemoryStore(replay.WithCleanupInterval(0))
	defer store.Close()

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Accept(ctx, "alice", 42, time.Minute)
			if err == nil && ok {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	t.Parallel()
	store := replay.NewMemoryStore()
	store.Close()
	assert.NotPanics(t, store.Close)
}
