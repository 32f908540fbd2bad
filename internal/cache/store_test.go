package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/cache"
)

func TestStore_GetMissesWhenEmpty(t *testing.T) {
	s := cache.New()

	_, ok := s.Get(cache.ProjectsKey())
	require.False(t, ok)

	_, ok = s.Peek(cache.ProjectsKey())
	require.False(t, ok)
}

func TestStore_SetThenGet(t *testing.T) {
	s := cache.New()
	key := cache.TasksKey("p1")

	s.Set(key, []string{"t1", "t2"})

	got, ok := s.Get(key)
	require.True(t, ok)
	require.Equal(t, []string{"t1", "t2"}, got)
}

func TestStore_KeysAreIndependent(t *testing.T) {
	s := cache.New()
	s.Set(cache.TasksKey("p1"), "one")
	s.Set(cache.TasksKey("p2"), "two")

	got, ok := s.Get(cache.TasksKey("p1"))
	require.True(t, ok)
	require.Equal(t, "one", got)

	s.Invalidate(cache.TasksKey("p1"))

	_, ok = s.Get(cache.TasksKey("p1"))
	require.False(t, ok)
	got, ok = s.Get(cache.TasksKey("p2"))
	require.True(t, ok)
	require.Equal(t, "two", got)
}

func TestStore_InvalidateKeepsValueForPeek(t *testing.T) {
	s := cache.New()
	key := cache.MembersKey("p1")
	s.Set(key, "members")

	s.Invalidate(key)

	_, ok := s.Get(key)
	require.False(t, ok)

	got, ok := s.Peek(key)
	require.True(t, ok)
	require.Equal(t, "members", got)
}

func TestStore_SetClearsStale(t *testing.T) {
	s := cache.New()
	key := cache.ProjectsKey()
	s.Set(key, "old")
	s.Invalidate(key)

	s.Set(key, "new")

	got, ok := s.Get(key)
	require.True(t, ok)
	require.Equal(t, "new", got)
}

func TestStore_InvalidateUnknownKeyIsNoOp(t *testing.T) {
	s := cache.New()
	s.Invalidate(cache.TasksKey("nope"))

	_, ok := s.Get(cache.TasksKey("nope"))
	require.False(t, ok)
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := cache.New()
	key := cache.TasksKey("p1")

	_, ok := s.Snapshot(key)
	require.False(t, ok)

	s.Set(key, []int{1, 2, 3})
	snap, ok := s.Snapshot(key)
	require.True(t, ok)

	s.Set(key, []int{9})
	s.Restore(key, snap)

	got, ok := s.Get(key)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestStore_SnapshotSeesStaleValue(t *testing.T) {
	s := cache.New()
	key := cache.TasksKey("p1")
	s.Set(key, "v")
	s.Invalidate(key)

	snap, ok := s.Snapshot(key)
	require.True(t, ok)
	require.Equal(t, "v", snap)
}

func TestStore_SubscribeNotifiedOnSetAndInvalidate(t *testing.T) {
	s := cache.New()
	key := cache.ProjectsKey()

	var calls int
	unsubscribe := s.Subscribe(key, func() { calls++ })

	s.Set(key, "a")
	require.Equal(t, 1, calls)

	s.Invalidate(key)
	require.Equal(t, 2, calls)

	unsubscribe()
	s.Set(key, "b")
	require.Equal(t, 2, calls)
}

func TestStore_SubscriberMayCallBackIn(t *testing.T) {
	s := cache.New()
	key := cache.TasksKey("p1")

	var seen any
	s.Subscribe(key, func() {
		// Re-entrant read from the notification must not deadlock.
		seen, _ = s.Peek(key)
	})

	s.Set(key, "fresh")
	require.Equal(t, "fresh", seen)
}

func TestStore_CancelReads(t *testing.T) {
	s := cache.New()
	key := cache.TasksKey("p1")

	rctx, done := s.BeginRead(context.Background(), key)
	defer done()

	require.NoError(t, rctx.Err())

	s.CancelReads(key)
	require.ErrorIs(t, rctx.Err(), context.Canceled)
}

func TestStore_CancelReadsOnlyHitsKey(t *testing.T) {
	s := cache.New()

	rctx1, done1 := s.BeginRead(context.Background(), cache.TasksKey("p1"))
	defer done1()
	rctx2, done2 := s.BeginRead(context.Background(), cache.TasksKey("p2"))
	defer done2()

	s.CancelReads(cache.TasksKey("p1"))

	require.ErrorIs(t, rctx1.Err(), context.Canceled)
	require.NoError(t, rctx2.Err())
}

func TestStore_SettledReadIsNotCancelledLater(t *testing.T) {
	s := cache.New()
	key := cache.TasksKey("p1")

	rctx, done := s.BeginRead(context.Background(), key)
	done()

	// The read already settled; a later sweep finds nothing.
	s.CancelReads(key)
	require.ErrorIs(t, rctx.Err(), context.Canceled) // done() itself cancels
}

func TestStore_BeginReadInheritsParentCancellation(t *testing.T) {
	s := cache.New()
	parent, cancel := context.WithCancel(context.Background())

	rctx, done := s.BeginRead(parent, cache.TasksKey("p1"))
	defer done()

	cancel()
	require.ErrorIs(t, rctx.Err(), context.Canceled)
}
