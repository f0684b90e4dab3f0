package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockWithTimeoutContended(t *testing.T) {
	ul := NewUserLock()
	ul.Lock(7)

	ok := ul.LockWithTimeout(context.Background(), 7, 50*time.Millisecond)
	assert.False(t, ok, "lock held elsewhere should time out")

	err := ul.WithLockContext(context.Background(), 7, 50*time.Millisecond, func() error {
		t.Fatal("critical section must not run while the lock is held")
		return nil
	})
	assert.ErrorIs(t, err, ErrLockTimeout)

	ul.Unlock(7)

	// Once the holder releases, acquisition succeeds again.
	require.True(t, ul.LockWithTimeout(context.Background(), 7, time.Second))
	ul.Unlock(7)
}

func TestWithLockContextRunsWhenFree(t *testing.T) {
	ul := NewUserLock()

	ran := false
	err := ul.WithLockContext(context.Background(), 42, time.Second, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	// The lock is released afterwards.
	require.True(t, ul.TryLock(42))
	ul.Unlock(42)
}

func TestWithLockContextCancelledContext(t *testing.T) {
	ul := NewUserLock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ul.WithLockContext(ctx, 42, time.Second, func() error {
		t.Fatal("critical section must not run with a dead context")
		return nil
	})
	assert.Error(t, err)

	// The lock frees up again once any leftover waiter drains.
	require.Eventually(t, func() bool {
		if ul.TryLock(42) {
			ul.Unlock(42)
			return true
		}
		return false
	}, time.Second, 10*time.Millisecond)
}
