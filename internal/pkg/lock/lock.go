// Package lock provides per-user locking for gold mutations and for
// enforcing a single active casino game per user.
package lock

import (
	"context"
	"sync"
	"time"
)

// userMutex wraps a mutex so the map holds a stable pointer per user.
type userMutex struct {
	mu sync.Mutex
}

// UserLock hands out one mutex per user ID. Gold-mutating paths take the
// lock around their read-modify-write; game commands use TryLock so a user
// cannot open a second table while one is live.
type UserLock struct {
	locks sync.Map // map[int64]*userMutex
}

// NewUserLock creates a new UserLock instance.
func NewUserLock() *UserLock {
	return &UserLock{}
}

// getLock retrieves or creates the mutex for the given user ID.
func (ul *UserLock) getLock(userID int64) *userMutex {
	if v, ok := ul.locks.Load(userID); ok {
		return v.(*userMutex)
	}

	actual, _ := ul.locks.LoadOrStore(userID, &userMutex{})
	return actual.(*userMutex)
}

// Lock acquires the lock for a user, blocking until it is free.
func (ul *UserLock) Lock(userID int64) {
	ul.getLock(userID).mu.Lock()
}

// Unlock releases the lock for a user.
func (ul *UserLock) Unlock(userID int64) {
	if v, ok := ul.locks.Load(userID); ok {
		v.(*userMutex).mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (ul *UserLock) TryLock(userID int64) bool {
	return ul.getLock(userID).mu.TryLock()
}

// LockWithTimeout attempts to acquire the lock, giving up after timeout.
// Returns true if the lock was acquired.
func (ul *UserLock) LockWithTimeout(ctx context.Context, userID int64, timeout time.Duration) bool {
	l := ul.getLock(userID)

	done := make(chan struct{})
	go func() {
		l.mu.Lock()
		close(done)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-done:
		return true
	case <-timeoutCtx.Done():
		// The waiting goroutine still acquires the lock eventually;
		// release it as soon as it does.
		go func() {
			<-done
			l.mu.Unlock()
		}()
		return false
	}
}

// WithLock executes a function while holding the user's lock.
func (ul *UserLock) WithLock(userID int64, fn func() error) error {
	ul.Lock(userID)
	defer ul.Unlock(userID)
	return fn()
}

// WithLockContext executes a function while holding the user's lock, giving
// up with ErrLockTimeout when the lock stays contended. Gold grants use this
// so a user's live game, which holds the lock for its whole duration, makes
// the grant fail fast instead of parking a goroutine until the game ends.
func (ul *UserLock) WithLockContext(ctx context.Context, userID int64, timeout time.Duration, fn func() error) error {
	if !ul.LockWithTimeout(ctx, userID, timeout) {
		return ErrLockTimeout
	}
	defer ul.Unlock(userID)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fn()
	}
}
