package lock

import "errors"

// ErrLockTimeout is returned when a user's lock cannot be acquired in time,
// typically because that user has a casino game running.
var ErrLockTimeout = errors.New("timed out waiting for user lock")
