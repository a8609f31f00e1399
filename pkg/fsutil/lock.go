package fsutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a path to name its advisory lock file.
const LockSuffix = ".gradlint.lock"

const lockPollInterval = 10 * time.Millisecond

// ErrLockTimeout is returned when the lock for a path could not be acquired
// before the context was done.
var ErrLockTimeout = errors.New("timeout acquiring file lock")

// WithLock runs fn while holding an exclusive advisory lock for path. Two
// gradlint processes fixing the same tree therefore never interleave the
// check-modified and write steps of one file.
//
// The lock file stays on disk after release. Unlinking it would let a waiter
// that already opened the old inode lock it while a newcomer locks a fresh
// file at the same path.
func WithLock(ctx context.Context, path string, fn func() error) error {
	lockPath := path + LockSuffix
	lock := flock.New(lockPath)

	locked, err := lock.TryLockContext(ctx, lockPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}
		return fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLockTimeout, path)
	}

	defer func() { _ = lock.Unlock() }()

	return fn()
}
