package secondary

import "context"

// KeyLocker serializes generation of the same artifact across processes.
type KeyLocker interface {
	// Acquire blocks until the lock for key is held or ctx is done.
	// The returned func releases it.
	Acquire(ctx context.Context, key string) (func(), error)
}
