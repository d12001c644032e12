package memory

import (
	"context"

	"gitlab.com/pagetest.net/internal/core/ports/secondary"
)

var _ secondary.KeyLocker = Locker{}

// Locker grants every lock immediately. Within one process concurrent
// generations are already collapsed per key.
type Locker struct{}

func (Locker) Acquire(ctx context.Context, _ string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return func() {}, nil
}
