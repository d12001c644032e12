package lockport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
)

var _ secondary.KeyLocker = (*KeyLocker)(nil)

const (
	lockKeyPrefix = "lock:"
	pollInterval  = 200 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// KeyLocker is a SET NX lock per artifact key. The TTL bounds how long a
// crashed holder can block others.
type KeyLocker struct {
	redisClient *redis.Client
	prefix      string
	ttl         time.Duration
	logger      primary.Logger
}

func NewKeyLocker(redisClient *redis.Client, prefix string, ttl time.Duration, logger primary.Logger) *KeyLocker {
	return &KeyLocker{
		redisClient: redisClient,
		prefix:      prefix,
		ttl:         ttl,
		logger:      logger,
	}
}

func (l *KeyLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + lockKeyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	waited := false
	for {
		ok, err := l.redisClient.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			l.logger.Error("Failed to acquire lock", "key", key, "error", err)
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			if waited {
				l.logger.Debug("Lock acquired after waiting", "key", key)
			}
			return l.releaser(lockKey, token), nil
		}

		waited = true
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock on %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *KeyLocker) releaser(lockKey, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.redisClient, []string{lockKey}, token).Err(); err != nil && err != redis.Nil {
			l.logger.Warn("Failed to release lock", "lock", lockKey, "error", err)
		}
	}
}
