package catalogport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/domain"
)

var _ secondary.ArtifactCatalog = (*ArtifactCatalog)(nil)

const (
	artifactKeyPrefix = "artifact:"
	artifactIndexKey  = "artifacts"
)

// ArtifactCatalog keeps one hash per artifact and a sorted set ordering them by creation time.
type ArtifactCatalog struct {
	redisClient *redis.Client
	prefix      string
	logger      primary.Logger
}

// NewArtifactCatalog creates a new Redis artifact catalog
func NewArtifactCatalog(redisClient *redis.Client, prefix string, logger primary.Logger) *ArtifactCatalog {
	return &ArtifactCatalog{
		redisClient: redisClient,
		prefix:      prefix,
		logger:      logger,
	}
}

func (c *ArtifactCatalog) entryKey(key string) string {
	return c.prefix + artifactKeyPrefix + key
}

func (c *ArtifactCatalog) indexKey() string {
	return c.prefix + artifactIndexKey
}

// Record saves the artifact entry and indexes it
func (c *ArtifactCatalog) Record(ctx context.Context, artifact *domain.TestArtifact) error {
	_, err := c.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.entryKey(artifact.Key), map[string]interface{}{
			"url":        artifact.URL,
			"path":       artifact.Path,
			"created_at": artifact.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.ZAdd(ctx, c.indexKey(), &redis.Z{
			Score:  float64(artifact.CreatedAt.UnixNano()),
			Member: artifact.Key,
		})
		return nil
	})
	if err != nil {
		c.logger.Error("Failed to record artifact", "key", artifact.Key, "error", err)
		return fmt.Errorf("failed to record artifact: %w", err)
	}
	return nil
}

// Get retrieves an artifact entry, nil when the key was never recorded
func (c *ArtifactCatalog) Get(ctx context.Context, key string) (*domain.TestArtifact, error) {
	fields, err := c.redisClient.HGetAll(ctx, c.entryKey(key)).Result()
	if err != nil {
		c.logger.Error("Failed to get artifact entry", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get artifact entry: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return toArtifact(key, fields), nil
}

// List returns up to limit entries, newest first
func (c *ArtifactCatalog) List(ctx context.Context, limit int) ([]*domain.TestArtifact, error) {
	if limit <= 0 {
		return []*domain.TestArtifact{}, nil
	}
	keys, err := c.redisClient.ZRevRange(ctx, c.indexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact index: %w", err)
	}

	artifacts := make([]*domain.TestArtifact, 0, len(keys))
	if len(keys) == 0 {
		return artifacts, nil
	}

	pipe := c.redisClient.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, c.entryKey(key))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read artifact entries: %w", err)
	}

	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		artifacts = append(artifacts, toArtifact(keys[i], fields))
	}
	return artifacts, nil
}

func toArtifact(key string, fields map[string]string) *domain.TestArtifact {
	created, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	return &domain.TestArtifact{
		Key:       key,
		URL:       fields["url"],
		Path:      fields["path"],
		CreatedAt: created,
	}
}
