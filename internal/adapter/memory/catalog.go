// Package memory holds process-local stand-ins for the redis and postgres
// adapters, used when those backends are not configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/domain"
)

var _ secondary.ArtifactCatalog = (*Catalog)(nil)

// Catalog keeps artifact entries for the lifetime of the process.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]domain.TestArtifact
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]domain.TestArtifact)}
}

func (c *Catalog) Record(_ context.Context, artifact *domain.TestArtifact) error {
	entry := *artifact
	entry.Script = ""

	c.mu.Lock()
	c.entries[entry.Key] = entry
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Get(_ context.Context, key string) (*domain.TestArtifact, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (c *Catalog) List(_ context.Context, limit int) ([]*domain.TestArtifact, error) {
	c.mu.RLock()
	list := make([]*domain.TestArtifact, 0, len(c.entries))
	for _, entry := range c.entries {
		entry := entry
		list = append(list, &entry)
	}
	c.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Key < list[j].Key
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
