package secondary

import (
	"context"

	"gitlab.com/pagetest.net/internal/domain"
)

// ArtifactStore persists generated scripts by key.
type ArtifactStore interface {
	// Exists reports whether a script is stored under key
	Exists(key string) bool
	// Read returns the stored script, errs.ErrNotFound when absent
	Read(key string) (string, error)
	// Write stores script under key, replacing any previous content
	Write(key string, script string) error
	// Path returns where the script for key lives
	Path(key string) string
	// Resolve maps an artifact path back to its key, rejecting paths outside the store
	Resolve(path string) (string, error)
	// Dir is the directory holding every artifact
	Dir() string
}

// ArtifactCatalog remembers which URL produced each artifact and when.
type ArtifactCatalog interface {
	// Record stores the catalog entry for an artifact
	Record(ctx context.Context, artifact *domain.TestArtifact) error
	// Get returns the entry for key, nil when unknown
	Get(ctx context.Context, key string) (*domain.TestArtifact, error)
	// List returns the newest entries first
	List(ctx context.Context, limit int) ([]*domain.TestArtifact, error)
}
