package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/pagetest.net/internal/domain"
)

// RunRepository keeps the history of test runs.
type RunRepository interface {
	// SaveRun stores a finished run
	SaveRun(ctx context.Context, run *domain.RunRecord) error
	// GetRun returns a run by ID, nil when unknown
	GetRun(ctx context.Context, id uuid.UUID) (*domain.RunRecord, error)
	// ListRuns returns the latest runs of an artifact, newest first
	ListRuns(ctx context.Context, artifactKey string, limit int) ([]*domain.RunRecord, error)
}
