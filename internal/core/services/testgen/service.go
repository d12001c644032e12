package testgen

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/pagetest.net/internal/domain"
)

// ITestGenService turns URLs into stored test scripts and runs them.
type ITestGenService interface {
	// Generate returns the script for url, synthesizing and storing it on first request
	Generate(ctx context.Context, url string) (*domain.GenerationResult, error)

	// Run executes a stored script and records the normalized outcome
	Run(ctx context.Context, artifactPath string) (*domain.RunRecord, error)

	// ListArtifacts returns catalog entries, newest first
	ListArtifacts(ctx context.Context, limit int) ([]*domain.TestArtifact, error)

	// GetRun retrieves a recorded run
	GetRun(ctx context.Context, id uuid.UUID) (*domain.RunRecord, error)

	// ListRuns returns the latest runs of one artifact
	ListRuns(ctx context.Context, key string, limit int) ([]*domain.RunRecord, error)
}
