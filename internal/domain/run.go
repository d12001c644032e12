package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord is one execution of an artifact, kept in the run history.
type RunRecord struct {
	ID           uuid.UUID        `json:"runId" db:"id"`
	ArtifactKey  string           `json:"artifactKey" db:"artifact_key"`
	ArtifactPath string           `json:"artifactPath" db:"artifact_path"`
	Outcome      ExecutionOutcome `json:"outcome"`
	StartedAt    time.Time        `json:"startedAt" db:"started_at"`
	Duration     time.Duration    `json:"durationNs" db:"duration_ns"`
}
