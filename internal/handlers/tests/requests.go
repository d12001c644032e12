package tests

import (
	"github.com/google/uuid"

	"gitlab.com/pagetest.net/internal/domain"
)

// SubmitURLRequest asks for the test script of a page
type SubmitURLRequest struct {
	URL string `json:"url"`
}

// SubmitURLResponse carries the stored script and, when freshly rendered, the page HTML
type SubmitURLResponse struct {
	Success      bool   `json:"success"`
	HTML         string `json:"html"`
	Script       string `json:"script"`
	ArtifactPath string `json:"artifactPath"`
	Key          string `json:"key"`
	Cached       bool   `json:"cached"`
}

// RunTestRequest names the stored script to execute
type RunTestRequest struct {
	ArtifactPath string `json:"artifactPath"`
}

// RunTestResponse is the normalized outcome plus the ID it was recorded under
type RunTestResponse struct {
	domain.ExecutionOutcome
	RunID uuid.UUID `json:"runId"`
}

// ArtifactsResponse lists catalog entries
type ArtifactsResponse struct {
	Artifacts []*domain.TestArtifact `json:"artifacts"`
}

// RunsResponse lists recorded runs
type RunsResponse struct {
	Runs []*domain.RunRecord `json:"runs"`
}
