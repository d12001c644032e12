package domain

import "time"

// TestArtifact is a generated test script persisted under its derived key.
// It is never updated once written.
type TestArtifact struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Script    string    `json:"script,omitempty"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerationRequest is the input of one synthesis call.
type GenerationRequest struct {
	URL  string
	HTML string
}

// Script is model output that passed validation.
type Script struct {
	Source       string
	Declarations int
}

// GenerationResult is what a generate-or-fetch request hands back.
type GenerationResult struct {
	Artifact TestArtifact
	HTML     string
	Cached   bool
}

// GenerationState marks the steps of a generate-or-fetch request.
type GenerationState string

const (
	StateSubmitted    GenerationState = "SUBMITTED"
	StateCacheHit     GenerationState = "CACHE_HIT"
	StateRendering    GenerationState = "RENDERING"
	StateSynthesizing GenerationState = "SYNTHESIZING"
	StateSaved        GenerationState = "SAVED"
)
