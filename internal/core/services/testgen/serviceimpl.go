package testgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/core/services/keys"
	"gitlab.com/pagetest.net/internal/core/services/report"
	"gitlab.com/pagetest.net/internal/core/services/synth"
	"gitlab.com/pagetest.net/internal/domain"
	"gitlab.com/pagetest.net/internal/static/errs"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var _ ITestGenService = (*TestGenService)(nil)

// TestGenService implements the ITestGenService interface
type TestGenService struct {
	store    secondary.ArtifactStore
	catalog  secondary.ArtifactCatalog
	renderer secondary.Renderer
	synth    synth.ISynthesizer
	runner   secondary.TestRunner
	runs     secondary.RunRepository
	locker   secondary.KeyLocker
	logger   primary.Logger

	flight singleflight.Group
	now    func() time.Time
}

// Dependencies groups the ports the service is built from
type Dependencies struct {
	Store       secondary.ArtifactStore
	Catalog     secondary.ArtifactCatalog
	Renderer    secondary.Renderer
	Synthesizer synth.ISynthesizer
	Runner      secondary.TestRunner
	Runs        secondary.RunRepository
	Locker      secondary.KeyLocker
}

// NewTestGenService creates a new pipeline service
func NewTestGenService(deps Dependencies, logger primary.Logger) *TestGenService {
	return &TestGenService{
		store:    deps.Store,
		catalog:  deps.Catalog,
		renderer: deps.Renderer,
		synth:    deps.Synthesizer,
		runner:   deps.Runner,
		runs:     deps.Runs,
		locker:   deps.Locker,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate returns the cached script for url or produces a new one.
// Concurrent calls for the same key share a single generation.
func (s *TestGenService) Generate(ctx context.Context, url string) (*domain.GenerationResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errs.InvalidInput("generate", errors.New("url is required"))
	}

	key := keys.Derive(url)
	s.logger.Info("Generation requested", "url", url, "key", key, "state", domain.StateSubmitted)

	// The shared generation outlives any single caller; render and model
	// calls carry their own configured deadlines.
	v, err, shared := s.flight.Do(key, func() (interface{}, error) {
		return s.generate(context.WithoutCancel(ctx), url, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight generation", "key", key)
	}

	result := *v.(*domain.GenerationResult)
	return &result, nil
}

func (s *TestGenService) generate(ctx context.Context, url, key string) (*domain.GenerationResult, error) {
	release, err := s.locker.Acquire(ctx, key)
	if err != nil {
		s.logger.Error("Failed to acquire generation lock", "key", key, "error", err)
		return nil, errs.IOError("lock artifact "+key, err)
	}
	defer release()

	if s.store.Exists(key) {
		return s.cached(ctx, url, key)
	}

	s.logger.Info("Rendering page", "url", url, "key", key, "state", domain.StateRendering)
	html, err := s.renderer.Render(ctx, url)
	if err != nil {
		if !errors.Is(err, errs.ErrRender) {
			err = errs.RenderError("render "+url, err)
		}
		return nil, err
	}

	s.logger.Info("Synthesizing script", "url", url, "key", key, "state", domain.StateSynthesizing)
	script, err := s.synth.Synthesize(ctx, domain.GenerationRequest{URL: url, HTML: html})
	if err != nil {
		return nil, err
	}
	if script == nil {
		return nil, errs.ValidationError("validate script for "+url, errors.New("model reply contains no test declarations"))
	}

	if err := s.store.Write(key, script.Source); err != nil {
		s.logger.Error("Failed to store script", "key", key, "error", err)
		return nil, err
	}

	artifact := domain.TestArtifact{
		Key:       key,
		URL:       url,
		Script:    script.Source,
		Path:      s.store.Path(key),
		CreatedAt: s.now().UTC(),
	}
	s.record(ctx, &artifact)

	s.logger.Info("Script stored", "key", key, "path", artifact.Path, "declarations", script.Declarations, "state", domain.StateSaved)
	return &domain.GenerationResult{Artifact: artifact, HTML: html}, nil
}

// cached serves a stored script without touching the browser or the model.
func (s *TestGenService) cached(ctx context.Context, url, key string) (*domain.GenerationResult, error) {
	source, err := s.store.Read(key)
	if err != nil {
		s.logger.Error("Failed to read cached script", "key", key, "error", err)
		return nil, err
	}

	artifact := domain.TestArtifact{
		Key:    key,
		URL:    url,
		Script: source,
		Path:   s.store.Path(key),
	}

	entry, err := s.catalog.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn("Failed to look up catalog entry", "key", key, "error", err)
	case entry != nil:
		artifact.CreatedAt = entry.CreatedAt
	default:
		artifact.CreatedAt = s.now().UTC()
		s.record(ctx, &artifact)
	}

	s.logger.Info("Serving cached script", "key", key, "path", artifact.Path, "state", domain.StateCacheHit)
	return &domain.GenerationResult{Artifact: artifact, Cached: true}, nil
}

func (s *TestGenService) record(ctx context.Context, artifact *domain.TestArtifact) {
	if err := s.catalog.Record(ctx, artifact); err != nil {
		s.logger.Warn("Failed to record catalog entry", "key", artifact.Key, "error", err)
	}
}

// Run executes the script at artifactPath. A failing test is reported through
// the outcome, only a script that cannot be started is an error.
func (s *TestGenService) Run(ctx context.Context, artifactPath string) (*domain.RunRecord, error) {
	artifactPath = strings.TrimSpace(artifactPath)
	if artifactPath == "" {
		return nil, errs.InvalidInput("run", errors.New("artifactPath is required"))
	}

	key, err := s.store.Resolve(artifactPath)
	if err != nil {
		s.logger.Warn("Rejected artifact path", "path", artifactPath, "error", err)
		return nil, errs.SpawnError("run "+artifactPath, err)
	}
	if !s.store.Exists(key) {
		return nil, errs.SpawnError("run "+artifactPath, fmt.Errorf("no artifact stored at %s", artifactPath))
	}

	// A started run is bounded by the runner timeout, not by the caller.
	ctx = context.WithoutCancel(ctx)
	path := s.store.Path(key)
	startedAt := s.now().UTC()
	s.logger.Info("Running script", "key", key, "path", path)

	proc, err := s.runner.Run(ctx, path)
	if err != nil {
		s.logger.Error("Failed to run script", "key", key, "error", err)
		return nil, err
	}

	run := &domain.RunRecord{
		ID:           uuid.New(),
		ArtifactKey:  key,
		ArtifactPath: path,
		Outcome:      report.Normalize(proc.ExitCode, proc.Stdout, proc.Stderr),
		StartedAt:    startedAt,
		Duration:     proc.Duration,
	}

	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.logger.Warn("Failed to record run", "runId", run.ID, "error", err)
	}

	s.logger.Info("Run finished",
		"runId", run.ID,
		"key", key,
		"success", run.Outcome.Success,
		"exitCode", run.Outcome.ExitCode,
		"timedOut", proc.TimedOut,
		"duration", proc.Duration)
	return run, nil
}

func (s *TestGenService) ListArtifacts(ctx context.Context, limit int) ([]*domain.TestArtifact, error) {
	artifacts, err := s.catalog.List(ctx, clampLimit(limit))
	if err != nil {
		s.logger.Error("Failed to list artifacts", "error", err)
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	return artifacts, nil
}

func (s *TestGenService) GetRun(ctx context.Context, id uuid.UUID) (*domain.RunRecord, error) {
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get run", "runId", id, "error", err)
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return nil, errs.NotFound("get run", fmt.Errorf("run %s", id))
	}
	return run, nil
}

func (s *TestGenService) ListRuns(ctx context.Context, key string, limit int) ([]*domain.RunRecord, error) {
	if !keys.Valid(key) {
		return nil, errs.InvalidInput("list runs", fmt.Errorf("malformed artifact key %q", key))
	}
	runs, err := s.runs.ListRuns(ctx, key, clampLimit(limit))
	if err != nil {
		s.logger.Error("Failed to list runs", "key", key, "error", err)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
