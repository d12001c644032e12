package tests

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/services/testgen"
	"gitlab.com/pagetest.net/internal/handlers/response"
)

// Handler serves the generate and run API
type Handler struct {
	service testgen.ITestGenService
	logger  primary.Logger
}

// NewHandler creates a new test handler
func NewHandler(service testgen.ITestGenService, logger primary.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/submit-url", h.SubmitURL).Methods("POST")
	router.HandleFunc("/api/run-test", h.RunTest).Methods("POST")
	router.HandleFunc("/api/artifacts", h.ListArtifacts).Methods("GET")
	router.HandleFunc("/api/artifacts/{key}/runs", h.ListRuns).Methods("GET")
	router.HandleFunc("/api/runs/{runId}", h.GetRun).Methods("GET")
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	response.WriteError(w, response.ErrorMessage{Message: message, StatusCode: http.StatusBadRequest})
}

// SubmitURL returns the script for a URL, generating it on first request
func (h *Handler) SubmitURL(w http.ResponseWriter, r *http.Request) {
	var req SubmitURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		h.badRequest(w, "invalid request body")
		return
	}

	result, err := h.service.Generate(r.Context(), req.URL)
	if err != nil {
		h.logger.Error("Failed to generate test", "url", req.URL, "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, SubmitURLResponse{
		Success:      true,
		HTML:         result.HTML,
		Script:       result.Artifact.Script,
		ArtifactPath: result.Artifact.Path,
		Key:          result.Artifact.Key,
		Cached:       result.Cached,
	})
}

// RunTest executes a stored script. Failing tests still answer 200.
func (h *Handler) RunTest(w http.ResponseWriter, r *http.Request) {
	var req RunTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		h.badRequest(w, "invalid request body")
		return
	}

	run, err := h.service.Run(r.Context(), req.ArtifactPath)
	if err != nil {
		h.logger.Error("Failed to run test", "artifactPath", req.ArtifactPath, "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, RunTestResponse{ExecutionOutcome: run.Outcome, RunID: run.ID})
}

func limitParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}

// ListArtifacts lists generated scripts, newest first
func (h *Handler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		h.badRequest(w, "invalid limit")
		return
	}

	artifacts, err := h.service.ListArtifacts(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list artifacts", "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, ArtifactsResponse{Artifacts: artifacts})
}

// ListRuns lists the latest runs of one artifact
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		h.badRequest(w, "invalid limit")
		return
	}

	runs, err := h.service.ListRuns(r.Context(), mux.Vars(r)["key"], limit)
	if err != nil {
		h.logger.Error("Failed to list runs", "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, RunsResponse{Runs: runs})
}

// GetRun returns one recorded run
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runIDStr := mux.Vars(r)["runId"]
	runID, err := uuid.Parse(runIDStr)
	if err != nil {
		h.logger.Error("Invalid run ID", "id", runIDStr)
		h.badRequest(w, "invalid run ID")
		return
	}

	run, err := h.service.GetRun(r.Context(), runID)
	if err != nil {
		h.logger.Error("Failed to get run", "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteSuccess(w, run)
}
