package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gitlab.com/pagetest.net/internal/domain"
)

func failingRun() *domain.RunRecord {
	return &domain.RunRecord{
		ID:           uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		ArtifactPath: "/srv/tests/k.spec.js",
		Duration:     1500 * time.Millisecond,
		Outcome: domain.ExecutionOutcome{
			Success:  false,
			ExitCode: 1,
			Error:    "1 failed",
			Report: &domain.Report{Suites: []domain.Suite{{
				Title: "k.spec.js",
				Specs: []domain.Spec{
					{Title: "has heading", Tests: []domain.SpecTest{{Results: []domain.Attempt{{Status: domain.StatusPassed, Duration: 20}}}}},
					{Title: "has link", Tests: []domain.SpecTest{{Results: []domain.Attempt{{Status: domain.StatusFailed, Duration: 31, Errors: []domain.ReportError{{Message: "locator not found"}}}}}}},
				},
			}}},
		},
	}
}

func TestRenderRun_Table(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	require.NoError(t, renderRun(&buf, failingRun(), formatTable))

	out := buf.String()
	assert.Contains(t, out, "has heading")
	assert.Contains(t, out, "has link")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "FAIL  exit 1")
	assert.Contains(t, out, "1 failed")
}

func TestRenderRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRun(&buf, failingRun(), formatJSON))

	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, false, view["success"])
	assert.Equal(t, "1.5s", view["duration"])
	assert.Equal(t, map[string]interface{}{"passed": float64(1), "failed": float64(1)}, view["tally"])
	assert.Contains(t, view, "report")
	assert.NotContains(t, view, "raw")
}

func TestRenderRun_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRun(&buf, failingRun(), formatYAML))

	var view runView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", view.RunID)
	require.Len(t, view.Specs, 2)
	assert.Equal(t, "failed", view.Specs[1].Status)
	assert.Equal(t, "locator not found", view.Specs[1].Message)
	assert.Nil(t, view.Report)
}

func TestRenderRun_NoReportKeepsRawOutput(t *testing.T) {
	run := &domain.RunRecord{Outcome: domain.ExecutionOutcome{ExitCode: 127, RawStderr: "npx: not found", Error: "npx: not found"}}
	var buf bytes.Buffer
	require.NoError(t, renderRun(&buf, run, formatJSON))

	var view runView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "npx: not found", view.Raw["stderr"])
	assert.Empty(t, view.Specs)
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("yaml"))
	assert.Error(t, validateFormat("xml"))
}

func TestFirstLines(t *testing.T) {
	assert.Equal(t, "a\nb\n...", firstLines("a\nb\nc\nd", 2))
	assert.Equal(t, "a", firstLines("a", 2))
}
