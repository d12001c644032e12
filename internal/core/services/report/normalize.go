// Package report turns what a test process left behind into an ExecutionOutcome.
package report

import (
	"bytes"
	"encoding/json"
	"strings"

	"gitlab.com/pagetest.net/internal/domain"
)

// UnknownError is reported when a failed run left no output at all.
const UnknownError = "Unknown error"

// Normalize merges exit code, report and raw logs into one outcome. It never
// fails: a stdout that holds no report yields a nil Report. The exit code is
// authoritative, a non-zero exit is a failure whatever the report says.
func Normalize(exitCode int, stdout, stderr string) domain.ExecutionOutcome {
	out := domain.ExecutionOutcome{
		RawStdout: stdout,
		RawStderr: stderr,
		ExitCode:  exitCode,
		Report:    Parse(stdout),
	}
	out.Success = exitCode == 0 && out.Report != nil
	if !out.Success {
		out.Error = errorSummary(stdout, stderr)
	}
	return out
}

// errorSummary picks the first non-blank source in priority order.
func errorSummary(stdout, stderr string) string {
	priority := []string{stderr, stdout}
	for _, candidate := range priority {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return UnknownError
}

// Parse decodes a JSON report from stdout. Output printed around the report
// is tolerated by falling back to the outermost brace span. Text that decodes
// but holds no suites and no stats is not a report.
func Parse(stdout string) *domain.Report {
	data := bytes.TrimSpace([]byte(stdout))
	if len(data) == 0 {
		return nil
	}
	if r := decode(data); r != nil {
		return r
	}

	start := bytes.IndexByte(data, '{')
	end := bytes.LastIndexByte(data, '}')
	if start < 0 || end <= start {
		return nil
	}
	return decode(data[start : end+1])
}

func decode(data []byte) *domain.Report {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	if _, ok := probe["suites"]; !ok {
		if _, ok := probe["stats"]; !ok {
			return nil
		}
	}

	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	return &r
}
