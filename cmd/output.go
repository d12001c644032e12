package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"gitlab.com/pagetest.net/internal/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// runView is the serialized form of a run for json and yaml output.
type runView struct {
	RunID    string            `json:"runId" yaml:"runId"`
	Artifact string            `json:"artifact" yaml:"artifact"`
	Success  bool              `json:"success" yaml:"success"`
	ExitCode int               `json:"exitCode" yaml:"exitCode"`
	Duration string            `json:"duration" yaml:"duration"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
	Tally    map[string]int    `json:"tally,omitempty" yaml:"tally,omitempty"`
	Specs    []specView        `json:"specs,omitempty" yaml:"specs,omitempty"`
	Report   *domain.Report    `json:"report,omitempty" yaml:"-"`
	Raw      map[string]string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

type specView struct {
	Path     string  `json:"path" yaml:"path"`
	Title    string  `json:"title" yaml:"title"`
	Status   string  `json:"status" yaml:"status"`
	Duration float64 `json:"durationMs" yaml:"durationMs"`
	Message  string  `json:"message,omitempty" yaml:"message,omitempty"`
}

func newRunView(run *domain.RunRecord) runView {
	view := runView{
		RunID:    run.ID.String(),
		Artifact: run.ArtifactPath,
		Success:  run.Outcome.Success,
		ExitCode: run.Outcome.ExitCode,
		Duration: run.Duration.Round(time.Millisecond).String(),
		Error:    run.Outcome.Error,
		Report:   run.Outcome.Report,
	}
	if tally := run.Outcome.Report.Tally(); len(tally) > 0 {
		view.Tally = make(map[string]int, len(tally))
		for status, n := range tally {
			view.Tally[string(status)] = n
		}
	}
	for _, s := range run.Outcome.Report.Summaries() {
		view.Specs = append(view.Specs, specView{
			Path:     s.Path,
			Title:    s.Title,
			Status:   string(s.Status),
			Duration: s.Duration,
			Message:  s.Message,
		})
	}
	if run.Outcome.Report == nil {
		view.Raw = map[string]string{"stdout": run.Outcome.RawStdout, "stderr": run.Outcome.RawStderr}
	}
	return view
}

func renderRun(w io.Writer, run *domain.RunRecord, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newRunView(run))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(newRunView(run))
	default:
		_, err := io.WriteString(w, renderRunTable(run))
		return err
	}
}

func statusCell(status domain.AttemptStatus) string {
	switch status {
	case domain.StatusPassed:
		return color.GreenString(string(status))
	case domain.StatusSkipped:
		return color.YellowString(string(status))
	default:
		return color.RedString(string(status))
	}
}

func renderRunTable(run *domain.RunRecord) string {
	var buf bytes.Buffer

	summaries := run.Outcome.Report.Summaries()
	if len(summaries) > 0 {
		table := tablewriter.NewWriter(&buf)
		table.SetHeader([]string{"Suite", "Test", "Status", "Duration"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})
		for _, s := range summaries {
			table.Append([]string{s.Path, s.Title, statusCell(s.Status), fmt.Sprintf("%.0fms", s.Duration)})
		}
		table.Render()
	}

	verdict := color.GreenString("PASS")
	if !run.Outcome.Success {
		verdict = color.RedString("FAIL")
	}
	fmt.Fprintf(&buf, "\n%s  exit %d  %s  run %s\n", verdict, run.Outcome.ExitCode, run.Duration.Round(time.Millisecond), run.ID)
	if run.Outcome.Error != "" {
		fmt.Fprintf(&buf, "%s\n", color.YellowString(firstLines(run.Outcome.Error, 10)))
	}
	return buf.String()
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = append(lines[:n], "...")
	}
	return strings.Join(lines, "\n")
}
