package domain

import (
	"encoding/json"
	"strings"
)

// AttemptStatus is the status of one attempt of a test.
type AttemptStatus string

const (
	StatusPassed   AttemptStatus = "passed"
	StatusFailed   AttemptStatus = "failed"
	StatusSkipped  AttemptStatus = "skipped"
	StatusTimedOut AttemptStatus = "timedOut"
	StatusUnknown  AttemptStatus = "unknown"
)

// ParseAttemptStatus maps a reporter status to a known value, anything else is unknown.
func ParseAttemptStatus(s string) AttemptStatus {
	switch AttemptStatus(s) {
	case StatusPassed, StatusFailed, StatusSkipped, StatusTimedOut:
		return AttemptStatus(s)
	default:
		return StatusUnknown
	}
}

func (s *AttemptStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = StatusUnknown
		return nil
	}
	*s = ParseAttemptStatus(raw)
	return nil
}

// Report is the machine readable output of a test run: suites holding specs
// or nested suites, each spec holding its attempts.
type Report struct {
	Suites []Suite       `json:"suites"`
	Errors []ReportError `json:"errors,omitempty"`
	Stats  *ReportStats  `json:"stats,omitempty"`
}

type Suite struct {
	Title  string  `json:"title"`
	File   string  `json:"file,omitempty"`
	Specs  []Spec  `json:"specs,omitempty"`
	Suites []Suite `json:"suites,omitempty"`
}

type Spec struct {
	Title string     `json:"title"`
	OK    bool       `json:"ok"`
	File  string     `json:"file,omitempty"`
	Line  int        `json:"line,omitempty"`
	Tests []SpecTest `json:"tests"`
}

type SpecTest struct {
	ProjectName    string    `json:"projectName,omitempty"`
	ExpectedStatus string    `json:"expectedStatus,omitempty"`
	Results        []Attempt `json:"results"`
}

// Attempt is one try of a test. Duration is in milliseconds.
type Attempt struct {
	Status   AttemptStatus `json:"status"`
	Duration float64       `json:"duration"`
	Retry    int           `json:"retry"`
	Errors   []ReportError `json:"errors,omitempty"`
}

type ReportError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type ReportStats struct {
	StartTime  string  `json:"startTime,omitempty"`
	Duration   float64 `json:"duration"`
	Expected   int     `json:"expected"`
	Unexpected int     `json:"unexpected"`
	Skipped    int     `json:"skipped"`
	Flaky      int     `json:"flaky"`
}

// Tally counts attempts per status across the report.
type Tally map[AttemptStatus]int

func (r *Report) Tally() Tally {
	acc := Tally{}
	if r == nil {
		return acc
	}
	for _, s := range r.Suites {
		acc = s.tally(acc)
	}
	return acc
}

func (s Suite) tally(acc Tally) Tally {
	for _, sp := range s.Specs {
		for _, t := range sp.Tests {
			for _, a := range t.Results {
				acc[a.Status]++
			}
		}
	}
	for _, child := range s.Suites {
		acc = child.tally(acc)
	}
	return acc
}

// SpecSummary is a flattened view of one spec and its final attempt.
type SpecSummary struct {
	Path     string
	Title    string
	Status   AttemptStatus
	Duration float64
	Message  string
}

// Summaries flattens the tree in report order. Path joins the enclosing suite titles.
func (r *Report) Summaries() []SpecSummary {
	var acc []SpecSummary
	if r == nil {
		return acc
	}
	for _, s := range r.Suites {
		acc = s.summaries(nil, acc)
	}
	return acc
}

func (s Suite) summaries(parents []string, acc []SpecSummary) []SpecSummary {
	path := append(append([]string(nil), parents...), s.Title)
	for _, sp := range s.Specs {
		sum := SpecSummary{Path: strings.Join(path, " > "), Title: sp.Title, Status: StatusUnknown}
		for _, t := range sp.Tests {
			if n := len(t.Results); n > 0 {
				last := t.Results[n-1]
				if sum.Status == StatusUnknown || sum.Status == StatusPassed {
					sum.Status = last.Status
				}
				sum.Duration += last.Duration
				if len(last.Errors) > 0 && sum.Message == "" {
					sum.Message = last.Errors[0].Message
				}
			}
		}
		acc = append(acc, sum)
	}
	for _, child := range s.Suites {
		acc = child.summaries(path, acc)
	}
	return acc
}
