package domain

import "time"

// ExecutionOutcome is the normalized result of running one artifact.
// Success is false whenever the process exited non-zero, died abnormally, or
// its report could not be parsed, and Error is then always set.
type ExecutionOutcome struct {
	Success   bool    `json:"success"`
	Report    *Report `json:"report,omitempty"`
	RawStdout string  `json:"rawStdout"`
	RawStderr string  `json:"rawStderr"`
	Error     string  `json:"error,omitempty"`
	ExitCode  int     `json:"exitCode"`
}

// ProcessResult is what the test process left behind when it exited.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}
