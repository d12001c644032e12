package secondary

import (
	"context"

	"gitlab.com/pagetest.net/internal/domain"
)

// TestRunner executes a stored script in a child process.
type TestRunner interface {
	// Run executes the script at scriptPath and returns what the process left behind.
	// A non-zero exit is not an error, failing to start the process is.
	Run(ctx context.Context, scriptPath string) (*domain.ProcessResult, error)
}
