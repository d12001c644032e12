package secondary

import "context"

// ModelProvider sends a prompt to a generative model and returns its text.
type ModelProvider interface {
	// Complete returns the raw completion for prompt
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider in logs
	Name() string
}
