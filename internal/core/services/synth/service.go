package synth

import (
	"context"

	"gitlab.com/pagetest.net/internal/domain"
)

// ISynthesizer turns a page snapshot into a test script.
type ISynthesizer interface {
	// Synthesize asks the model for a script. A failed model call is an error
	// wrapping errs.ErrGeneration. A reply that is not a usable script yields
	// nil, nil.
	Synthesize(ctx context.Context, req domain.GenerationRequest) (*domain.Script, error)
}
