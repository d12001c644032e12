package secondary

import "context"

// Renderer loads a page in a real browser and returns its settled DOM.
type Renderer interface {
	// Render returns the outer HTML of the fully loaded page, never an empty string without an error
	Render(ctx context.Context, url string) (string, error)
}
