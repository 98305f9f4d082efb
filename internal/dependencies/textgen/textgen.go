package textgen

import "context"

// Generator produces free-form text from a prompt. The production
// implementation talks to an external LLM service; tests substitute a
// scripted mock.
type Generator interface {
	// Complete performs a single generation call. Implementations do not
	// retry; a failure is surfaced to the caller and the player retries.
	Complete(ctx context.Context, prompt string) (string, error)
}
