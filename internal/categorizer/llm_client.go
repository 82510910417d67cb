package categorizer

import "context"

// LLMClient generates a completion for a single prompt. Implementations own
// their transport, authentication and timeout handling; callers treat any
// returned error as "this block could not be answered" and fall back to the
// regex strategy.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
