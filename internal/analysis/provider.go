// Package analysis generates the AI-written burnout report through an
// OpenAI-compatible chat completion API.
package analysis

import "context"

// Provider produces a completion for a system/user prompt pair.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	ModelID() string
}
