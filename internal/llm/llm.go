// Package llm defines the completion capability the workflow depends on.
// Concrete providers live in internal/anthropic and internal/openai; the
// workflow only ever sees this interface, so tests can substitute a fake.
package llm

import "context"

// Message roles. "human" follows the workflow's vocabulary; providers map
// it to whatever their API calls a user turn.
const (
	RoleSystem = "system"
	RoleHuman  = "human"
)

type Message struct {
	Role    string
	Content string
}

// Completer turns an ordered sequence of role-tagged messages into a single
// text completion. Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error)
}
