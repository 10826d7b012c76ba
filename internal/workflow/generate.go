package workflow

import (
	"context"
	"fmt"

	"github.com/outboundhq/scribe/internal/llm"
)

// Every branch fires the same human trigger; all actual instruction lives
// in the system prompt.
const generateTrigger = "Generate the response email"

// generate extends the seeded prompt with branch instructions and issues
// the single completion call for this run's response. Branch generators
// never build a prompt from scratch; they only append to the seed.
func (e *Engine) generate(ctx context.Context, s *State, branch Branch, instructions string) error {
	e.logger.Info("generating response", "branch", string(branch))

	s.Prompt += instructions

	raw, err := e.llm.Complete(ctx, s.Prompt, []llm.Message{
		{Role: llm.RoleHuman, Content: generateTrigger},
	}, e.maxTokens)
	if err != nil {
		return fmt.Errorf("%w: generate %s: %w", ErrExternalCall, branch, err)
	}

	s.Raw = raw
	return nil
}
