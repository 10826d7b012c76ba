package workflow

import (
	"context"
	"encoding/json"
	"fmt"
)

const followUpInstructions = `

Goal:
Proactively re-engage the interested lead after n days of silence, using a strategy that adapts to the number of previous attempts.

Instructions:
- This is follow-up number %d.
%s
- Crucially, review the entire follow-up history (%s) to ensure the new email does not repeat previous content or scheduling attempts.
- Maintain the standard Agent Tone (%s).`

// Tier strategies keyed on the attempt number: 1-2 a short nudge, 3-5 a
// value-add check-in, 6+ the final breakup message.
const (
	followUpNudge = `- Initial Nudge: Keep the email very short, polite, and reference the previous conversation. Assume they got busy. Ask one simple, non-pressuring question to elicit a reply. Propose a specific time based on %s.`

	followUpValueAdd = `- Value Add: Briefly remind them of a key benefit of %s. Share a quick, useful piece of content or a new insight (if available in the history) to justify the check-in. Be direct in asking for a quick call.`

	followUpBreakup = `- Breakup: State clearly that this is the final message regarding this proposal for now. Politely ask for a final YES or NO. Use the Agent Tone to provide closure (e.g., "I'll assume the timing isn't right."). Offer an easy path to reconnect in the future.`
)

// followUpStrategy returns the instruction block for the tier the attempt
// number falls into.
func (e *Engine) followUpStrategy(s *State, number int) string {
	switch {
	case number <= 2:
		return fmt.Sprintf(followUpNudge, s.Agent.BusinessHours)
	case number <= 5:
		return fmt.Sprintf(followUpValueAdd, s.Agent.Description)
	default:
		return followUpBreakup
	}
}

func (e *Engine) generateFollowUp(ctx context.Context, s *State) error {
	number := s.FollowUpNumber
	if number < 1 {
		number = 1
	}

	history := ""
	if len(s.History) > 0 {
		encoded, err := json.Marshal(s.History)
		if err != nil {
			return fmt.Errorf("encode follow-up history: %w", err)
		}
		history = string(encoded)
	}

	instructions := fmt.Sprintf(followUpInstructions,
		number,
		e.followUpStrategy(s, number),
		history,
		s.Agent.Tone,
	)
	return e.generate(ctx, s, BranchFollowUp, instructions)
}
