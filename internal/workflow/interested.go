package workflow

import "context"

const interestedInstructions = `

Goal:
The lead is positive. You need to secure the next step (usually a meeting or a call).

Instructions:
- Acknowledge their interest enthusiastically (matching your Tone).
- Answer any specific questions asked in the Original Email.
- Propose a specific time for a call or demo based on your Business Hours.
- Provide a Call to Action (CTA) asking them to confirm the time or check out the Company Website.
- Keep the momentum going; do not be vague.`

func (e *Engine) generateInterested(ctx context.Context, s *State) error {
	return e.generate(ctx, s, BranchInterested, interestedInstructions)
}
