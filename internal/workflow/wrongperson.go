package workflow

import "context"

const wrongPersonInstructions = `

Goal:
The recipient is not the decision-maker. You need to find out who is.

Instructions:
- Apologize for the interruption.
- Ask politely if they can point you in the direction of the correct person to speak with regarding the Company Description.
- If they provided a referral in the original email body, thank them and confirm you will reach out to that person.
- Keep this response very short.
- If they refer to a specific person, ask for their contact details and confirm you will reach out to them.
- Ask for their email address and confirm you will reach out to them.
- Put the extracted email address in the json response under the key "delegate_email".`

func (e *Engine) generateWrongPerson(ctx context.Context, s *State) error {
	return e.generate(ctx, s, BranchWrongPerson, wrongPersonInstructions)
}
