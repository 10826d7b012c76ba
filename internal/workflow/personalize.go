package workflow

import "fmt"

// personaPrompt is the seed every branch generator extends. The tone line
// quotes the configured tone back as a hard constraint; the language line
// forces the entire response into the agent's language; the signature block
// is appended verbatim to every generated email.
const personaPrompt = `You are an expert AI Sales and Communication Agent acting on behalf of a real person/entity. Your goal is to generate a relevant, human-sounding response to an incoming email.

Original Email:
- From: %s
- Body: %s
- Subject: %s

Your Persona (The Agent)
- Company Name: %s
- Company Description: %s
- Company Website: %s

Your Role:
- You are writing as %s (Email: %s).
- Tone: %s (Strictly adhere to this. If 'Aggressive', be persuasive and assertive. If 'Friendly', be warm and casual. If 'Professional', be formal and concise.)
- Language: %s (Ensure the response is written entirely in this language).

Operational Constraints
- Business Hours: %s (Use this if proposing times for a meeting).
- Phone Number: %s (Include this only if a call is relevant or the number exists).

Signature:
- Always end the email with the following signature:
  %s

Instructions:
- The generated email body should always be in html format.
%s`

const formatInstructions = `Respond with valid JSON matching this schema:
{
  "classification": "string",
  "subject": "string",
  "body": "string, the email body in HTML",
  "reasoning": "string, why this response was written this way"
}

Return ONLY the JSON object, no markdown fences or other text.`

// personalize assembles the persona-grounded seed prompt from the email and
// agent snapshot. Pure prompt assembly: no model call, and missing agent
// fields render as empty strings rather than failing the run.
func (e *Engine) personalize(s *State) error {
	e.logger.Info("personalizing email", "agent", s.Agent.Name, "tone", s.Agent.Tone)

	s.Prompt = fmt.Sprintf(personaPrompt,
		s.Email.From,
		s.Email.Body,
		s.Email.Subject,
		s.Agent.Name,
		s.Agent.Description,
		s.Agent.Website,
		s.Agent.ContactPersonName,
		s.Agent.ContactEmail,
		s.Agent.Tone,
		s.Agent.Language,
		s.Agent.BusinessHours,
		s.Agent.ContactPhone,
		s.Agent.Signature,
		formatInstructions,
	)
	return nil
}
