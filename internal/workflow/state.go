// Package workflow implements the email response generation pipeline:
// personalize -> classify -> route -> generate -> structure, plus the
// follow-up variant that skips classification. Each run threads a fresh
// State through the steps; runs never share state.
package workflow

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/outboundhq/scribe/internal/agent"
)

// Email is the inbound message a run responds to. Immutable once built.
type Email struct {
	From    string `json:"from"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Validate checks the request-boundary rules for an inbound email.
func (e Email) Validate() error {
	if _, err := mail.ParseAddress(e.From); err != nil {
		return fmt.Errorf("%w: from must be a valid email address", ErrValidation)
	}
	if len(e.Body) < 10 {
		return fmt.Errorf("%w: body must be at least 10 characters", ErrValidation)
	}
	return nil
}

// FollowUpRecord is one previously sent follow-up, used by the follow-up
// branch to avoid repeating content or scheduling attempts.
type FollowUpRecord struct {
	Number  int       `json:"number"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// GeneratedResponse is the terminal artifact of a run. Classification is
// always the pipeline's label, never the one the model embedded in its
// payload. DelegateEmail and FollowUpDate are branch-specific extractions
// and may be empty.
type GeneratedResponse struct {
	Classification string `json:"classification"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Reasoning      string `json:"reasoning"`
	DelegateEmail  string `json:"delegate_email,omitempty"`
	FollowUpDate   string `json:"follow_up_date,omitempty"`
}

// State is the accumulator passed through the pipeline. Fields are set
// incrementally and never cleared: Prompt is seeded by personalize and only
// appended to by a branch generator; Classify is set exactly once before
// routing; Raw holds the unparsed model output until structure replaces it
// with Response.
type State struct {
	Email Email
	Agent agent.Agent

	FollowUpNumber int
	History        []FollowUpRecord

	Prompt   string
	Classify string
	branch   Branch
	Raw      string
	Response *GeneratedResponse
}
