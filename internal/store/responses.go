package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/outboundhq/scribe/internal/workflow"
)

// WriteGeneratedResponse records a completed workflow run for auditing.
// Kind is "generate" or "followup".
func (s *Store) WriteGeneratedResponse(ctx context.Context, agentID uuid.UUID, kind string, email workflow.Email, resp *workflow.GeneratedResponse) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO generated_responses (id, agent_id, kind, email_from, email_subject,
			classification, subject, body, reasoning, delegate_email, follow_up_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`,
		id, agentID, kind, email.From, email.Subject,
		resp.Classification, resp.Subject, resp.Body, resp.Reasoning,
		resp.DelegateEmail, resp.FollowUpDate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert generated_response: %w", err)
	}
	return id, nil
}
