package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/outboundhq/scribe/internal/llm"
)

// Classification taxonomy. The exact spelling is a routing contract: the
// classifier instructs the model to answer with one of these labels and the
// router exact-matches against them.
const (
	ClassificationInterested     = "INTERESTED"
	ClassificationNotInterested  = "NOT_INTERESTED"
	ClassificationWrongPerson    = "WRONG_PERSON"
	ClassificationCheckBackLater = "CHECK_BACK_LATER"
	ClassificationFollowUp       = "FOLLOW_UP"
)

// Classifications lists the taxonomy in the order it is presented to the
// model.
var Classifications = []string{
	ClassificationInterested,
	ClassificationNotInterested,
	ClassificationWrongPerson,
	ClassificationCheckBackLater,
	ClassificationFollowUp,
}

// classify asks the model for a single intent label for the inbound email
// body and records the raw answer on the state. Trimming happens at the
// router, not here.
func (e *Engine) classify(ctx context.Context, s *State) error {
	system := fmt.Sprintf(
		"You are an AI assistant that classifies emails. Classify the following email into one of these categories: %s. Return only the category name.",
		strings.Join(Classifications, ", "),
	)

	label, err := e.llm.Complete(ctx, system, []llm.Message{
		{Role: llm.RoleHuman, Content: s.Email.Body},
	}, e.maxTokens)
	if err != nil {
		return fmt.Errorf("%w: classify: %w", ErrExternalCall, err)
	}

	e.logger.Info("email classified", "classification", strings.TrimSpace(label))
	s.Classify = label
	return nil
}
