package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/outboundhq/scribe/internal/agent"
	"github.com/outboundhq/scribe/internal/workflow"
)

// FollowUpDue is the payload on scribe.followup.due. A scheduler elsewhere
// decides when a lead has gone quiet; this service only generates the email.
type FollowUpDue struct {
	AgentID        string                    `json:"agent_id"`
	UserID         string                    `json:"user_id"`
	Email          workflow.Email            `json:"email"`
	FollowUpNumber int                       `json:"followup_number"`
	History        []workflow.FollowUpRecord `json:"history"`
}

// AgentFetcher is the slice of the store the processor needs.
type AgentFetcher interface {
	GetAgent(ctx context.Context, userID, id uuid.UUID) (agent.Agent, error)
	WriteGeneratedResponse(ctx context.Context, agentID uuid.UUID, kind string, email workflow.Email, resp *workflow.GeneratedResponse) (uuid.UUID, error)
}

// FollowUpEngine runs the follow-up workflow.
type FollowUpEngine interface {
	FollowUp(ctx context.Context, email workflow.Email, ag agent.Agent, number int, history []workflow.FollowUpRecord) (*workflow.GeneratedResponse, error)
}

// Publisher lets the processor announce completed runs.
type Publisher interface {
	Publish(subject string, data any) error
}

// FollowUpProcessor consumes follow-up-due events and runs the follow-up
// workflow for each.
type FollowUpProcessor struct {
	store  AgentFetcher
	engine FollowUpEngine
	events Publisher
	logger *slog.Logger
}

func NewFollowUpProcessor(store AgentFetcher, engine FollowUpEngine, events Publisher, logger *slog.Logger) *FollowUpProcessor {
	return &FollowUpProcessor{
		store:  store,
		engine: engine,
		events: events,
		logger: logger,
	}
}

// HandleFollowUpDue is the NATS handler for scribe.followup.due. Failures
// are logged and dropped; the scheduler retries on its own cadence.
func (p *FollowUpProcessor) HandleFollowUpDue(subject string, data []byte) {
	ctx := context.Background()

	var evt FollowUpDue
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse follow-up event", "error", err)
		return
	}

	agentID, err := uuid.Parse(evt.AgentID)
	if err != nil {
		p.logger.Error("invalid agent id in follow-up event", "agent_id", evt.AgentID, "error", err)
		return
	}
	ownerID, err := uuid.Parse(evt.UserID)
	if err != nil {
		p.logger.Error("invalid user id in follow-up event", "user_id", evt.UserID, "error", err)
		return
	}

	p.logger.Info("processing follow-up",
		"agent_id", evt.AgentID,
		"followup_number", evt.FollowUpNumber,
	)

	ag, err := p.store.GetAgent(ctx, ownerID, agentID)
	if err != nil {
		p.logger.Error("failed to fetch agent for follow-up", "agent_id", evt.AgentID, "error", err)
		return
	}

	resp, err := p.engine.FollowUp(ctx, evt.Email, ag, evt.FollowUpNumber, evt.History)
	if err != nil {
		p.logger.Error("follow-up generation failed", "agent_id", evt.AgentID, "error", err)
		return
	}

	if _, err := p.store.WriteGeneratedResponse(ctx, agentID, "followup", evt.Email, resp); err != nil {
		p.logger.Error("failed to record follow-up response", "agent_id", evt.AgentID, "error", err)
	}

	if p.events != nil {
		if err := p.events.Publish(SubjectResponseGenerated, map[string]any{
			"agent_id":       evt.AgentID,
			"kind":           "followup",
			"classification": resp.Classification,
			"subject":        resp.Subject,
		}); err != nil {
			p.logger.Warn("failed to publish response event", "error", err)
		}
	}

	p.logger.Info("follow-up processed",
		"agent_id", evt.AgentID,
		"followup_number", evt.FollowUpNumber,
	)
}
