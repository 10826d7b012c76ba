package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/outboundhq/scribe/internal/events"
	"github.com/outboundhq/scribe/internal/store"
	"github.com/outboundhq/scribe/internal/workflow"
)

type generateRequest struct {
	AgentID uuid.UUID      `json:"agent_id"`
	Email   workflow.Email `json:"email"`
}

type followUpRequest struct {
	AgentID        uuid.UUID                 `json:"agent_id"`
	Email          workflow.Email            `json:"email"`
	FollowUpNumber int                       `json:"followup_number"`
	History        []workflow.FollowUpRecord `json:"history"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Email.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	ag, err := s.store.GetAgent(r.Context(), userID(r), req.AgentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "no agent with that ID")
			return
		}
		s.logger.Error("failed to fetch agent for generation", "agent_id", req.AgentID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch agent", "internal error")
		return
	}

	resp, err := s.engine.GenerateReply(r.Context(), req.Email, ag)
	if err != nil {
		s.writeWorkflowError(w, err)
		return
	}

	s.recordRun(r, req.AgentID, "generate", req.Email, resp)
	writeSuccess(w, http.StatusOK, "Response generated successfully", resp)
}

func (s *Server) followUp(w http.ResponseWriter, r *http.Request) {
	var req followUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Email.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	ag, err := s.store.GetAgent(r.Context(), userID(r), req.AgentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "no agent with that ID")
			return
		}
		s.logger.Error("failed to fetch agent for follow-up", "agent_id", req.AgentID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch agent", "internal error")
		return
	}

	resp, err := s.engine.FollowUp(r.Context(), req.Email, ag, req.FollowUpNumber, req.History)
	if err != nil {
		s.writeWorkflowError(w, err)
		return
	}

	s.recordRun(r, req.AgentID, "followup", req.Email, resp)
	writeSuccess(w, http.StatusOK, "Follow-up generated successfully", resp)
}

// writeWorkflowError maps workflow error kinds onto HTTP responses, keeping
// "model unreachable" distinguishable from "model produced unusable output".
func (s *Server) writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		writeError(w, http.StatusBadRequest, "Validation error", err.Error())
	case errors.Is(err, workflow.ErrExternalCall):
		s.logger.Error("llm call failed", "error", err)
		writeError(w, http.StatusBadGateway, "Generation failed", "llm_unavailable")
	case errors.Is(err, workflow.ErrStructuring):
		s.logger.Error("llm output could not be structured", "error", err)
		writeError(w, http.StatusBadGateway, "Generation failed", "llm_output_invalid")
	default:
		s.logger.Error("generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Generation failed", "internal error")
	}
}

// recordRun persists the audit row and publishes the completion event.
// Both are best-effort: the response was already generated and belongs to
// the caller either way.
func (s *Server) recordRun(r *http.Request, agentID uuid.UUID, kind string, email workflow.Email, resp *workflow.GeneratedResponse) {
	if _, err := s.store.WriteGeneratedResponse(r.Context(), agentID, kind, email, resp); err != nil {
		s.logger.Error("failed to record generated response", "agent_id", agentID, "error", err)
	}

	if s.events != nil {
		if err := s.events.Publish(events.SubjectResponseGenerated, map[string]any{
			"agent_id":       agentID.String(),
			"kind":           kind,
			"classification": resp.Classification,
			"subject":        resp.Subject,
		}); err != nil {
			s.logger.Warn("failed to publish response event", "error", err)
		}
	}
}
