package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/outboundhq/scribe/internal/agent"
	"github.com/outboundhq/scribe/internal/store"
)

func (s *Server) createAgent(w http.ResponseWriter, r *http.Request) {
	var cmd agent.CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	created, err := s.store.CreateAgent(r.Context(), cmd.Apply(userID(r)))
	if err != nil {
		s.logger.Error("failed to create agent", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create agent", "internal error")
		return
	}

	writeSuccess(w, http.StatusCreated, "Agent created successfully", created)
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.store.ListAgents(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("failed to list agents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch agents", "internal error")
		return
	}
	if agents == nil {
		agents = []agent.Agent{}
	}

	writeSuccess(w, http.StatusOK, "Agents fetched successfully", agents)
}

func (s *Server) getAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid agent ID", err.Error())
		return
	}

	a, err := s.store.GetAgent(r.Context(), userID(r), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "no agent with that ID")
			return
		}
		s.logger.Error("failed to get agent", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch agent", "internal error")
		return
	}

	writeSuccess(w, http.StatusOK, "Agent fetched successfully", a)
}

func (s *Server) updateAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid agent ID", err.Error())
		return
	}

	var cmd agent.UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	existing, err := s.store.GetAgent(r.Context(), userID(r), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "no agent with that ID")
			return
		}
		s.logger.Error("failed to get agent", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update agent", "internal error")
		return
	}

	updated, err := s.store.UpdateAgent(r.Context(), cmd.Apply(existing))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "no agent with that ID")
			return
		}
		s.logger.Error("failed to update agent", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update agent", "internal error")
		return
	}

	writeSuccess(w, http.StatusOK, "Agent updated successfully", updated)
}

func (s *Server) deleteAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid agent ID", err.Error())
		return
	}

	if err := s.store.DeleteAgent(r.Context(), userID(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "no agent with that ID")
			return
		}
		s.logger.Error("failed to delete agent", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete agent", "internal error")
		return
	}

	writeSuccess(w, http.StatusOK, "Agent deleted successfully", nil)
}
