// Package api exposes the HTTP surface: health, agent CRUD, and the two
// generation endpoints. Authentication and identity resolution live in an
// upstream gateway; this server only checks the shared API token and trusts
// the forwarded user ID.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/outboundhq/scribe/internal/agent"
	"github.com/outboundhq/scribe/internal/workflow"
)

// AgentStore is the persistence surface the handlers need.
type AgentStore interface {
	CreateAgent(ctx context.Context, a agent.Agent) (agent.Agent, error)
	GetAgent(ctx context.Context, userID, id uuid.UUID) (agent.Agent, error)
	ListAgents(ctx context.Context, userID uuid.UUID) ([]agent.Agent, error)
	UpdateAgent(ctx context.Context, a agent.Agent) (agent.Agent, error)
	DeleteAgent(ctx context.Context, userID, id uuid.UUID) error
	WriteGeneratedResponse(ctx context.Context, agentID uuid.UUID, kind string, email workflow.Email, resp *workflow.GeneratedResponse) (uuid.UUID, error)
}

// Generator runs the response workflows.
type Generator interface {
	GenerateReply(ctx context.Context, email workflow.Email, ag agent.Agent) (*workflow.GeneratedResponse, error)
	FollowUp(ctx context.Context, email workflow.Email, ag agent.Agent, number int, history []workflow.FollowUpRecord) (*workflow.GeneratedResponse, error)
}

// Publisher emits events after successful runs. May be nil.
type Publisher interface {
	Publish(subject string, data any) error
}

type Server struct {
	router   *chi.Mux
	port     int
	apiToken string
	store    AgentStore
	engine   Generator
	events   Publisher
	logger   *slog.Logger
	srv      *http.Server
}

func NewServer(port int, apiToken string, store AgentStore, engine Generator, events Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		apiToken: apiToken,
		store:    store,
		engine:   engine,
		events:   events,
		logger:   logger,
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/agents", func(r chi.Router) {
			r.Post("/", s.createAgent)
			r.Get("/", s.listAgents)
			r.Get("/{id}", s.getAgent)
			r.Put("/{id}", s.updateAgent)
			r.Delete("/{id}", s.deleteAgent)
		})

		r.Post("/generate", s.generate)
		r.Post("/followup", s.followUp)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	s.srv = &http.Server{Addr: addr, Handler: s.router}
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type contextKey string

const userIDKey contextKey = "user_id"

// authenticate checks the shared bearer token and resolves the caller's
// user ID from the X-User-ID header set by the upstream identity gateway.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiToken != "" {
			auth := r.Header.Get("Authorization")
			token := strings.TrimPrefix(auth, "Bearer ")
			if token == auth || token != s.apiToken {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "invalid or missing bearer token")
				return
			}
		}

		userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "missing or invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(userIDKey).(uuid.UUID)
	return id
}
