package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/outboundhq/scribe/internal/agent"
	"github.com/outboundhq/scribe/internal/llm"
)

const defaultMaxTokens = 2048

// Engine runs the response generation workflows. The completion capability
// is injected so tests can substitute a fake; the engine itself holds no
// per-run state and is safe for concurrent runs.
type Engine struct {
	llm       llm.Completer
	logger    *slog.Logger
	maxTokens int
}

func New(completer llm.Completer, logger *slog.Logger) *Engine {
	return &Engine{
		llm:       completer,
		logger:    logger,
		maxTokens: defaultMaxTokens,
	}
}

// step is one node of the pipeline: it mutates the state or fails the run.
type step struct {
	name string
	run  func(ctx context.Context, s *State) error
}

// run drives a workflow: each step exactly once, in order, failing fast on
// the first error without attempting downstream steps.
func (e *Engine) run(ctx context.Context, steps []step, s *State) error {
	for _, st := range steps {
		e.logger.Debug("workflow step", "step", st.name)
		if err := st.run(ctx, s); err != nil {
			return fmt.Errorf("step %s: %w", st.name, err)
		}
	}
	return nil
}

// generators is the adjacency map for the single branch point: the route
// step picks the branch, and the generate step dispatches through it.
func (e *Engine) generators() map[Branch]func(context.Context, *State) error {
	return map[Branch]func(context.Context, *State) error{
		BranchInterested:     e.generateInterested,
		BranchNotInterested:  e.generateNotInterested,
		BranchWrongPerson:    e.generateWrongPerson,
		BranchCheckBackLater: e.generateCheckBackLater,
		BranchFollowUp:       e.generateFollowUp,
	}
}

// GenerateReply runs the full generation workflow:
// personalize -> classify -> route -> generate -> structure.
func (e *Engine) GenerateReply(ctx context.Context, email Email, ag agent.Agent) (*GeneratedResponse, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	s := &State{Email: email, Agent: ag}

	steps := []step{
		{"personalize", func(_ context.Context, s *State) error { return e.personalize(s) }},
		{"classify", e.classify},
		{"route", func(_ context.Context, s *State) error {
			s.branch = Route(s.Classify, e.logger)
			return nil
		}},
		{"generate", func(ctx context.Context, s *State) error {
			return e.generators()[s.branch](ctx, s)
		}},
		{"structure", e.structure},
	}

	if err := e.run(ctx, steps, s); err != nil {
		return nil, err
	}
	return s.Response, nil
}

// FollowUp runs the follow-up workflow: personalize -> follow-up generate
// -> structure. There is no classification step; the run is fixed to the
// follow-up branch and the final object carries the FOLLOW_UP label.
func (e *Engine) FollowUp(ctx context.Context, email Email, ag agent.Agent, number int, history []FollowUpRecord) (*GeneratedResponse, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if number < 1 {
		number = 1
	}

	s := &State{
		Email:          email,
		Agent:          ag,
		FollowUpNumber: number,
		History:        history,
		Classify:       ClassificationFollowUp,
		branch:         BranchFollowUp,
	}

	steps := []step{
		{"personalize", func(_ context.Context, s *State) error { return e.personalize(s) }},
		{"generate", e.generateFollowUp},
		{"structure", e.structure},
	}

	if err := e.run(ctx, steps, s); err != nil {
		return nil, err
	}
	return s.Response, nil
}
