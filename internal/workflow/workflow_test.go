package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/outboundhq/scribe/internal/agent"
	"github.com/outboundhq/scribe/internal/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type llmCall struct {
	system   string
	messages []llm.Message
}

// fakeCompleter returns scripted completions (or errors) in order and
// records every call it receives.
type fakeCompleter struct {
	replies []any // string or error
	calls   []llmCall
}

func (f *fakeCompleter) Complete(_ context.Context, system string, messages []llm.Message, _ int) (string, error) {
	f.calls = append(f.calls, llmCall{system: system, messages: messages})
	if len(f.replies) == 0 {
		return "", fmt.Errorf("fake completer: no reply scripted for call %d", len(f.calls))
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	if err, ok := reply.(error); ok {
		return "", err
	}
	return reply.(string), nil
}

func testEmail() Email {
	return Email{
		From:    "lead@example.com",
		Subject: "Re: your product",
		Body:    "Yes, I would love to see a demo next week.",
	}
}

func testAgent() agent.Agent {
	return agent.Agent{
		Name:              "Acme Corp",
		Description:       "Industrial-grade anvils",
		Website:           "https://acme.example",
		ContactPersonName: "Jo Smith",
		ContactEmail:      "jo@acme.example",
		ContactPhone:      "+1 555 0100",
		Tone:              agent.ToneProfessional,
		Language:          "en",
		BusinessHours:     "Mon-Fri 9am-5pm CET",
		Signature:         "Best regards,\nJo Smith\nAcme Corp",
	}
}

const structuredReply = "```json\n{\"classification\":\"WHATEVER_THE_MODEL_SAYS\",\"subject\":\"Demo next week\",\"body\":\"<p>Great!</p>\",\"reasoning\":\"Lead showed explicit interest\"}\n```"

func TestGenerateReply_InterestedEndToEnd(t *testing.T) {
	fake := &fakeCompleter{replies: []any{"INTERESTED", structuredReply}}
	eng := New(fake, discardLogger())

	resp, err := eng.GenerateReply(context.Background(), testEmail(), testAgent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Classification != "INTERESTED" {
		t.Errorf("expected pipeline label INTERESTED to overwrite payload, got %q", resp.Classification)
	}
	if resp.Subject != "Demo next week" {
		t.Errorf("unexpected subject %q", resp.Subject)
	}
	if resp.Body != "<p>Great!</p>" {
		t.Errorf("unexpected body %q", resp.Body)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 llm calls (classify, generate), got %d", len(fake.calls))
	}

	classifyCall := fake.calls[0]
	if !strings.Contains(classifyCall.system, "INTERESTED, NOT_INTERESTED, WRONG_PERSON, CHECK_BACK_LATER, FOLLOW_UP") {
		t.Errorf("classifier system prompt missing taxonomy: %q", classifyCall.system)
	}
	if len(classifyCall.messages) != 1 || classifyCall.messages[0].Content != testEmail().Body {
		t.Errorf("classifier human turn should be the raw email body: %+v", classifyCall.messages)
	}

	genCall := fake.calls[1]
	if !strings.Contains(genCall.system, "Acme Corp") {
		t.Errorf("generation prompt missing persona: %q", genCall.system)
	}
	if !strings.Contains(genCall.system, "secure the next step") {
		t.Errorf("generation prompt missing interested branch goal: %q", genCall.system)
	}
	if len(genCall.messages) != 1 || genCall.messages[0].Content != "Generate the response email" {
		t.Errorf("unexpected generation trigger: %+v", genCall.messages)
	}
}

func TestGenerateReply_BranchSelection(t *testing.T) {
	tests := []struct {
		label    string
		wantGoal string
	}{
		{"NOT_INTERESTED", "rejected the offer"},
		{"WRONG_PERSON", "not the decision-maker"},
		{"CHECK_BACK_LATER", "timing is wrong"},
		{"UNKNOWN_LABEL", "secure the next step"}, // fallback to interested
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			fake := &fakeCompleter{replies: []any{tt.label, structuredReply}}
			eng := New(fake, discardLogger())

			resp, err := eng.GenerateReply(context.Background(), testEmail(), testAgent())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Classification != tt.label {
				t.Errorf("expected classification %q, got %q", tt.label, resp.Classification)
			}
			if !strings.Contains(fake.calls[1].system, tt.wantGoal) {
				t.Errorf("expected branch goal %q in prompt", tt.wantGoal)
			}
		})
	}
}

func TestGenerateReply_BranchAppendsToSeed(t *testing.T) {
	fake := &fakeCompleter{replies: []any{"CHECK_BACK_LATER", structuredReply}}
	eng := New(fake, discardLogger())

	if _, err := eng.GenerateReply(context.Background(), testEmail(), testAgent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := fake.calls[1].system
	if !strings.HasPrefix(system, "You are an expert AI Sales and Communication Agent") {
		t.Error("branch generator must extend the seed prompt, not replace it")
	}
	if !strings.Contains(system, "follow_up_date") {
		t.Error("check-back-later branch must request the follow_up_date extraction")
	}
}

func TestGenerateReply_ClassifierErrorAbortsRun(t *testing.T) {
	transportErr := errors.New("connection refused")
	fake := &fakeCompleter{replies: []any{transportErr}}
	eng := New(fake, discardLogger())

	resp, err := eng.GenerateReply(context.Background(), testEmail(), testAgent())
	if resp != nil {
		t.Error("expected no partial response")
	}
	if !errors.Is(err, ErrExternalCall) {
		t.Errorf("expected ErrExternalCall, got %v", err)
	}
	if errors.Is(err, ErrStructuring) {
		t.Error("transport failure must not be reported as a structuring error")
	}
	if len(fake.calls) != 1 {
		t.Errorf("expected run to abort after classify, got %d calls", len(fake.calls))
	}
}

func TestGenerateReply_UnparseableOutputIsStructuringError(t *testing.T) {
	fake := &fakeCompleter{replies: []any{"INTERESTED", "Sorry, I can't help with that."}}
	eng := New(fake, discardLogger())

	resp, err := eng.GenerateReply(context.Background(), testEmail(), testAgent())
	if resp != nil {
		t.Error("expected no partial response")
	}
	if !errors.Is(err, ErrStructuring) {
		t.Errorf("expected ErrStructuring, got %v", err)
	}
}

func TestGenerateReply_MissingSchemaFieldIsStructuringError(t *testing.T) {
	fake := &fakeCompleter{replies: []any{"INTERESTED", `{"subject":"S","body":"B"}`}}
	eng := New(fake, discardLogger())

	if _, err := eng.GenerateReply(context.Background(), testEmail(), testAgent()); !errors.Is(err, ErrStructuring) {
		t.Errorf("expected ErrStructuring, got %v", err)
	}
}

func TestGenerateReply_InvalidEmail(t *testing.T) {
	eng := New(&fakeCompleter{}, discardLogger())

	tests := []struct {
		name  string
		email Email
	}{
		{"bad from", Email{From: "not-an-address", Body: "long enough body here"}},
		{"short body", Email{From: "a@b.com", Body: "too short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.GenerateReply(context.Background(), tt.email, testAgent())
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPersonalize_ToneDirective(t *testing.T) {
	eng := New(&fakeCompleter{}, discardLogger())

	friendly := testAgent()
	friendly.Tone = agent.ToneFriendly
	sFriendly := &State{Email: testEmail(), Agent: friendly}
	if err := eng.personalize(sFriendly); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	formal := testAgent()
	formal.Tone = agent.ToneFormal
	sFormal := &State{Email: testEmail(), Agent: formal}
	if err := eng.personalize(sFormal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(sFriendly.Prompt, "Tone: friendly") {
		t.Error("expected friendly tone directive in prompt")
	}
	if !strings.Contains(sFormal.Prompt, "Tone: formal") {
		t.Error("expected formal tone directive in prompt")
	}
	if sFriendly.Prompt == sFormal.Prompt {
		t.Error("prompts with different tones must be distinguishable")
	}
}

func TestPersonalize_EmbedsPersonaAndFormat(t *testing.T) {
	eng := New(&fakeCompleter{}, discardLogger())
	s := &State{Email: testEmail(), Agent: testAgent()}

	if err := eng.personalize(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"lead@example.com",
		"Acme Corp",
		"Industrial-grade anvils",
		"https://acme.example",
		"Jo Smith",
		"Mon-Fri 9am-5pm CET",
		"Best regards,",
		"Language: en",
		`"classification"`,
		`"reasoning"`,
		"html format",
	} {
		if !strings.Contains(s.Prompt, want) {
			t.Errorf("seed prompt missing %q", want)
		}
	}
}

func TestPersonalize_MissingAgentFieldsNotFatal(t *testing.T) {
	eng := New(&fakeCompleter{}, discardLogger())
	s := &State{Email: testEmail(), Agent: agent.Agent{Name: "Bare Co"}}

	if err := eng.personalize(s); err != nil {
		t.Fatalf("expected missing agent fields to be tolerated, got %v", err)
	}
	if !strings.Contains(s.Prompt, "Bare Co") {
		t.Error("expected agent name in prompt")
	}
}
