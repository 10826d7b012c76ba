package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/outboundhq/scribe/internal/agent"
)

func TestCreateAgent(t *testing.T) {
	st := newFakeStore()
	srv := testServer(st, &fakeEngine{}, nil)
	user := uuid.New()

	body := `{"name":"Acme Corp","description":"We sell anvils","tone":"friendly"}`
	req := authedRequest("POST", "/api/v1/agents", strings.NewReader(body), user)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Error("expected success envelope")
	}

	data, _ := json.Marshal(env.Data)
	var created agent.Agent
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("failed to decode agent: %v", err)
	}
	if created.Tone != agent.ToneFriendly {
		t.Errorf("expected tone friendly, got %q", created.Tone)
	}
	if created.Language != "en" {
		t.Errorf("expected default language en, got %q", created.Language)
	}
	if created.UserID != user {
		t.Errorf("expected owner %s, got %s", user, created.UserID)
	}
}

func TestCreateAgent_ValidationError(t *testing.T) {
	srv := testServer(newFakeStore(), &fakeEngine{}, nil)

	body := `{"name":"","description":"something"}`
	req := authedRequest("POST", "/api/v1/agents", strings.NewReader(body), uuid.New())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	srv := testServer(newFakeStore(), &fakeEngine{}, nil)

	req := authedRequest("GET", "/api/v1/agents/"+uuid.New().String(), nil, uuid.New())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetAgent_OwnerScoped(t *testing.T) {
	st := newFakeStore()
	srv := testServer(st, &fakeEngine{}, nil)

	owner := uuid.New()
	a := agent.CreateCommand{Name: "Acme", Description: "anvils"}.Apply(owner)
	st.agents[a.ID] = a

	// Another user must not see it.
	req := authedRequest("GET", "/api/v1/agents/"+a.ID.String(), nil, uuid.New())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for wrong owner, got %d", w.Code)
	}

	// The owner does.
	req = authedRequest("GET", "/api/v1/agents/"+a.ID.String(), nil, owner)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for owner, got %d", w.Code)
	}
}

func TestUpdateAgent_Partial(t *testing.T) {
	st := newFakeStore()
	srv := testServer(st, &fakeEngine{}, nil)

	owner := uuid.New()
	a := agent.CreateCommand{Name: "Acme", Description: "anvils"}.Apply(owner)
	st.agents[a.ID] = a

	body := `{"tone":"formal"}`
	req := authedRequest("PUT", "/api/v1/agents/"+a.ID.String(), strings.NewReader(body), owner)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if st.agents[a.ID].Tone != agent.ToneFormal {
		t.Errorf("expected tone updated to formal, got %q", st.agents[a.ID].Tone)
	}
	if st.agents[a.ID].Name != "Acme" {
		t.Errorf("expected name untouched, got %q", st.agents[a.ID].Name)
	}
}

func TestDeleteAgent(t *testing.T) {
	st := newFakeStore()
	srv := testServer(st, &fakeEngine{}, nil)

	owner := uuid.New()
	a := agent.CreateCommand{Name: "Acme", Description: "anvils"}.Apply(owner)
	st.agents[a.ID] = a

	req := authedRequest("DELETE", "/api/v1/agents/"+a.ID.String(), nil, owner)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, ok := st.agents[a.ID]; ok {
		t.Error("expected agent removed")
	}
}

func TestListAgents_EmptyIsArray(t *testing.T) {
	srv := testServer(newFakeStore(), &fakeEngine{}, nil)

	req := authedRequest("GET", "/api/v1/agents", nil, uuid.New())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("expected empty array data, got %s", w.Body.String())
	}
}
