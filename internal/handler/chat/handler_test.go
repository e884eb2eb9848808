package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-wellness/backend/internal/analysis/intent"
	"github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
	chatservice "github.com/zhouzirui/z-wellness/backend/internal/service/chat"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	chatSvc, err := chatservice.NewService(intent.New(knowledge.Seed()), nil, chatservice.Config{})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}

	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)
	return r
}

func postChat(r http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func chatBody(message string) string {
	payload, _ := json.Marshal(map[string]string{"message": message})
	return string(payload)
}

func TestChatReturnsReply(t *testing.T) {
	r := setupRouter(t)
	resp := postChat(r, chatBody("  show muscle gain plan "), nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["user_message"] != "show muscle gain plan" {
		t.Fatalf("unexpected user_message %q", body["user_message"])
	}
	if !strings.HasPrefix(body["bot_response"], "**Muscle Gain Plan (Sample Day):**") {
		t.Fatalf("unexpected bot_response %q", body["bot_response"])
	}
}

func TestChatRejectsBlankMessage(t *testing.T) {
	r := setupRouter(t)
	for _, body := range []string{chatBody(""), chatBody("   "), `{}`} {
		resp := postChat(r, body, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "Empty message") {
			t.Fatalf("unexpected error body %s", resp.Body.String())
		}
	}
}

func TestChatRejectsMalformedBody(t *testing.T) {
	r := setupRouter(t)
	resp := postChat(r, `{"message":`, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHistoryReturnsLastFive(t *testing.T) {
	r := setupRouter(t)
	for i := 0; i < 12; i++ {
		if resp := postChat(r, chatBody(fmt.Sprintf("hello %d", i)), nil); resp.Code != http.StatusOK {
			t.Fatalf("chat %d: expected 200, got %d", i, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var body struct {
		History []struct {
			User string `json:"user"`
			Bot  string `json:"bot"`
		} `json:"history"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.History) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(body.History))
	}
	if body.History[0].User != "hello 7" || body.History[4].User != "hello 11" {
		t.Fatalf("unexpected history order %+v", body.History)
	}
	if body.History[0].Bot != knowledge.Seed().Fallback() {
		t.Fatalf("unexpected bot text %q", body.History[0].Bot)
	}
}

func TestHistoryEmptyIsArray(t *testing.T) {
	r := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := strings.TrimSpace(resp.Body.String()); got != `{"history":[]}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestCreateSessionSeparatesHistory(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader(nil))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var session struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil || session.ID == "" {
		t.Fatalf("expected session id, err=%v body=%s", err, resp.Body.String())
	}

	postChat(r, chatBody("water"), map[string]string{SessionHeader: session.ID})

	req = httptest.NewRequest(http.MethodGet, "/history?session_id="+session.ID, nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if !strings.Contains(resp.Body.String(), `"user":"water"`) {
		t.Fatalf("expected session history, got %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/history", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if strings.Contains(resp.Body.String(), `"user":"water"`) {
		t.Fatalf("default history should not contain session messages: %s", resp.Body.String())
	}
}

func TestHistorySurvivesManySessions(t *testing.T) {
	r := setupRouter(t)
	postChat(r, chatBody("water"), nil)

	for i := 0; i < chatservice.DefaultSessionLimit+1; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/session", nil))
		if resp.Code != http.StatusCreated {
			t.Fatalf("session %d: expected 201, got %d", i, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/history", nil))
	if !strings.Contains(resp.Body.String(), `"user":"water"`) {
		t.Fatalf("default history lost after session churn: %s", resp.Body.String())
	}
}
