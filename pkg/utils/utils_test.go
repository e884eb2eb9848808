package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, "Empty message")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Empty message"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	SetupSSEHeaders(rec)
	SendSSEEvent(rec, rec, "delta", map[string]string{"content": "hi"})

	want := "event: delta\ndata: {\"content\":\"hi\"}\n\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected sse frame %q", rec.Body.String())
	}
	if !rec.Flushed {
		t.Fatal("expected flush")
	}
}
