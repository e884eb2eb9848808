package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zhouzirui/z-wellness/backend/internal/analysis/intent"
	modelchat "github.com/zhouzirui/z-wellness/backend/internal/model/chat"
	"github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
	chat "github.com/zhouzirui/z-wellness/backend/internal/service/chat"
)

type fakeAssistant struct {
	answer  string
	err     error
	calls   int
	history []modelchat.Exchange
}

func (f *fakeAssistant) Answer(_ context.Context, _ string, history []modelchat.Exchange) (string, error) {
	f.calls++
	f.history = history
	return f.answer, f.err
}

func newService(t *testing.T, assistant chat.Assistant) *chat.Service {
	t.Helper()
	svc, err := chat.NewService(intent.New(knowledge.Seed()), assistant, chat.Config{})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	return svc
}

func TestServiceReplyRejectsBlankMessage(t *testing.T) {
	svc := newService(t, nil)
	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Reply(context.Background(), "", input); !errors.Is(err, chat.ErrEmptyMessage) {
			t.Fatalf("Reply(%q) err = %v, want ErrEmptyMessage", input, err)
		}
	}
	if got := svc.History(context.Background(), ""); len(got) != 0 {
		t.Fatalf("blank messages must not be recorded, got %d entries", len(got))
	}
}

func TestServiceReplyTrimsAndClassifies(t *testing.T) {
	svc := newService(t, nil)
	exchange, err := svc.Reply(context.Background(), "", "  WATER  ")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if exchange.User != "WATER" {
		t.Fatalf("expected trimmed user text, got %q", exchange.User)
	}
	if exchange.Intent != string(intent.Hydration) {
		t.Fatalf("expected hydration intent, got %s", exchange.Intent)
	}
}

func TestServiceHistoryKeepsLastFive(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		if _, err := svc.Reply(ctx, "", fmt.Sprintf("hello %d", i)); err != nil {
			t.Fatalf("Reply err: %v", err)
		}
	}

	got := svc.History(ctx, "")
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	for i, entry := range got {
		want := fmt.Sprintf("hello %d", i+7)
		if entry.User != want {
			t.Fatalf("entry %d = %q, want %q", i, entry.User, want)
		}
	}
}

func TestServiceDefaultHistorySurvivesSessionChurn(t *testing.T) {
	svc, err := chat.NewService(intent.New(knowledge.Seed()), nil, chat.Config{SessionLimit: 4})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Reply(ctx, "", "water"); err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	for i := 0; i < 10; i++ {
		session := svc.CreateSession(ctx)
		if _, err := svc.Reply(ctx, session.ID, "sleep"); err != nil {
			t.Fatalf("Reply err: %v", err)
		}
	}
	for i := 0; i < 10; i++ {
		if _, err := svc.Reply(ctx, fmt.Sprintf("client-%d", i), "walk"); err != nil {
			t.Fatalf("Reply err: %v", err)
		}
	}

	got := svc.History(ctx, "")
	if len(got) != 1 || got[0].User != "water" {
		t.Fatalf("default history was evicted, got %+v", got)
	}
	if again := svc.History(ctx, modelchat.DefaultSessionID); len(again) != 1 {
		t.Fatalf("explicit default session id should share the buffer, got %d", len(again))
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	session := svc.CreateSession(ctx)

	if _, err := svc.Reply(ctx, session.ID, "sleep"); err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if got := svc.History(ctx, ""); len(got) != 0 {
		t.Fatalf("default session should be empty, got %d", len(got))
	}
	if got := svc.History(ctx, session.ID); len(got) != 1 {
		t.Fatalf("expected 1 entry in session, got %d", len(got))
	}
}

func TestServiceAssistantOnlyAnswersFallback(t *testing.T) {
	assistant := &fakeAssistant{answer: "Try a short stretch break."}
	svc := newService(t, assistant)
	ctx := context.Background()

	exchange, err := svc.Reply(ctx, "", "hello there")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if exchange.Bot != "Try a short stretch break." {
		t.Fatalf("expected assistant answer, got %q", exchange.Bot)
	}

	exchange, err = svc.Reply(ctx, "", "I have a fever")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if exchange.Bot != intent.SafetyMessage {
		t.Fatalf("safety redirect must not be replaced, got %q", exchange.Bot)
	}
	if assistant.calls != 1 {
		t.Fatalf("expected 1 assistant call, got %d", assistant.calls)
	}
}

func TestServiceAssistantFailureUsesFallback(t *testing.T) {
	assistant := &fakeAssistant{err: errors.New("upstream down")}
	svc := newService(t, assistant)

	exchange, err := svc.Reply(context.Background(), "", "hello there")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if exchange.Bot != knowledge.Seed().Fallback() {
		t.Fatalf("expected KB fallback, got %q", exchange.Bot)
	}
}
