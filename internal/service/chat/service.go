package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-wellness/backend/internal/analysis/intent"
	"github.com/zhouzirui/z-wellness/backend/internal/model/chat"
)

// ErrEmptyMessage is returned for blank or whitespace-only input.
var ErrEmptyMessage = errors.New("empty message")

const (
	DefaultHistoryCapacity = 10
	DefaultHistoryWindow   = 5
	DefaultSessionLimit    = 256
)

// Assistant answers messages the knowledge base has no rule for.
type Assistant interface {
	Answer(ctx context.Context, message string, history []chat.Exchange) (string, error)
}

// Classifier maps user text to a reply.
type Classifier interface {
	Classify(text string) intent.Decision
}

// Config sizes the per-session history buffers.
type Config struct {
	HistoryCapacity int
	HistoryWindow   int
	SessionLimit    int
}

// Service owns the responder and the conversation histories.
type Service struct {
	classifier Classifier
	assistant  Assistant
	shared     *History
	histories  *lru.Cache[string, *History]
	capacity   int
	window     int
}

// NewService builds a chat service. assistant may be nil.
func NewService(classifier Classifier, assistant Assistant, cfg Config) (*Service, error) {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.HistoryWindow > cfg.HistoryCapacity {
		cfg.HistoryWindow = cfg.HistoryCapacity
	}
	if cfg.SessionLimit <= 0 {
		cfg.SessionLimit = DefaultSessionLimit
	}

	histories, err := lru.New[string, *History](cfg.SessionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Service{
		classifier: classifier,
		assistant:  assistant,
		shared:     NewHistory(cfg.HistoryCapacity),
		histories:  histories,
		capacity:   cfg.HistoryCapacity,
		window:     cfg.HistoryWindow,
	}, nil
}

// CreateSession provisions a fresh history buffer.
func (s *Service) CreateSession(_ context.Context) chat.Session {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	s.history(session.ID)
	return session
}

// Reply classifies message, records the exchange in the session history and returns it.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (chat.Exchange, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return chat.Exchange{}, ErrEmptyMessage
	}

	sessionID = normalizeSessionID(sessionID)
	history := s.history(sessionID)

	decision := s.classifier.Classify(message)
	response := decision.Response
	if decision.Intent == intent.Fallback && s.assistant != nil {
		response = s.answerFallback(ctx, message, history.Recent(s.window), response)
	}

	exchange := chat.Exchange{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		User:      message,
		Bot:       response,
		Intent:    string(decision.Intent),
		CreatedAt: time.Now().UTC(),
	}
	history.Append(exchange)

	log.Debug().
		Str("component", "chat").
		Str("session", sessionID).
		Str("exchange", exchange.ID).
		Str("intent", exchange.Intent).
		Msg("reply generated")

	return exchange, nil
}

// History returns the most recent exchanges of a session, oldest first.
func (s *Service) History(_ context.Context, sessionID string) []chat.Exchange {
	sessionID = normalizeSessionID(sessionID)
	if sessionID == chat.DefaultSessionID {
		return s.shared.Recent(s.window)
	}

	history, ok := s.histories.Get(sessionID)
	if !ok {
		return []chat.Exchange{}
	}
	return history.Recent(s.window)
}

func (s *Service) answerFallback(ctx context.Context, message string, recent []chat.Exchange, fallback string) string {
	answer, err := s.assistant.Answer(ctx, message, recent)
	if err != nil {
		log.Warn().Err(err).Str("component", "chat").Msg("assistant failed, using fallback")
		return fallback
	}
	if strings.TrimSpace(answer) == "" {
		return fallback
	}
	return answer
}

// history returns the buffer for sessionID, creating it on first use.
// The shared default buffer lives outside the session cache and is never evicted.
func (s *Service) history(sessionID string) *History {
	if sessionID == chat.DefaultSessionID {
		return s.shared
	}

	if h, ok := s.histories.Get(sessionID); ok {
		return h
	}

	fresh := NewHistory(s.capacity)
	if previous, ok, _ := s.histories.PeekOrAdd(sessionID, fresh); ok {
		return previous
	}
	return fresh
}

func normalizeSessionID(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return chat.DefaultSessionID
	}
	return sessionID
}
