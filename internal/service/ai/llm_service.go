package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-wellness/backend/internal/config"
	"github.com/zhouzirui/z-wellness/backend/internal/model/chat"
)

// Service answers open-ended wellness questions through the configured chat model.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates a new AI service instance
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Answer generates a reply for a message the knowledge base did not cover.
func (s *Service) Answer(ctx context.Context, message string, history []chat.Exchange) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{
		"history": buildHistoryMessages(history),
		"query":   message,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	content := strings.TrimSpace(response.Content)
	log.Debug().Str("component", "ai").Int("length", len(content)).Msg("generated fallback answer")
	return content, nil
}

func buildHistoryMessages(history []chat.Exchange) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history)*2)
	for _, exchange := range history {
		messages = append(messages,
			schema.UserMessage(exchange.User),
			schema.AssistantMessage(exchange.Bot, nil),
		)
	}
	return messages
}

const systemPrompt = `You are a friendly diet and wellness tips assistant.
Keep answers to two or three short sentences of general, non-medical advice about food, hydration, sleep or movement.
Never diagnose, never discuss medication, symptoms or treatment; if asked, tell the user to consult a healthcare professional.
If the question is unrelated to wellness, say you can help with diet plans and daily do's and don'ts.`
