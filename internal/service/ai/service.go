package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/gurukul-labs/tutor-backend/internal/config"
	"github.com/gurukul-labs/tutor-backend/internal/model/chat"
	"github.com/gurukul-labs/tutor-backend/internal/model/tier"
)

// ErrCompletionUnavailable is the single error this gateway reports. Provider
// failures of every kind (rate limit, timeout, auth, malformed output) are
// collapsed into it; the underlying cause is logged here and never surfaced
// to callers.
var ErrCompletionUnavailable = errors.New("completion provider unavailable")

// historyLimit caps the trailing transcript window sent to the provider.
// Older turns are dropped from the call context only, never from storage.
const historyLimit = 10

// Service is the boundary to the external completion provider. One user
// request results in at most one provider call; there is no retry.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the completion chain: system turn, trailing history,
// then the current question.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile completion chain: %w", err)
	}

	return &Service{
		cfg:   cfg,
		chain: runnable,
	}, nil
}

// StreamingEnabled reports whether SSE streaming output is configured.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// Complete performs one synchronous provider call framed by the tier's
// system prompt and parameters, returning the trimmed reply text.
func (s *Service) Complete(ctx context.Context, systemPrompt string, transcript []chat.Message, question string, params tier.Params) (string, error) {
	input := buildChainInput(systemPrompt, transcript, question)

	response, err := s.chain.Invoke(ctx, input, callOptions(params)...)
	if err != nil {
		log.Printf("[ai] provider call failed: %v", err)
		return "", ErrCompletionUnavailable
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		log.Printf("[ai] provider returned empty response")
		return "", ErrCompletionUnavailable
	}

	return strings.TrimSpace(response.Content), nil
}

// StreamComplete streams reply chunks for the same inputs as Complete.
func (s *Service) StreamComplete(ctx context.Context, systemPrompt string, transcript []chat.Message, question string, params tier.Params) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	input := buildChainInput(systemPrompt, transcript, question)

	stream, err := s.chain.Stream(ctx, input, callOptions(params)...)
	if err != nil {
		log.Printf("[ai] provider stream failed: %v", err)
		return nil, ErrCompletionUnavailable
	}

	return stream, nil
}

func callOptions(params tier.Params) []compose.Option {
	return []compose.Option{
		compose.WithChatModelOption(
			model.WithTemperature(params.Temperature),
			model.WithTopP(params.TopP),
			model.WithMaxTokens(params.MaxTokens),
		),
	}
}

func buildChainInput(systemPrompt string, transcript []chat.Message, question string) map[string]any {
	return map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(transcript),
		"query":   question,
	}
}

// buildHistoryMessages converts the trailing window of stored turns into
// role-tagged provider messages.
func buildHistoryMessages(transcript []chat.Message) []*schema.Message {
	if len(transcript) == 0 {
		return nil
	}

	startIdx := 0
	if len(transcript) > historyLimit {
		startIdx = len(transcript) - historyLimit
	}

	history := make([]*schema.Message, 0, len(transcript)-startIdx)
	for _, msg := range transcript[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
