package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/pkg/llm"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrInvalidRelayRequest  = errors.New("message and session ID are required")
	ErrCompletionKeyMissing = errors.New("completion API key not configured")
)

type RelaySettings struct {
	APIKey        string
	RequireAPIKey bool
	Model         string
	Temperature   float64
	MaxTokens     int
}

// IRelayService produces one assistant reply per call. Calls are not idempotent:
// each successful call stores a new bot message.
type IRelayService interface {
	Respond(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error)
}

type relayService struct {
	store    IChatStore
	provider llm.LLMProvider
	settings func() RelaySettings
	logger   logger.ILogger
}

// NewRelayService reads settings on every request so a key added at runtime is
// picked up without a restart.
func NewRelayService(store IChatStore, provider llm.LLMProvider, settings func() RelaySettings, log logger.ILogger) IRelayService {
	return &relayService{
		store:    store,
		provider: provider,
		settings: settings,
		logger:   log,
	}
}

func (s *relayService) Respond(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
	if req == nil || strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.SessionId) == "" {
		return nil, ErrInvalidRelayRequest
	}
	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return nil, fmt.Errorf("%w: session ID %q is not a valid id", ErrInvalidRelayRequest, req.SessionId)
	}

	settings := s.settings()
	if settings.RequireAPIKey && settings.APIKey == "" {
		return nil, ErrCompletionKeyMissing
	}

	opts := []llm.Option{
		llm.WithTemperature(settings.Temperature),
		llm.WithMaxTokens(settings.MaxTokens),
	}
	if settings.Model != "" {
		opts = append(opts, llm.WithModel(settings.Model))
	}

	ctx, span := otel.Tracer("promptlycoach/relay").Start(ctx, "relay.completion")
	span.SetAttributes(
		attribute.String("chat.session_id", sessionId.String()),
		attribute.Int("chat.history_len", len(req.ChatHistory)),
	)
	reply, err := s.provider.Chat(ctx, buildRelayPrompt(req), opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		span.End()
		return nil, fmt.Errorf("completion request: %w", err)
	}
	span.End()

	resp := &dto.RelayResponse{Response: reply, Success: true}

	senderName := constant.BotSenderName
	record, err := s.store.InsertMessage(ctx, sessionId, reply, entity.SenderTypeBot, &senderName)
	if err != nil {
		// The caller still gets the reply; only the stored copy is missing.
		s.logger.Error("RelayService", "Failed to store AI response", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err,
		})
		return resp, nil
	}

	resp.Message = record
	return resp, nil
}

// buildRelayPrompt is the system prompt, at most the last ten history entries and the
// new user turn, in that order.
func buildRelayPrompt(req *dto.RelayRequest) []llm.Message {
	history := req.ChatHistory
	if len(history) > constant.ChatHistoryWindow {
		history = history[len(history)-constant.ChatHistoryWindow:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.CompletionRoleSystem, Content: constant.RelaySystemPrompt})
	for _, h := range history {
		messages = append(messages, llm.Message{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, llm.Message{Role: constant.CompletionRoleUser, Content: req.Message})
	return messages
}
