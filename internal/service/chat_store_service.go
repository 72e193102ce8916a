package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/realtime"
	"promptlycoach-be/internal/repository/memory"
	"promptlycoach-be/internal/repository/specification"
	"promptlycoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("chat session not found")
	ErrInvalidSenderType = errors.New("sender type must be visitor, agent or bot")
	ErrEmptyMessage      = errors.New("message text is required")
)

// IChatStore is the one store client shared by the chat coordinator and the relay.
type IChatStore interface {
	CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error)
	// EndSession is a no-op for a session that has already ended.
	EndSession(ctx context.Context, id uuid.UUID) error
	GetSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error)
	// ListMessages returns the session's messages oldest first.
	ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
}

type chatStoreService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionCache *memory.SessionCache
	publisher    realtime.Publisher
	logger       logger.ILogger
	now          func() time.Time
}

func NewChatStoreService(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.SessionCache,
	publisher realtime.Publisher,
	log logger.ILogger,
) IChatStore {
	return &chatStoreService{
		uowFactory:   uowFactory,
		sessionCache: sessionCache,
		publisher:    publisher,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *chatStoreService) CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("session token is required")
	}

	session := &entity.ChatSession{
		Id:           uuid.New(),
		SessionToken: token,
		Status:       entity.ChatSessionStatusActive,
		StartedAt:    s.now(),
		UserAgent:    userAgent,
		VisitorIp:    visitorIp,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}

	s.sessionCache.Save(session)
	s.logger.Info("ChatStore", "Chat session created", map[string]interface{}{
		"session_id": session.Id.String(),
		"token":      session.SessionToken,
	})
	return session, nil
}

func (s *chatStoreService) EndSession(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	changed, err := uow.ChatSessionRepository().MarkEnded(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("end chat session: %w", err)
	}
	s.sessionCache.Delete(id)

	if !changed {
		existing, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return fmt.Errorf("find chat session: %w", err)
		}
		if existing == nil {
			return ErrSessionNotFound
		}
		return nil
	}

	s.logger.Info("ChatStore", "Chat session ended", map[string]interface{}{"session_id": id.String()})
	return nil
}

func (s *chatStoreService) GetSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	if session, ok := s.sessionCache.Get(id); ok {
		return session, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("find chat session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	s.sessionCache.Save(session)
	return session, nil
}

func (s *chatStoreService) InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error) {
	if !senderType.IsValid() {
		return nil, ErrInvalidSenderType
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.GetSession(ctx, sessionId); err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Message:    text,
		SenderType: senderType,
		SenderName: senderName,
		CreatedAt:  s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}

	// The row is committed; subscribers learn about it best-effort.
	err := s.publisher.Publish(ctx, realtime.Notification{
		Table:     constant.RealtimeTableChatMessages,
		Event:     constant.RealtimeEventInsert,
		SessionId: sessionId,
		Message:   msg,
	})
	if err != nil {
		s.logger.Warn("ChatStore", "Failed to publish message insert", map[string]interface{}{
			"session_id": sessionId.String(),
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
	}

	return msg, nil
}

func (s *chatStoreService) ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}
