package mapper

import (
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:           s.Id,
		SessionToken: s.SessionToken,
		Status:       entity.ChatSessionStatus(s.Status),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		UserAgent:    s.UserAgent,
		VisitorIp:    s.VisitorIp,
		ContactId:    s.ContactId,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:           s.Id,
		SessionToken: s.SessionToken,
		Status:       string(s.Status),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		UserAgent:    s.UserAgent,
		VisitorIp:    s.VisitorIp,
		ContactId:    s.ContactId,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Message:    msg.Message,
		SenderType: entity.SenderType(msg.SenderType),
		SenderName: msg.SenderName,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Message:    msg.Message,
		SenderType: string(msg.SenderType),
		SenderName: msg.SenderName,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
