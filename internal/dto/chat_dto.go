package dto

import (
	"promptlycoach-be/internal/entity"
)

type CreateChatSessionRequest struct {
	// Optional client-generated token; one is generated when empty.
	SessionToken string `json:"session_id" validate:"omitempty,max=64"`
}

type SendChatMessageRequest struct {
	Message    string  `json:"message" validate:"required"`
	SenderType string  `json:"sender_type" validate:"omitempty,oneof=visitor agent bot"`
	SenderName *string `json:"sender_name" validate:"omitempty,max=100"`
}

type ChatSessionResponse struct {
	Session *entity.ChatSession `json:"session"`
}

type ChatMessagesResponse struct {
	Messages []*entity.ChatMessage `json:"messages"`
}
