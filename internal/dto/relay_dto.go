package dto

import (
	"promptlycoach-be/internal/entity"
)

type ChatHistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RelayRequest is the body of POST /functions/v1/ai-chat.
type RelayRequest struct {
	Message     string             `json:"message"`
	SessionId   string             `json:"sessionId"`
	ChatHistory []ChatHistoryEntry `json:"chatHistory"`
}

// RelayResponse keeps the relay's own wire contract rather than BaseResponse.
// Message carries the persisted reply when the write succeeded.
type RelayResponse struct {
	Response string              `json:"response,omitempty"`
	Success  bool                `json:"success"`
	Error    string              `json:"error,omitempty"`
	Message  *entity.ChatMessage `json:"message,omitempty"`
}
