package entity

import (
	"time"

	"github.com/google/uuid"
)

type SenderType string

const (
	SenderTypeVisitor SenderType = "visitor"
	SenderTypeAgent   SenderType = "agent"
	SenderTypeBot     SenderType = "bot"
)

func (s SenderType) IsValid() bool {
	switch s {
	case SenderTypeVisitor, SenderTypeAgent, SenderTypeBot:
		return true
	}
	return false
}

// ChatMessage is append-only: nothing in this codebase updates or deletes one.
type ChatMessage struct {
	Id         uuid.UUID  `json:"id"`
	SessionId  uuid.UUID  `json:"session_id"`
	Message    string     `json:"message"`
	SenderType SenderType `json:"sender_type"`
	SenderName *string    `json:"sender_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
