package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSessionStatus string

const (
	ChatSessionStatusActive ChatSessionStatus = "active"
	ChatSessionStatusEnded  ChatSessionStatus = "ended"
)

type ChatSession struct {
	Id           uuid.UUID         `json:"id"`
	SessionToken string            `json:"session_id"`
	Status       ChatSessionStatus `json:"status"`
	StartedAt    time.Time         `json:"started_at"`
	EndedAt      *time.Time        `json:"ended_at,omitempty"`
	UserAgent    string            `json:"user_agent,omitempty"`
	VisitorIp    string            `json:"visitor_ip,omitempty"`
	ContactId    *uuid.UUID        `json:"contact_id,omitempty"`
}

func (s *ChatSession) IsActive() bool {
	return s.Status == ChatSessionStatusActive
}
