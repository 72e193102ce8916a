package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage has no UpdatedAt/DeletedAt: rows are insert-only.
type ChatMessage struct {
	Id         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID   `gorm:"column:session_id;type:uuid;not null;index"` // FK to chat_sessions.id
	Session    ChatSession `gorm:"foreignKey:SessionId;references:Id;constraint:OnDelete:CASCADE"`
	Message    string      `gorm:"type:text;not null"`
	SenderType string      `gorm:"type:varchar(20);not null"`
	SenderName *string     `gorm:"type:varchar(100)"`
	CreatedAt  time.Time   `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
