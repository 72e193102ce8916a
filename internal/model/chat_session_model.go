package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionToken string     `gorm:"column:session_id;type:varchar(64);not null;uniqueIndex"` // client-generated token
	Status       string     `gorm:"type:varchar(20);not null;default:'active';index"`
	StartedAt    time.Time  `gorm:"autoCreateTime"`
	EndedAt      *time.Time `gorm:"default:null"`
	UserAgent    string     `gorm:"type:text"`
	VisitorIp    string     `gorm:"type:varchar(64)"`
	ContactId    *uuid.UUID `gorm:"type:uuid;index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
