package model

import (
	"time"

	"github.com/google/uuid"
)

type PhoneCall struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PhoneNumber string    `gorm:"type:varchar(50);not null"`
	CallType    string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (PhoneCall) TableName() string {
	return "phone_calls"
}
