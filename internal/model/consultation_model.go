package model

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	ConsultationType string    `gorm:"type:varchar(50);not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'requested'"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (Consultation) TableName() string {
	return "consultations"
}
