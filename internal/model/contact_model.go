package model

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          *uuid.UUID `gorm:"type:uuid;index"`
	FullName        string     `gorm:"type:varchar(255);not null"`
	Email           string     `gorm:"type:varchar(255);not null;index"`
	Phone           string     `gorm:"type:varchar(50)"`
	Company         string     `gorm:"type:varchar(255)"`
	CompanySize     string     `gorm:"type:varchar(50)"`
	ServiceInterest string     `gorm:"type:varchar(100)"`
	BudgetRange     string     `gorm:"type:varchar(50)"`
	ProjectTimeline string     `gorm:"type:varchar(50)"`
	Message         string     `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}

func (Contact) TableName() string {
	return "contacts"
}
