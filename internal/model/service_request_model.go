package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceRequest struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContactId           uuid.UUID `gorm:"type:uuid;not null;index"`
	Contact             Contact   `gorm:"foreignKey:ContactId;references:Id"`
	ServiceType         string    `gorm:"type:varchar(100);not null"`
	CustomRequirements  *string   `gorm:"type:text"`
	EstimatedBudget     *float64  `gorm:"type:numeric(12,2)"`
	TimelineRequirement *string   `gorm:"type:varchar(100)"`
	Priority            string    `gorm:"type:varchar(20);not null;default:'medium'"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}
