package entity

import (
	"time"

	"github.com/google/uuid"
)

type ServiceRequestPriority string

const (
	PriorityLow    ServiceRequestPriority = "low"
	PriorityMedium ServiceRequestPriority = "medium"
	PriorityHigh   ServiceRequestPriority = "high"
	PriorityUrgent ServiceRequestPriority = "urgent"
)

type ConsultationType string

const (
	ConsultationTypeFreeDemo        ConsultationType = "free_demo"
	ConsultationTypeStrategySession ConsultationType = "strategy_session"
)

const (
	ConsultationStatusRequested = "requested"

	PhoneCallTypeOutbound    = "outbound"
	PhoneCallStatusInitiated = "initiated"
)

type Contact struct {
	Id              uuid.UUID
	UserId          *uuid.UUID
	FullName        string
	Email           string
	Phone           string
	Company         string
	CompanySize     string
	ServiceInterest string
	BudgetRange     string
	ProjectTimeline string
	Message         string
	CreatedAt       time.Time
}

type ServiceRequest struct {
	Id                  uuid.UUID
	ContactId           uuid.UUID
	ServiceType         string
	CustomRequirements  *string
	EstimatedBudget     *float64
	TimelineRequirement *string
	Priority            ServiceRequestPriority
	CreatedAt           time.Time
}

type Consultation struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	ConsultationType ConsultationType
	Status           string
	CreatedAt        time.Time
}

type PhoneCall struct {
	Id          uuid.UUID
	PhoneNumber string
	CallType    string
	Status      string
	CreatedAt   time.Time
}
