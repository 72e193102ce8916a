package dto

import "github.com/google/uuid"

type ContactRequest struct {
	FullName        string `json:"full_name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,max=50"`
	Company         string `json:"company" validate:"omitempty,max=200"`
	CompanySize     string `json:"company_size" validate:"omitempty,max=50"`
	ServiceInterest string `json:"service_interest" validate:"omitempty,max=200"`
	BudgetRange     string `json:"budget_range" validate:"omitempty,max=50"`
	ProjectTimeline string `json:"project_timeline" validate:"omitempty,max=50"`
	Message         string `json:"message"`
}

type ConsultationRequest struct {
	ConsultationType string `json:"consultation_type" validate:"omitempty,oneof=free_demo strategy_session"`
}

type ServiceRequestRequest struct {
	ContactId           *uuid.UUID `json:"contact_id"`
	ServiceType         string     `json:"service_type" validate:"required,max=200"`
	CustomRequirements  *string    `json:"custom_requirements"`
	EstimatedBudget     *float64   `json:"estimated_budget" validate:"omitempty,gte=0"`
	TimelineRequirement *string    `json:"timeline_requirement" validate:"omitempty,max=100"`
	Priority            string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type PhoneCallRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=50"`
}

// LeadResponse carries the confirmation copy the site shows after a submission.
type LeadResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type PhoneCallResponse struct {
	LeadResponse
	DialURI string `json:"dial_uri"`
}
