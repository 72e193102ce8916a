package mapper

import (
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/model"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func (m *LeadMapper) ContactToModel(c *entity.Contact) *model.Contact {
	if c == nil {
		return nil
	}
	return &model.Contact{
		Id:              c.Id,
		UserId:          c.UserId,
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		Company:         c.Company,
		CompanySize:     c.CompanySize,
		ServiceInterest: c.ServiceInterest,
		BudgetRange:     c.BudgetRange,
		ProjectTimeline: c.ProjectTimeline,
		Message:         c.Message,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *LeadMapper) ContactToEntity(c *model.Contact) *entity.Contact {
	if c == nil {
		return nil
	}
	return &entity.Contact{
		Id:              c.Id,
		UserId:          c.UserId,
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		Company:         c.Company,
		CompanySize:     c.CompanySize,
		ServiceInterest: c.ServiceInterest,
		BudgetRange:     c.BudgetRange,
		ProjectTimeline: c.ProjectTimeline,
		Message:         c.Message,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *LeadMapper) ServiceRequestToModel(r *entity.ServiceRequest) *model.ServiceRequest {
	if r == nil {
		return nil
	}
	return &model.ServiceRequest{
		Id:                  r.Id,
		ContactId:           r.ContactId,
		ServiceType:         r.ServiceType,
		CustomRequirements:  r.CustomRequirements,
		EstimatedBudget:     r.EstimatedBudget,
		TimelineRequirement: r.TimelineRequirement,
		Priority:            string(r.Priority),
		CreatedAt:           r.CreatedAt,
	}
}

func (m *LeadMapper) ServiceRequestToEntity(r *model.ServiceRequest) *entity.ServiceRequest {
	if r == nil {
		return nil
	}
	return &entity.ServiceRequest{
		Id:                  r.Id,
		ContactId:           r.ContactId,
		ServiceType:         r.ServiceType,
		CustomRequirements:  r.CustomRequirements,
		EstimatedBudget:     r.EstimatedBudget,
		TimelineRequirement: r.TimelineRequirement,
		Priority:            entity.ServiceRequestPriority(r.Priority),
		CreatedAt:           r.CreatedAt,
	}
}

func (m *LeadMapper) ConsultationToModel(c *entity.Consultation) *model.Consultation {
	if c == nil {
		return nil
	}
	return &model.Consultation{
		Id:               c.Id,
		UserId:           c.UserId,
		ConsultationType: string(c.ConsultationType),
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
	}
}

func (m *LeadMapper) ConsultationToEntity(c *model.Consultation) *entity.Consultation {
	if c == nil {
		return nil
	}
	return &entity.Consultation{
		Id:               c.Id,
		UserId:           c.UserId,
		ConsultationType: entity.ConsultationType(c.ConsultationType),
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
	}
}

func (m *LeadMapper) PhoneCallToModel(p *entity.PhoneCall) *model.PhoneCall {
	if p == nil {
		return nil
	}
	return &model.PhoneCall{
		Id:          p.Id,
		PhoneNumber: p.PhoneNumber,
		CallType:    p.CallType,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *LeadMapper) PhoneCallToEntity(p *model.PhoneCall) *entity.PhoneCall {
	if p == nil {
		return nil
	}
	return &entity.PhoneCall{
		Id:          p.Id,
		PhoneNumber: p.PhoneNumber,
		CallType:    p.CallType,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}
