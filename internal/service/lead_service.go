package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/repository/specification"
	"promptlycoach-be/internal/repository/unitofwork"
	"promptlycoach-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrContactRequired        = errors.New("contact information required")
	ErrInvalidPhoneNumber     = errors.New("phone number has no digits")
)

type ILeadService interface {
	SubmitContact(ctx context.Context, visitor *entity.Visitor, req *dto.ContactRequest) (*dto.LeadResponse, error)
	ScheduleConsultation(ctx context.Context, visitor *entity.Visitor, req *dto.ConsultationRequest) (*dto.LeadResponse, error)
	SubmitServiceRequest(ctx context.Context, visitor *entity.Visitor, req *dto.ServiceRequestRequest) (*dto.LeadResponse, error)
	InitiateCall(ctx context.Context, req *dto.PhoneCallRequest) (*dto.PhoneCallResponse, error)
}

type leadService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher // nil when NATS is not configured
	logger     logger.ILogger
	now        func() time.Time
}

func NewLeadService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) ILeadService {
	return &leadService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *leadService) SubmitContact(ctx context.Context, visitor *entity.Visitor, req *dto.ContactRequest) (*dto.LeadResponse, error) {
	contact := &entity.Contact{
		Id:              uuid.New(),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		CompanySize:     req.CompanySize,
		ServiceInterest: req.ServiceInterest,
		BudgetRange:     req.BudgetRange,
		ProjectTimeline: req.ProjectTimeline,
		Message:         req.Message,
		CreatedAt:       s.now(),
	}
	if visitor != nil {
		contact.UserId = &visitor.Id
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ContactRepository().Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.publish(ctx, events.ContactSubmitted, map[string]interface{}{
		"id":               contact.Id.String(),
		"full_name":        contact.FullName,
		"email":            contact.Email,
		"phone":            contact.Phone,
		"company":          contact.Company,
		"company_size":     contact.CompanySize,
		"service_interest": contact.ServiceInterest,
		"budget_range":     contact.BudgetRange,
		"project_timeline": contact.ProjectTimeline,
		"message":          contact.Message,
	})

	return &dto.LeadResponse{
		Id:          contact.Id,
		Title:       constant.ToastContactSentTitle,
		Description: constant.ToastContactSentDescription,
	}, nil
}

func (s *leadService) ScheduleConsultation(ctx context.Context, visitor *entity.Visitor, req *dto.ConsultationRequest) (*dto.LeadResponse, error) {
	if visitor == nil {
		return nil, ErrAuthenticationRequired
	}

	consultationType := entity.ConsultationTypeFreeDemo
	if req != nil && req.ConsultationType != "" {
		consultationType = entity.ConsultationType(req.ConsultationType)
	}

	consultation := &entity.Consultation{
		Id:               uuid.New(),
		UserId:           visitor.Id,
		ConsultationType: consultationType,
		Status:           entity.ConsultationStatusRequested,
		CreatedAt:        s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConsultationRepository().Create(ctx, consultation); err != nil {
		return nil, fmt.Errorf("create consultation: %w", err)
	}

	s.publish(ctx, events.ConsultationRequested, map[string]interface{}{
		"id":                consultation.Id.String(),
		"user_id":           visitor.Id.String(),
		"email":             visitor.Email,
		"full_name":         visitor.FullName,
		"consultation_type": string(consultation.ConsultationType),
	})

	return &dto.LeadResponse{
		Id:          consultation.Id,
		Title:       constant.ToastConsultationTitle,
		Description: constant.ToastConsultationDescription,
	}, nil
}

func (s *leadService) SubmitServiceRequest(ctx context.Context, visitor *entity.Visitor, req *dto.ServiceRequestRequest) (*dto.LeadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	contactId, err := s.resolveContact(ctx, uow, visitor, req.ContactId)
	if err != nil {
		return nil, err
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.ServiceRequestPriority(req.Priority)
	}

	request := &entity.ServiceRequest{
		Id:                  uuid.New(),
		ContactId:           contactId,
		ServiceType:         req.ServiceType,
		CustomRequirements:  req.CustomRequirements,
		EstimatedBudget:     req.EstimatedBudget,
		TimelineRequirement: req.TimelineRequirement,
		Priority:            priority,
		CreatedAt:           s.now(),
	}
	if err := uow.ServiceRequestRepository().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"id":           request.Id.String(),
		"contact_id":   contactId.String(),
		"service_type": request.ServiceType,
		"priority":     string(request.Priority),
	}
	if request.CustomRequirements != nil {
		payload["custom_requirements"] = *request.CustomRequirements
	}
	if request.EstimatedBudget != nil {
		payload["estimated_budget"] = *request.EstimatedBudget
	}
	if request.TimelineRequirement != nil {
		payload["timeline_requirement"] = *request.TimelineRequirement
	}
	s.publish(ctx, events.ServiceRequestSubmitted, payload)

	return &dto.LeadResponse{
		Id:          request.Id,
		Title:       constant.ToastServiceRequestTitle,
		Description: constant.ToastServiceRequestDescription,
	}, nil
}

// resolveContact picks the explicit contact, else the visitor's existing contact, else
// creates a basic contact for the visitor.
func (s *leadService) resolveContact(ctx context.Context, uow unitofwork.UnitOfWork, visitor *entity.Visitor, explicit *uuid.UUID) (uuid.UUID, error) {
	contacts := uow.ContactRepository()

	if explicit != nil {
		contact, err := contacts.FindOne(ctx, specification.ByID{ID: *explicit})
		if err != nil {
			return uuid.Nil, fmt.Errorf("find contact: %w", err)
		}
		if contact == nil {
			return uuid.Nil, ErrContactRequired
		}
		return contact.Id, nil
	}

	if visitor == nil {
		return uuid.Nil, ErrContactRequired
	}

	existing, err := contacts.FindOne(ctx,
		specification.ByUserID{UserID: visitor.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find visitor contact: %w", err)
	}
	if existing != nil {
		return existing.Id, nil
	}

	fullName := visitor.FullName
	if fullName == "" {
		fullName = "Unknown"
	}
	userId := visitor.Id
	contact := &entity.Contact{
		Id:        uuid.New(),
		UserId:    &userId,
		FullName:  fullName,
		Email:     visitor.Email,
		CreatedAt: s.now(),
	}
	if err := contacts.Create(ctx, contact); err != nil {
		return uuid.Nil, fmt.Errorf("create basic contact: %w", err)
	}
	return contact.Id, nil
}

func (s *leadService) InitiateCall(ctx context.Context, req *dto.PhoneCallRequest) (*dto.PhoneCallResponse, error) {
	digits := DigitsOnly(req.PhoneNumber)
	if digits == "" {
		return nil, ErrInvalidPhoneNumber
	}

	call := &entity.PhoneCall{
		Id:          uuid.New(),
		PhoneNumber: req.PhoneNumber,
		CallType:    entity.PhoneCallTypeOutbound,
		Status:      entity.PhoneCallStatusInitiated,
		CreatedAt:   s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PhoneCallRepository().Create(ctx, call); err != nil {
		return nil, fmt.Errorf("log phone call: %w", err)
	}

	s.publish(ctx, events.PhoneCallInitiated, map[string]interface{}{
		"id":           call.Id.String(),
		"phone_number": call.PhoneNumber,
	})

	return &dto.PhoneCallResponse{
		LeadResponse: dto.LeadResponse{
			Id:          call.Id,
			Title:       constant.ToastCallTitle,
			Description: constant.ToastCallDescription,
		},
		DialURI: "tel:" + digits,
	}, nil
}

// DigitsOnly strips everything that is not a decimal digit.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func (s *leadService) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("LeadService", "Failed to publish lead event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
