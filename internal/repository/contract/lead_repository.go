package contract

import (
	"context"

	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/repository/specification"
)

// Lead records are written once on submission and never mutated afterwards.

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error)
}

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *entity.ServiceRequest) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PhoneCallRepository interface {
	Create(ctx context.Context, call *entity.PhoneCall) error
}
