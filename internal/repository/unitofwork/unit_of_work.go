package unitofwork

import (
	"context"

	"promptlycoach-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository

	ContactRepository() contract.ContactRepository
	ServiceRequestRepository() contract.ServiceRequestRepository
	ConsultationRepository() contract.ConsultationRepository
	PhoneCallRepository() contract.PhoneCallRepository
}
