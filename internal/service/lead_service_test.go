package service

import (
	"context"
	"errors"
	"testing"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.EventType() == eventType })
}

func testVisitor() *entity.Visitor {
	return &entity.Visitor{Id: uuid.New(), Email: "jane@example.com", FullName: "Jane Doe"}
}

func TestLeadService_SubmitContact(t *testing.T) {
	uow := newMockUnitOfWork()
	var saved *entity.Contact
	uow.contacts.On("Create", mock.AnythingOfType("*entity.Contact")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*entity.Contact)
	}).Return(nil)
	pub := &mockEventPublisher{}
	pub.On("Publish", eventOfType(events.ContactSubmitted)).Return(nil).Once()

	svc := NewLeadService(&mockFactory{uow: uow}, pub, logger.NewNopLogger())

	resp, err := svc.SubmitContact(context.Background(), nil, &dto.ContactRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Company:  "Acme",
		Message:  "Tell me more",
	})
	require.NoError(t, err)
	assert.Equal(t, constant.ToastContactSentTitle, resp.Title)
	assert.Equal(t, saved.Id, resp.Id)
	assert.Nil(t, saved.UserId)
	assert.Equal(t, "Acme", saved.Company)
	pub.AssertExpectations(t)
}

func TestLeadService_SubmitContactLinksVisitor(t *testing.T) {
	uow := newMockUnitOfWork()
	uow.contacts.On("Create", mock.MatchedBy(func(c *entity.Contact) bool { return c.UserId != nil })).Return(nil)
	svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

	_, err := svc.SubmitContact(context.Background(), testVisitor(), &dto.ContactRequest{FullName: "Jane", Email: "jane@example.com"})
	assert.NoError(t, err)
	uow.contacts.AssertExpectations(t)
}

func TestLeadService_SubmitContactStoreFailure(t *testing.T) {
	uow := newMockUnitOfWork()
	uow.contacts.On("Create", mock.Anything).Return(errors.New("insert failed"))
	pub := &mockEventPublisher{}
	svc := NewLeadService(&mockFactory{uow: uow}, pub, logger.NewNopLogger())

	_, err := svc.SubmitContact(context.Background(), nil, &dto.ContactRequest{FullName: "Jane", Email: "jane@example.com"})
	assert.Error(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestLeadService_PublishFailureIsNotFatal(t *testing.T) {
	uow := newMockUnitOfWork()
	uow.contacts.On("Create", mock.Anything).Return(nil)
	pub := &mockEventPublisher{}
	pub.On("Publish", mock.Anything).Return(errors.New("nats unavailable"))
	svc := NewLeadService(&mockFactory{uow: uow}, pub, logger.NewNopLogger())

	resp, err := svc.SubmitContact(context.Background(), nil, &dto.ContactRequest{FullName: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestLeadService_ScheduleConsultation(t *testing.T) {
	t.Run("requires a signed-in visitor", func(t *testing.T) {
		uow := newMockUnitOfWork()
		svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

		_, err := svc.ScheduleConsultation(context.Background(), nil, &dto.ConsultationRequest{})
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
		uow.consultations.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("defaults to a free demo", func(t *testing.T) {
		visitor := testVisitor()
		uow := newMockUnitOfWork()
		uow.consultations.On("Create", mock.MatchedBy(func(c *entity.Consultation) bool {
			return c.UserId == visitor.Id &&
				c.ConsultationType == entity.ConsultationTypeFreeDemo &&
				c.Status == entity.ConsultationStatusRequested
		})).Return(nil)
		pub := &mockEventPublisher{}
		pub.On("Publish", eventOfType(events.ConsultationRequested)).Return(nil)
		svc := NewLeadService(&mockFactory{uow: uow}, pub, logger.NewNopLogger())

		resp, err := svc.ScheduleConsultation(context.Background(), visitor, &dto.ConsultationRequest{})
		require.NoError(t, err)
		assert.Equal(t, constant.ToastConsultationTitle, resp.Title)
		uow.consultations.AssertExpectations(t)
	})

	t.Run("keeps an explicit type", func(t *testing.T) {
		uow := newMockUnitOfWork()
		uow.consultations.On("Create", mock.MatchedBy(func(c *entity.Consultation) bool {
			return c.ConsultationType == entity.ConsultationTypeStrategySession
		})).Return(nil)
		svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

		_, err := svc.ScheduleConsultation(context.Background(), testVisitor(), &dto.ConsultationRequest{ConsultationType: "strategy_session"})
		require.NoError(t, err)
		uow.consultations.AssertExpectations(t)
	})
}

func newTransactionalUoW() *mockUnitOfWork {
	uow := newMockUnitOfWork()
	uow.On("Begin").Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	return uow
}

func TestLeadService_SubmitServiceRequest(t *testing.T) {
	t.Run("explicit contact", func(t *testing.T) {
		contactId := uuid.New()
		uow := newTransactionalUoW()
		uow.contacts.On("FindOne", mock.Anything).Return(&entity.Contact{Id: contactId}, nil)
		uow.serviceRequests.On("Create", mock.MatchedBy(func(r *entity.ServiceRequest) bool {
			return r.ContactId == contactId && r.Priority == entity.PriorityMedium
		})).Return(nil)
		pub := &mockEventPublisher{}
		pub.On("Publish", eventOfType(events.ServiceRequestSubmitted)).Return(nil)
		svc := NewLeadService(&mockFactory{uow: uow}, pub, logger.NewNopLogger())

		resp, err := svc.SubmitServiceRequest(context.Background(), nil, &dto.ServiceRequestRequest{
			ContactId:   &contactId,
			ServiceType: "automation",
		})
		require.NoError(t, err)
		assert.Equal(t, constant.ToastServiceRequestTitle, resp.Title)
		uow.AssertCalled(t, "Commit")
		uow.serviceRequests.AssertExpectations(t)
	})

	t.Run("reuses the visitor's contact", func(t *testing.T) {
		contactId := uuid.New()
		uow := newTransactionalUoW()
		uow.contacts.On("FindOne", mock.Anything).Return(&entity.Contact{Id: contactId}, nil)
		uow.serviceRequests.On("Create", mock.MatchedBy(func(r *entity.ServiceRequest) bool {
			return r.ContactId == contactId && r.Priority == entity.PriorityUrgent
		})).Return(nil)
		svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

		_, err := svc.SubmitServiceRequest(context.Background(), testVisitor(), &dto.ServiceRequestRequest{
			ServiceType: "custom development",
			Priority:    "urgent",
		})
		require.NoError(t, err)
		uow.contacts.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("creates a basic contact", func(t *testing.T) {
		visitor := &entity.Visitor{Id: uuid.New(), Email: "anon@example.com"}
		uow := newTransactionalUoW()
		uow.contacts.On("FindOne", mock.Anything).Return(nil, nil)
		var created *entity.Contact
		uow.contacts.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(0).(*entity.Contact)
		}).Return(nil)
		uow.serviceRequests.On("Create", mock.Anything).Return(nil)
		svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

		_, err := svc.SubmitServiceRequest(context.Background(), visitor, &dto.ServiceRequestRequest{ServiceType: "training"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Unknown", created.FullName)
		assert.Equal(t, "anon@example.com", created.Email)
		assert.Equal(t, visitor.Id, *created.UserId)
	})

	t.Run("no contact and no visitor", func(t *testing.T) {
		uow := newTransactionalUoW()
		svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

		_, err := svc.SubmitServiceRequest(context.Background(), nil, &dto.ServiceRequestRequest{ServiceType: "training"})
		assert.ErrorIs(t, err, ErrContactRequired)
		uow.AssertNotCalled(t, "Commit")
		uow.AssertCalled(t, "Rollback")
	})

	t.Run("unknown explicit contact", func(t *testing.T) {
		missing := uuid.New()
		uow := newTransactionalUoW()
		uow.contacts.On("FindOne", mock.Anything).Return(nil, nil)
		svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

		_, err := svc.SubmitServiceRequest(context.Background(), testVisitor(), &dto.ServiceRequestRequest{
			ContactId:   &missing,
			ServiceType: "training",
		})
		assert.ErrorIs(t, err, ErrContactRequired)
	})
}

func TestLeadService_InitiateCall(t *testing.T) {
	uow := newMockUnitOfWork()
	uow.phoneCalls.On("Create", mock.MatchedBy(func(c *entity.PhoneCall) bool {
		return c.PhoneNumber == "+1 (555) 123-4567" &&
			c.CallType == entity.PhoneCallTypeOutbound &&
			c.Status == entity.PhoneCallStatusInitiated
	})).Return(nil)
	pub := &mockEventPublisher{}
	pub.On("Publish", eventOfType(events.PhoneCallInitiated)).Return(nil)
	svc := NewLeadService(&mockFactory{uow: uow}, pub, logger.NewNopLogger())

	resp, err := svc.InitiateCall(context.Background(), &dto.PhoneCallRequest{PhoneNumber: "+1 (555) 123-4567"})
	require.NoError(t, err)
	assert.Equal(t, "tel:15551234567", resp.DialURI)
	assert.Equal(t, constant.ToastCallTitle, resp.Title)
}

func TestLeadService_InitiateCallWithoutDigits(t *testing.T) {
	uow := newMockUnitOfWork()
	svc := NewLeadService(&mockFactory{uow: uow}, nil, logger.NewNopLogger())

	_, err := svc.InitiateCall(context.Background(), &dto.PhoneCallRequest{PhoneNumber: "call me"})
	assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
	uow.phoneCalls.AssertNotCalled(t, "Create", mock.Anything)
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "15551234567", DigitsOnly("+1 (555) 123-4567"))
	assert.Equal(t, "", DigitsOnly("n/a"))
}
