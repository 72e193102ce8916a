package service

import (
	"context"
	"time"

	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/realtime"
	"promptlycoach-be/internal/repository/contract"
	"promptlycoach-be/internal/repository/specification"
	"promptlycoach-be/internal/repository/unitofwork"
	"promptlycoach-be/pkg/events"
	"promptlycoach-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- unit of work ---

type mockFactory struct {
	uow *mockUnitOfWork
}

func (f *mockFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type mockUnitOfWork struct {
	mock.Mock
	sessions        *mockSessionRepo
	messages        *mockMessageRepo
	contacts        *mockContactRepo
	serviceRequests *mockServiceRequestRepo
	consultations   *mockConsultationRepo
	phoneCalls      *mockPhoneCallRepo
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		sessions:        &mockSessionRepo{},
		messages:        &mockMessageRepo{},
		contacts:        &mockContactRepo{},
		serviceRequests: &mockServiceRequestRepo{},
		consultations:   &mockConsultationRepo{},
		phoneCalls:      &mockPhoneCallRepo{},
	}
}

func (u *mockUnitOfWork) Begin(ctx context.Context) error {
	return u.Called().Error(0)
}

func (u *mockUnitOfWork) Commit() error {
	return u.Called().Error(0)
}

func (u *mockUnitOfWork) Rollback() error {
	return u.Called().Error(0)
}

func (u *mockUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository { return u.sessions }
func (u *mockUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *mockUnitOfWork) ContactRepository() contract.ContactRepository         { return u.contacts }
func (u *mockUnitOfWork) ServiceRequestRepository() contract.ServiceRequestRepository {
	return u.serviceRequests
}
func (u *mockUnitOfWork) ConsultationRepository() contract.ConsultationRepository {
	return u.consultations
}
func (u *mockUnitOfWork) PhoneCallRepository() contract.PhoneCallRepository { return u.phoneCalls }

// --- repositories ---

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	return m.Called(session).Error(0)
}

func (m *mockSessionRepo) MarkEnded(ctx context.Context, id uuid.UUID, endedAt time.Time) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	args := m.Called(specs)
	session, _ := args.Get(0).(*entity.ChatSession)
	return session, args.Error(1)
}

func (m *mockSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	args := m.Called(specs)
	sessions, _ := args.Get(0).([]*entity.ChatSession)
	return sessions, args.Error(1)
}

func (m *mockSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(specs)
	return args.Get(0).(int64), args.Error(1)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	return m.Called(message).Error(0)
}

func (m *mockMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	args := m.Called(specs)
	msg, _ := args.Get(0).(*entity.ChatMessage)
	return msg, args.Error(1)
}

func (m *mockMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	args := m.Called(specs)
	msgs, _ := args.Get(0).([]*entity.ChatMessage)
	return msgs, args.Error(1)
}

func (m *mockMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(specs)
	return args.Get(0).(int64), args.Error(1)
}

type mockContactRepo struct{ mock.Mock }

func (m *mockContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	return m.Called(contact).Error(0)
}

func (m *mockContactRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error) {
	args := m.Called(specs)
	contact, _ := args.Get(0).(*entity.Contact)
	return contact, args.Error(1)
}

type mockServiceRequestRepo struct{ mock.Mock }

func (m *mockServiceRequestRepo) Create(ctx context.Context, request *entity.ServiceRequest) error {
	return m.Called(request).Error(0)
}

func (m *mockServiceRequestRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(specs)
	return args.Get(0).(int64), args.Error(1)
}

type mockConsultationRepo struct{ mock.Mock }

func (m *mockConsultationRepo) Create(ctx context.Context, consultation *entity.Consultation) error {
	return m.Called(consultation).Error(0)
}

func (m *mockConsultationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(specs)
	return args.Get(0).(int64), args.Error(1)
}

type mockPhoneCallRepo struct{ mock.Mock }

func (m *mockPhoneCallRepo) Create(ctx context.Context, call *entity.PhoneCall) error {
	return m.Called(call).Error(0)
}

// --- collaborators ---

type mockRealtimePublisher struct{ mock.Mock }

func (m *mockRealtimePublisher) Publish(ctx context.Context, n realtime.Notification) error {
	return m.Called(n).Error(0)
}

type mockEventPublisher struct{ mock.Mock }

func (m *mockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(event).Error(0)
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	applied := llm.ApplyOptions(llm.Options{}, options...)
	args := m.Called(history, applied)
	return args.String(0), args.Error(1)
}

type mockChatStore struct{ mock.Mock }

func (m *mockChatStore) CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error) {
	args := m.Called(token, userAgent, visitorIp)
	session, _ := args.Get(0).(*entity.ChatSession)
	return session, args.Error(1)
}

func (m *mockChatStore) EndSession(ctx context.Context, id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockChatStore) GetSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	args := m.Called(id)
	session, _ := args.Get(0).(*entity.ChatSession)
	return session, args.Error(1)
}

func (m *mockChatStore) InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error) {
	args := m.Called(sessionId, text, senderType, senderName)
	msg, _ := args.Get(0).(*entity.ChatMessage)
	return msg, args.Error(1)
}

func (m *mockChatStore) ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	args := m.Called(sessionId)
	msgs, _ := args.Get(0).([]*entity.ChatMessage)
	return msgs, args.Error(1)
}
