package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubRelayService struct {
	respond func(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error)
}

func (s *stubRelayService) Respond(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
	return s.respond(ctx, req)
}

type stubChatStore struct {
	sessions map[uuid.UUID]*entity.ChatSession
	messages map[uuid.UUID][]*entity.ChatMessage
	endErr   error
}

func newStubChatStore() *stubChatStore {
	return &stubChatStore{
		sessions: map[uuid.UUID]*entity.ChatSession{},
		messages: map[uuid.UUID][]*entity.ChatMessage{},
	}
}

func (s *stubChatStore) CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error) {
	session := &entity.ChatSession{
		Id:           uuid.New(),
		SessionToken: token,
		Status:       entity.ChatSessionStatusActive,
		UserAgent:    userAgent,
		VisitorIp:    visitorIp,
	}
	s.sessions[session.Id] = session
	return session, nil
}

func (s *stubChatStore) EndSession(ctx context.Context, id uuid.UUID) error {
	if s.endErr != nil {
		return s.endErr
	}
	return nil
}

func (s *stubChatStore) GetSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return session, nil
}

func (s *stubChatStore) InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error) {
	if _, ok := s.sessions[sessionId]; !ok {
		return nil, errSessionNotFound
	}
	msg := &entity.ChatMessage{Id: uuid.New(), SessionId: sessionId, Message: text, SenderType: senderType, SenderName: senderName}
	s.messages[sessionId] = append(s.messages[sessionId], msg)
	return msg, nil
}

func (s *stubChatStore) ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	return s.messages[sessionId], nil
}

type stubLeadService struct {
	lastVisitor *entity.Visitor
	err         error
}

func (s *stubLeadService) SubmitContact(ctx context.Context, visitor *entity.Visitor, req *dto.ContactRequest) (*dto.LeadResponse, error) {
	s.lastVisitor = visitor
	if s.err != nil {
		return nil, s.err
	}
	return &dto.LeadResponse{Id: uuid.New(), Title: "Message Sent Successfully!"}, nil
}

func (s *stubLeadService) ScheduleConsultation(ctx context.Context, visitor *entity.Visitor, req *dto.ConsultationRequest) (*dto.LeadResponse, error) {
	s.lastVisitor = visitor
	if visitor == nil {
		return nil, errAuthenticationRequired
	}
	return &dto.LeadResponse{Id: uuid.New(), Title: "Consultation Requested!"}, nil
}

func (s *stubLeadService) SubmitServiceRequest(ctx context.Context, visitor *entity.Visitor, req *dto.ServiceRequestRequest) (*dto.LeadResponse, error) {
	s.lastVisitor = visitor
	if s.err != nil {
		return nil, s.err
	}
	return &dto.LeadResponse{Id: uuid.New(), Title: "Service Request Submitted!"}, nil
}

func (s *stubLeadService) InitiateCall(ctx context.Context, req *dto.PhoneCallRequest) (*dto.PhoneCallResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PhoneCallResponse{
		LeadResponse: dto.LeadResponse{Id: uuid.New(), Title: "Call Initiated"},
		DialURI:      "tel:5551234",
	}, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp, nil
	}
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	return resp, decoded
}
