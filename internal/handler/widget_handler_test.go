package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/realtime"
	internalWS "promptlycoach-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ChatSession
	messages []*entity.ChatMessage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[uuid.UUID]*entity.ChatSession)}
}

func (s *memoryStore) CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &entity.ChatSession{
		Id:           uuid.New(),
		SessionToken: token,
		Status:       entity.ChatSessionStatusActive,
		StartedAt:    time.Now().UTC(),
		UserAgent:    userAgent,
		VisitorIp:    visitorIp,
	}
	s.sessions[session.Id] = session
	copied := *session
	return &copied, nil
}

func (s *memoryStore) EndSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return errors.New("session not found")
	}
	session.Status = entity.ChatSessionStatusEnded
	return nil
}

func (s *memoryStore) InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Message:    text,
		SenderType: senderType,
		SenderName: senderName,
		CreatedAt:  time.Now().UTC(),
	}
	s.messages = append(s.messages, msg)
	copied := *msg
	return &copied, nil
}

func (s *memoryStore) ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	return nil, nil
}

type echoRelay struct{}

func (echoRelay) Invoke(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
	return &dto.RelayResponse{Response: "You said: " + req.Message, Success: true}, nil
}

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func startWidgetServer(t *testing.T) (string, *internalWS.Hub) {
	t.Helper()

	broker := realtime.NewLocalBroker(gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}), logger.NewNopLogger())
	hub := internalWS.NewHub(logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	h := NewWidgetHandler(hub, coordinator.Config{
		Store:      newMemoryStore(),
		Relay:      echoRelay{},
		Subscriber: broker,
		Logger:     logger.NewNopLogger(),
	}, logger.NewNopLogger())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h.RegisterRoutes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)

	t.Cleanup(func() {
		cancel()
		_ = app.Shutdown()
		_ = broker.Close()
	})
	return "ws://" + ln.Addr().String() + "/api/chat/ws", hub
}

func dial(t *testing.T, url string) *gorilla.Conn {
	t.Helper()
	conn, _, err := gorilla.DefaultDialer.Dial(url, http.Header{"User-Agent": []string{"widget-test"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *gorilla.Conn, v interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

// readUntil returns the first frame that satisfies match.
func readUntil(t *testing.T, conn *gorilla.Conn, match func(frame) bool) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if match(f) {
			return f
		}
	}
}

func stateFrame(t *testing.T, f frame) coordinator.Snapshot {
	t.Helper()
	var s coordinator.Snapshot
	require.NoError(t, json.Unmarshal(f.Data, &s))
	return s
}

func TestWidget_ChatFlow(t *testing.T) {
	url, hub := startWidgetServer(t)
	conn := dial(t, url)

	initial := readUntil(t, conn, func(f frame) bool { return f.Type == internalWS.FrameState })
	assert.Nil(t, stateFrame(t, initial).Session)

	send(t, conn, map[string]string{"type": internalWS.FrameStartChat})

	toast := readUntil(t, conn, func(f frame) bool { return f.Type == internalWS.FrameToast })
	var started coordinator.Toast
	require.NoError(t, json.Unmarshal(toast.Data, &started))
	assert.Equal(t, constant.ToastChatStartedTitle, started.Title)
	assert.Equal(t, 1, hub.Count())

	send(t, conn, map[string]string{"type": internalWS.FrameSendMessage, "message": "hello"})

	f := readUntil(t, conn, func(f frame) bool {
		return f.Type == internalWS.FrameState && len(stateFrame(t, f).Messages) == 3
	})
	snapshot := stateFrame(t, f)
	require.NotNil(t, snapshot.Session)
	assert.Equal(t, "widget-test", snapshot.Session.UserAgent)
	assert.Equal(t, constant.WelcomeMessage, snapshot.Messages[0].Message)
	assert.Equal(t, "hello", snapshot.Messages[1].Message)
	assert.Equal(t, "You said: hello", snapshot.Messages[2].Message)

	send(t, conn, map[string]string{"type": internalWS.FrameEndChat})
	readUntil(t, conn, func(f frame) bool {
		return f.Type == internalWS.FrameState && stateFrame(t, f).Session == nil
	})
}

func TestWidget_SendWithoutSession(t *testing.T) {
	url, _ := startWidgetServer(t)
	conn := dial(t, url)

	send(t, conn, map[string]string{"type": internalWS.FrameSendMessage, "message": "anyone there?"})

	f := readUntil(t, conn, func(f frame) bool { return f.Type == internalWS.FrameError })
	assert.Contains(t, string(f.Data), coordinator.ErrNoActiveSession.Error())
}

func TestWidget_UnknownFrame(t *testing.T) {
	url, _ := startWidgetServer(t)
	conn := dial(t, url)

	send(t, conn, map[string]string{"type": internalWS.FrameSendMessage, "message": "   "})
	send(t, conn, map[string]string{"type": "typing"})

	f := readUntil(t, conn, func(f frame) bool { return f.Type == internalWS.FrameError })
	assert.Contains(t, string(f.Data), "unknown frame type: typing")
}

func TestWidget_DisconnectUnregisters(t *testing.T) {
	url, hub := startWidgetServer(t)
	conn := dial(t, url)
	readUntil(t, conn, func(f frame) bool { return f.Type == internalWS.FrameState })

	assert.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWidget_RequiresUpgrade(t *testing.T) {
	hub := internalWS.NewHub(logger.NewNopLogger())
	app := fiber.New()
	NewWidgetHandler(hub, coordinator.Config{}, logger.NewNopLogger()).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
