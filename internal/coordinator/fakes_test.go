package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/realtime"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore keeps rows in memory and announces inserts on the broker like the real
// chat store does.
type fakeStore struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entity.ChatSession
	messages  []*entity.ChatMessage
	publisher realtime.Publisher

	createErr error
	insertErr error
	endErr    error
	// createGate, when set, blocks CreateSession until closed.
	createGate chan struct{}
}

func newFakeStore(publisher realtime.Publisher) *fakeStore {
	return &fakeStore{
		sessions:  make(map[uuid.UUID]*entity.ChatSession),
		publisher: publisher,
	}
}

func (s *fakeStore) CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error) {
	if s.createGate != nil {
		<-s.createGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
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

func (s *fakeStore) EndSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endErr != nil {
		return s.endErr
	}
	session, ok := s.sessions[id]
	if !ok {
		return errors.New("session not found")
	}
	if session.IsActive() {
		now := time.Now().UTC()
		session.Status = entity.ChatSessionStatusEnded
		session.EndedAt = &now
	}
	return nil
}

func (s *fakeStore) InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error) {
	s.mu.Lock()
	if s.insertErr != nil {
		s.mu.Unlock()
		return nil, s.insertErr
	}
	if _, ok := s.sessions[sessionId]; !ok {
		s.mu.Unlock()
		return nil, errors.New("session not found")
	}
	record := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Message:    text,
		SenderType: senderType,
		SenderName: senderName,
		CreatedAt:  time.Now().UTC(),
	}
	s.messages = append(s.messages, record)
	s.mu.Unlock()

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, realtime.Notification{
			Table:     constant.RealtimeTableChatMessages,
			Event:     constant.RealtimeEventInsert,
			SessionId: sessionId,
			Message:   record,
		})
	}
	copied := *record
	return &copied, nil
}

func (s *fakeStore) ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.ChatMessage
	for _, m := range s.messages {
		if m.SessionId == sessionId {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeStore) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *fakeStore) stored(sessionId uuid.UUID) []*entity.ChatMessage {
	out, _ := s.ListMessages(context.Background(), sessionId)
	return out
}

type relayFunc func(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error)

func (f relayFunc) Invoke(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
	return f(ctx, req)
}

// silentRelay answers every visitor message without storing anything.
func silentRelay(reply string) relayFunc {
	return func(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
		return &dto.RelayResponse{Response: reply, Success: true}, nil
	}
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *toastRecorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *toastRecorder) all() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

func (r *toastRecorder) last() Toast {
	all := r.all()
	if len(all) == 0 {
		return Toast{}
	}
	return all[len(all)-1]
}

type harness struct {
	coord  *Coordinator
	store  *fakeStore
	broker *realtime.LocalBroker
	toasts *toastRecorder
}

func newHarness(relay Relay, opts ...func(*Config)) *harness {
	log := logger.NewNopLogger()
	broker := realtime.NewLocalBroker(gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}), log)
	store := newFakeStore(broker)
	toasts := &toastRecorder{}

	cfg := Config{
		Store:        store,
		Relay:        relay,
		Subscriber:   broker,
		Notifier:     toasts,
		Logger:       log,
		RelayTimeout: time.Second,
		UserAgent:    "go-test",
		VisitorIp:    "unknown",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &harness{
		coord:  New(cfg),
		store:  store,
		broker: broker,
		toasts: toasts,
	}
}

func (h *harness) close() {
	h.coord.Close()
	_ = h.broker.Close()
}

func countBy(messages []Message, pred func(Message) bool) int {
	n := 0
	for _, m := range messages {
		if pred(m) {
			n++
		}
	}
	return n
}

// recordingSubscriber hands out real subscriptions and keeps them for inspection.
type recordingSubscriber struct {
	inner realtime.Subscriber

	mu   sync.Mutex
	subs []*realtime.Subscription
}

func (r *recordingSubscriber) Subscribe(ctx context.Context, table string, sessionId uuid.UUID) (*realtime.Subscription, error) {
	sub, err := r.inner.Subscribe(ctx, table, sessionId)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()
	return sub, nil
}

func (r *recordingSubscriber) all() []*realtime.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*realtime.Subscription, len(r.subs))
	copy(out, r.subs)
	return out
}

// released reports whether sub.C has been closed. A pending notification is consumed.
func released(sub *realtime.Subscription) bool {
	select {
	case _, ok := <-sub.C:
		return !ok
	default:
		return false
	}
}

func newRecordingHarness(relay Relay) (*harness, *recordingSubscriber) {
	rec := &recordingSubscriber{}
	h := newHarness(relay, func(cfg *Config) {
		rec.inner = cfg.Subscriber
		cfg.Subscriber = rec
	})
	return h, rec
}
