// Package coordinator owns one visitor's chat: the open session, the ordered message
// list and the AI reply flow. One Coordinator serves one widget connection.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/realtime"

	"github.com/google/uuid"
)

const DefaultRelayTimeout = 30 * time.Second

var (
	ErrNoActiveSession   = errors.New("no active chat session")
	ErrStartInProgress   = errors.New("chat session start already in progress")
	ErrCoordinatorClosed = errors.New("coordinator closed")
)

// Store is the subset of the chat store the coordinator writes through.
type Store interface {
	CreateSession(ctx context.Context, token, userAgent, visitorIp string) (*entity.ChatSession, error)
	EndSession(ctx context.Context, id uuid.UUID) error
	InsertMessage(ctx context.Context, sessionId uuid.UUID, text string, senderType entity.SenderType, senderName *string) (*entity.ChatMessage, error)
	ListMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
}

// Relay asks the relay function for an assistant reply.
type Relay interface {
	Invoke(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error)
}

type Config struct {
	Store      Store
	Relay      Relay
	Subscriber realtime.Subscriber
	Notifier   Notifier
	Logger     logger.ILogger

	// OnChange receives a snapshot after every state change. Calls are serialised.
	OnChange func(Snapshot)

	Clock        func() time.Time
	NewToken     func(now time.Time) string
	RelayTimeout time.Duration

	UserAgent string
	VisitorIp string
}

type Coordinator struct {
	store      Store
	relay      Relay
	subscriber realtime.Subscriber
	notifier   Notifier
	logger     logger.ILogger
	onChange   func(Snapshot)
	now        func() time.Time
	newToken   func(now time.Time) string
	timeout    time.Duration
	userAgent  string
	visitorIp  string

	mu        sync.Mutex
	session   *entity.ChatSession
	messages  []Message
	known     map[string]struct{} // confirmed ids already held
	isLoading bool
	sub       *realtime.Subscription
	seq       uint64
	closed    bool

	notifyMu sync.Mutex
}

func New(cfg Config) *Coordinator {
	c := &Coordinator{
		store:      cfg.Store,
		relay:      cfg.Relay,
		subscriber: cfg.Subscriber,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
		onChange:   cfg.OnChange,
		now:        cfg.Clock,
		newToken:   cfg.NewToken,
		timeout:    cfg.RelayTimeout,
		userAgent:  cfg.UserAgent,
		visitorIp:  cfg.VisitorIp,
		known:      make(map[string]struct{}),
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.logger == nil {
		c.logger = logger.NewNopLogger()
	}
	if c.now == nil {
		c.now = func() time.Time { return time.Now().UTC() }
	}
	if c.newToken == nil {
		c.newToken = NewSessionToken
	}
	if c.timeout <= 0 {
		c.timeout = DefaultRelayTimeout
	}
	return c
}

// StartChatSession opens a new session and makes it current. It is not idempotent:
// every successful call creates another session.
func (c *Coordinator) StartChatSession(ctx context.Context) (*entity.ChatSession, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCoordinatorClosed
	}
	if c.isLoading {
		c.mu.Unlock()
		return nil, ErrStartInProgress
	}
	c.isLoading = true
	c.mu.Unlock()
	c.changed()

	defer func() {
		c.mu.Lock()
		c.isLoading = false
		c.mu.Unlock()
		c.changed()
	}()

	token := c.newToken(c.now())
	session, err := c.store.CreateSession(ctx, token, c.userAgent, c.visitorIp)
	if err != nil {
		c.logger.Error("ChatCoordinator", "Failed to start chat session", map[string]interface{}{"error": err})
		c.toastError(constant.ToastStartFailedDescription)
		return nil, fmt.Errorf("start chat session: %w", err)
	}

	c.switchSession(ctx, session)
	c.loadExisting(ctx, session)

	welcomeName := constant.WelcomeSenderName
	if _, err := c.SendMessage(ctx, constant.WelcomeMessage, entity.SenderTypeBot, &welcomeName); err != nil {
		c.logger.Warn("ChatCoordinator", "Welcome message was not stored", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	c.notifier.Notify(Toast{
		Title:       constant.ToastChatStartedTitle,
		Description: constant.ToastChatStartedDescription,
		Variant:     constant.ToastVariantDefault,
	})

	started := *session
	return &started, nil
}

// switchSession makes session current and moves the realtime subscription over to it.
func (c *Coordinator) switchSession(ctx context.Context, session *entity.ChatSession) {
	sub, err := c.subscriber.Subscribe(ctx, constant.RealtimeTableChatMessages, session.Id)
	if err != nil {
		// Replies still arrive through the direct relay path.
		c.logger.Warn("ChatCoordinator", "Realtime subscription unavailable", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		sub = nil
	}

	c.mu.Lock()
	previous := c.sub
	if c.closed {
		c.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		return
	}
	c.session = session
	c.sub = sub
	c.messages = nil
	c.known = make(map[string]struct{})
	c.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	if sub != nil {
		go c.drain(session.Id, sub)
	}
	c.changed()
}

func (c *Coordinator) loadExisting(ctx context.Context, session *entity.ChatSession) {
	existing, err := c.store.ListMessages(ctx, session.Id)
	if err != nil {
		c.logger.Warn("ChatCoordinator", "Failed to load messages", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return
	}
	appended := false
	for _, record := range existing {
		if _, ok := c.appendConfirmed(record); ok {
			appended = true
		}
	}
	if appended {
		c.changed()
	}
}

// drain appends realtime inserts until the subscription is released.
func (c *Coordinator) drain(sessionId uuid.UUID, sub *realtime.Subscription) {
	for n := range sub.C {
		if n.Message == nil || n.SessionId != sessionId {
			continue
		}
		if _, ok := c.appendConfirmed(n.Message); ok {
			c.changed()
		}
	}
}

// SendMessage persists a message in the current session and appends it locally. A
// visitor message also runs the AI reply flow before returning. Without an open
// session it returns ErrNoActiveSession and leaves state untouched.
func (c *Coordinator) SendMessage(ctx context.Context, text string, senderType entity.SenderType, senderName *string) (*Message, error) {
	c.mu.Lock()
	session := c.session
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrCoordinatorClosed
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	if senderType == "" {
		senderType = entity.SenderTypeVisitor
	}

	record, err := c.store.InsertMessage(ctx, session.Id, text, senderType, senderName)
	if err != nil {
		c.logger.Error("ChatCoordinator", "Failed to send message", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err,
		})
		c.toastError(constant.ToastSendFailedDescription)
		return nil, fmt.Errorf("send message: %w", err)
	}

	msg, appended := c.appendConfirmed(record)
	if appended {
		c.changed()
	}

	if senderType == entity.SenderTypeVisitor {
		c.respond(ctx, session, msg)
	}

	return &msg, nil
}

// EndChatSession ends the current session and clears local state. It is a no-op
// without a session. On a store failure the state is kept.
func (c *Coordinator) EndChatSession(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil {
		return nil
	}

	if err := c.store.EndSession(ctx, session.Id); err != nil {
		c.logger.Error("ChatCoordinator", "Failed to end chat session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err,
		})
		c.toastError(constant.ToastEndFailedDescription)
		return fmt.Errorf("end chat session: %w", err)
	}

	var sub *realtime.Subscription
	c.mu.Lock()
	if c.session != nil && c.session.Id == session.Id {
		sub = c.sub
		c.session = nil
		c.sub = nil
		c.messages = nil
		c.known = make(map[string]struct{})
	}
	c.mu.Unlock()

	if sub != nil {
		sub.Close()
	}

	c.notifier.Notify(Toast{
		Title:       constant.ToastChatEndedTitle,
		Description: constant.ToastChatEndedDescription,
		Variant:     constant.ToastVariantDefault,
	})
	c.changed()
	return nil
}

// Close releases the realtime subscription. The session itself is left as is: a
// closed tab abandons its chat rather than ending it.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}

func (c *Coordinator) CurrentSession() *entity.ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Coordinator) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLoading
}

// Messages returns the held messages ordered by created_at. Ties keep arrival order.
func (c *Coordinator) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortedLocked()
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Messages:  c.sortedLocked(),
		IsLoading: c.isLoading,
	}
	if c.session != nil {
		s := *c.session
		snap.Session = &s
	}
	return snap
}

func (c *Coordinator) sortedLocked() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// appendConfirmed adds a stored row once. A row for a session that is no longer
// current is dropped. A matching optimistic relay reply is replaced in place, but only
// within its own turn: a new visitor message stops earlier replies from matching.
func (c *Coordinator) appendConfirmed(record *entity.ChatMessage) (Message, bool) {
	msg := confirmedMessage(record)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || c.session.Id != record.SessionId {
		return msg, false
	}
	if _, dup := c.known[msg.Id]; dup {
		for _, held := range c.messages {
			if held.Id == msg.Id {
				return held, false
			}
		}
		return msg, false
	}
	c.known[msg.Id] = struct{}{}

	if msg.SenderType == entity.SenderTypeVisitor {
		for i := range c.messages {
			c.messages[i].awaitingConfirm = false
		}
	}
	if msg.SenderType == entity.SenderTypeBot {
		for i := range c.messages {
			pending := c.messages[i]
			if pending.awaitingConfirm && pending.Message == msg.Message {
				msg.seq = pending.seq
				c.messages[i] = msg
				return msg, true
			}
		}
	}

	c.seq++
	msg.seq = c.seq
	c.messages = append(c.messages, msg)
	return msg, true
}

// appendOptimistic adds a locally synthesised bot message. With reconcile set it is
// skipped when the stored reply already arrived after the message at afterSeq.
func (c *Coordinator) appendOptimistic(sessionId uuid.UUID, text string, reconcile bool, afterSeq uint64) (Message, bool) {
	senderName := constant.BotSenderName
	msg := Message{
		Id:              constant.OptimisticIdPrefix + uuid.NewString(),
		SessionId:       sessionId,
		Message:         text,
		SenderType:      entity.SenderTypeBot,
		SenderName:      &senderName,
		CreatedAt:       c.now(),
		Origin:          OriginOptimistic,
		awaitingConfirm: reconcile,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || c.session.Id != sessionId {
		return msg, false
	}
	if reconcile {
		for _, held := range c.messages {
			if held.IsConfirmed() && held.SenderType == entity.SenderTypeBot && held.seq > afterSeq && held.Message == text {
				return held, false
			}
		}
	}

	c.seq++
	msg.seq = c.seq
	c.messages = append(c.messages, msg)
	return msg, true
}

func (c *Coordinator) changed() {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.onChange(c.Snapshot())
}

func (c *Coordinator) toastError(description string) {
	c.notifier.Notify(Toast{
		Title:       constant.ToastErrorTitle,
		Description: description,
		Variant:     constant.ToastVariantDestructive,
	})
}
