package coordinator

import (
	"time"

	"promptlycoach-be/internal/entity"

	"github.com/google/uuid"
)

// Origin separates rows the store has confirmed from locally synthesised ones.
type Origin string

const (
	OriginConfirmed  Origin = "confirmed"
	OriginOptimistic Origin = "optimistic"
)

// Message is a chat message as held by the coordinator. Optimistic messages carry a
// temp_ id and are never written back to the store.
type Message struct {
	Id         string            `json:"id"`
	SessionId  uuid.UUID         `json:"session_id"`
	Message    string            `json:"message"`
	SenderType entity.SenderType `json:"sender_type"`
	SenderName *string           `json:"sender_name,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	Origin     Origin            `json:"origin"`

	// seq is the local arrival order.
	seq uint64
	// awaitingConfirm marks an optimistic relay reply whose stored row may still arrive.
	awaitingConfirm bool
}

func (m Message) IsConfirmed() bool {
	return m.Origin == OriginConfirmed
}

func confirmedMessage(record *entity.ChatMessage) Message {
	return Message{
		Id:         record.Id.String(),
		SessionId:  record.SessionId,
		Message:    record.Message,
		SenderType: record.SenderType,
		SenderName: record.SenderName,
		CreatedAt:  record.CreatedAt,
		Origin:     OriginConfirmed,
	}
}

// Snapshot is a consistent copy of the coordinator state.
type Snapshot struct {
	Session   *entity.ChatSession `json:"session"`
	Messages  []Message           `json:"messages"`
	IsLoading bool                `json:"is_loading"`
}

// Toast is a transient user-visible notification.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type Notifier interface {
	Notify(toast Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(toast Toast)

func (f NotifierFunc) Notify(toast Toast) {
	f(toast)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Toast) {}
