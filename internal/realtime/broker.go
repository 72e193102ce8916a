// Package realtime delivers row-change notifications for the chat tables, scoped by
// table and session. It plays the role of the hosted platform's change feed.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"promptlycoach-be/internal/entity"

	"github.com/google/uuid"
)

// Notification describes one inserted row.
type Notification struct {
	Table     string              `json:"table"`
	Event     string              `json:"event"`
	SessionId uuid.UUID           `json:"session_id"`
	Message   *entity.ChatMessage `json:"new"`
}

type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, table string, sessionId uuid.UUID) (*Subscription, error)
}

type Broker interface {
	Publisher
	Subscriber
	Close() error
}

// Subscription is a scoped handle on one (table, session) feed. C is closed after
// Close has released the underlying resources.
type Subscription struct {
	C <-chan Notification

	once    sync.Once
	release func()
}

func newSubscription(c <-chan Notification, release func()) *Subscription {
	return &Subscription{C: c, release: release}
}

// Close is idempotent.
func (s *Subscription) Close() {
	s.once.Do(s.release)
}

func channelName(table string, sessionId uuid.UUID) string {
	return fmt.Sprintf("realtime:%s:%s", table, sessionId)
}

func encode(n Notification) ([]byte, error) {
	if n.Message == nil {
		return nil, fmt.Errorf("notification for %s has no record", n.Table)
	}
	return json.Marshal(n)
}

func decode(data []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return n, err
	}
	if n.Message == nil {
		return n, fmt.Errorf("notification for %s has no record", n.Table)
	}
	return n, nil
}
