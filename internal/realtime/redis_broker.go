package realtime

import (
	"context"
	"fmt"

	"promptlycoach-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisBroker fans notifications out across every service instance via Redis pub/sub.
type RedisBroker struct {
	rdb    *redis.Client
	logger logger.ILogger
}

var _ Broker = (*RedisBroker)(nil)

func NewRedisBroker(rdb *redis.Client, log logger.ILogger) *RedisBroker {
	return &RedisBroker{rdb: rdb, logger: log}
}

func (b *RedisBroker) Publish(ctx context.Context, n Notification) error {
	data, err := encode(n)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, channelName(n.Table, n.SessionId), data).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, table string, sessionId uuid.UUID) (*Subscription, error) {
	channel := channelName(table, sessionId)
	pubsub := b.rdb.Subscribe(ctx, channel)

	// Wait for the confirmation so no insert published after we return is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", channel, err)
	}

	out := make(chan Notification, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			n, err := decode([]byte(msg.Payload))
			if err != nil {
				b.logger.Warn("RealtimeBroker", "Dropping malformed notification", map[string]interface{}{
					"channel": channel,
					"error":   err.Error(),
				})
				continue
			}
			select {
			case out <- n:
			case <-done:
				return
			}
		}
	}()

	b.logger.Info("RealtimeBroker", "Subscribed", map[string]interface{}{"channel": channel})

	return newSubscription(out, func() {
		close(done)
		if err := pubsub.Close(); err != nil {
			b.logger.Warn("RealtimeBroker", "Failed to close subscription", map[string]interface{}{
				"channel": channel,
				"error":   err.Error(),
			})
		}
		b.logger.Info("RealtimeBroker", "Unsubscribed", map[string]interface{}{"channel": channel})
	}), nil
}

func (b *RedisBroker) Close() error {
	return b.rdb.Close()
}
