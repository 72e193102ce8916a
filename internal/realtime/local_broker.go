package realtime

import (
	"context"
	"fmt"

	"promptlycoach-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// LocalBroker keeps notifications inside one process. Used when Redis is not configured.
type LocalBroker struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

var _ Broker = (*LocalBroker)(nil)

func NewLocalBroker(pubSub *gochannel.GoChannel, log logger.ILogger) *LocalBroker {
	return &LocalBroker{pubSub: pubSub, logger: log}
}

func (b *LocalBroker) Publish(ctx context.Context, n Notification) error {
	data, err := encode(n)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if err := b.pubSub.Publish(channelName(n.Table, n.SessionId), msg); err != nil {
		return fmt.Errorf("local publish: %w", err)
	}
	return nil
}

func (b *LocalBroker) Subscribe(ctx context.Context, table string, sessionId uuid.UUID) (*Subscription, error) {
	topic := channelName(table, sessionId)

	// The subscription outlives ctx; it ends when the caller closes it.
	subCtx, cancel := context.WithCancel(context.Background())
	messages, err := b.pubSub.Subscribe(subCtx, topic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("local subscribe %s: %w", topic, err)
	}

	out := make(chan Notification, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			n, err := decode(msg.Payload)
			msg.Ack()
			if err != nil {
				b.logger.Warn("RealtimeBroker", "Dropping malformed notification", map[string]interface{}{
					"topic": topic,
					"error": err.Error(),
				})
				continue
			}
			select {
			case out <- n:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return newSubscription(out, cancel), nil
}

func (b *LocalBroker) Close() error {
	return b.pubSub.Close()
}
