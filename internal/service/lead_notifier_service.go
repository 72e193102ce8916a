package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/pkg/mailer"
	"promptlycoach-be/pkg/events"
	pktNats "promptlycoach-be/pkg/nats"
)

const leadNotifierDurable = "lead-notifier-worker"

// EventSubscriber is satisfied by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// LeadNotifierService e-mails the sales inbox for every lead event.
type LeadNotifierService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	inbox      string
	logger     logger.ILogger
}

func NewLeadNotifierService(sub EventSubscriber, mail mailer.IEmailService, inbox string, log logger.ILogger) *LeadNotifierService {
	return &LeadNotifierService{
		subscriber: sub,
		mailer:     mail,
		inbox:      inbox,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *LeadNotifierService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, "events.>", leadNotifierDurable, s.handleEvent); err != nil {
		return fmt.Errorf("start lead notifier: %w", err)
	}
	s.logger.Info("LeadNotifier", "Lead notifier started, listening to events.>", map[string]interface{}{"inbox": s.inbox})
	return nil
}

func (s *LeadNotifierService) handleEvent(ctx context.Context, event events.Event) error {
	subject, ok := leadSubject(event)
	if !ok {
		return nil
	}

	if err := s.mailer.SendLeadNotification(s.inbox, subject, leadFields(event.Payload())); err != nil {
		s.logger.Error("LeadNotifier", "Failed to send lead notification", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
		return err
	}

	s.logger.Info("LeadNotifier", "Lead notification sent", map[string]interface{}{"type": event.EventType()})
	return nil
}

func leadSubject(event events.Event) (string, bool) {
	p := event.Payload()
	str := func(key string) string {
		v, _ := p[key].(string)
		return v
	}

	switch event.EventType() {
	case events.ContactSubmitted:
		return fmt.Sprintf("New contact: %s", str("full_name")), true
	case events.ConsultationRequested:
		return fmt.Sprintf("Consultation requested: %s", str("consultation_type")), true
	case events.ServiceRequestSubmitted:
		return fmt.Sprintf("Service request: %s (%s priority)", str("service_type"), str("priority")), true
	case events.PhoneCallInitiated:
		return fmt.Sprintf("Call initiated to %s", str("phone_number")), true
	}
	return "", false
}

func leadFields(payload map[string]interface{}) []mailer.Field {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]mailer.Field, 0, len(keys))
	for _, k := range keys {
		if payload[k] == nil {
			continue
		}
		fields = append(fields, mailer.Field{
			Label: strings.ReplaceAll(k, "_", " "),
			Value: fmt.Sprint(payload[k]),
		})
	}
	return fields
}
