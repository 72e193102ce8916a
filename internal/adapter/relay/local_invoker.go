package relay

import (
	"context"

	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/service"
)

// LocalInvoker runs the relay in-process.
type LocalInvoker struct {
	relay service.IRelayService
}

var _ coordinator.Relay = (*LocalInvoker)(nil)

func NewLocalInvoker(relay service.IRelayService) *LocalInvoker {
	return &LocalInvoker{relay: relay}
}

func (l *LocalInvoker) Invoke(ctx context.Context, req *dto.RelayRequest) (*dto.RelayResponse, error) {
	return l.relay.Respond(ctx, req)
}
