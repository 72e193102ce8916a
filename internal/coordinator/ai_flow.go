package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"promptlycoach-be/internal/constant"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
)

var errRelayUnsuccessful = errors.New("relay reported failure")

// respond obtains the assistant reply to visitorMsg. Whatever happens, the visitor
// ends up with one reply in the list: the stored one, a synthesised copy of the
// returned text, or a fallback notice.
func (c *Coordinator) respond(ctx context.Context, session *entity.ChatSession, visitorMsg Message) {
	req := &dto.RelayRequest{
		Message:     visitorMsg.Message,
		SessionId:   session.Id.String(),
		ChatHistory: c.historyBefore(visitorMsg),
	}

	relayCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.relay.Invoke(relayCtx, req)
	if err == nil && (resp == nil || !resp.Success) {
		reason := ""
		if resp != nil {
			reason = resp.Error
		}
		err = fmt.Errorf("%w: %s", errRelayUnsuccessful, reason)
	}

	if err != nil {
		if ctx.Err() != nil {
			// The caller went away; nobody is waiting for a fallback.
			return
		}
		fallback := constant.RelayApologyMessage
		if errors.Is(relayCtx.Err(), context.DeadlineExceeded) {
			fallback = constant.RelayTimeoutMessage
		}
		c.logger.Warn("ChatCoordinator", "AI response failed, using fallback", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		if _, ok := c.appendOptimistic(session.Id, fallback, false, 0); ok {
			c.changed()
		}
		return
	}

	if resp.Message != nil && resp.Message.SessionId == session.Id {
		if _, ok := c.appendConfirmed(resp.Message); ok {
			c.changed()
		}
		return
	}

	if _, ok := c.appendOptimistic(session.Id, resp.Response, true, visitorMsg.seq); ok {
		c.changed()
	}
}

// historyBefore is up to the last ten held messages preceding visitorMsg, oldest
// first, in relay roles.
func (c *Coordinator) historyBefore(visitorMsg Message) []dto.ChatHistoryEntry {
	c.mu.Lock()
	held := make([]Message, 0, len(c.messages))
	for _, m := range c.messages {
		if m.Id == visitorMsg.Id {
			continue
		}
		if visitorMsg.seq != 0 && m.seq > visitorMsg.seq {
			continue
		}
		held = append(held, m)
	}
	c.mu.Unlock()

	sort.SliceStable(held, func(i, j int) bool {
		return held[i].CreatedAt.Before(held[j].CreatedAt)
	})
	if len(held) > constant.ChatHistoryWindow {
		held = held[len(held)-constant.ChatHistoryWindow:]
	}

	history := make([]dto.ChatHistoryEntry, len(held))
	for i, m := range held {
		role := constant.CompletionRoleAssistant
		if m.SenderType == entity.SenderTypeVisitor {
			role = constant.CompletionRoleUser
		}
		history[i] = dto.ChatHistoryEntry{Role: role, Content: m.Message}
	}
	return history
}
