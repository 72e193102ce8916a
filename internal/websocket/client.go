package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBuffer     = 64
)

// Client frame types.
const (
	FrameStartChat   = "start_chat"
	FrameSendMessage = "send_message"
	FrameEndChat     = "end_chat"
)

// Server frame types.
const (
	FrameState = "state"
	FrameToast = "toast"
	FrameError = "error"
)

type clientFrame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type serverFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type errorData struct {
	Message string `json:"message"`
}

// Conn is the part of *websocket.Conn a client uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one widget tab: a websocket connection driving its own coordinator.
type Client struct {
	hub    *Hub
	conn   Conn
	coord  *coordinator.Coordinator
	remote string
	logger logger.ILogger

	send   chan []byte
	mu     sync.Mutex
	closed bool

	// ctx is cancelled on disconnect so in-flight actions stop waiting on the relay.
	ctx     context.Context
	cancel  context.CancelFunc
	actions sync.WaitGroup
}

// readPump dispatches client frames until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		c.actions.Wait()
		c.coord.Close()
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WidgetClient", "Widget connection dropped", map[string]interface{}{
					"remote": c.remote,
					"error":  err.Error(),
				})
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.pushError("malformed frame")
			continue
		}
		c.dispatch(frame)
	}
}

// dispatch runs each action on its own goroutine so a slow relay reply does not
// block later frames.
func (c *Client) dispatch(frame clientFrame) {
	switch frame.Type {
	case FrameStartChat:
		if c.coord.IsLoading() {
			return
		}
		c.run(func(ctx context.Context) error {
			_, err := c.coord.StartChatSession(ctx)
			if errors.Is(err, coordinator.ErrStartInProgress) {
				return nil
			}
			return err
		})

	case FrameSendMessage:
		text := strings.TrimSpace(frame.Message)
		if text == "" {
			return
		}
		c.run(func(ctx context.Context) error {
			_, err := c.coord.SendMessage(ctx, text, entity.SenderTypeVisitor, nil)
			return err
		})

	case FrameEndChat:
		c.run(c.coord.EndChatSession)

	default:
		c.pushError("unknown frame type: " + frame.Type)
	}
}

func (c *Client) run(action func(ctx context.Context) error) {
	c.actions.Add(1)
	go func() {
		defer c.actions.Done()
		if err := action(c.ctx); err != nil && c.ctx.Err() == nil {
			c.pushError(err.Error())
		}
	}()
}

// writePump owns all writes to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) pushState(snapshot coordinator.Snapshot) {
	c.enqueue(serverFrame{Type: FrameState, Data: snapshot})
}

func (c *Client) pushToast(toast coordinator.Toast) {
	c.enqueue(serverFrame{Type: FrameToast, Data: toast})
}

func (c *Client) pushError(message string) {
	c.enqueue(serverFrame{Type: FrameError, Data: errorData{Message: message}})
}

func (c *Client) enqueue(frame serverFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error("WidgetClient", "Failed to encode frame", map[string]interface{}{"type": frame.Type, "error": err})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("WidgetClient", "Send buffer full, dropping frame", map[string]interface{}{
			"remote": c.remote,
			"type":   frame.Type,
		})
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
