package handler

import (
	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/pkg/logger"
	internalWS "promptlycoach-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// WidgetHandler serves the chat widget over a websocket. One connection is one tab
// and owns its own coordinator.
type WidgetHandler struct {
	hub      *internalWS.Hub
	template coordinator.Config
	logger   logger.ILogger
}

func NewWidgetHandler(hub *internalWS.Hub, template coordinator.Config, log logger.ILogger) *WidgetHandler {
	return &WidgetHandler{
		hub:      hub,
		template: template,
		logger:   log,
	}
}

func (h *WidgetHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/api/chat/ws", h.ServeWs)
}

// ServeWs captures the request metadata the coordinator stores with new sessions,
// then upgrades.
func (h *WidgetHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userAgent := utils.CopyString(c.Get(fiber.HeaderUserAgent))
	visitorIp := c.IP()

	return websocket.New(func(conn *websocket.Conn) {
		cfg := h.template
		cfg.UserAgent = userAgent
		cfg.VisitorIp = visitorIp

		h.logger.Info("WidgetHandler", "Starting widget session", map[string]interface{}{"remote": visitorIp})
		internalWS.ServeWidget(h.hub, conn, cfg, visitorIp, h.logger)
		h.logger.Info("WidgetHandler", "Widget session ended", map[string]interface{}{"remote": visitorIp})
	})(c)
}
