package websocket

import (
	"context"

	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/pkg/logger"
)

// ServeWidget runs one widget connection to completion. template supplies the shared
// collaborators; per-connection hooks are filled in here.
func ServeWidget(hub *Hub, conn Conn, template coordinator.Config, remote string, log logger.ILogger) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		hub:    hub,
		conn:   conn,
		remote: remote,
		logger: log,
		send:   make(chan []byte, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}

	cfg := template
	cfg.OnChange = client.pushState
	cfg.Notifier = coordinator.NotifierFunc(client.pushToast)
	client.coord = coordinator.New(cfg)

	if !hub.add(client) {
		cancel()
		conn.Close()
		return
	}

	go client.writePump()
	client.pushState(client.coord.Snapshot())
	client.readPump()
}
