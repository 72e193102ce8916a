// Command chatcli is a terminal stand-in for the website chat widget.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type chatMessage struct {
	Id         string    `json:"id"`
	Message    string    `json:"message"`
	SenderType string    `json:"sender_type"`
	SenderName *string   `json:"sender_name"`
	CreatedAt  time.Time `json:"created_at"`
	Origin     string    `json:"origin"`
}

type snapshot struct {
	Session *struct {
		Id           string `json:"id"`
		SessionToken string `json:"session_id"`
	} `json:"session"`
	Messages  []chatMessage `json:"messages"`
	IsLoading bool          `json:"is_loading"`
}

type toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// printer remembers which messages are already on screen so each state frame only
// prints the new ones.
type printer struct {
	seen    map[string]bool
	session string
	// pending holds optimistic replies already printed, keyed by sender and text, so the
	// stored copy that later replaces one is not printed twice.
	pending map[string]bool
}

func (p *printer) handle(f frame) {
	switch f.Type {
	case "state":
		var s snapshot
		if err := json.Unmarshal(f.Data, &s); err != nil {
			color.Red("bad state frame: %v", err)
			return
		}
		p.state(s)
	case "toast":
		var t toast
		if err := json.Unmarshal(f.Data, &t); err != nil {
			return
		}
		if t.Variant == "destructive" {
			color.Red("! %s: %s", t.Title, t.Description)
		} else {
			color.Yellow("* %s: %s", t.Title, t.Description)
		}
	case "error":
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(f.Data, &e)
		color.Red("error: %s", e.Message)
	}
}

func (p *printer) state(s snapshot) {
	current := ""
	if s.Session != nil {
		current = s.Session.Id
	}
	if current != p.session {
		p.session = current
		p.seen = make(map[string]bool)
		p.pending = make(map[string]bool)
		if current != "" {
			color.Cyan("-- session %s --", s.Session.SessionToken)
		}
	}

	for _, m := range s.Messages {
		if p.seen[m.Id] {
			continue
		}
		p.seen[m.Id] = true

		key := m.SenderType + "\x00" + m.Message
		if m.Origin == "optimistic" {
			p.pending[key] = true
		} else if p.pending[key] {
			delete(p.pending, key)
			continue
		}

		name := m.SenderType
		if m.SenderName != nil && *m.SenderName != "" {
			name = *m.SenderName
		}
		stamp := m.CreatedAt.Local().Format("15:04")
		switch m.SenderType {
		case "visitor":
			color.Green("[%s] you: %s", stamp, m.Message)
		default:
			color.Blue("[%s] %s: %s", stamp, name, m.Message)
		}
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:3000/api/chat/ws", "widget websocket address")
	flag.Parse()

	log.SetFlags(log.Ltime)

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	color.Cyan("Connected to %s", *addr)
	fmt.Println("Commands: /start, /end, /quit. Anything else is sent as a message.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		p := &printer{seen: make(map[string]bool), pending: make(map[string]bool)}
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Read error: %v", err)
				}
				return
			}
			p.handle(f)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			closeGracefully(conn, done)
			return
		case line, ok := <-lines:
			if !ok {
				closeGracefully(conn, done)
				return
			}
			line = strings.TrimSpace(line)
			var out map[string]string
			switch line {
			case "":
				continue
			case "/quit":
				closeGracefully(conn, done)
				return
			case "/start":
				out = map[string]string{"type": "start_chat"}
			case "/end":
				out = map[string]string{"type": "end_chat"}
			default:
				out = map[string]string{"type": "send_message", "message": line}
			}
			if err := conn.WriteJSON(out); err != nil {
				log.Printf("Write error: %v", err)
				return
			}
		}
	}
}

func closeGracefully(conn *websocket.Conn, done <-chan struct{}) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		return
	}
	select {
	case <-done:
	case <-time.After(time.Second):
	}
}
