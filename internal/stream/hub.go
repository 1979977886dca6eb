package stream

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Command is a control message sent by a client.
type Command struct {
	Type      string  `json:"type"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Radius    int     `json:"radius"`
	Amplitude float32 `json:"amplitude"`
}

// Hub tracks connected websocket clients and fans frames out to them.
// Commands received from clients are queued on Commands; commands arriving
// while the queue is full are dropped.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	last    *Frame

	commands chan Command
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		commands: make(chan Command, 64),
	}
}

// Commands returns the queue of client commands.
func (h *Hub) Commands() <-chan Command { return h.commands }

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request, sends the latest frame and then reads
// commands until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = connMu
	last := h.last
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	if last != nil {
		connMu.Lock()
		err := conn.WriteJSON(last)
		connMu.Unlock()
		if err != nil {
			return
		}
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
		select {
		case h.commands <- cmd:
		default:
		}
	}
}

// Broadcast sends frame to every client and drops the ones that fail.
// It returns the number of clients reached.
func (h *Hub) Broadcast(frame Frame) int {
	h.mu.Lock()
	h.last = &frame
	h.mu.Unlock()

	var failed []*websocket.Conn
	sent := 0
	h.mu.RLock()
	for conn, connMu := range h.clients {
		connMu.Lock()
		err := conn.WriteJSON(frame)
		connMu.Unlock()
		if err != nil {
			failed = append(failed, conn)
			continue
		}
		sent++
	}
	h.mu.RUnlock()

	if len(failed) > 0 {
		h.mu.Lock()
		for _, conn := range failed {
			delete(h.clients, conn)
			conn.Close()
		}
		h.mu.Unlock()
	}
	return sent
}
