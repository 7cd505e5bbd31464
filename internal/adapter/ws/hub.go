package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	// Per-client send buffer. A client that falls this far behind starts
	// losing intermediate snapshots, never the connection.
	sendBuffer = 16
)

// Hub broadcasts observation snapshots to connected WebSocket clients.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
	closed  bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// ServeHTTP upgrades the connection and streams broadcasts until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	send := make(chan []byte, sendBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = send
	h.mu.Unlock()

	h.logger.Info("websocket client connected", "remote", r.RemoteAddr)

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

// Broadcast marshals v once and fans it out. Slow clients drop the oldest
// pending message instead of blocking the caller.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("broadcast marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, send := range h.clients {
		select {
		case send <- data:
		default:
			select {
			case <-send:
			default:
			}
			send <- data
		}
	}
}

// Close disconnects all clients. The hub accepts no new connections after.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn, send := range h.clients {
		close(send)
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]chan []byte)
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan []byte) {
	for data := range send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(conn)
			return
		}
	}
}

// readLoop consumes control frames and detects disconnects. Inbound data
// frames are ignored; position updates arrive over HTTP.
func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(send)
	}
	h.mu.Unlock()
	conn.Close()
}
