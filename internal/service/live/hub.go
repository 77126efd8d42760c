package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"copydesk/pkg/logger"
)

const (
	writeTimeout  = 5 * time.Second
	recentBufSize = 100
)

// Event is one pipeline activity entry streamed to connected consoles.
type Event struct {
	At      time.Time   `json:"at"`
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans pipeline events out to websocket subscribers and keeps a small
// ring of recent events for late joiners.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]struct{}
	recent   []Event
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

func NewHub(l *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		recent:  make([]Event, 0, recentBufSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: l,
	}
}

// Broadcast records the event and pushes it to every connected client.
// Slow or broken clients are dropped rather than blocking the pipeline.
func (h *Hub) Broadcast(kind string, payload interface{}) {
	ev := Event{At: time.Now().UTC(), Kind: kind, Payload: payload}

	data, err := json.Marshal(ev)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("marshal live event", logger.Error(err))
		}
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, ev)
	if len(h.recent) > recentBufSize {
		h.recent = h.recent[len(h.recent)-recentBufSize:]
	}

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

// Recent returns up to limit most recent events, oldest first.
func (h *Hub) Recent(limit int) []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > len(h.recent) {
		limit = len(h.recent)
	}
	out := make([]Event, limit)
	copy(out, h.recent[len(h.recent)-limit:])
	return out
}

// Handle upgrades an HTTP request to a websocket subscription.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Debug("live client connected", logger.String("remote", conn.RemoteAddr().String()))
	}

	// Reader loop only to detect disconnects; the hub never expects input.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
