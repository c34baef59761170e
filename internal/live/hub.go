package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 5 * time.Second

// Message is what connected boards receive.
type Message struct {
	Type string `json:"type"` // order.created | order.status.changed | payment.completed
	Data any    `json:"data"`
}

// client punya antrean sendiri; writer goroutine yang menulis ke socket.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

const sendBuffer = 32

// Hub fans status updates out to every connected dashboard. Broadcast never
// blocks on a socket: a client whose queue is full is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{clients: make(map[*client]struct{}), log: log}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket connected", zap.Int("clients", n))
}

// remove closes c's queue once; writePump then closes the socket.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for all clients; client yang antreannya penuh dibuang.
func (h *Hub) Broadcast(msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal broadcast", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			h.log.Warn("ws client too slow, dropping")
			h.dropLocked(c)
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer func() { _ = c.conn.Close() }()
	for b := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			h.log.Warn("ws write error", zap.Error(err))
			h.remove(c)
			// kuras sisa antrean sampai channel ditutup
			for range c.send {
			}
			return
		}
	}
}

// ServeHTTP upgrades the request and keeps reading until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade error", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	go h.writePump(c)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}
