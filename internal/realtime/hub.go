package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/models"
)

const (
	PingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// Client is one websocket connection of a user.
type Client struct {
	UserID string
	conn   *websocket.Conn

	writeMu sync.Mutex // gorilla connections allow a single writer
	once    sync.Once
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{UserID: userID, conn: conn}
}

func (c *Client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(messageType, data)
}

func (c *Client) close() {
	c.once.Do(func() { _ = c.conn.Close() })
}

// Hub fans risk alerts out to every connection of a user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger.With().Str("component", "realtime").Logger(),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes and closes c. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// Connections reports how many clients userID has open.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends alert to userID's connections. Clients that fail the write
// are dropped.
func (h *Hub) Publish(userID string, alert models.RiskAlert) {
	msg, err := json.Marshal(alert)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode alert")
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.logger.Debug().Err(err).Str("user_id", userID).Msg("Dropping realtime client")
			h.Unregister(c)
		}
	}
}

// Serve keeps c registered until the peer goes away. It pings every
// interval and discards anything the client sends.
func (h *Hub) Serve(c *Client, interval time.Duration) {
	h.Register(c)
	defer h.Unregister(c)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := c.write(websocket.PingMessage, nil); err != nil {
					h.Unregister(c)
					return
				}
			}
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
