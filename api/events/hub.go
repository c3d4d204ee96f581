// Package events streams scan notifications to riders over websockets.
package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/models"
)

// ScannedType is the event type sent when a verifier scans a credential
const ScannedType = "CREDENTIAL_SCANNED"

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub keeps the open connections of every rider
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]bool)}
}

// Serve upgrades the request and keeps the connection registered for riderID
// until the peer goes away
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, riderID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn}
	h.register(riderID, c)
	defer h.unregister(riderID, c)

	// riders never send anything; reading only notices the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Publish sends ev to every open connection of ev.RiderID and returns how
// many received it
func (h *Hub) Publish(ev models.ScanEvent) int {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[ev.RiderID]))
	for c := range h.clients[ev.RiderID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if err := c.send(ev); err != nil {
			zap.S().Warnw("failed to push scan event", "riderId", ev.RiderID, "error", err)
			h.unregister(ev.RiderID, c)
			continue
		}
		sent++
	}
	return sent
}

// Connections returns how many streams riderID has open
func (h *Hub) Connections(riderID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[riderID])
}

func (h *Hub) register(riderID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[riderID]; !ok {
		h.clients[riderID] = make(map[*client]bool)
	}
	h.clients[riderID][c] = true
	zap.S().Debugw("event stream opened", "riderId", riderID)
}

func (h *Hub) unregister(riderID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[riderID][c]; !ok {
		return
	}
	delete(h.clients[riderID], c)
	c.conn.Close()
	if len(h.clients[riderID]) == 0 {
		delete(h.clients, riderID)
	}
	zap.S().Debugw("event stream closed", "riderId", riderID)
}
