package wshub

import (
	"context"
	"sync"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
)

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages connections and the named broadcast groups rooms address. It
// implements broadcast.Sender; all sends are non-blocking and drop when a
// client's buffer is full.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]bool
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]bool),
		log:     log,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client from the hub and every group, then closes its
// Send channel.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	for roomID, members := range h.groups {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}
	delete(h.clients, connID)
	close(c.Send)
}

// JoinRoom adds the connection to a named broadcast group.
func (h *Hub) JoinRoom(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[roomID]
	if !ok {
		members = make(map[string]bool)
		h.groups[roomID] = members
	}
	members[connID] = true
}

// LeaveRoom removes the connection from a named broadcast group.
func (h *Hub) LeaveRoom(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, roomID)
	}
}

// ToConn sends a frame to a single connection. Drops if the client is gone or
// its channel is full.
func (h *Hub) ToConn(connID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case c.Send <- data:
	default:
		h.log.Warn().Str("conn_id", connID).Msg("send buffer full, dropping frame")
	}
}

// ToRoom sends a frame to every connection in a group.
func (h *Hub) ToRoom(roomID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for connID := range h.groups[roomID] {
		c, ok := h.clients[connID]
		if !ok {
			continue
		}
		select {
		case c.Send <- data:
		default:
			h.log.Warn().Str("conn_id", connID).Msg("send buffer full, dropping frame")
		}
	}
}
