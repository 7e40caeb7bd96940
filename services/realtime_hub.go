package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WriteWait bounds a single socket write.
const WriteWait = 10 * time.Second

// MessageWriter is the part of *websocket.Conn the hub needs.
type MessageWriter interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type WSClient struct {
	UserID uint
	Conn   MessageWriter

	writeMu sync.Mutex
}

// Write serializes writes; a websocket connection allows one writer at a time.
// Each write must finish within WriteWait.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.Conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans dashboard events out to each user's open sockets.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
	log     *zap.Logger
}

func NewRealtimeHub(log *zap.Logger) *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{}), log: log}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Connections reports how many sockets userID has open.
func (h *RealtimeHub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *RealtimeHub) Broadcast(userID uint, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("marshal realtime payload", zap.Error(err))
		return
	}
	for _, c := range h.snapshot(userID) {
		if err := c.Write(websocket.TextMessage, msg); err != nil {
			h.log.Debug("realtime write failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
}

// snapshot copies userID's clients so writes happen without holding mu.
func (h *RealtimeHub) snapshot(userID uint) []*WSClient {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		out = append(out, c)
	}
	return out
}
