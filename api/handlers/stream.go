package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// InventoryHub tracks connected clients that want inventory change events
type InventoryHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

// NewInventoryHub creates an empty hub
func NewInventoryHub() *InventoryHub {
	return &InventoryHub{
		clients: make(map[string]*websocket.Conn),
	}
}

// HandleInventoryWebSocket upgrades the connection and keeps it registered
// until the client goes away
func (h *InventoryHub) HandleInventoryWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	clientID := uuid.New().String()

	h.mutex.Lock()
	h.clients[clientID] = conn
	h.mutex.Unlock()
	zap.S().Debugw("client connected to /ws/inventory", "clientId", clientID)

	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, clientID)
		h.mutex.Unlock()
		zap.S().Debugw("client disconnected from /ws/inventory", "clientId", clientID)
		return nil
	})

	// keep the connection alive; we never expect inbound messages
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.mutex.Lock()
			delete(h.clients, clientID)
			h.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

// ClientCount returns the number of currently connected clients
func (h *InventoryHub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast sends an inventory change event to every connected client
func (h *InventoryHub) Broadcast(event string, data interface{}) {
	if h == nil {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for clientID, conn := range h.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": event,
			"data":  data,
		})
		if err != nil {
			zap.S().Warnw("error broadcasting inventory event", "clientId", clientID, "error", err)
			delete(h.clients, clientID)
			conn.Close()
		}
	}
}
