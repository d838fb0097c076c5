// Package realtime pushes device changes to connected dashboard clients.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should validate the origin
		return true
	},
}

// WebSocketHub manages WebSocket connections
type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// WebSocketMessage represents a message sent through WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// DeviceEvent is pushed to dashboard clients when a device changes
type DeviceEvent struct {
	DeviceID     string              `json:"device_id"`
	CustomerName string              `json:"customer_name"`
	DeviceType   string              `json:"device_type"`
	Status       models.DeviceStatus `json:"status"`
	RepairerName string              `json:"repairer_name,omitempty"`
	DateFinished *time.Time          `json:"date_finished,omitempty"`
}

var wsHub *WebSocketHub

// InitializeHub sets up the WebSocket hub
func InitializeHub() {
	wsHub = &WebSocketHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
	go wsHub.run()
	colors.PrintInfo("WebSocket hub initialized for dashboard updates")
}

// run processes hub events
func (h *WebSocketHub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			colors.PrintConnection("🔌", "Dashboard client connected (%d active)", len(h.clients))

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()
			colors.PrintConnection("🔌", "Dashboard client disconnected (%d active)", len(h.clients))

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastDeviceEvent pushes a device change to all connected dashboards
func BroadcastDeviceEvent(eventType string, device *models.Device) {
	if wsHub == nil {
		return
	}

	message := WebSocketMessage{
		Type:      eventType,
		Timestamp: time.Now().Format(time.RFC3339),
		Data: DeviceEvent{
			DeviceID:     device.DeviceID,
			CustomerName: device.CustomerName,
			DeviceType:   device.DeviceType,
			Status:       device.Status,
			RepairerName: device.RepairerName,
			DateFinished: device.DateFinished,
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		colors.PrintError("Failed to marshal device event: %v", err)
		return
	}

	select {
	case wsHub.broadcast <- payload:
	default:
		colors.PrintWarning("WebSocket broadcast channel full, dropping %s event", eventType)
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client goes away
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		colors.PrintError("WebSocket upgrade failed: %v", err)
		return
	}

	wsHub.register <- conn

	go func() {
		defer func() {
			wsHub.unregister <- conn
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
