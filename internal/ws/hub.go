package ws

import (
	"log"
	"net/http"
	"sync"

	"bersih-backend/internal/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes newly submitted reports to connected admin dashboards so
// incoming reports appear without polling.
type Hub struct {
	clientsMux sync.Mutex
	clients    map[*websocket.Conn]bool
	broadcast  chan *models.Report
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan *models.Report, 16),
	}
}

// Run drains the broadcast channel. Call once from a goroutine.
func (h *Hub) Run() {
	for report := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(report); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}

// ReportSubmitted queues a report for broadcast. Drops the event when
// the channel is full rather than blocking submission.
func (h *Hub) ReportSubmitted(report *models.Report) {
	select {
	case h.broadcast <- report:
	default:
		log.Printf("[WS] Broadcast queue full, dropping report %d", report.ID)
	}
}

// HandleConnection upgrades the request and keeps the connection
// registered until the client disconnects.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}
