package wshandler

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"notification-service/internal/middleware"
	"notification-service/pkg/notifier/ws"
)

type WSHandler struct {
	manager *ws.Manager
}

func NewWSHandler(manager *ws.Manager) *WSHandler {
	return &WSHandler{manager: manager}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: tighten with allowed origins if needed
		return true
	},
}

// HandleNotifications upgrades HTTP -> WebSocket and registers the connection
// on the dashboard channel (staff, keyed by tenant) or the customer channel.
func (h *WSHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r.Context())
	memberID := middleware.MemberID(r.Context())
	customerID := middleware.CustomerID(r.Context())

	kind, key := ws.KindCustomer, customerID
	if memberID != "" {
		if tenantID == "" {
			http.Error(w, "member connection requires a tenant", http.StatusBadRequest)
			return
		}
		kind, key = ws.KindDashboard, tenantID
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	log.Printf("[NOTIFICATION][WS] kind=%s key=%s member=%s", kind, key, memberID)

	c := h.manager.Add(kind, key, conn)

	// Reader loop: listen for pongs and client messages
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		c.LastSeen = time.Now()
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	h.manager.Remove(c)
}
