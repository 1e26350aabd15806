package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Channel kinds. Dashboard connections are keyed by tenant id (every staff
// browser session of a tenant shares the key); customer connections are keyed
// by customer id.
const (
	KindDashboard = "dashboard"
	KindCustomer  = "customer"
)

// Connection wraps websocket.Conn with metadata
type Connection struct {
	Conn     *websocket.Conn
	Key      string
	LastSeen time.Time
}

type Manager struct {
	mu          sync.RWMutex
	connections map[string]map[*Connection]struct{} // channel key -> set of connections
}

func NewManager() *Manager {
	return &Manager{
		connections: make(map[string]map[*Connection]struct{}),
	}
}

func makeKey(kind, id string) string {
	return kind + "_" + id
}

// Add registers a connection under a channel key
func (m *Manager) Add(kind, id string, conn *websocket.Conn) *Connection {
	key := makeKey(kind, id)
	c := &Connection{Conn: conn, Key: key, LastSeen: time.Now()}

	m.mu.Lock()
	if _, ok := m.connections[key]; !ok {
		m.connections[key] = make(map[*Connection]struct{})
	}
	m.connections[key][c] = struct{}{}
	m.mu.Unlock()

	log.Printf("WS connected: %s (total=%d)", key, len(m.connections[key]))
	return c
}

// Remove disconnects and removes a connection
func (m *Manager) Remove(c *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conns, ok := m.connections[c.Key]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(m.connections, c.Key)
		}
	}
	_ = c.Conn.Close()
	log.Printf("WS disconnected: %s", c.Key)
}

// Send sends a JSON message to all connections under the channel key
func (m *Manager) Send(kind, id string, msg interface{}) {
	key := makeKey(kind, id)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if conns, ok := m.connections[key]; ok {
		for c := range conns {
			if err := c.Conn.WriteJSON(msg); err != nil {
				log.Printf("⚠️ failed WS send to %s: %v", key, err)
				go m.Remove(c)
			}
		}
	}
}

// Heartbeat pings all connections periodically to keep them alive
func (m *Manager) Heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		m.mu.RLock()
		for _, conns := range m.connections {
			for c := range conns {
				if time.Since(c.LastSeen) > 2*interval {
					go m.Remove(c)
					continue
				}
				_ = c.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			}
		}
		m.mu.RUnlock()
	}
}
