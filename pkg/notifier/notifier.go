package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"notification-service/internal/domain"
	"notification-service/pkg/notifier/ws"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardChannelPrefix = "dashboard:"
	customerChannelPrefix  = "customer:"
)

// Event is the wire envelope pushed to websocket clients and published on the
// redis fan-out channels.
type Event struct {
	Event        string               `json:"event"`
	Notification *domain.Notification `json:"notification"`
}

// Notifier delivers persisted notifications in real time. Events are published
// to redis so every instance can feed its own websocket clients; when redis is
// unavailable the local websocket manager is fed directly.
type Notifier struct {
	ws  *ws.Manager
	rdb *redis.Client
}

func NewNotifier(wsManager *ws.Manager, rdb *redis.Client) *Notifier {
	return &Notifier{ws: wsManager, rdb: rdb}
}

// EmitDashboard pushes a staff notification to the tenant's dashboard channel.
func (n *Notifier) EmitDashboard(ctx context.Context, tenantID string, notif *domain.Notification) error {
	return n.emit(ctx, dashboardChannelPrefix+tenantID, ws.KindDashboard, tenantID, notif)
}

// EmitCustomer pushes a customer notification to the guest portal channel.
func (n *Notifier) EmitCustomer(ctx context.Context, customerID string, notif *domain.Notification) error {
	return n.emit(ctx, customerChannelPrefix+customerID, ws.KindCustomer, customerID, notif)
}

func (n *Notifier) emit(ctx context.Context, channel, kind, id string, notif *domain.Notification) error {
	ev := Event{Event: "notification", Notification: notif}

	if n.rdb != nil {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		if err := n.rdb.Publish(ctx, channel, payload).Err(); err == nil {
			return nil
		} else {
			log.Printf("⚠️ redis publish to %s failed, falling back to local WS: %v", channel, err)
		}
	}

	if n.ws != nil {
		n.ws.Send(kind, id, ev)
	}
	return nil
}

// RunBridge subscribes to the fan-out channels and feeds published events into
// the local websocket manager. Blocks until ctx is cancelled.
func (n *Notifier) RunBridge(ctx context.Context) {
	if n.rdb == nil || n.ws == nil {
		return
	}

	sub := n.rdb.PSubscribe(ctx, dashboardChannelPrefix+"*", customerChannelPrefix+"*")
	defer sub.Close()

	log.Println("📢 Notification WS bridge subscribed")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("⚠️ WS bridge: bad payload on %s: %v", msg.Channel, err)
				continue
			}
			switch {
			case strings.HasPrefix(msg.Channel, dashboardChannelPrefix):
				n.ws.Send(ws.KindDashboard, strings.TrimPrefix(msg.Channel, dashboardChannelPrefix), ev)
			case strings.HasPrefix(msg.Channel, customerChannelPrefix):
				n.ws.Send(ws.KindCustomer, strings.TrimPrefix(msg.Channel, customerChannelPrefix), ev)
			}
		}
	}
}
