package service

import (
	"context"
	"log"

	"notification-service/internal/domain"
)

// NotificationSink is the slice of Writer the event helpers call.
type NotificationSink interface {
	Notify(ctx context.Context, tenantID string, r domain.Recipient, in NotifyInput)
}

// StaffResolver is the slice of RecipientService the event helpers call.
type StaffResolver interface {
	ResolveStaff(ctx context.Context, tenantID string) ([]string, error)
}

// Events exposes one helper per business event. Staff helpers fan the event
// out to every resolved member of the tenant; customer helpers target exactly
// one customer. All of them are best effort end to end.
type Events struct {
	writer NotificationSink
	staff  StaffResolver
}

func NewEvents(writer NotificationSink, staff StaffResolver) *Events {
	return &Events{writer: writer, staff: staff}
}

// fanOut delivers one event to every staff recipient of the tenant,
// sequentially. A recipient whose delivery failed silently does not stop the
// rest of the fan-out.
func (e *Events) fanOut(ctx context.Context, tenantID string, in NotifyInput) {
	memberIDs, err := e.staff.ResolveStaff(ctx, tenantID)
	if err != nil {
		log.Printf("⚠️ [EVENTS] staff resolution failed for tenant=%s type=%s: %v", tenantID, in.Type, err)
		return
	}
	for _, id := range memberIDs {
		e.writer.Notify(ctx, tenantID, domain.MemberRecipient(id), in)
	}
}

func (e *Events) toCustomer(ctx context.Context, tenantID, customerID string, in NotifyInput) {
	if customerID == "" {
		log.Printf("⚠️ [EVENTS] dropping customer event type=%s tenant=%s: no customer id", in.Type, tenantID)
		return
	}
	e.writer.Notify(ctx, tenantID, domain.CustomerRecipient(customerID), in)
}
