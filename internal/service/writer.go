package service

import (
	"context"
	"fmt"
	"log"

	"notification-service/internal/domain"
	"notification-service/internal/repository"
	"notification-service/pkg/xerrors"
)

// PreferenceResolver is the slice of PreferenceService the writer needs.
type PreferenceResolver interface {
	Resolve(ctx context.Context, tenantID string, r domain.Recipient) domain.NotificationPreferences
}

// Emitter pushes a persisted notification to its real-time channel.
type Emitter interface {
	EmitDashboard(ctx context.Context, tenantID string, n *domain.Notification) error
	EmitCustomer(ctx context.Context, customerID string, n *domain.Notification) error
}

// NotifyInput describes one notification to write.
type NotifyInput struct {
	Type     domain.NotificationType
	Title    string
	Message  string
	LinkType domain.LinkType
	LinkID   string
	Data     domain.NotificationData
}

// Writer is the single-recipient, single-event primitive: it gates on the
// recipient's preferences, persists the row and emits it in real time.
// Delivery is best effort; nothing here ever reaches the caller as a failure.
type Writer struct {
	prefs   PreferenceResolver
	store   repository.NotificationStore
	emitter Emitter
}

func NewWriter(prefs PreferenceResolver, store repository.NotificationStore, emitter Emitter) *Writer {
	return &Writer{prefs: prefs, store: store, emitter: emitter}
}

// Notify is the fire-and-forget boundary. Every downstream failure is caught
// and logged here; callers invoke it assuming it cannot affect the business
// operation that triggered the event.
func (w *Writer) Notify(ctx context.Context, tenantID string, r domain.Recipient, in NotifyInput) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("⚠️ [WRITER] panic recovered for type=%s recipient=%+v: %v", in.Type, r, rec)
		}
	}()
	if err := w.deliver(ctx, tenantID, r, in); err != nil {
		log.Printf("⚠️ [WRITER] delivery failed for type=%s tenant=%s recipient=%+v: %v", in.Type, tenantID, r, err)
	}
}

// deliver is the testable core; it returns explicit errors instead of
// swallowing them.
func (w *Writer) deliver(ctx context.Context, tenantID string, r domain.Recipient, in NotifyInput) error {
	if r.IsZero() {
		return fmt.Errorf("%w: notification without recipient", xerrors.ErrInvalidInput)
	}

	prefs := w.prefs.Resolve(ctx, tenantID, r)
	if !prefs.Enabled(in.Type) {
		// Recipient opted out; a no-op is the defined behavior.
		return nil
	}

	n := &domain.Notification{
		TenantID: tenantID,
		Type:     in.Type,
		Title:    in.Title,
		Data:     in.Data,
	}
	if r.IsMember() {
		n.MemberID = &r.MemberID
	} else {
		n.CustomerID = &r.CustomerID
	}
	if in.Message != "" {
		msg := in.Message
		n.Message = &msg
	}
	if in.LinkType != "" && in.LinkID != "" {
		lt, lid := in.LinkType, in.LinkID
		n.LinkType = &lt
		n.LinkID = &lid
	}

	created, err := w.store.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("%w: %v", xerrors.ErrStoreWrite, err)
	}

	// Emit the persisted row, generated id and timestamp included. An emission
	// failure never retries the persistence step.
	if r.IsMember() {
		err = w.emitter.EmitDashboard(ctx, tenantID, created)
	} else {
		err = w.emitter.EmitCustomer(ctx, r.CustomerID, created)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", xerrors.ErrChannelEmit, err)
	}
	return nil
}
