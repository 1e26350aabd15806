package usecase

import (
	"context"
	"fmt"

	"notification-service/internal/domain"
	"notification-service/internal/repository"
	"notification-service/pkg/xerrors"
)

// PreferenceManager is the slice of the preference service the usecase exposes.
type PreferenceManager interface {
	Resolve(ctx context.Context, tenantID string, r domain.Recipient) domain.NotificationPreferences
	Update(ctx context.Context, tenantID string, partial map[domain.NotificationType]bool, r domain.Recipient) bool
}

// ListQuery scopes a read operation to one actor. The member path requires a
// tenant; the customer path treats the tenant as an optional extra filter.
type ListQuery struct {
	TenantID   string
	MemberID   string
	CustomerID string
	Limit      int
	Offset     int
	UnreadOnly bool
}

type ListResult struct {
	Notifications []*domain.Notification `json:"notifications"`
	Total         int                    `json:"total"`
	Unread        int                    `json:"unread"`
}

// NotificationUsecase serves the dashboard and portal notification screens.
type NotificationUsecase struct {
	store repository.NotificationStore
	prefs PreferenceManager
}

func NewNotificationUsecase(store repository.NotificationStore, prefs PreferenceManager) *NotificationUsecase {
	return &NotificationUsecase{store: store, prefs: prefs}
}

// scope validates the access-scoping rule shared by every read operation.
func scope(q ListQuery) (repository.Filter, error) {
	if q.MemberID != "" && q.CustomerID != "" {
		return repository.Filter{}, fmt.Errorf("%w: member and customer scope are mutually exclusive", xerrors.ErrInvalidInput)
	}
	switch {
	case q.MemberID != "":
		if q.TenantID == "" {
			return repository.Filter{}, fmt.Errorf("%w: member access requires a tenant", xerrors.ErrInvalidInput)
		}
	case q.CustomerID != "":
		// tenant optional: omitting it spans all tenants for the customer
	default:
		return repository.Filter{}, fmt.Errorf("%w: no recipient scope", xerrors.ErrInvalidInput)
	}
	return repository.Filter{
		TenantID:   q.TenantID,
		MemberID:   q.MemberID,
		CustomerID: q.CustomerID,
		UnreadOnly: q.UnreadOnly,
	}, nil
}

func (uc *NotificationUsecase) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	f, err := scope(q)
	if err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	f.Limit = q.Limit
	f.Offset = q.Offset

	notifications, err := uc.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.store.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	unread, err := uc.store.CountUnread(ctx, f)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return &ListResult{Notifications: notifications, Total: total, Unread: unread}, nil
}

func (uc *NotificationUsecase) CountUnread(ctx context.Context, q ListQuery) (int, error) {
	f, err := scope(q)
	if err != nil {
		return 0, err
	}
	return uc.store.CountUnread(ctx, f)
}

func (uc *NotificationUsecase) MarkRead(ctx context.Context, id int64, q ListQuery) error {
	if id <= 0 {
		return xerrors.ErrInvalidInput
	}
	f, err := scope(q)
	if err != nil {
		return err
	}
	return uc.store.MarkRead(ctx, id, f)
}

// MarkAllRead is idempotent: a second call finds nothing unread and changes
// nothing.
func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, q ListQuery) error {
	f, err := scope(q)
	if err != nil {
		return err
	}
	return uc.store.MarkAllRead(ctx, f)
}

func (uc *NotificationUsecase) GetPreferences(ctx context.Context, tenantID string, r domain.Recipient) domain.NotificationPreferences {
	return uc.prefs.Resolve(ctx, tenantID, r)
}

func (uc *NotificationUsecase) UpdatePreferences(ctx context.Context, tenantID string, partial map[domain.NotificationType]bool, r domain.Recipient) bool {
	return uc.prefs.Update(ctx, tenantID, partial, r)
}
