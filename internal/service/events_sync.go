package service

import (
	"context"
	"fmt"

	"notification-service/internal/domain"
)

// SyncInfo is the payload export/sync helpers accept.
type SyncInfo struct {
	TenantID         string
	Source           string
	BookingsImported int
	RowsExported     int
	Error            string
}

func (s SyncInfo) data() domain.SyncData {
	return domain.SyncData{
		Source:           s.Source,
		BookingsImported: s.BookingsImported,
		RowsExported:     s.RowsExported,
		Error:            s.Error,
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func (e *Events) NotifyExportCompleted(ctx context.Context, s SyncInfo) {
	e.fanOut(ctx, s.TenantID, NotifyInput{
		Type:     domain.TypeExportCompleted,
		Title:    "Export ready",
		Message:  fmt.Sprintf("Your export with %s is ready for download", pluralize(s.RowsExported, "row", "rows")),
		LinkType: domain.LinkSettings,
		LinkID:   s.TenantID,
		Data:     s.data(),
	})
}

func (e *Events) NotifyICalSyncCompleted(ctx context.Context, s SyncInfo) {
	e.fanOut(ctx, s.TenantID, NotifyInput{
		Type:     domain.TypeICalSyncCompleted,
		Title:    "Calendar sync completed",
		Message:  fmt.Sprintf("Imported %s from %s", pluralize(s.BookingsImported, "booking", "bookings"), s.Source),
		LinkType: domain.LinkSettings,
		LinkID:   s.TenantID,
		Data:     s.data(),
	})
}

func (e *Events) NotifyICalSyncFailed(ctx context.Context, s SyncInfo) {
	message := fmt.Sprintf("Sync with %s failed", s.Source)
	if s.Error != "" {
		message += ": " + s.Error
	}
	e.fanOut(ctx, s.TenantID, NotifyInput{
		Type:     domain.TypeICalSyncFailed,
		Title:    "Calendar sync failed",
		Message:  message,
		LinkType: domain.LinkSettings,
		LinkID:   s.TenantID,
		Data:     s.data(),
	})
}
