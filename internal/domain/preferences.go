package domain

import "time"

// NotificationPreferences maps each preference-carrying type to its enabled flag.
type NotificationPreferences map[NotificationType]bool

// Enabled reports whether the type should be delivered. Types outside the
// preference schema fall back to enabled.
func (p NotificationPreferences) Enabled(t NotificationType) bool {
	if v, ok := p[t]; ok {
		return v
	}
	return true
}

// Merge overlays partial on top of p and returns p.
func (p NotificationPreferences) Merge(partial map[NotificationType]bool) NotificationPreferences {
	for t, v := range partial {
		p[t] = v
	}
	return p
}

// PreferenceRecord is the persisted per-(tenant, recipient) preference row.
// Preferences is kept loosely typed because stored rows may still be in the
// legacy category-granularity shape.
type PreferenceRecord struct {
	TenantID    string
	MemberID    *string
	CustomerID  *string
	Preferences map[string]interface{}
	UpdatedAt   time.Time
}

// BookingSummary is the slice of booking state the scheduler and reminder
// helpers need. Room fields come from the joined room row when present.
type BookingSummary struct {
	ID            string
	TenantID      string
	CustomerID    string
	RoomID        string
	RoomName      string
	GuestName     string
	CheckIn       time.Time
	CheckOut      time.Time
	Status        string
	PaymentStatus string
	TotalAmount   float64
	Currency      string
	CheckInTime   string // room's configured check-in time, e.g. "14:00"
}

// MemberRef identifies a staff member together with its underlying user account.
type MemberRef struct {
	ID     string
	UserID string
	Status string
}
