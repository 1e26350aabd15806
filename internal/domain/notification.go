package domain

import (
	"encoding/json"
	"time"
)

// LinkType routes a notification to a screen in the dashboard or portal.
type LinkType string

const (
	LinkBooking  LinkType = "booking"
	LinkReview   LinkType = "review"
	LinkSupport  LinkType = "support"
	LinkCustomer LinkType = "customer"
	LinkRoom     LinkType = "room"
	LinkSettings LinkType = "settings"
	LinkRefund   LinkType = "refund"
)

// Recipient targets a notification at exactly one staff member or one customer.
type Recipient struct {
	MemberID   string `json:"member_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
}

func MemberRecipient(memberID string) Recipient {
	return Recipient{MemberID: memberID}
}

func CustomerRecipient(customerID string) Recipient {
	return Recipient{CustomerID: customerID}
}

func (r Recipient) IsMember() bool { return r.MemberID != "" }

func (r Recipient) IsZero() bool { return r.MemberID == "" && r.CustomerID == "" }

// Notification is the persisted in-app notification row.
type Notification struct {
	ID         int64            `json:"id"`
	TenantID   string           `json:"tenant_id"`
	MemberID   *string          `json:"member_id,omitempty"`
	CustomerID *string          `json:"customer_id,omitempty"`
	Type       NotificationType `json:"type"`
	Title      string           `json:"title"`
	Message    *string          `json:"message,omitempty"`
	LinkType   *LinkType        `json:"link_type,omitempty"`
	LinkID     *string          `json:"link_id,omitempty"`
	Data       NotificationData `json:"data,omitempty"`
	ReadAt     *time.Time       `json:"read_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// UnmarshalJSON keeps the payload as RawData; decoded notifications never
// round-trip back into their concrete payload shape.
func (n *Notification) UnmarshalJSON(b []byte) error {
	type alias Notification
	aux := struct {
		*alias
		Data json.RawMessage `json:"data,omitempty"`
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.Data) > 0 && string(aux.Data) != "null" {
		n.Data = RawData(aux.Data)
	}
	return nil
}

func (n *Notification) Recipient() Recipient {
	if n.MemberID != nil {
		return MemberRecipient(*n.MemberID)
	}
	if n.CustomerID != nil {
		return CustomerRecipient(*n.CustomerID)
	}
	return Recipient{}
}

// NotificationData is the type-specific payload attached to a notification,
// discriminated by the notification's Type.
type NotificationData interface {
	isNotificationData()
}

// RawData carries a payload read back from the store without re-decoding it
// into its concrete shape.
type RawData json.RawMessage

func (RawData) isNotificationData() {}

func (d RawData) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return []byte(d), nil
}

type BookingData struct {
	BookingID          string  `json:"booking_id"`
	RoomID             string  `json:"room_id,omitempty"`
	RoomName           string  `json:"room_name,omitempty"`
	GuestName          string  `json:"guest_name,omitempty"`
	CheckIn            string  `json:"check_in,omitempty"`
	CheckOut           string  `json:"check_out,omitempty"`
	Nights             int     `json:"nights,omitempty"`
	TotalAmount        float64 `json:"total_amount,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
	TicketID           string  `json:"ticket_id,omitempty"`
	RefundRequested    bool    `json:"refund_requested,omitempty"`
}

func (BookingData) isNotificationData() {}

type PaymentData struct {
	PaymentID string  `json:"payment_id,omitempty"`
	BookingID string  `json:"booking_id,omitempty"`
	InvoiceID string  `json:"invoice_id,omitempty"`
	RefundID  string  `json:"refund_id,omitempty"`
	Method    string  `json:"method,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

func (PaymentData) isNotificationData() {}

type ReviewData struct {
	ReviewID  string `json:"review_id"`
	BookingID string `json:"booking_id,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
	Rating    int    `json:"rating,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
}

func (ReviewData) isNotificationData() {}

type SupportData struct {
	TicketID  string `json:"ticket_id"`
	BookingID string `json:"booking_id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
}

func (SupportData) isNotificationData() {}

type SyncData struct {
	Source           string `json:"source,omitempty"`
	BookingsImported int    `json:"bookings_imported,omitempty"`
	RowsExported     int    `json:"rows_exported,omitempty"`
	Error            string `json:"error,omitempty"`
}

func (SyncData) isNotificationData() {}

type MemberData struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (MemberData) isNotificationData() {}

type RoomData struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name,omitempty"`
}

func (RoomData) isNotificationData() {}
