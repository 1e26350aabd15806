package domain

// NotificationType is a closed set of event tags. Staff-facing types land on the
// tenant dashboard; customer-facing types land on the guest portal.
type NotificationType string

// Staff-facing
const (
	TypeBookingCreated   NotificationType = "booking_created"
	TypeBookingUpdated   NotificationType = "booking_updated"
	TypeBookingCancelled NotificationType = "booking_cancelled"
	TypeBookingCheckedIn NotificationType = "booking_checked_in"
	TypeBookingCheckedOut NotificationType = "booking_checked_out"
	TypeBookingNoShow    NotificationType = "booking_no_show"

	TypePaymentReceived NotificationType = "payment_received"
	TypePaymentFailed   NotificationType = "payment_failed"
	TypeInvoiceCreated  NotificationType = "invoice_created"

	TypeReviewSubmitted NotificationType = "review_submitted"
	TypeReviewReported  NotificationType = "review_reported"

	TypeTicketCreated  NotificationType = "support_ticket_created"
	TypeTicketMessage  NotificationType = "support_message_received"
	TypeTicketResolved NotificationType = "support_ticket_resolved"

	TypeMemberJoined      NotificationType = "member_joined"
	TypeMemberLeft        NotificationType = "member_left"
	TypeMemberRoleChanged NotificationType = "member_role_changed"
	TypeMemberInvited     NotificationType = "member_invited"

	TypeExportCompleted   NotificationType = "export_completed"
	TypeICalSyncCompleted NotificationType = "ical_sync_completed"
	TypeICalSyncFailed    NotificationType = "ical_sync_failed"
	TypeRoomCreated       NotificationType = "room_created"
	TypeRoomUpdated       NotificationType = "room_updated"

	TypeRefundRequested  NotificationType = "refund_requested"
	TypeRefundEscalation NotificationType = "refund_escalation"
)

// Customer-facing
const (
	TypeBookingConfirmed           NotificationType = "booking_confirmed"
	TypeBookingDeclined            NotificationType = "booking_declined"
	TypeBookingCancelledByProperty NotificationType = "booking_cancelled_by_property"
	TypeBookingModified            NotificationType = "booking_modified"
	TypeBookingReminder            NotificationType = "booking_reminder"
	TypeCheckInReminder            NotificationType = "checkin_reminder"

	TypePaymentConfirmed NotificationType = "payment_confirmed"
	TypePaymentOverdue   NotificationType = "payment_overdue"
	TypePaymentReceipt   NotificationType = "payment_receipt"

	TypeReviewResponse NotificationType = "review_response"
	TypeReviewRequest  NotificationType = "review_request"

	TypeSupportReply  NotificationType = "support_reply"
	TypeSupportClosed NotificationType = "support_closed"

	TypeRefundApproved  NotificationType = "refund_approved"
	TypeRefundRejected  NotificationType = "refund_rejected"
	TypeRefundCompleted NotificationType = "refund_completed"
)

// PreferenceCategory is the coarse grouping used by the legacy preference format.
type PreferenceCategory string

const (
	CategoryBookings PreferenceCategory = "bookings"
	CategoryPayments PreferenceCategory = "payments"
	CategoryReviews  PreferenceCategory = "reviews"
	CategorySupport  PreferenceCategory = "support"
	CategorySystem   PreferenceCategory = "system"
	CategoryMembers  PreferenceCategory = "members"
	CategoryRefunds  PreferenceCategory = "refunds"
)

// LegacyCategories are the category keys the legacy preference format could carry.
// Refunds never existed in the legacy format.
var LegacyCategories = []PreferenceCategory{
	CategoryBookings,
	CategoryPayments,
	CategoryReviews,
	CategorySupport,
	CategorySystem,
	CategoryMembers,
}

var typeToCategory = map[NotificationType]PreferenceCategory{
	TypeBookingCreated:    CategoryBookings,
	TypeBookingUpdated:    CategoryBookings,
	TypeBookingCancelled:  CategoryBookings,
	TypeBookingCheckedIn:  CategoryBookings,
	TypeBookingCheckedOut: CategoryBookings,
	TypeBookingNoShow:     CategoryBookings,

	TypePaymentReceived: CategoryPayments,
	TypePaymentFailed:   CategoryPayments,
	TypeInvoiceCreated:  CategoryPayments,

	TypeReviewSubmitted: CategoryReviews,
	TypeReviewReported:  CategoryReviews,

	TypeTicketCreated:  CategorySupport,
	TypeTicketMessage:  CategorySupport,
	TypeTicketResolved: CategorySupport,

	TypeMemberJoined:      CategoryMembers,
	TypeMemberLeft:        CategoryMembers,
	TypeMemberRoleChanged: CategoryMembers,
	TypeMemberInvited:     CategoryMembers,

	TypeExportCompleted:   CategorySystem,
	TypeICalSyncCompleted: CategorySystem,
	TypeICalSyncFailed:    CategorySystem,
	TypeRoomCreated:       CategorySystem,
	TypeRoomUpdated:       CategorySystem,

	TypeRefundRequested:  CategoryRefunds,
	TypeRefundEscalation: CategoryRefunds,

	TypeBookingConfirmed:           CategoryBookings,
	TypeBookingDeclined:            CategoryBookings,
	TypeBookingCancelledByProperty: CategoryBookings,
	TypeBookingModified:            CategoryBookings,
	TypeBookingReminder:            CategoryBookings,
	TypeCheckInReminder:            CategoryBookings,

	TypePaymentConfirmed: CategoryPayments,
	TypePaymentOverdue:   CategoryPayments,
	TypePaymentReceipt:   CategoryPayments,

	TypeReviewResponse: CategoryReviews,
	TypeReviewRequest:  CategoryReviews,

	TypeSupportReply:  CategorySupport,
	TypeSupportClosed: CategorySupport,

	TypeRefundApproved:  CategoryRefunds,
	TypeRefundRejected:  CategoryRefunds,
	TypeRefundCompleted: CategoryRefunds,
}

// preferenceTypes are the types that carry a per-recipient preference flag.
// The five refund_* types are deliberately absent: refund notifications are
// not preference-gated and always deliver.
var preferenceTypes = []NotificationType{
	TypeBookingCreated, TypeBookingUpdated, TypeBookingCancelled,
	TypeBookingCheckedIn, TypeBookingCheckedOut, TypeBookingNoShow,
	TypePaymentReceived, TypePaymentFailed, TypeInvoiceCreated,
	TypeReviewSubmitted, TypeReviewReported,
	TypeTicketCreated, TypeTicketMessage, TypeTicketResolved,
	TypeMemberJoined, TypeMemberLeft, TypeMemberRoleChanged, TypeMemberInvited,
	TypeExportCompleted, TypeICalSyncCompleted, TypeICalSyncFailed,
	TypeRoomCreated, TypeRoomUpdated,
	TypeBookingConfirmed, TypeBookingDeclined, TypeBookingCancelledByProperty,
	TypeBookingModified, TypeBookingReminder, TypeCheckInReminder,
	TypePaymentConfirmed, TypePaymentOverdue, TypePaymentReceipt,
	TypeReviewResponse, TypeReviewRequest,
	TypeSupportReply, TypeSupportClosed,
}

// PreferenceSchema is an immutable view over the type/category tables, built once
// at startup and injected wherever preferences are resolved.
type PreferenceSchema struct {
	categories map[NotificationType]PreferenceCategory
	prefTypes  []NotificationType
}

func NewPreferenceSchema() *PreferenceSchema {
	return &PreferenceSchema{
		categories: typeToCategory,
		prefTypes:  preferenceTypes,
	}
}

// CategoryOf returns the preference category a type belongs to.
func (s *PreferenceSchema) CategoryOf(t NotificationType) (PreferenceCategory, bool) {
	c, ok := s.categories[t]
	return c, ok
}

// PreferenceTypes lists every type that carries a preference flag.
func (s *PreferenceSchema) PreferenceTypes() []NotificationType {
	return s.prefTypes
}

// HasPreference reports whether the type is part of the preference schema.
// Types outside it (the refund tags) are always delivered.
func (s *PreferenceSchema) HasPreference(t NotificationType) bool {
	for _, pt := range s.prefTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Defaults returns a fresh all-enabled preference map.
func (s *PreferenceSchema) Defaults() NotificationPreferences {
	prefs := make(NotificationPreferences, len(s.prefTypes))
	for _, t := range s.prefTypes {
		prefs[t] = true
	}
	return prefs
}
