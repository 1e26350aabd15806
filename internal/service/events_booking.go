package service

import (
	"context"
	"fmt"
	"time"

	"notification-service/internal/domain"
)

// BookingInfo is the payload booking-domain helpers accept.
type BookingInfo struct {
	ID                 string
	TenantID           string
	CustomerID         string
	GuestName          string
	RoomID             string
	RoomName           string
	CheckIn            time.Time
	CheckOut           time.Time
	Nights             int
	TotalAmount        float64
	Currency           string
	CancellationReason string
	TicketID           string
	RefundRequested    bool
	CheckInTime        string
}

func (b BookingInfo) data() domain.BookingData {
	return domain.BookingData{
		BookingID:          b.ID,
		RoomID:             b.RoomID,
		RoomName:           b.RoomName,
		GuestName:          b.GuestName,
		CheckIn:            b.CheckIn.Format("2006-01-02"),
		CheckOut:           b.CheckOut.Format("2006-01-02"),
		Nights:             b.Nights,
		TotalAmount:        b.TotalAmount,
		Currency:           b.Currency,
		CancellationReason: b.CancellationReason,
		TicketID:           b.TicketID,
		RefundRequested:    b.RefundRequested,
	}
}

func (b BookingInfo) stay() string {
	return fmt.Sprintf("%s, %s (%s)", b.RoomName, formatDateRange(b.CheckIn, b.CheckOut), formatNights(b.Nights))
}

// ----------------------
// Staff-facing
// ----------------------

func (e *Events) NotifyNewBooking(ctx context.Context, b BookingInfo) {
	e.fanOut(ctx, b.TenantID, NotifyInput{
		Type:     domain.TypeBookingCreated,
		Title:    fmt.Sprintf("New booking from %s", b.GuestName),
		Message:  fmt.Sprintf("%s for %s", b.stay(), formatAmount(b.TotalAmount, b.Currency)),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyBookingUpdated(ctx context.Context, b BookingInfo) {
	e.fanOut(ctx, b.TenantID, NotifyInput{
		Type:     domain.TypeBookingUpdated,
		Title:    fmt.Sprintf("Booking updated by %s", b.GuestName),
		Message:  b.stay(),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

// NotifyBookingCancelledWithTicket notifies staff of a guest cancellation.
// When the cancellation opened a support ticket the notification links to the
// ticket, otherwise to the booking. A pending refund request is flagged in the
// title.
func (e *Events) NotifyBookingCancelledWithTicket(ctx context.Context, b BookingInfo) {
	title := fmt.Sprintf("Booking cancelled by %s", b.GuestName)
	if b.RefundRequested {
		title = "[REFUND REQUESTED] " + title
	}
	message := b.stay()
	if b.CancellationReason != "" {
		message += ". Reason: " + b.CancellationReason
	}

	linkType, linkID := domain.LinkBooking, b.ID
	if b.TicketID != "" {
		linkType, linkID = domain.LinkSupport, b.TicketID
	}

	e.fanOut(ctx, b.TenantID, NotifyInput{
		Type:     domain.TypeBookingCancelled,
		Title:    title,
		Message:  message,
		LinkType: linkType,
		LinkID:   linkID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyGuestCheckedIn(ctx context.Context, b BookingInfo) {
	e.fanOut(ctx, b.TenantID, NotifyInput{
		Type:     domain.TypeBookingCheckedIn,
		Title:    fmt.Sprintf("%s checked in", b.GuestName),
		Message:  b.stay(),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyGuestCheckedOut(ctx context.Context, b BookingInfo) {
	e.fanOut(ctx, b.TenantID, NotifyInput{
		Type:     domain.TypeBookingCheckedOut,
		Title:    fmt.Sprintf("%s checked out", b.GuestName),
		Message:  b.stay(),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyGuestNoShow(ctx context.Context, b BookingInfo) {
	e.fanOut(ctx, b.TenantID, NotifyInput{
		Type:     domain.TypeBookingNoShow,
		Title:    fmt.Sprintf("No-show: %s", b.GuestName),
		Message:  fmt.Sprintf("%s did not arrive for %s", b.GuestName, b.stay()),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

// ----------------------
// Customer-facing
// ----------------------

func (e *Events) NotifyCustomerBookingConfirmed(ctx context.Context, b BookingInfo) {
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:     domain.TypeBookingConfirmed,
		Title:    "Your booking is confirmed",
		Message:  fmt.Sprintf("%s. Total: %s", b.stay(), formatAmount(b.TotalAmount, b.Currency)),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyCustomerBookingDeclined(ctx context.Context, b BookingInfo) {
	message := b.stay()
	if b.CancellationReason != "" {
		message += ". Reason: " + b.CancellationReason
	}
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:     domain.TypeBookingDeclined,
		Title:    "Your booking request was declined",
		Message:  message,
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyCustomerBookingCancelled(ctx context.Context, b BookingInfo) {
	message := b.stay()
	if b.CancellationReason != "" {
		message += ". Reason: " + b.CancellationReason
	}
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:     domain.TypeBookingCancelledByProperty,
		Title:    "Your booking was cancelled by the property",
		Message:  message,
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyCustomerBookingModified(ctx context.Context, b BookingInfo) {
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:     domain.TypeBookingModified,
		Title:    "Your booking was updated",
		Message:  b.stay(),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

func (e *Events) NotifyCustomerBookingReminder(ctx context.Context, b BookingInfo) {
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:     domain.TypeBookingReminder,
		Title:    "Your stay begins tomorrow",
		Message:  b.stay(),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}

// NotifyCustomerCheckInReminder includes the room's configured check-in time
// when the property has one.
func (e *Events) NotifyCustomerCheckInReminder(ctx context.Context, b BookingInfo) {
	message := fmt.Sprintf("%s awaits you today", b.RoomName)
	if b.CheckInTime != "" {
		message += fmt.Sprintf(". Check-in from %s", b.CheckInTime)
	}
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:     domain.TypeCheckInReminder,
		Title:    "Check-in is today",
		Message:  message,
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data:     b.data(),
	})
}
