package service

import (
	"context"
	"fmt"

	"notification-service/internal/domain"
)

// PaymentInfo is the payload payment-domain helpers accept.
type PaymentInfo struct {
	ID         string
	TenantID   string
	BookingID  string
	CustomerID string
	GuestName  string
	InvoiceID  string
	Method     string
	Amount     float64
	Currency   string
	Reason     string
}

func (p PaymentInfo) data() domain.PaymentData {
	return domain.PaymentData{
		PaymentID: p.ID,
		BookingID: p.BookingID,
		InvoiceID: p.InvoiceID,
		Method:    p.Method,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Reason:    p.Reason,
	}
}

// ----------------------
// Staff-facing
// ----------------------

func (e *Events) NotifyPaymentReceived(ctx context.Context, p PaymentInfo) {
	message := fmt.Sprintf("%s from %s", formatAmount(p.Amount, p.Currency), p.GuestName)
	if p.Method != "" {
		message += " via " + p.Method
	}
	e.fanOut(ctx, p.TenantID, NotifyInput{
		Type:     domain.TypePaymentReceived,
		Title:    "Payment received",
		Message:  message,
		LinkType: domain.LinkBooking,
		LinkID:   p.BookingID,
		Data:     p.data(),
	})
}

func (e *Events) NotifyPaymentFailed(ctx context.Context, p PaymentInfo) {
	message := fmt.Sprintf("%s from %s failed", formatAmount(p.Amount, p.Currency), p.GuestName)
	if p.Reason != "" {
		message += ": " + p.Reason
	}
	e.fanOut(ctx, p.TenantID, NotifyInput{
		Type:     domain.TypePaymentFailed,
		Title:    "Payment failed",
		Message:  message,
		LinkType: domain.LinkBooking,
		LinkID:   p.BookingID,
		Data:     p.data(),
	})
}

func (e *Events) NotifyInvoiceCreated(ctx context.Context, p PaymentInfo) {
	e.fanOut(ctx, p.TenantID, NotifyInput{
		Type:     domain.TypeInvoiceCreated,
		Title:    "Invoice generated",
		Message:  fmt.Sprintf("Invoice over %s for %s", formatAmount(p.Amount, p.Currency), p.GuestName),
		LinkType: domain.LinkBooking,
		LinkID:   p.BookingID,
		Data:     p.data(),
	})
}

// ----------------------
// Customer-facing
// ----------------------

func (e *Events) NotifyCustomerPaymentConfirmed(ctx context.Context, p PaymentInfo) {
	e.toCustomer(ctx, p.TenantID, p.CustomerID, NotifyInput{
		Type:     domain.TypePaymentConfirmed,
		Title:    "Payment confirmed",
		Message:  fmt.Sprintf("We received your payment of %s", formatAmount(p.Amount, p.Currency)),
		LinkType: domain.LinkBooking,
		LinkID:   p.BookingID,
		Data:     p.data(),
	})
}

func (e *Events) NotifyCustomerPaymentReceipt(ctx context.Context, p PaymentInfo) {
	e.toCustomer(ctx, p.TenantID, p.CustomerID, NotifyInput{
		Type:     domain.TypePaymentReceipt,
		Title:    "Your receipt is ready",
		Message:  fmt.Sprintf("Receipt for %s is available", formatAmount(p.Amount, p.Currency)),
		LinkType: domain.LinkBooking,
		LinkID:   p.BookingID,
		Data:     p.data(),
	})
}

// NotifyCustomerPaymentOverdue reminds the guest of an unpaid stay that has
// already started. Driven by the daily scheduler, not by a payment event.
func (e *Events) NotifyCustomerPaymentOverdue(ctx context.Context, b BookingInfo) {
	e.toCustomer(ctx, b.TenantID, b.CustomerID, NotifyInput{
		Type:  domain.TypePaymentOverdue,
		Title: "Payment overdue",
		Message: fmt.Sprintf("Your stay at %s (check-in %s) has an outstanding balance of %s",
			b.RoomName, formatDate(b.CheckIn), formatAmount(b.TotalAmount, b.Currency)),
		LinkType: domain.LinkBooking,
		LinkID:   b.ID,
		Data: domain.PaymentData{
			BookingID: b.ID,
			Amount:    b.TotalAmount,
			Currency:  b.Currency,
		},
	})
}
