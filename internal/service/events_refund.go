package service

import (
	"context"
	"fmt"

	"notification-service/internal/domain"
)

// RefundInfo is the payload refund-domain helpers accept.
//
// Note: refund notification types are not part of the preference schema, so
// every helper below delivers unconditionally.
type RefundInfo struct {
	ID         string
	TenantID   string
	BookingID  string
	CustomerID string
	GuestName  string
	Amount     float64
	Currency   string
	Reason     string
}

func (r RefundInfo) data() domain.PaymentData {
	return domain.PaymentData{
		RefundID:  r.ID,
		BookingID: r.BookingID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Reason:    r.Reason,
	}
}

// ----------------------
// Staff-facing
// ----------------------

func (e *Events) NotifyRefundRequested(ctx context.Context, r RefundInfo) {
	message := fmt.Sprintf("%s requested a refund of %s", r.GuestName, formatAmount(r.Amount, r.Currency))
	if r.Reason != "" {
		message += ". Reason: " + r.Reason
	}
	e.fanOut(ctx, r.TenantID, NotifyInput{
		Type:     domain.TypeRefundRequested,
		Title:    "Refund requested",
		Message:  message,
		LinkType: domain.LinkRefund,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

// NotifyRefundEscalation flags a refund that has been pending past its review
// window.
func (e *Events) NotifyRefundEscalation(ctx context.Context, r RefundInfo) {
	e.fanOut(ctx, r.TenantID, NotifyInput{
		Type:     domain.TypeRefundEscalation,
		Title:    "Refund needs attention",
		Message:  fmt.Sprintf("Refund of %s for %s is still pending review", formatAmount(r.Amount, r.Currency), r.GuestName),
		LinkType: domain.LinkRefund,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

// ----------------------
// Customer-facing
// ----------------------

func (e *Events) NotifyCustomerRefundApproved(ctx context.Context, r RefundInfo) {
	e.toCustomer(ctx, r.TenantID, r.CustomerID, NotifyInput{
		Type:     domain.TypeRefundApproved,
		Title:    "Refund approved",
		Message:  fmt.Sprintf("Your refund of %s was approved", formatAmount(r.Amount, r.Currency)),
		LinkType: domain.LinkRefund,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

func (e *Events) NotifyCustomerRefundRejected(ctx context.Context, r RefundInfo) {
	message := fmt.Sprintf("Your refund request of %s was declined", formatAmount(r.Amount, r.Currency))
	if r.Reason != "" {
		message += ". Reason: " + r.Reason
	}
	e.toCustomer(ctx, r.TenantID, r.CustomerID, NotifyInput{
		Type:     domain.TypeRefundRejected,
		Title:    "Refund declined",
		Message:  message,
		LinkType: domain.LinkRefund,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

func (e *Events) NotifyCustomerRefundCompleted(ctx context.Context, r RefundInfo) {
	e.toCustomer(ctx, r.TenantID, r.CustomerID, NotifyInput{
		Type:     domain.TypeRefundCompleted,
		Title:    "Refund completed",
		Message:  fmt.Sprintf("%s is on its way back to your payment method", formatAmount(r.Amount, r.Currency)),
		LinkType: domain.LinkRefund,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}
