package service

import (
	"context"
	"fmt"

	"notification-service/internal/domain"
)

// ReviewInfo is the payload review-domain helpers accept.
type ReviewInfo struct {
	ID         string
	TenantID   string
	BookingID  string
	CustomerID string
	GuestName  string
	Rating     int
	Excerpt    string
}

func (r ReviewInfo) data() domain.ReviewData {
	return domain.ReviewData{
		ReviewID:  r.ID,
		BookingID: r.BookingID,
		GuestName: r.GuestName,
		Rating:    r.Rating,
		Excerpt:   r.Excerpt,
	}
}

// TicketInfo is the payload support-domain helpers accept.
type TicketInfo struct {
	ID         string
	TenantID   string
	BookingID  string
	CustomerID string
	GuestName  string
	Subject    string
}

func (t TicketInfo) data() domain.SupportData {
	return domain.SupportData{
		TicketID:  t.ID,
		BookingID: t.BookingID,
		Subject:   t.Subject,
		GuestName: t.GuestName,
	}
}

// ----------------------
// Reviews
// ----------------------

func (e *Events) NotifyReviewSubmitted(ctx context.Context, r ReviewInfo) {
	message := fmt.Sprintf("%d-star review from %s", r.Rating, r.GuestName)
	if r.Excerpt != "" {
		message += fmt.Sprintf(": %q", r.Excerpt)
	}
	e.fanOut(ctx, r.TenantID, NotifyInput{
		Type:     domain.TypeReviewSubmitted,
		Title:    "New review",
		Message:  message,
		LinkType: domain.LinkReview,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

func (e *Events) NotifyReviewReported(ctx context.Context, r ReviewInfo) {
	e.fanOut(ctx, r.TenantID, NotifyInput{
		Type:     domain.TypeReviewReported,
		Title:    "Review reported",
		Message:  fmt.Sprintf("A review by %s was reported for moderation", r.GuestName),
		LinkType: domain.LinkReview,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

func (e *Events) NotifyCustomerReviewResponse(ctx context.Context, r ReviewInfo) {
	e.toCustomer(ctx, r.TenantID, r.CustomerID, NotifyInput{
		Type:     domain.TypeReviewResponse,
		Title:    "The property replied to your review",
		Message:  "Open your review to read the response",
		LinkType: domain.LinkReview,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

func (e *Events) NotifyCustomerReviewRequest(ctx context.Context, r ReviewInfo) {
	e.toCustomer(ctx, r.TenantID, r.CustomerID, NotifyInput{
		Type:     domain.TypeReviewRequest,
		Title:    "How was your stay?",
		Message:  "Share your experience by leaving a review",
		LinkType: domain.LinkBooking,
		LinkID:   r.BookingID,
		Data:     r.data(),
	})
}

// ----------------------
// Support
// ----------------------

func (e *Events) NotifyTicketCreated(ctx context.Context, t TicketInfo) {
	e.fanOut(ctx, t.TenantID, NotifyInput{
		Type:     domain.TypeTicketCreated,
		Title:    fmt.Sprintf("New support ticket from %s", t.GuestName),
		Message:  t.Subject,
		LinkType: domain.LinkSupport,
		LinkID:   t.ID,
		Data:     t.data(),
	})
}

func (e *Events) NotifyTicketMessage(ctx context.Context, t TicketInfo) {
	e.fanOut(ctx, t.TenantID, NotifyInput{
		Type:     domain.TypeTicketMessage,
		Title:    fmt.Sprintf("New message from %s", t.GuestName),
		Message:  t.Subject,
		LinkType: domain.LinkSupport,
		LinkID:   t.ID,
		Data:     t.data(),
	})
}

func (e *Events) NotifyTicketResolved(ctx context.Context, t TicketInfo) {
	e.fanOut(ctx, t.TenantID, NotifyInput{
		Type:     domain.TypeTicketResolved,
		Title:    "Support ticket resolved",
		Message:  t.Subject,
		LinkType: domain.LinkSupport,
		LinkID:   t.ID,
		Data:     t.data(),
	})
}

func (e *Events) NotifyCustomerSupportReply(ctx context.Context, t TicketInfo) {
	e.toCustomer(ctx, t.TenantID, t.CustomerID, NotifyInput{
		Type:     domain.TypeSupportReply,
		Title:    "Support replied to your ticket",
		Message:  t.Subject,
		LinkType: domain.LinkSupport,
		LinkID:   t.ID,
		Data:     t.data(),
	})
}

func (e *Events) NotifyCustomerSupportClosed(ctx context.Context, t TicketInfo) {
	e.toCustomer(ctx, t.TenantID, t.CustomerID, NotifyInput{
		Type:     domain.TypeSupportClosed,
		Title:    "Your support ticket was closed",
		Message:  t.Subject,
		LinkType: domain.LinkSupport,
		LinkID:   t.ID,
		Data:     t.data(),
	})
}
