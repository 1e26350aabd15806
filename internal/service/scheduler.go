package service

import (
	"context"
	"log"
	"time"

	"notification-service/internal/domain"
	"notification-service/internal/repository"

	"github.com/oklog/ulid/v2"
)

// ReminderNotifier is the slice of Events the scheduler drives.
type ReminderNotifier interface {
	NotifyCustomerBookingReminder(ctx context.Context, b BookingInfo)
	NotifyCustomerCheckInReminder(ctx context.Context, b BookingInfo)
	NotifyCustomerPaymentOverdue(ctx context.Context, b BookingInfo)
}

// ScheduleResult counts attempted sends per category. Attempted, not
// delivered: the writer underneath is fire and forget.
type ScheduleResult struct {
	BookingReminders int `json:"booking_reminders"`
	CheckInReminders int `json:"checkin_reminders"`
	PaymentOverdue   int `json:"payment_overdue"`
}

// Scheduler synthesizes time-based customer notifications from booking state.
// Intended to run once per day; a second run on the same day re-sends the same
// reminders, there is no dedupe key.
type Scheduler struct {
	bookings repository.BookingStore
	events   ReminderNotifier
	now      func() time.Time
}

func NewScheduler(bookings repository.BookingStore, events ReminderNotifier) *Scheduler {
	return &Scheduler{bookings: bookings, events: events, now: time.Now}
}

// Run classifies bookings into three disjoint reminder categories and fans
// each match out through the customer helpers. A category query failure aborts
// the run and returns the counts accumulated so far; individual bookings can
// never fail the loop.
func (s *Scheduler) Run(ctx context.Context) ScheduleResult {
	runID := ulid.Make().String()
	var res ScheduleResult

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	log.Printf("[SCHEDULER %s] run started (today=%s)", runID, today.Format("2006-01-02"))

	// Stay reminders: confirmed bookings checking in tomorrow.
	arriving, err := s.bookings.ListConfirmedByCheckIn(ctx, tomorrow)
	if err != nil {
		log.Printf("⚠️ [SCHEDULER %s] booking reminder query failed: %v", runID, err)
		return res
	}
	for _, b := range arriving {
		if b.CustomerID == "" {
			continue
		}
		s.events.NotifyCustomerBookingReminder(ctx, bookingInfoFromSummary(b))
		res.BookingReminders++
	}

	// Check-in reminders: confirmed bookings checking in today.
	checkingIn, err := s.bookings.ListConfirmedByCheckIn(ctx, today)
	if err != nil {
		log.Printf("⚠️ [SCHEDULER %s] check-in reminder query failed: %v", runID, err)
		return res
	}
	for _, b := range checkingIn {
		if b.CustomerID == "" {
			continue
		}
		s.events.NotifyCustomerCheckInReminder(ctx, bookingInfoFromSummary(b))
		res.CheckInReminders++
	}

	// Payment overdue: unpaid stays that already started.
	overdue, err := s.bookings.ListOverdueUnpaid(ctx, today)
	if err != nil {
		log.Printf("⚠️ [SCHEDULER %s] payment overdue query failed: %v", runID, err)
		return res
	}
	for _, b := range overdue {
		if b.CustomerID == "" || b.TotalAmount <= 0 {
			continue
		}
		s.events.NotifyCustomerPaymentOverdue(ctx, bookingInfoFromSummary(b))
		res.PaymentOverdue++
	}

	log.Printf("[SCHEDULER %s] run finished: reminders=%d checkins=%d overdue=%d",
		runID, res.BookingReminders, res.CheckInReminders, res.PaymentOverdue)
	return res
}

func bookingInfoFromSummary(b *domain.BookingSummary) BookingInfo {
	nights := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return BookingInfo{
		ID:          b.ID,
		TenantID:    b.TenantID,
		CustomerID:  b.CustomerID,
		GuestName:   b.GuestName,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		Nights:      nights,
		TotalAmount: b.TotalAmount,
		Currency:    b.Currency,
		CheckInTime: b.CheckInTime,
	}
}
