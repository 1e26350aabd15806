package worker

import (
	"context"
	"log"
	"time"

	"notification-service/internal/service"
)

// Workers coordinates the service's background jobs. Only one job exists
// today: the daily reminder scheduler.
type Workers struct {
	scheduler *service.Scheduler
	hour      int // local hour of day to run at
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewWorkers(scheduler *service.Scheduler, hour int) *Workers {
	ctx, cancel := context.WithCancel(context.Background())
	return &Workers{
		scheduler: scheduler,
		hour:      hour,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start starts all background workers
func (w *Workers) Start() {
	log.Println("Starting notification workers...")
	go w.runDailyReminders()
}

// Stop stops all background workers
func (w *Workers) Stop() {
	log.Println("Stopping notification workers...")
	w.cancel()
}

// runDailyReminders fires the scheduler job once per day at the configured
// local hour. Runs are strictly sequential; re-running the job on the same
// day would re-send the same reminders.
func (w *Workers) runDailyReminders() {
	log.Printf("Reminder worker started (daily at %02d:00 local)", w.hour)

	for {
		timer := time.NewTimer(time.Until(w.nextRun(time.Now())))
		select {
		case <-w.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			res := w.scheduler.Run(w.ctx)
			log.Printf("Reminder worker: sent reminders=%d checkins=%d overdue=%d",
				res.BookingReminders, res.CheckInReminders, res.PaymentOverdue)
		}
	}
}

func (w *Workers) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
