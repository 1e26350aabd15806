package repository

import (
	"context"
	"time"

	"notification-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingStore reads the booking state the reminder job classifies on.
type BookingStore interface {
	// ListConfirmedByCheckIn returns confirmed bookings with a customer attached
	// whose check_in falls on the given calendar date.
	ListConfirmedByCheckIn(ctx context.Context, date time.Time) ([]*domain.BookingSummary, error)
	// ListOverdueUnpaid returns unpaid confirmed/checked_in bookings with a
	// customer attached, a positive total and check_in before the given date.
	ListOverdueUnpaid(ctx context.Context, before time.Time) ([]*domain.BookingSummary, error)
}

type pgBookingStore struct {
	db *pgxpool.Pool
}

func NewBookingStore(db *pgxpool.Pool) BookingStore {
	return &pgBookingStore{db: db}
}

const bookingColumns = `
	b.id, b.tenant_id, b.customer_id, COALESCE(b.room_id, ''),
	COALESCE(r.name, ''), COALESCE(b.guest_name, ''),
	b.check_in, b.check_out, b.status, b.payment_status,
	COALESCE(b.total_amount, 0), COALESCE(b.currency, ''),
	COALESCE(r.check_in_time, '')`

func (p *pgBookingStore) ListConfirmedByCheckIn(ctx context.Context, date time.Time) ([]*domain.BookingSummary, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings b
		LEFT JOIN rooms r ON r.id = b.room_id
		WHERE b.check_in = $1
		  AND b.status = 'confirmed'
		  AND b.customer_id IS NOT NULL
		ORDER BY b.id`

	rows, err := p.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (p *pgBookingStore) ListOverdueUnpaid(ctx context.Context, before time.Time) ([]*domain.BookingSummary, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings b
		LEFT JOIN rooms r ON r.id = b.room_id
		WHERE b.check_in < $1
		  AND b.payment_status = 'unpaid'
		  AND b.status IN ('confirmed', 'checked_in')
		  AND b.customer_id IS NOT NULL
		  AND b.total_amount > 0
		ORDER BY b.id`

	rows, err := p.db.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]*domain.BookingSummary, error) {
	var bookings []*domain.BookingSummary
	for rows.Next() {
		var b domain.BookingSummary
		err := rows.Scan(
			&b.ID,
			&b.TenantID,
			&b.CustomerID,
			&b.RoomID,
			&b.RoomName,
			&b.GuestName,
			&b.CheckIn,
			&b.CheckOut,
			&b.Status,
			&b.PaymentStatus,
			&b.TotalAmount,
			&b.Currency,
			&b.CheckInTime,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return bookings, nil
}
