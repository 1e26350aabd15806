package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"notification-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notification-service/pkg/xerrors"
)

// Filter scopes notification queries to one recipient. TenantID is mandatory
// for member scoping and an optional extra filter for customer scoping.
type Filter struct {
	TenantID   string
	MemberID   string
	CustomerID string
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationStore aggregates notification row operations.
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	List(ctx context.Context, f Filter) ([]*domain.Notification, error)
	Count(ctx context.Context, f Filter) (int, error)
	CountUnread(ctx context.Context, f Filter) (int, error)
	MarkRead(ctx context.Context, id int64, f Filter) error
	MarkAllRead(ctx context.Context, f Filter) error
}

type pgNotificationStore struct {
	db *pgxpool.Pool
}

func NewNotificationStore(db *pgxpool.Pool) NotificationStore {
	return &pgNotificationStore{db: db}
}

const notificationColumns = `
	id, tenant_id, member_id, customer_id, type, title, message,
	link_type, link_id, data, read_at, created_at`

func (p *pgNotificationStore) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	var data []byte
	if n.Data != nil {
		b, err := json.Marshal(n.Data)
		if err != nil {
			return nil, err
		}
		data = b
	}

	query := `
		INSERT INTO notifications (
			tenant_id, member_id, customer_id, type, title, message,
			link_type, link_id, data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + notificationColumns

	row := p.db.QueryRow(ctx, query,
		n.TenantID,
		n.MemberID,
		n.CustomerID,
		n.Type,
		n.Title,
		n.Message,
		n.LinkType,
		n.LinkID,
		data,
	)
	return scanNotification(row)
}

func (p *pgNotificationStore) List(ctx context.Context, f Filter) ([]*domain.Notification, error) {
	where, args := buildScope(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM notifications
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		notificationColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notifications, nil
}

func (p *pgNotificationStore) Count(ctx context.Context, f Filter) (int, error) {
	f.UnreadOnly = false
	where, args := buildScope(f)
	query := `SELECT COUNT(*) FROM notifications ` + where

	var count int
	if err := p.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *pgNotificationStore) CountUnread(ctx context.Context, f Filter) (int, error) {
	f.UnreadOnly = true
	where, args := buildScope(f)
	query := `SELECT COUNT(*) FROM notifications ` + where

	var count int
	if err := p.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *pgNotificationStore) MarkRead(ctx context.Context, id int64, f Filter) error {
	f.UnreadOnly = false
	where, args := buildScope(f)
	query := fmt.Sprintf(`
		UPDATE notifications
		SET read_at = NOW()
		%s AND id = $%d AND read_at IS NULL`, where, len(args)+1)
	args = append(args, id)

	ct, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		// Either unknown id, out-of-scope id, or already read. Distinguish so
		// a repeated mark-read stays a no-op rather than a 404.
		var exists bool
		checkQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM notifications %s AND id = $%d)`, where, len(args))
		if err := p.db.QueryRow(ctx, checkQuery, args...).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return xerrors.ErrNotFound
		}
	}
	return nil
}

func (p *pgNotificationStore) MarkAllRead(ctx context.Context, f Filter) error {
	f.UnreadOnly = true
	where, args := buildScope(f)
	query := `
		UPDATE notifications
		SET read_at = NOW()
		` + where

	_, err := p.db.Exec(ctx, query, args...)
	return err
}

// buildScope renders the WHERE clause for a recipient filter.
func buildScope(f Filter) (string, []interface{}) {
	where := `WHERE TRUE`
	args := []interface{}{}

	if f.TenantID != "" {
		args = append(args, f.TenantID)
		where += fmt.Sprintf(" AND tenant_id = $%d", len(args))
	}
	if f.MemberID != "" {
		args = append(args, f.MemberID)
		where += fmt.Sprintf(" AND member_id = $%d", len(args))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.UnreadOnly {
		where += " AND read_at IS NULL"
	}
	return where, args
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	var data []byte
	err := row.Scan(
		&n.ID,
		&n.TenantID,
		&n.MemberID,
		&n.CustomerID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.LinkType,
		&n.LinkID,
		&data,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	if len(data) > 0 {
		n.Data = domain.RawData(data)
	}
	return &n, nil
}
