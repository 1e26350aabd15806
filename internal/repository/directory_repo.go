package repository

import (
	"context"

	"notification-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notification-service/pkg/xerrors"
)

// DirectoryStore reads tenant staff membership and ownership.
type DirectoryStore interface {
	ListActiveMembers(ctx context.Context, tenantID string) ([]domain.MemberRef, error)
	GetMemberByUser(ctx context.Context, tenantID, userID string) (*domain.MemberRef, error)
	GetTenantOwner(ctx context.Context, tenantID string) (string, error)
}

type pgDirectoryStore struct {
	db *pgxpool.Pool
}

func NewDirectoryStore(db *pgxpool.Pool) DirectoryStore {
	return &pgDirectoryStore{db: db}
}

func (p *pgDirectoryStore) ListActiveMembers(ctx context.Context, tenantID string) ([]domain.MemberRef, error) {
	query := `
		SELECT id, user_id, status
		FROM tenant_members
		WHERE tenant_id = $1 AND status = 'active'`

	rows, err := p.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.MemberRef
	for rows.Next() {
		var m domain.MemberRef
		if err := rows.Scan(&m.ID, &m.UserID, &m.Status); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return members, nil
}

// GetMemberByUser returns the user's member row for the tenant regardless of
// status. Used for the owner fallback.
func (p *pgDirectoryStore) GetMemberByUser(ctx context.Context, tenantID, userID string) (*domain.MemberRef, error) {
	query := `
		SELECT id, user_id, status
		FROM tenant_members
		WHERE tenant_id = $1 AND user_id = $2
		LIMIT 1`

	var m domain.MemberRef
	err := p.db.QueryRow(ctx, query, tenantID, userID).Scan(&m.ID, &m.UserID, &m.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (p *pgDirectoryStore) GetTenantOwner(ctx context.Context, tenantID string) (string, error) {
	query := `SELECT owner_user_id FROM tenants WHERE id = $1`

	var ownerUserID string
	err := p.db.QueryRow(ctx, query, tenantID).Scan(&ownerUserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", xerrors.ErrNotFound
		}
		return "", err
	}
	return ownerUserID, nil
}
