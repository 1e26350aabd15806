package repository

import (
	"context"
	"encoding/json"

	"notification-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notification-service/pkg/xerrors"
)

// PreferenceStore persists per-(tenant, recipient) preference records. Rows are
// keyed uniquely by member_id or customer_id, whichever side of the recipient
// union is set.
type PreferenceStore interface {
	GetByRecipient(ctx context.Context, tenantID string, r domain.Recipient) (*domain.PreferenceRecord, error)
	Upsert(ctx context.Context, rec *domain.PreferenceRecord) error
}

type pgPreferenceStore struct {
	db *pgxpool.Pool
}

func NewPreferenceStore(db *pgxpool.Pool) PreferenceStore {
	return &pgPreferenceStore{db: db}
}

func (p *pgPreferenceStore) GetByRecipient(ctx context.Context, tenantID string, r domain.Recipient) (*domain.PreferenceRecord, error) {
	query := `
		SELECT tenant_id, member_id, customer_id, preferences, updated_at
		FROM notification_preferences
		WHERE tenant_id = $1 AND `
	var key string
	if r.IsMember() {
		query += `member_id = $2`
		key = r.MemberID
	} else {
		query += `customer_id = $2`
		key = r.CustomerID
	}

	var rec domain.PreferenceRecord
	var prefs []byte
	err := p.db.QueryRow(ctx, query, tenantID, key).Scan(
		&rec.TenantID,
		&rec.MemberID,
		&rec.CustomerID,
		&prefs,
		&rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &rec.Preferences); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func (p *pgPreferenceStore) Upsert(ctx context.Context, rec *domain.PreferenceRecord) error {
	prefs, err := json.Marshal(rec.Preferences)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notification_preferences (tenant_id, member_id, customer_id, preferences, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (member_id) DO UPDATE
		SET tenant_id = EXCLUDED.tenant_id,
		    preferences = EXCLUDED.preferences,
		    updated_at = NOW()`
	if rec.CustomerID != nil {
		query = `
		INSERT INTO notification_preferences (tenant_id, member_id, customer_id, preferences, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (customer_id) DO UPDATE
		SET tenant_id = EXCLUDED.tenant_id,
		    preferences = EXCLUDED.preferences,
		    updated_at = NOW()`
	}

	_, err = p.db.Exec(ctx, query, rec.TenantID, rec.MemberID, rec.CustomerID, prefs)
	return err
}
