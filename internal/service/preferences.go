package service

import (
	"context"
	"errors"
	"log"

	"notification-service/internal/domain"
	"notification-service/internal/repository"
	"notification-service/pkg/xerrors"
)

// PreferenceService resolves and updates per-recipient notification
// preferences, expanding stored legacy category-granularity records into the
// current per-type shape on the fly.
type PreferenceService struct {
	store  repository.PreferenceStore
	schema *domain.PreferenceSchema
}

func NewPreferenceService(store repository.PreferenceStore, schema *domain.PreferenceSchema) *PreferenceService {
	return &PreferenceService{store: store, schema: schema}
}

// Resolve returns the effective preferences for a recipient. Missing tenant,
// missing recipient, missing record and storage failures all resolve to the
// all-enabled defaults; this never fails.
func (s *PreferenceService) Resolve(ctx context.Context, tenantID string, r domain.Recipient) domain.NotificationPreferences {
	prefs := s.schema.Defaults()
	if tenantID == "" || r.IsZero() {
		return prefs
	}

	rec, err := s.store.GetByRecipient(ctx, tenantID, r)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			log.Printf("⚠️ [PREFS] read failed for tenant=%s recipient=%+v: %v", tenantID, r, err)
		}
		return prefs
	}
	if len(rec.Preferences) == 0 {
		return prefs
	}

	if s.isLegacy(rec.Preferences) {
		return s.expandLegacy(prefs, rec.Preferences)
	}

	for _, t := range s.schema.PreferenceTypes() {
		if v, ok := rec.Preferences[string(t)].(bool); ok {
			prefs[t] = v
		}
	}
	return prefs
}

// Update shallow-merges partial on top of the recipient's effective preferences
// and upserts the record. Reports success; an update without a tenant is
// ambiguous and rejected.
func (s *PreferenceService) Update(ctx context.Context, tenantID string, partial map[domain.NotificationType]bool, r domain.Recipient) bool {
	if tenantID == "" {
		log.Printf("⚠️ [PREFS] update rejected: missing tenant for recipient=%+v", r)
		return false
	}
	if r.IsZero() {
		log.Printf("⚠️ [PREFS] update rejected: missing recipient for tenant=%s", tenantID)
		return false
	}

	merged := s.Resolve(ctx, tenantID, r).Merge(partial)

	stored := make(map[string]interface{}, len(merged))
	for t, v := range merged {
		stored[string(t)] = v
	}

	rec := &domain.PreferenceRecord{
		TenantID:    tenantID,
		Preferences: stored,
	}
	if r.IsMember() {
		rec.MemberID = &r.MemberID
	} else {
		rec.CustomerID = &r.CustomerID
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		log.Printf("⚠️ [PREFS] upsert failed for tenant=%s recipient=%+v: %v", tenantID, r, err)
		return false
	}
	return true
}

// isLegacy detects the old category-granularity shape: at least one of the six
// legacy category keys and no literal booking_created key. Heuristic, not a
// version tag.
func (s *PreferenceService) isLegacy(stored map[string]interface{}) bool {
	if _, ok := stored[string(domain.TypeBookingCreated)]; ok {
		return false
	}
	for _, cat := range domain.LegacyCategories {
		if _, ok := stored[string(cat)]; ok {
			return true
		}
	}
	return false
}

// expandLegacy fans each stored category flag out to every type in that
// category; types whose category is absent keep their default.
func (s *PreferenceService) expandLegacy(prefs domain.NotificationPreferences, stored map[string]interface{}) domain.NotificationPreferences {
	for _, t := range s.schema.PreferenceTypes() {
		cat, ok := s.schema.CategoryOf(t)
		if !ok {
			continue
		}
		if v, ok := stored[string(cat)].(bool); ok {
			prefs[t] = v
		}
	}
	return prefs
}
