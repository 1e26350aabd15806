package service

import (
	"context"
	"errors"
	"log"

	"notification-service/internal/repository"
	"notification-service/pkg/xerrors"
)

// RecipientService enumerates the staff recipients of tenant-wide events.
type RecipientService struct {
	directory repository.DirectoryStore
}

func NewRecipientService(directory repository.DirectoryStore) *RecipientService {
	return &RecipientService{directory: directory}
}

// ResolveStaff returns the member ids of every active member of the tenant,
// plus the tenant owner's member row (any status) when the owner has no active
// membership. An owner who was never onboarded as active staff would otherwise
// silently miss every tenant-wide notification. An empty result means nothing
// to notify, not an error.
func (s *RecipientService) ResolveStaff(ctx context.Context, tenantID string) ([]string, error) {
	members, err := s.directory.ListActiveMembers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	seenMember := make(map[string]bool, len(members))
	seenUser := make(map[string]bool, len(members))
	for _, m := range members {
		if seenMember[m.ID] {
			continue
		}
		seenMember[m.ID] = true
		seenUser[m.UserID] = true
		ids = append(ids, m.ID)
	}

	ownerUserID, err := s.directory.GetTenantOwner(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			log.Printf("⚠️ [RECIPIENTS] owner lookup failed for tenant=%s: %v", tenantID, err)
		}
		return ids, nil
	}
	if ownerUserID == "" || seenUser[ownerUserID] {
		return ids, nil
	}

	owner, err := s.directory.GetMemberByUser(ctx, tenantID, ownerUserID)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			log.Printf("⚠️ [RECIPIENTS] owner member lookup failed for tenant=%s: %v", tenantID, err)
		}
		return ids, nil
	}
	if !seenMember[owner.ID] {
		ids = append(ids, owner.ID)
	}
	return ids, nil
}
