package service

import (
	"context"
	"errors"
	"testing"

	"notification-service/internal/domain"
	"notification-service/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPrefService(store *mockPreferenceStore) *PreferenceService {
	return NewPreferenceService(store, domain.NewPreferenceSchema())
}

func TestResolveDefaultsWithoutTenantOrRecipient(t *testing.T) {
	store := &mockPreferenceStore{}
	svc := newPrefService(store)

	prefs := svc.Resolve(context.Background(), "", domain.MemberRecipient("m1"))
	assert.True(t, prefs.Enabled(domain.TypeBookingCreated))

	prefs = svc.Resolve(context.Background(), "t1", domain.Recipient{})
	assert.True(t, prefs.Enabled(domain.TypePaymentReceived))

	// no lookup may have been performed
	store.AssertNotCalled(t, "GetByRecipient", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveDefaultsWhenNoRecord(t *testing.T) {
	store := &mockPreferenceStore{}
	store.On("GetByRecipient", mock.Anything, "t1", domain.MemberRecipient("m1")).
		Return(nil, xerrors.ErrNotFound)
	svc := newPrefService(store)

	prefs := svc.Resolve(context.Background(), "t1", domain.MemberRecipient("m1"))

	for _, enabled := range prefs {
		assert.True(t, enabled)
	}
	store.AssertExpectations(t)
}

func TestResolveStorageErrorFallsBackToDefaults(t *testing.T) {
	store := &mockPreferenceStore{}
	store.On("GetByRecipient", mock.Anything, "t1", mock.Anything).
		Return(nil, errors.New("connection refused"))
	svc := newPrefService(store)

	prefs := svc.Resolve(context.Background(), "t1", domain.MemberRecipient("m1"))
	assert.True(t, prefs.Enabled(domain.TypeBookingCreated))
}

func TestResolveExpandsLegacyFormat(t *testing.T) {
	store := &mockPreferenceStore{}
	store.On("GetByRecipient", mock.Anything, "t1", mock.Anything).
		Return(&domain.PreferenceRecord{
			TenantID: "t1",
			Preferences: map[string]interface{}{
				"bookings": false,
				"payments": true,
			},
		}, nil)
	svc := newPrefService(store)

	prefs := svc.Resolve(context.Background(), "t1", domain.MemberRecipient("m1"))

	// bookings category fans out to every booking type
	assert.False(t, prefs[domain.TypeBookingCreated])
	assert.False(t, prefs[domain.TypeBookingCancelled])
	assert.False(t, prefs[domain.TypeBookingReminder])
	// payments category stored true
	assert.True(t, prefs[domain.TypePaymentReceived])
	// categories outside the stored map keep their defaults
	assert.True(t, prefs[domain.TypeReviewSubmitted])
	assert.True(t, prefs[domain.TypeMemberJoined])
}

func TestResolveCurrentFormatTakesPrecedence(t *testing.T) {
	store := &mockPreferenceStore{}
	// booking_created present: legacy expansion must not run even though a
	// category key is also present
	store.On("GetByRecipient", mock.Anything, "t1", mock.Anything).
		Return(&domain.PreferenceRecord{
			TenantID: "t1",
			Preferences: map[string]interface{}{
				"booking_created":  false,
				"bookings":         false,
				"review_submitted": false,
			},
		}, nil)
	svc := newPrefService(store)

	prefs := svc.Resolve(context.Background(), "t1", domain.MemberRecipient("m1"))

	assert.False(t, prefs[domain.TypeBookingCreated])
	assert.False(t, prefs[domain.TypeReviewSubmitted])
	// booking_cancelled keeps its default despite the legacy bookings=false key
	assert.True(t, prefs[domain.TypeBookingCancelled])
}

func TestUpdateRequiresTenant(t *testing.T) {
	store := &mockPreferenceStore{}
	svc := newPrefService(store)

	ok := svc.Update(context.Background(), "", map[domain.NotificationType]bool{
		domain.TypeBookingCreated: false,
	}, domain.MemberRecipient("m1"))

	assert.False(t, ok)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateMergesAndUpserts(t *testing.T) {
	store := &mockPreferenceStore{}
	store.On("GetByRecipient", mock.Anything, "t1", mock.Anything).
		Return(nil, xerrors.ErrNotFound)

	var saved *domain.PreferenceRecord
	store.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PreferenceRecord")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.PreferenceRecord)
		}).
		Return(nil)
	svc := newPrefService(store)

	ok := svc.Update(context.Background(), "t1", map[domain.NotificationType]bool{
		domain.TypePaymentReceived: false,
	}, domain.MemberRecipient("m1"))

	require.True(t, ok)
	require.NotNil(t, saved)
	require.NotNil(t, saved.MemberID)
	assert.Equal(t, "m1", *saved.MemberID)
	assert.Nil(t, saved.CustomerID)
	assert.Equal(t, false, saved.Preferences["payment_received"])
	assert.Equal(t, true, saved.Preferences["booking_created"])
}

func TestUpdateReportsStoreFailure(t *testing.T) {
	store := &mockPreferenceStore{}
	store.On("GetByRecipient", mock.Anything, "t1", mock.Anything).
		Return(nil, xerrors.ErrNotFound)
	store.On("Upsert", mock.Anything, mock.Anything).
		Return(errors.New("write timeout"))
	svc := newPrefService(store)

	ok := svc.Update(context.Background(), "t1", map[domain.NotificationType]bool{
		domain.TypeBookingCreated: false,
	}, domain.CustomerRecipient("c1"))

	assert.False(t, ok)
}
