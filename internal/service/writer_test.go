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

func defaultsResolver() *mockResolver {
	r := &mockResolver{}
	r.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.NewPreferenceSchema().Defaults())
	return r
}

func TestDeliverGatedByPreference(t *testing.T) {
	prefs := &mockResolver{}
	disabled := domain.NewPreferenceSchema().Defaults()
	disabled[domain.TypeBookingCreated] = false
	prefs.On("Resolve", mock.Anything, "t1", domain.MemberRecipient("m1")).Return(disabled)

	store := &mockNotificationStore{}
	emitter := &mockEmitter{}
	w := NewWriter(prefs, store, emitter)

	err := w.deliver(context.Background(), "t1", domain.MemberRecipient("m1"), NotifyInput{
		Type:  domain.TypeBookingCreated,
		Title: "New booking",
	})

	require.NoError(t, err)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	emitter.AssertNotCalled(t, "EmitDashboard", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverPersistsAndEmitsDashboard(t *testing.T) {
	store := &mockNotificationStore{}
	var persisted *domain.Notification
	store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.Notification)
		}).
		Return(&domain.Notification{ID: 42}, nil)

	emitter := &mockEmitter{}
	var emitted *domain.Notification
	emitter.On("EmitDashboard", mock.Anything, "t1", mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			emitted = args.Get(2).(*domain.Notification)
		}).
		Return(nil)

	w := NewWriter(defaultsResolver(), store, emitter)
	err := w.deliver(context.Background(), "t1", domain.MemberRecipient("m1"), NotifyInput{
		Type:    domain.TypeBookingCreated,
		Title:   "New booking",
		Message: "Room 4, 2 nights",
	})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.NotNil(t, persisted.MemberID)
	assert.Equal(t, "m1", *persisted.MemberID)
	assert.Nil(t, persisted.CustomerID)
	// the emitted row is the one the store returned, id included
	require.NotNil(t, emitted)
	assert.Equal(t, int64(42), emitted.ID)
}

func TestDeliverEmitsCustomerChannel(t *testing.T) {
	store := &mockNotificationStore{}
	store.On("Create", mock.Anything, mock.Anything).Return(&domain.Notification{ID: 7}, nil)

	emitter := &mockEmitter{}
	emitter.On("EmitCustomer", mock.Anything, "c1", mock.Anything).Return(nil)

	w := NewWriter(defaultsResolver(), store, emitter)
	err := w.deliver(context.Background(), "t1", domain.CustomerRecipient("c1"), NotifyInput{
		Type:  domain.TypeBookingConfirmed,
		Title: "Your booking is confirmed",
	})

	require.NoError(t, err)
	emitter.AssertCalled(t, "EmitCustomer", mock.Anything, "c1", mock.Anything)
	emitter.AssertNotCalled(t, "EmitDashboard", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverRefundTypesAlwaysNotify(t *testing.T) {
	// refund types have no preference field; default-true fallback applies
	store := &mockNotificationStore{}
	store.On("Create", mock.Anything, mock.Anything).Return(&domain.Notification{ID: 1}, nil)
	emitter := &mockEmitter{}
	emitter.On("EmitDashboard", mock.Anything, "t1", mock.Anything).Return(nil)

	w := NewWriter(defaultsResolver(), store, emitter)
	err := w.deliver(context.Background(), "t1", domain.MemberRecipient("m1"), NotifyInput{
		Type:  domain.TypeRefundEscalation,
		Title: "Refund needs attention",
	})

	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "Create", 1)
	emitter.AssertNumberOfCalls(t, "EmitDashboard", 1)
}

func TestDeliverPersistFailureSkipsEmission(t *testing.T) {
	store := &mockNotificationStore{}
	store.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
	emitter := &mockEmitter{}

	w := NewWriter(defaultsResolver(), store, emitter)
	err := w.deliver(context.Background(), "t1", domain.MemberRecipient("m1"), NotifyInput{
		Type:  domain.TypeBookingCreated,
		Title: "New booking",
	})

	assert.ErrorIs(t, err, xerrors.ErrStoreWrite)
	emitter.AssertNotCalled(t, "EmitDashboard", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverEmitFailureAfterPersist(t *testing.T) {
	store := &mockNotificationStore{}
	store.On("Create", mock.Anything, mock.Anything).Return(&domain.Notification{ID: 1}, nil)
	emitter := &mockEmitter{}
	emitter.On("EmitDashboard", mock.Anything, "t1", mock.Anything).Return(errors.New("broken pipe"))

	w := NewWriter(defaultsResolver(), store, emitter)
	err := w.deliver(context.Background(), "t1", domain.MemberRecipient("m1"), NotifyInput{
		Type:  domain.TypeBookingCreated,
		Title: "New booking",
	})

	assert.ErrorIs(t, err, xerrors.ErrChannelEmit)
	store.AssertNumberOfCalls(t, "Create", 1)
}

func TestDeliverRejectsEmptyRecipient(t *testing.T) {
	w := NewWriter(defaultsResolver(), &mockNotificationStore{}, &mockEmitter{})
	err := w.deliver(context.Background(), "t1", domain.Recipient{}, NotifyInput{
		Type: domain.TypeBookingCreated,
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestNotifyNeverSurfacesFailures(t *testing.T) {
	store := &mockNotificationStore{}
	store.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	w := NewWriter(defaultsResolver(), store, &mockEmitter{})

	assert.NotPanics(t, func() {
		w.Notify(context.Background(), "t1", domain.MemberRecipient("m1"), NotifyInput{
			Type:  domain.TypeBookingCreated,
			Title: "New booking",
		})
	})
}
