package service

import (
	"context"
	"time"

	"notification-service/internal/domain"
	"notification-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

// --- store mocks ---

type mockPreferenceStore struct{ mock.Mock }

func (m *mockPreferenceStore) GetByRecipient(ctx context.Context, tenantID string, r domain.Recipient) (*domain.PreferenceRecord, error) {
	args := m.Called(ctx, tenantID, r)
	if rec, _ := args.Get(0).(*domain.PreferenceRecord); rec != nil {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPreferenceStore) Upsert(ctx context.Context, rec *domain.PreferenceRecord) error {
	return m.Called(ctx, rec).Error(0)
}

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if created, _ := args.Get(0).(*domain.Notification); created != nil {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) List(ctx context.Context, f repository.Filter) ([]*domain.Notification, error) {
	args := m.Called(ctx, f)
	if ns, _ := args.Get(0).([]*domain.Notification); ns != nil {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) Count(ctx context.Context, f repository.Filter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}
func (m *mockNotificationStore) CountUnread(ctx context.Context, f repository.Filter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}
func (m *mockNotificationStore) MarkRead(ctx context.Context, id int64, f repository.Filter) error {
	return m.Called(ctx, id, f).Error(0)
}
func (m *mockNotificationStore) MarkAllRead(ctx context.Context, f repository.Filter) error {
	return m.Called(ctx, f).Error(0)
}

type mockDirectoryStore struct{ mock.Mock }

func (m *mockDirectoryStore) ListActiveMembers(ctx context.Context, tenantID string) ([]domain.MemberRef, error) {
	args := m.Called(ctx, tenantID)
	if refs, _ := args.Get(0).([]domain.MemberRef); refs != nil {
		return refs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDirectoryStore) GetMemberByUser(ctx context.Context, tenantID, userID string) (*domain.MemberRef, error) {
	args := m.Called(ctx, tenantID, userID)
	if ref, _ := args.Get(0).(*domain.MemberRef); ref != nil {
		return ref, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDirectoryStore) GetTenantOwner(ctx context.Context, tenantID string) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) ListConfirmedByCheckIn(ctx context.Context, date time.Time) ([]*domain.BookingSummary, error) {
	args := m.Called(ctx, date)
	if bs, _ := args.Get(0).([]*domain.BookingSummary); bs != nil {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBookingStore) ListOverdueUnpaid(ctx context.Context, before time.Time) ([]*domain.BookingSummary, error) {
	args := m.Called(ctx, before)
	if bs, _ := args.Get(0).([]*domain.BookingSummary); bs != nil {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- collaborator mocks ---

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(ctx context.Context, tenantID string, r domain.Recipient) domain.NotificationPreferences {
	args := m.Called(ctx, tenantID, r)
	return args.Get(0).(domain.NotificationPreferences)
}

type mockEmitter struct{ mock.Mock }

func (m *mockEmitter) EmitDashboard(ctx context.Context, tenantID string, n *domain.Notification) error {
	return m.Called(ctx, tenantID, n).Error(0)
}
func (m *mockEmitter) EmitCustomer(ctx context.Context, customerID string, n *domain.Notification) error {
	return m.Called(ctx, customerID, n).Error(0)
}

// mockSink records every Notify call for assertions on fan-out and content.
type mockSink struct {
	calls []sinkCall
}

type sinkCall struct {
	tenantID  string
	recipient domain.Recipient
	input     NotifyInput
}

func (m *mockSink) Notify(ctx context.Context, tenantID string, r domain.Recipient, in NotifyInput) {
	m.calls = append(m.calls, sinkCall{tenantID: tenantID, recipient: r, input: in})
}

type mockStaffResolver struct{ mock.Mock }

func (m *mockStaffResolver) ResolveStaff(ctx context.Context, tenantID string) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if ids, _ := args.Get(0).([]string); ids != nil {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
