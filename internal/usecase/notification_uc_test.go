package usecase

import (
	"context"
	"testing"

	"notification-service/internal/domain"
	"notification-service/internal/repository"
	"notification-service/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if created, _ := args.Get(0).(*domain.Notification); created != nil {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) List(ctx context.Context, f repository.Filter) ([]*domain.Notification, error) {
	args := m.Called(ctx, f)
	if ns, _ := args.Get(0).([]*domain.Notification); ns != nil {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Count(ctx context.Context, f repository.Filter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}
func (m *mockStore) CountUnread(ctx context.Context, f repository.Filter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}
func (m *mockStore) MarkRead(ctx context.Context, id int64, f repository.Filter) error {
	return m.Called(ctx, id, f).Error(0)
}
func (m *mockStore) MarkAllRead(ctx context.Context, f repository.Filter) error {
	return m.Called(ctx, f).Error(0)
}

type mockPrefManager struct{ mock.Mock }

func (m *mockPrefManager) Resolve(ctx context.Context, tenantID string, r domain.Recipient) domain.NotificationPreferences {
	args := m.Called(ctx, tenantID, r)
	return args.Get(0).(domain.NotificationPreferences)
}
func (m *mockPrefManager) Update(ctx context.Context, tenantID string, partial map[domain.NotificationType]bool, r domain.Recipient) bool {
	return m.Called(ctx, tenantID, partial, r).Bool(0)
}

func newUC(store *mockStore) *NotificationUsecase {
	return NewNotificationUsecase(store, &mockPrefManager{})
}

func TestListMemberRequiresTenant(t *testing.T) {
	store := &mockStore{}
	uc := newUC(store)

	_, err := uc.List(context.Background(), ListQuery{MemberID: "m1"})

	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListRejectsDualScope(t *testing.T) {
	uc := newUC(&mockStore{})
	_, err := uc.List(context.Background(), ListQuery{TenantID: "t1", MemberID: "m1", CustomerID: "c1"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestListRejectsMissingScope(t *testing.T) {
	uc := newUC(&mockStore{})
	_, err := uc.List(context.Background(), ListQuery{TenantID: "t1"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestListCustomerTenantOptional(t *testing.T) {
	store := &mockStore{}
	store.On("List", mock.Anything, mock.MatchedBy(func(f repository.Filter) bool {
		return f.CustomerID == "c1" && f.TenantID == ""
	})).Return([]*domain.Notification{}, nil)
	store.On("Count", mock.Anything, mock.Anything).Return(0, nil)
	store.On("CountUnread", mock.Anything, mock.Anything).Return(0, nil)

	uc := newUC(store)
	res, err := uc.List(context.Background(), ListQuery{CustomerID: "c1"})

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotNil(t, res.Notifications)
	assert.Empty(t, res.Notifications)
}

func TestListDefaultsAndCapsLimit(t *testing.T) {
	store := &mockStore{}
	var seen []int
	store.On("List", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seen = append(seen, args.Get(1).(repository.Filter).Limit)
		}).
		Return([]*domain.Notification{}, nil)
	store.On("Count", mock.Anything, mock.Anything).Return(0, nil)
	store.On("CountUnread", mock.Anything, mock.Anything).Return(0, nil)

	uc := newUC(store)
	_, err := uc.List(context.Background(), ListQuery{TenantID: "t1", MemberID: "m1"})
	require.NoError(t, err)
	_, err = uc.List(context.Background(), ListQuery{TenantID: "t1", MemberID: "m1", Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, []int{20, 100}, seen)
}

func TestListReportsCounts(t *testing.T) {
	store := &mockStore{}
	store.On("List", mock.Anything, mock.Anything).
		Return([]*domain.Notification{{ID: 1, TenantID: "t1"}}, nil)
	store.On("Count", mock.Anything, mock.Anything).Return(8, nil)
	store.On("CountUnread", mock.Anything, mock.Anything).Return(3, nil)

	uc := newUC(store)
	res, err := uc.List(context.Background(), ListQuery{TenantID: "t1", MemberID: "m1"})

	require.NoError(t, err)
	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 3, res.Unread)
	assert.Len(t, res.Notifications, 1)
}

func TestMarkReadRejectsInvalidID(t *testing.T) {
	uc := newUC(&mockStore{})
	err := uc.MarkRead(context.Background(), 0, ListQuery{TenantID: "t1", MemberID: "m1"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestMarkReadScopesToCaller(t *testing.T) {
	store := &mockStore{}
	store.On("MarkRead", mock.Anything, int64(7), mock.MatchedBy(func(f repository.Filter) bool {
		return f.TenantID == "t1" && f.MemberID == "m1"
	})).Return(nil)

	uc := newUC(store)
	err := uc.MarkRead(context.Background(), 7, ListQuery{TenantID: "t1", MemberID: "m1"})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestMarkAllReadIdempotent(t *testing.T) {
	store := &mockStore{}
	store.On("MarkAllRead", mock.Anything, mock.Anything).Return(nil)

	uc := newUC(store)
	q := ListQuery{CustomerID: "c1"}
	require.NoError(t, uc.MarkAllRead(context.Background(), q))
	require.NoError(t, uc.MarkAllRead(context.Background(), q))
	store.AssertNumberOfCalls(t, "MarkAllRead", 2)
}
