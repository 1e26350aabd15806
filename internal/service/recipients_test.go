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

func TestResolveStaffIncludesInactiveOwner(t *testing.T) {
	dir := &mockDirectoryStore{}
	dir.On("ListActiveMembers", mock.Anything, "t1").Return([]domain.MemberRef{
		{ID: "m1", UserID: "u1", Status: "active"},
		{ID: "m2", UserID: "u2", Status: "active"},
	}, nil)
	dir.On("GetTenantOwner", mock.Anything, "t1").Return("u9", nil)
	dir.On("GetMemberByUser", mock.Anything, "t1", "u9").
		Return(&domain.MemberRef{ID: "m9", UserID: "u9", Status: "invited"}, nil)

	svc := NewRecipientService(dir)
	ids, err := svc.ResolveStaff(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m9"}, ids)
}

func TestResolveStaffOwnerAlreadyActive(t *testing.T) {
	dir := &mockDirectoryStore{}
	dir.On("ListActiveMembers", mock.Anything, "t1").Return([]domain.MemberRef{
		{ID: "m1", UserID: "u1", Status: "active"},
	}, nil)
	dir.On("GetTenantOwner", mock.Anything, "t1").Return("u1", nil)

	svc := NewRecipientService(dir)
	ids, err := svc.ResolveStaff(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids)
	dir.AssertNotCalled(t, "GetMemberByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveStaffNeverDuplicatesOwner(t *testing.T) {
	dir := &mockDirectoryStore{}
	dir.On("ListActiveMembers", mock.Anything, "t1").Return([]domain.MemberRef{
		{ID: "m1", UserID: "u1", Status: "active"},
	}, nil)
	dir.On("GetTenantOwner", mock.Anything, "t1").Return("u9", nil)
	dir.On("GetMemberByUser", mock.Anything, "t1", "u9").
		Return(&domain.MemberRef{ID: "m1", UserID: "u9", Status: "active"}, nil)

	svc := NewRecipientService(dir)
	ids, err := svc.ResolveStaff(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids)
}

func TestResolveStaffEmptyTenant(t *testing.T) {
	dir := &mockDirectoryStore{}
	dir.On("ListActiveMembers", mock.Anything, "t1").Return([]domain.MemberRef{}, nil)
	dir.On("GetTenantOwner", mock.Anything, "t1").Return("", xerrors.ErrNotFound)

	svc := NewRecipientService(dir)
	ids, err := svc.ResolveStaff(context.Background(), "t1")

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResolveStaffOwnerWithoutMemberRow(t *testing.T) {
	dir := &mockDirectoryStore{}
	dir.On("ListActiveMembers", mock.Anything, "t1").Return([]domain.MemberRef{
		{ID: "m1", UserID: "u1", Status: "active"},
	}, nil)
	dir.On("GetTenantOwner", mock.Anything, "t1").Return("u9", nil)
	dir.On("GetMemberByUser", mock.Anything, "t1", "u9").Return(nil, xerrors.ErrNotFound)

	svc := NewRecipientService(dir)
	ids, err := svc.ResolveStaff(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids)
}

func TestResolveStaffListFailure(t *testing.T) {
	dir := &mockDirectoryStore{}
	dir.On("ListActiveMembers", mock.Anything, "t1").Return(nil, errors.New("connection refused"))

	svc := NewRecipientService(dir)
	_, err := svc.ResolveStaff(context.Background(), "t1")
	assert.Error(t, err)
}
