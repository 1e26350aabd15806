package service

import (
	"context"
	"fmt"

	"notification-service/internal/domain"
)

// MemberInfo is the payload member-domain helpers accept.
type MemberInfo struct {
	ID       string
	TenantID string
	Name     string
	Role     string
}

func (m MemberInfo) data() domain.MemberData {
	return domain.MemberData{MemberID: m.ID, Name: m.Name, Role: m.Role}
}

// RoomInfo is the payload room-domain helpers accept.
type RoomInfo struct {
	ID       string
	TenantID string
	Name     string
}

func (r RoomInfo) data() domain.RoomData {
	return domain.RoomData{RoomID: r.ID, RoomName: r.Name}
}

// ----------------------
// Members
// ----------------------

func (e *Events) NotifyMemberJoined(ctx context.Context, m MemberInfo) {
	e.fanOut(ctx, m.TenantID, NotifyInput{
		Type:     domain.TypeMemberJoined,
		Title:    fmt.Sprintf("%s joined the team", m.Name),
		Message:  fmt.Sprintf("Role: %s", m.Role),
		LinkType: domain.LinkSettings,
		LinkID:   m.ID,
		Data:     m.data(),
	})
}

func (e *Events) NotifyMemberLeft(ctx context.Context, m MemberInfo) {
	e.fanOut(ctx, m.TenantID, NotifyInput{
		Type:     domain.TypeMemberLeft,
		Title:    fmt.Sprintf("%s left the team", m.Name),
		LinkType: domain.LinkSettings,
		LinkID:   m.ID,
		Data:     m.data(),
	})
}

func (e *Events) NotifyMemberRoleChanged(ctx context.Context, m MemberInfo) {
	e.fanOut(ctx, m.TenantID, NotifyInput{
		Type:     domain.TypeMemberRoleChanged,
		Title:    fmt.Sprintf("%s has a new role", m.Name),
		Message:  fmt.Sprintf("Now: %s", m.Role),
		LinkType: domain.LinkSettings,
		LinkID:   m.ID,
		Data:     m.data(),
	})
}

func (e *Events) NotifyMemberInvited(ctx context.Context, m MemberInfo) {
	e.fanOut(ctx, m.TenantID, NotifyInput{
		Type:     domain.TypeMemberInvited,
		Title:    fmt.Sprintf("%s was invited", m.Name),
		Message:  fmt.Sprintf("Invited as %s", m.Role),
		LinkType: domain.LinkSettings,
		LinkID:   m.ID,
		Data:     m.data(),
	})
}

// ----------------------
// Rooms
// ----------------------

func (e *Events) NotifyRoomCreated(ctx context.Context, r RoomInfo) {
	e.fanOut(ctx, r.TenantID, NotifyInput{
		Type:     domain.TypeRoomCreated,
		Title:    "Room added",
		Message:  r.Name,
		LinkType: domain.LinkRoom,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}

func (e *Events) NotifyRoomUpdated(ctx context.Context, r RoomInfo) {
	e.fanOut(ctx, r.TenantID, NotifyInput{
		Type:     domain.TypeRoomUpdated,
		Title:    "Room updated",
		Message:  r.Name,
		LinkType: domain.LinkRoom,
		LinkID:   r.ID,
		Data:     r.data(),
	})
}
