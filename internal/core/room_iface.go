package core

import (
	"github.com/dkeye/linechat/internal/domain"
)

// RoomService is the core-facing API of a room.
// It owns the membership set and the broadcast channel but never touches
// transport resources.
type RoomService interface {
	Room() *Room
	MemberCount() int
	MembersSnapshot() []domain.DisplayName

	AddMember(name domain.DisplayName)
	RemoveMember(name domain.DisplayName) bool
	RenameMember(from, to domain.DisplayName) bool

	Publish(ev domain.RoomEvent) int
	Subscribe() *Subscription[domain.RoomEvent]
}

// Room is the static part of a room.
type Room struct {
	Name domain.RoomName
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
}

// RoomManager maps room names to live rooms. Rooms are created on the first
// join and destroyed when the last member leaves.
type RoomManager interface {
	Join(room domain.RoomName, user domain.DisplayName) *Subscription[domain.RoomEvent]
	Leave(room domain.RoomName, user domain.DisplayName)
	Change(prev, next domain.RoomName, user domain.DisplayName) *Subscription[domain.RoomEvent]
	Rename(room domain.RoomName, from, to domain.DisplayName) bool
	List() []RoomInfo
	ListUsers(room domain.RoomName) ([]domain.DisplayName, bool)
}
