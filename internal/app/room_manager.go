package app

import (
	"sort"

	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog/log"
)

// RoomManagerImpl keeps live rooms in a concurrent map. Every membership
// change runs inside Compute, under the lock of that room's bucket only, so
// create-on-first-join and delete-on-empty are atomic per room.
//
// A room is deleted when its member set becomes empty. Subscriber count is
// not consulted: the leaving connection may still hold its subscription.
type RoomManagerImpl struct {
	rooms    *xsync.MapOf[domain.RoomName, core.RoomService]
	capacity int
}

func NewRoomManager(capacity int) *RoomManagerImpl {
	if capacity <= 0 {
		capacity = core.DefaultRoomCapacity
	}
	return &RoomManagerImpl{
		rooms:    xsync.NewMapOf[domain.RoomName, core.RoomService](),
		capacity: capacity,
	}
}

func (m *RoomManagerImpl) Join(name domain.RoomName, user domain.DisplayName) *core.Subscription[domain.RoomEvent] {
	var sub *core.Subscription[domain.RoomEvent]
	m.rooms.Compute(name, func(room core.RoomService, loaded bool) (core.RoomService, bool) {
		if !loaded {
			room = core.NewRoomService(&core.Room{Name: name}, m.capacity)
			log.Info().Str("module", "app.rooms").Str("room", string(name)).Msg("room created")
		}
		room.AddMember(user)
		sub = room.Subscribe()
		return room, false
	})
	return sub
}

func (m *RoomManagerImpl) Leave(name domain.RoomName, user domain.DisplayName) {
	m.rooms.Compute(name, func(room core.RoomService, loaded bool) (core.RoomService, bool) {
		if !loaded {
			return room, true
		}
		room.RemoveMember(user)
		if room.MemberCount() > 0 {
			return room, false
		}
		log.Info().Str("module", "app.rooms").Str("room", string(name)).Msg("room destroyed")
		return room, true
	})
}

func (m *RoomManagerImpl) Change(prev, next domain.RoomName, user domain.DisplayName) *core.Subscription[domain.RoomEvent] {
	m.Leave(prev, user)
	return m.Join(next, user)
}

// Rename swaps a member's name in place; it reports false when the room or
// the member is gone.
func (m *RoomManagerImpl) Rename(name domain.RoomName, from, to domain.DisplayName) bool {
	room, ok := m.rooms.Load(name)
	if !ok {
		return false
	}
	return room.RenameMember(from, to)
}

// List is sorted by member count descending, then by name.
func (m *RoomManagerImpl) List() []core.RoomInfo {
	out := make([]core.RoomInfo, 0, m.rooms.Size())
	m.rooms.Range(func(name domain.RoomName, room core.RoomService) bool {
		out = append(out, core.RoomInfo{Name: name, MemberCount: room.MemberCount()})
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].MemberCount != out[j].MemberCount {
			return out[i].MemberCount > out[j].MemberCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (m *RoomManagerImpl) ListUsers(name domain.RoomName) ([]domain.DisplayName, bool) {
	room, ok := m.rooms.Load(name)
	if !ok {
		return nil, false
	}
	return room.MembersSnapshot(), true
}

var _ core.RoomManager = (*RoomManagerImpl)(nil)
