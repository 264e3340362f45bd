package core

import (
	"sort"
	"sync"

	"github.com/dkeye/linechat/internal/domain"
	"github.com/rs/zerolog/log"
)

// DefaultRoomCapacity is the number of buffered events per room.
const DefaultRoomCapacity = 1024

// roomImpl is a threadsafe in-memory room.
// The member set is for listing only; delivery goes through the broadcast
// channel's subscribers.
type roomImpl struct {
	room    *Room
	mu      sync.RWMutex
	members map[domain.DisplayName]struct{}
	events  *Broadcast[domain.RoomEvent]
}

func NewRoomService(room *Room, capacity int) RoomService {
	return &roomImpl{
		room:    room,
		members: make(map[domain.DisplayName]struct{}, 8),
		events:  NewBroadcast[domain.RoomEvent](capacity),
	}
}

func (r *roomImpl) Room() *Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) AddMember(name domain.DisplayName) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[name] = struct{}{}
	log.Info().Str("module", "core.room").Str("room", string(r.room.Name)).Str("name", string(name)).Msg("member added")
}

func (r *roomImpl) RemoveMember(name domain.DisplayName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[name]; !ok {
		return false
	}
	delete(r.members, name)
	log.Info().Str("module", "core.room").Str("room", string(r.room.Name)).Str("name", string(name)).Msg("member removed")
	return true
}

func (r *roomImpl) RenameMember(from, to domain.DisplayName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[from]; !ok {
		return false
	}
	delete(r.members, from)
	r.members[to] = struct{}{}
	return true
}

func (r *roomImpl) Publish(ev domain.RoomEvent) int {
	n := r.events.Send(ev)
	log.Debug().Str("module", "core.room").Str("room", string(r.room.Name)).Stringer("kind", ev.Kind).Int("sent_to", n).Msg("broadcast result")
	return n
}

func (r *roomImpl) Subscribe() *Subscription[domain.RoomEvent] {
	return r.events.Subscribe()
}

// MembersSnapshot returns member names in lexical order.
func (r *roomImpl) MembersSnapshot() []domain.DisplayName {
	r.mu.RLock()
	out := make([]domain.DisplayName, 0, len(r.members))
	for name := range r.members {
		out = append(out, name)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
