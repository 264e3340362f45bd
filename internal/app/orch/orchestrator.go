package orch

import (
	"github.com/dkeye/linechat/internal/app"
	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/rs/zerolog/log"
)

type RenameOutcome int

const (
	Renamed RenameOutcome = iota
	// ClaimedOnly: the new name is held, the session keeps its old one.
	ClaimedOnly
	NameTaken
	SameName
)

// Orchestrator wires names and rooms for the connection handlers.
type Orchestrator struct {
	Names       core.NameClaimer
	Rooms       core.RoomManager
	Generator   core.NameSource
	Policy      app.Policy
	RenameMode  app.RenameMode
	DefaultRoom domain.RoomName
}

// Connect assigns a fresh unique display name to sid.
func (o *Orchestrator) Connect(sid core.SessionID) (domain.DisplayName, error) {
	return o.Names.GetUnique(o.Generator, sid)
}

// Enter joins the default room and announces the newcomer there.
func (o *Orchestrator) Enter(sid core.SessionID, name domain.DisplayName) (domain.RoomName, *core.Subscription[domain.RoomEvent]) {
	room := o.DefaultRoom
	sub := o.Rooms.Join(room, name)
	sub.Send(domain.Joined(name))
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("name", string(name)).Str("room", string(room)).Msg("entered")
	return room, sub
}

// Move announces the departure from `from`, switches rooms and announces the
// arrival in `to`. The old subscription is closed.
func (o *Orchestrator) Move(
	sid core.SessionID,
	name domain.DisplayName,
	from, to domain.RoomName,
	sub *core.Subscription[domain.RoomEvent],
) *core.Subscription[domain.RoomEvent] {
	sub.Send(domain.Left(name))
	next := o.Rooms.Change(from, to, name)
	sub.Close()
	next.Send(domain.Joined(name))
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("name", string(name)).Str("from_room", string(from)).Str("room", string(to)).Msg("moved")
	return next
}

// Rename claims `to` for sid. In propagate mode the old name is released and
// the room member set follows; the room is told through sub.
func (o *Orchestrator) Rename(
	sid core.SessionID,
	room domain.RoomName,
	from, to domain.DisplayName,
	sub *core.Subscription[domain.RoomEvent],
) RenameOutcome {
	if from == to {
		return SameName
	}
	if !o.Names.Insert(to, sid) {
		return NameTaken
	}
	if o.RenameMode == app.RenameClaimOnly {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("name", string(from)).Str("claimed", string(to)).Msg("name claimed")
		return ClaimedOnly
	}
	if !o.Rooms.Rename(room, from, to) {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Str("name", string(from)).Msg("rename: member not in room")
	}
	o.Names.Remove(from)
	sub.Send(domain.Renamed(from, to))
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from", string(from)).Str("to", string(to)).Msg("renamed")
	return Renamed
}

// OnLag asks the policy what to do with a lagging subscriber.
func (o *Orchestrator) OnLag(room domain.RoomName, name domain.DisplayName, skipped uint64) app.LagAction {
	if o.Policy == nil {
		return app.Resume
	}
	return o.Policy.OnLag(room, name, skipped)
}

// Disconnect tells the room, leaves it and releases every name sid holds.
func (o *Orchestrator) Disconnect(
	sid core.SessionID,
	name domain.DisplayName,
	room domain.RoomName,
	sub *core.Subscription[domain.RoomEvent],
	extra []domain.DisplayName,
) {
	if sub != nil {
		sub.Send(domain.Left(name))
		o.Rooms.Leave(room, name)
		sub.Close()
	}
	o.Names.Remove(name)
	for _, n := range extra {
		o.Names.Remove(n)
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("name", string(name)).Str("room", string(room)).Msg("disconnected")
}
