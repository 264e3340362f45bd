package app

import (
	"fmt"

	"github.com/dkeye/linechat/internal/domain"
)

type LagAction int

const (
	// Resume continues from the oldest retained event.
	Resume LagAction = iota
	// KickMember ends the lagging connection.
	KickMember
)

// Policy decides what happens to a subscriber that fell behind its room.
type Policy interface {
	OnLag(room domain.RoomName, member domain.DisplayName, skipped uint64) LagAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnLag(domain.RoomName, domain.DisplayName, uint64) LagAction {
	return Resume
}

type KickPolicy struct{}

func (KickPolicy) OnLag(domain.RoomName, domain.DisplayName, uint64) LagAction {
	return KickMember
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "resume":
		return SimplePolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown lag policy %q", name)
}

// RenameMode selects how /name behaves.
type RenameMode string

const (
	// RenamePropagate releases the old name and renames the room member.
	RenamePropagate RenameMode = "propagate"
	// RenameClaimOnly only claims the new name and keeps the old one, as
	// older servers did. Extra claims are released on disconnect.
	RenameClaimOnly RenameMode = "claim-only"
)

func ParseRenameMode(s string) (RenameMode, error) {
	switch RenameMode(s) {
	case "", RenamePropagate:
		return RenamePropagate, nil
	case RenameClaimOnly:
		return RenameClaimOnly, nil
	}
	return "", fmt.Errorf("unknown rename mode %q", s)
}
