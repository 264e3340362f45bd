package domain

import "fmt"

type EventKind int

const (
	EventJoined EventKind = iota
	EventLeft
	EventChat
	EventRenamed
)

func (k EventKind) String() string {
	switch k {
	case EventJoined:
		return "joined"
	case EventLeft:
		return "left"
	case EventChat:
		return "chat"
	case EventRenamed:
		return "renamed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// RoomEvent is what a room fans out to its subscribers.
// Values are copied per subscriber; Text is an immutable string so the
// payload itself is shared, never re-copied.
type RoomEvent struct {
	Kind EventKind
	// Name is the subject of Joined/Left and the previous name for Renamed.
	Name DisplayName
	// NewName is set for Renamed only.
	NewName DisplayName
	// Origin is the session that published a Chat event.
	Origin string
	// Text is the preformatted "<sender>: <message>" chat line.
	Text string
}

func Joined(name DisplayName) RoomEvent { return RoomEvent{Kind: EventJoined, Name: name} }

func Left(name DisplayName) RoomEvent { return RoomEvent{Kind: EventLeft, Name: name} }

func Renamed(from, to DisplayName) RoomEvent {
	return RoomEvent{Kind: EventRenamed, Name: from, NewName: to}
}

func Chat(origin string, sender DisplayName, message string) RoomEvent {
	return RoomEvent{Kind: EventChat, Origin: origin, Name: sender, Text: string(sender) + ": " + message}
}
