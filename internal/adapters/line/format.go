package line

import (
	"fmt"
	"strings"

	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/samber/lo"
)

const HelpText = `Help:
  /help - prints this message
  /name {name} - change name
  /join {room} - joins room
  /rooms - lists rooms
  /users - lists users in current room
  /quit - quit server`

const (
	msgNameFormat = "Name must be 2 - 20 alphanumeric chars"
	msgRoomFormat = "Room must be 2 - 20 alphanumeric chars"
	msgServerFull = "Server is full, try again later"
)

func msgTooLong(max int) string { return fmt.Sprintf("Messages can only be %d chars long", max) }

func msgYouAre(name domain.DisplayName) string { return "You are " + string(name) }

func formatEvent(ev domain.RoomEvent, room domain.RoomName) string {
	switch ev.Kind {
	case domain.EventJoined:
		return fmt.Sprintf("%s joined %s", ev.Name, room)
	case domain.EventLeft:
		return fmt.Sprintf("%s left %s", ev.Name, room)
	case domain.EventRenamed:
		return fmt.Sprintf("%s is now known as %s", ev.Name, ev.NewName)
	default:
		return ev.Text
	}
}

// formatRooms renders "Rooms - name1 (count1), name2 (count2)".
func formatRooms(rooms []core.RoomInfo) string {
	parts := lo.Map(rooms, func(r core.RoomInfo, _ int) string {
		return fmt.Sprintf("%s (%d)", r.Name, r.MemberCount)
	})
	return "Rooms - " + strings.Join(parts, ", ")
}

// formatUsers renders "Users - name1, name2".
func formatUsers(users []domain.DisplayName) string {
	parts := lo.Map(users, func(u domain.DisplayName, _ int) string { return string(u) })
	return "Users - " + strings.Join(parts, ", ")
}
