package line

import (
	"fmt"
	"strings"

	"github.com/dkeye/linechat/internal/app/orch"
	"github.com/dkeye/linechat/internal/domain"
)

// dispatch handles one inbound line. Commands match by prefix, like the
// clients have always typed them.
func (ctl *Controller) dispatch(s *session, line string) (bool, error) {
	switch {
	case line == "":
		return false, nil
	case strings.HasPrefix(line, "/help"):
		return s.replyLines(HelpText)
	case strings.HasPrefix(line, "/name"):
		return ctl.handleName(s, argument(line))
	case strings.HasPrefix(line, "/join"):
		return ctl.handleJoin(s, argument(line))
	case strings.HasPrefix(line, "/rooms"):
		return s.reply(formatRooms(ctl.Orch.Rooms.List()))
	case strings.HasPrefix(line, "/users"):
		users, ok := ctl.Orch.Rooms.ListUsers(s.room)
		if !ok {
			return true, fmt.Errorf("%w: %s", ErrRoomVanished, s.room)
		}
		return s.reply(formatUsers(users))
	case strings.HasPrefix(line, "/quit"):
		s.log.Info().Msg("client quit")
		return true, nil
	case strings.HasPrefix(line, "/"):
		return s.reply(fmt.Sprintf("Unrecognized command %s, try /help", strings.Fields(line)[0]))
	default:
		s.sub.Send(domain.Chat(string(s.sid), s.name, line))
		return false, nil
	}
}

func argument(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func (ctl *Controller) handleName(s *session, arg string) (bool, error) {
	to, err := domain.NewDisplayName(arg)
	if err != nil {
		return s.reply(msgNameFormat)
	}
	switch ctl.Orch.Rename(s.sid, s.room, s.name, to, s.sub) {
	case orch.Renamed:
		s.name = to
		s.log = s.log.With().Str("name", string(to)).Logger()
		return s.reply(msgYouAre(to))
	case orch.ClaimedOnly:
		s.claimed = append(s.claimed, to)
		return false, nil
	case orch.SameName:
		return s.reply("You are already " + string(to))
	default:
		return s.reply(fmt.Sprintf("Name %s is already taken", to))
	}
}

func (ctl *Controller) handleJoin(s *session, arg string) (bool, error) {
	to, err := domain.NewRoomName(arg)
	if err != nil {
		return s.reply(msgRoomFormat)
	}
	if to == s.room {
		return s.reply(fmt.Sprintf("You are in %s", s.room))
	}
	s.sub = ctl.Orch.Move(s.sid, s.name, s.room, to, s.sub)
	s.room = to
	return false, nil
}
