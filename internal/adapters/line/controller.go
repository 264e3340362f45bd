package line

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dkeye/linechat/internal/app"
	"github.com/dkeye/linechat/internal/app/orch"
	"github.com/dkeye/linechat/internal/core"
	"github.com/dkeye/linechat/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultDrainBatch = 64

type Options struct {
	MaxLineLen int
	// DrainBatch caps room events forwarded before input is looked at again.
	DrainBatch int
}

// Controller runs one protocol session per connection.
type Controller struct {
	Orch *orch.Orchestrator
	opts Options
}

func NewController(o *orch.Orchestrator, opts Options) *Controller {
	if opts.MaxLineLen <= 0 {
		opts.MaxLineLen = DefaultMaxLineLen
	}
	if opts.DrainBatch <= 0 {
		opts.DrainBatch = defaultDrainBatch
	}
	return &Controller{Orch: o, opts: opts}
}

// session is the per-connection state. It is touched by the Serve
// goroutine only.
type session struct {
	sid        core.SessionID
	name       domain.DisplayName
	room       domain.RoomName
	sub        *core.Subscription[domain.RoomEvent]
	discarding bool
	// claimed holds names taken by /name in claim-only mode.
	claimed []domain.DisplayName
	conn    Conn
	log     zerolog.Logger
}

type readResult struct {
	line string
	err  error
}

// Serve owns conn until the client leaves, the transport fails or ctx is
// done. It returns an error only for unexpected I/O faults and broken
// invariants; ordinary hang-ups return nil.
func (ctl *Controller) Serve(ctx context.Context, conn Conn) error {
	defer conn.Close()

	sid := core.SessionID(uuid.NewString())
	logger := log.With().Str("module", "line").Str("sid", string(sid)).Str("addr", conn.RemoteAddr()).Logger()

	name, err := ctl.Orch.Connect(sid)
	if err != nil {
		logger.Warn().Err(err).Msg("rejecting connection")
		_ = conn.WriteLine(msgServerFull)
		return nil
	}
	s := &session{sid: sid, name: name, conn: conn, log: logger.With().Str("name", string(name)).Logger()}

	if exit, err := s.replyLines(HelpText + "\n" + msgYouAre(name)); exit {
		ctl.Orch.Names.Remove(name)
		return err
	}

	s.room, s.sub = ctl.Orch.Enter(sid, name)
	defer func() { ctl.Orch.Disconnect(s.sid, s.name, s.room, s.sub, s.claimed) }()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(conn, done)

	for {
		var exit bool
		select {
		case <-ctx.Done():
			s.log.Info().Msg("server shutting down")
			return nil
		case in, ok := <-lines:
			if !ok {
				in = readResult{err: io.EOF}
			}
			exit, err = ctl.handleInput(s, in)
		case <-s.sub.Ready():
			exit, err = ctl.forwardEvents(s)
		}
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// readLines pumps conn into a channel so the session can wait on it next to
// the room feed. It stops after any error but an oversized line.
func readLines(conn Conn, done <-chan struct{}) <-chan readResult {
	out := make(chan readResult)
	go func() {
		defer close(out)
		for {
			line, err := conn.ReadLine()
			select {
			case out <- readResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				return
			}
		}
	}()
	return out
}

func (ctl *Controller) handleInput(s *session, in readResult) (bool, error) {
	switch {
	case in.err == nil:
		s.discarding = false
		return ctl.dispatch(s, in.line)
	case errors.Is(in.err, ErrLineTooLong):
		s.discarding = true
		return s.reply(msgTooLong(ctl.opts.MaxLineLen))
	case errors.Is(in.err, io.EOF):
		if s.discarding {
			s.discarding = false
			return false, nil
		}
		s.log.Info().Msg("client closed connection")
		return true, nil
	case IsDisconnect(in.err):
		s.log.Info().Err(in.err).Msg("client dropped")
		return true, nil
	default:
		return true, fmt.Errorf("read line: %w", in.err)
	}
}

func (ctl *Controller) forwardEvents(s *session) (bool, error) {
	for i := 0; i < ctl.opts.DrainBatch; i++ {
		ev, err := s.sub.TryRecv()
		switch {
		case err == nil:
		case errors.Is(err, core.ErrEmpty):
			return false, nil
		case errors.Is(err, core.ErrLagged):
			var lagged *core.LaggedError
			errors.As(err, &lagged)
			s.log.Warn().Str("room", string(s.room)).Uint64("skipped", lagged.Skipped).Msg("room feed lagged")
			if ctl.Orch.OnLag(s.room, s.name, lagged.Skipped) == app.KickMember {
				return true, nil
			}
			continue
		default:
			return true, fmt.Errorf("room feed: %w", err)
		}
		// senders see their own chat through local echo
		if ev.Kind == domain.EventChat && ev.Origin == string(s.sid) {
			continue
		}
		if exit, err := s.reply(formatEvent(ev, s.room)); exit {
			return exit, err
		}
	}
	return false, nil
}

// reply writes one line. Hang-ups end the session quietly; any other write
// failure ends it with an error.
func (s *session) reply(text string) (bool, error) {
	err := s.conn.WriteLine(text)
	switch {
	case err == nil:
		return false, nil
	case IsDisconnect(err):
		s.log.Info().Err(err).Msg("client dropped during write")
		return true, nil
	default:
		return true, fmt.Errorf("write line: %w", err)
	}
}

func (s *session) replyLines(text string) (bool, error) {
	for _, l := range strings.Split(text, "\n") {
		if exit, err := s.reply(l); exit {
			return exit, err
		}
	}
	return false, nil
}
