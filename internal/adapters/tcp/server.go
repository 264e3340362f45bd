// Package tcp accepts raw TCP clients and hands each one to the line
// protocol controller.
package tcp

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dkeye/linechat/internal/adapters/line"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

type Limits struct {
	MaxLineLen     int
	MaxOutboundLen int
	WriteTimeout   time.Duration
}

// Server is a plain accept loop. Every accepted connection runs in its own
// goroutine until it finishes or ctx is cancelled.
type Server struct {
	ctl    *line.Controller
	limits Limits
}

func NewServer(ctl *line.Controller, limits Limits) *Server {
	return &Server{ctl: ctl, limits: limits}
}

// ListenAndServe binds addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve takes ownership of ln. It returns nil after a ctx shutdown, once all
// connection goroutines have exited.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Info().Str("module", "adapters.tcp").Str("addr", ln.Addr().String()).Msg("listening")

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	var wg conc.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info().Str("module", "adapters.tcp").Msg("listener closed")
				return nil
			}
			log.Warn().Str("module", "adapters.tcp").Err(err).Msg("accept failed")
			continue
		}
		wg.Go(func() { s.handle(ctx, conn) })
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	lc := line.NewTCPConn(conn, s.limits.MaxLineLen, s.limits.MaxOutboundLen, s.limits.WriteTimeout)
	if err := s.ctl.Serve(ctx, lc); err != nil {
		log.Error().Str("module", "adapters.tcp").Str("addr", lc.RemoteAddr()).Err(err).Msg("connection ended with error")
	}
}
