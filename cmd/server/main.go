package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/linechat/internal/adapters/http"
	"github.com/dkeye/linechat/internal/adapters/line"
	"github.com/dkeye/linechat/internal/adapters/tcp"
	"github.com/dkeye/linechat/internal/app"
	"github.com/dkeye/linechat/internal/app/names"
	"github.com/dkeye/linechat/internal/app/orch"
	"github.com/dkeye/linechat/internal/config"
	"github.com/dkeye/linechat/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	o, err := buildOrchestrator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	ctl := line.NewController(o, line.Options{MaxLineLen: cfg.MaxLineLen, DrainBatch: cfg.DrainBatch})

	g, gctx := errgroup.WithContext(ctx)

	if cfg.TCPAddr != "" {
		srv := tcp.NewServer(ctl, tcp.Limits{
			MaxLineLen:     cfg.MaxLineLen,
			MaxOutboundLen: cfg.MaxOutboundLen,
			WriteTimeout:   cfg.WriteTimeout,
		})
		g.Go(func() error { return srv.ListenAndServe(gctx, cfg.TCPAddr) })
	}

	if cfg.HTTPAddr != "" {
		srv := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router.SetupRouter(gctx, cfg, o.Rooms, ctl),
		}
		g.Go(func() error {
			log.Info().Str("addr", cfg.HTTPAddr).Msg("http server started")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("http server forced to shutdown")
			}
			return nil
		})
	}

	log.Info().Str("tcp", cfg.TCPAddr).Str("http", cfg.HTTPAddr).Msg("chat server started")
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}

func buildOrchestrator(cfg *config.Config) (*orch.Orchestrator, error) {
	room, err := domain.NewRoomName(cfg.DefaultRoom)
	if err != nil {
		return nil, err
	}
	policy, err := app.PolicyByName(cfg.LagPolicy)
	if err != nil {
		return nil, err
	}
	mode, err := app.ParseRenameMode(cfg.RenameMode)
	if err != nil {
		return nil, err
	}
	return &orch.Orchestrator{
		Names:       app.NewRegistry(cfg.MaxNameAttempts),
		Rooms:       app.NewRoomManager(cfg.RoomCapacity),
		Generator:   names.NewDefaultGenerator(),
		Policy:      policy,
		RenameMode:  mode,
		DefaultRoom: room,
	}, nil
}
