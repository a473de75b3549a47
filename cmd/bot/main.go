package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/adapters/command"
	router "github.com/scrimkit/scrimbot/internal/adapters/http"
	"github.com/scrimkit/scrimbot/internal/adapters/memplat"
	"github.com/scrimkit/scrimbot/internal/app"
	"github.com/scrimkit/scrimbot/internal/app/orch"
	"github.com/scrimkit/scrimbot/internal/config"
	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	// The in-memory platform backs local runs; a gateway-connected
	// implementation of core.Platform replaces it in deployment.
	platform := memplat.New(domain.RoomName(cfg.Scrim.WaitingRoom))

	registry := app.NewRegistry()
	controller := &orch.Controller{
		Registry: registry,
		Rooms:    app.NewProvisioner(platform),
		Movers:   app.NewRelocator(platform),
		Platform: platform,
		Maps:     core.NewMapPool(cfg.Scrim.Games),
		Clock:    core.SystemClock{},
		NewID:    uuid.NewString,
		Settings: orch.Settings{
			TeamSize:       cfg.Scrim.TeamSize,
			AnnounceExtras: cfg.Scrim.AnnounceExtras,
			MatchTTL:       cfg.Scrim.MatchTTL,
			CategoryName:   domain.RoomName(cfg.Scrim.CategoryName),
			WaitingRoom:    domain.RoomName(cfg.Scrim.WaitingRoom),
		},
	}

	sweeper := &app.Sweeper{Interval: cfg.Scrim.SweepInterval, Target: controller}
	sweeper.Start(ctx)

	dispatcher := &command.Dispatcher{Ctrl: controller}
	r := router.SetupRouter(ctx, cfg, dispatcher, registry, platform)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("scrimbot started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
