package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uptime-monitor/config"
	"uptime-monitor/internals/app"
	"uptime-monitor/internals/server"
	"uptime-monitor/pkg/logger"
)

func main() {
	// Load envs
	cfgPath := "env.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Done is closed on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Base/global logger
	log := logger.Init(cfg)
	log.Info().Msg("logger initialized")

	// Inject Dependencies
	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	log.Info().Msg("dependencies initialized")

	// background loops, each runs its first cycle right away
	container.AlertSvc.Start(ctx)
	go container.Scheduler.Run()
	go container.Rotator.Run()
	log.Info().Msg("scheduler and rotation started")

	// Register Routes
	router := app.RegisterRoutes(container)
	log.Info().Msg("routes registered")

	srv := server.New(fmt.Sprintf(":%d", cfg.Port), router, log)
	srvErr := srv.Start()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-srvErr:
		log.Error().Err(err).Msg("server failed, shutting down")
		stop()
	}

	// 1. Stop HTTP server (stop accepting requests)
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// 2. Let dispatched probes and queued alerts finish, bounded
	drained := make(chan struct{})
	go func() {
		container.Scheduler.Wait()
		container.AlertSvc.Close()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(30 * time.Second):
		log.Warn().Msg("timed out waiting for probes and alerts")
	}

	// 3. Release infra
	if err := container.Shutdown(); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("graceful shutdown complete")
}
