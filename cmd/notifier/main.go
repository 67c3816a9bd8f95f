package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uptime-monitor/config"
	"uptime-monitor/internals/app"
	"uptime-monitor/pkg/logger"
)

// notifier consumes alert events published by the api (alert.driver
// rabbitmq) and delivers them as SMS.
func main() {
	cfgPath := "env.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ServiceName += "-notifier"

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Init(cfg)

	notifier, err := app.NewNotifier(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize notifier")
	}
	notifier.Start(ctx)
	log.Info().Str("queue", cfg.RabbitMQ.QueueName).Msg("notifier consuming")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := notifier.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("notifier shutdown failed")
	}
	log.Info().Msg("graceful shutdown complete")
}
