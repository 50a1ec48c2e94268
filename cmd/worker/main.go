package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripavista/config"
	"github.com/Domenick1991/tripavista/internal/email"
	"github.com/Domenick1991/tripavista/internal/kafka"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})).
		With(slog.String("component", "worker"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.Info("worker started", slog.String("topic", cfg.Kafka.NotificationsTopic))
	if err := consumer.ConsumeEvents(ctx, sender.Send); err != nil {
		log.Error("consumer stopped", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("worker stopped")
}
