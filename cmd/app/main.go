package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tripavista/config"
	"github.com/Domenick1991/tripavista/internal/bootstrap"
	"github.com/Domenick1991/tripavista/internal/cache"
	"github.com/Domenick1991/tripavista/internal/kafka"
	"github.com/Domenick1991/tripavista/internal/refdata"
	"github.com/Domenick1991/tripavista/internal/service/auth"
	"github.com/Domenick1991/tripavista/internal/service/booking"
	"github.com/Domenick1991/tripavista/internal/service/contact"
	"github.com/Domenick1991/tripavista/internal/service/itinerary"
	"github.com/Domenick1991/tripavista/internal/service/search"
	"github.com/gin-gonic/gin"
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

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(log)
	if cfg.Log.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := refdata.Load()
	if err != nil {
		log.Error("load reference data", slog.Any("error", err))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(cfg.Redis)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable at startup", slog.Any("error", err))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()

	searchService := search.NewSearchService(store)
	bookingService := booking.NewBookingService(
		itinerary.NewGenerator(store, nil),
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(log),
		booking.WithProcessingDelay(cfg.Booking.ProcessingDelay()),
		booking.WithRecoveryDelay(cfg.Booking.RecoveryDelay()),
		booking.WithTicketTTL(cfg.Booking.TicketTTL()),
		booking.WithPaymentLockTTL(cfg.Booking.PaymentLockTTL()),
		booking.WithMissingContextHook(func(route string) {
			log.Warn("booking context missing", slog.String("route", route))
		}),
	)
	authService := auth.NewAuthService(
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL(),
		redisCache,
		auth.WithSignInDelay(cfg.Auth.SignInDelay()),
		auth.WithLogger(log),
	)
	contactService := contact.NewContactService(producer, cfg.Kafka.NotificationsTopic, log)

	err = bootstrap.Run(ctx, cfg, log, bootstrap.Services{
		Search:  searchService,
		Booking: bookingService,
		Auth:    authService,
		Contact: contactService,
		Checks: map[string]bootstrap.Checker{
			"redis": redisCache,
			"kafka": bootstrap.CheckerFunc(producer.CheckConnection),
		},
	})
	if err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
