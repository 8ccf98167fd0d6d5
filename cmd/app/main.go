package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtify/courtify/api"
	"github.com/courtify/courtify/config"
	"github.com/courtify/courtify/internal/bootstrap"
	"github.com/courtify/courtify/internal/cache"
	"github.com/courtify/courtify/internal/kafka"
	"github.com/courtify/courtify/internal/ledger"
	"github.com/courtify/courtify/internal/service/availability"
	"github.com/courtify/courtify/internal/service/booking"
	"github.com/courtify/courtify/internal/simplybook"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Provider.Mock() {
		logger.Warn("SIMPLYBOOK_COMPANY_LOGIN or SIMPLYBOOK_API_KEY not set, running in mock mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := simplybook.NewClient(cfg.Provider)
	store := ledger.NewFileStore(cfg.Ledger.Path)

	availabilityOpts := []availability.Option{availability.WithMaxFetches(cfg.Availability.MaxFetches)}
	if cfg.Redis.Addr != "" {
		catalogCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Availability.CatalogCacheTTL)*time.Second)
		availabilityOpts = append(availabilityOpts, availability.WithCache(catalogCache))
	}
	availabilityService := availability.New(client, logger, cfg.Provider.Mock(), availabilityOpts...)

	var bookingOpts []booking.Option
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithProducer(producer, cfg.Kafka.BookingTopic))
	}
	bookingService := booking.New(store, logger, bookingOpts...)

	logger.Info("starting courtify", zap.String("address", cfg.HTTP.Address), zap.Bool("mock", cfg.Provider.Mock()))

	err = bootstrap.Run(ctx, cfg, logger,
		api.NewSystemHandler(client),
		api.NewAvailabilityHandler(availabilityService),
		api.NewBookingHandler(bookingService),
	)
	if err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
