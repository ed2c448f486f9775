package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"flightai/api"
	"flightai/config"
	"flightai/internal/assistant"
	"flightai/internal/bootstrap"
	"flightai/internal/cache"
	"flightai/internal/catalog"
	"flightai/internal/kafka"
	"flightai/internal/ledger"
	"flightai/internal/seats"
	"flightai/internal/service/booking"
	"flightai/internal/service/flights"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat := catalog.New()
	inventory := seats.New(cat.Destinations())

	led, cleanup, err := newLedger(ctx, cfg.Ledger)
	if err != nil {
		log.Fatal("create ledger", zap.Error(err))
	}
	defer cleanup()

	// A booking that cannot be persisted must not be accepted, so a broken
	// ledger is fatal at boot.
	if err := led.Initialize(ctx); err != nil {
		log.Fatal("initialize ledger", zap.Error(err))
	}

	var offersCache flights.Cache
	if cfg.Redis.Addr != "" {
		offersCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.OffersCacheTTL)*time.Second)
	}

	opts := []booking.Option{}
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	bookingService := booking.NewService(cat, inventory, led, log, opts...)
	flightService := flights.NewFlightService(cat, offersCache)

	var chatHandler *api.ChatHandler
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		chatHandler = api.NewChatHandler(assistant.New(apiKey, cfg.OpenAI.Model, bookingService, log))
	} else {
		log.Warn("OPENAI_API_KEY not set, chat endpoint disabled")
	}

	flightHandler := api.NewFlightHandler(flightService, bookingService)
	bookingHandler := api.NewBookingHandler(bookingService)

	if err := bootstrap.Run(ctx, cfg, log, flightHandler, bookingHandler, chatHandler); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLedger(ctx context.Context, cfg config.LedgerConfig) (ledger.Ledger, func(), error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		return ledger.NewPGLedger(pool), pool.Close, nil
	default:
		path := cfg.Path
		if path == "" {
			path = "bookings.csv"
		}
		return ledger.NewCSVLedger(path), func() {}, nil
	}
}
