package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/shawon922/utube-channel-scrapper/internal/config"
	"github.com/shawon922/utube-channel-scrapper/internal/publisher"
	"github.com/shawon922/utube-channel-scrapper/internal/scheduler"
	"github.com/shawon922/utube-channel-scrapper/internal/service"
	"github.com/shawon922/utube-channel-scrapper/internal/storage/postgres"
	"github.com/shawon922/utube-channel-scrapper/internal/youtube"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if len(cfg.Ingest.ChannelIDs) == 0 {
		logger.Error("no channel ids configured")
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	channelStore := postgres.NewChannelStore(db)
	videoStore := postgres.NewVideoStore(db)
	tagStore := postgres.NewTagStore(db)
	txManager := postgres.NewTransactionManager(db)

	apiClient := youtube.NewClient(youtube.Config{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
		Timeout: cfg.YouTube.Timeout,
	}, logger)

	ingestService := service.NewIngestService(
		apiClient,
		channelStore,
		videoStore,
		tagStore,
		txManager,
		rabbitMQ,
		logger,
	)

	sched := scheduler.NewScheduler(
		ingestService,
		cfg.Ingest.ChannelIDs,
		cfg.Ingest.Interval,
		cfg.Ingest.RunTimeout,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting channel scraper",
		"channels", len(cfg.Ingest.ChannelIDs),
		"interval", cfg.Ingest.Interval,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
