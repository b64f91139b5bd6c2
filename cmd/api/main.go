package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/leasematch-platform/leasematch/internal/api"
	"github.com/leasematch-platform/leasematch/internal/chat"
	"github.com/leasematch-platform/leasematch/internal/config"
	"github.com/leasematch-platform/leasematch/internal/database"
	"github.com/leasematch-platform/leasematch/internal/engine"
	"github.com/leasematch-platform/leasematch/internal/events"
	"github.com/leasematch-platform/leasematch/internal/extract"
	"github.com/leasematch-platform/leasematch/internal/listings"
	"github.com/leasematch-platform/leasematch/internal/middleware"
	iredis "github.com/leasematch-platform/leasematch/internal/redis"
	"github.com/leasematch-platform/leasematch/internal/scoring"
	"github.com/leasematch-platform/leasematch/internal/server"
	"github.com/leasematch-platform/leasematch/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// PostgreSQL
	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DB.DSN(), "migrations"); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	// Redis
	redisClient, err := iredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("connecting to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// NATS is optional: without it turns still work, events are dropped.
	var eventsClient *events.Client
	var publisher *events.Publisher
	if cfg.NATS.Enabled {
		eventsClient, err = events.NewClient(ctx, cfg.NATS)
		if err != nil {
			slog.Error("connecting to nats", "error", err)
			os.Exit(1)
		}
		defer eventsClient.Close()
		publisher = events.NewPublisher(eventsClient.JetStream())
	}

	// Extraction
	llmClient := extract.NewOpenAIClient(extract.ClientConfig{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	})
	extractor := extract.NewExtractor(llmClient)

	// Listings
	listingRepo := listings.NewRepository(pool)
	listingSvc := listings.NewService(listingRepo)
	listingHandler := listings.NewHandler(listingSvc)

	// Conversation engine
	scorer := scoring.NewEngine(scoring.DefaultConfig())
	eng := engine.New(extractor, listingRepo, scorer, publisher)

	// Sessions + chat
	sessions := session.NewStore(redisClient, cfg.Session.TTL)
	chatHandler := chat.NewHandler(eng, sessions)

	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)

	// Router
	router := api.NewRouter(pool, eventsClient, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		ChatRateLimiter:    rateLimiter.Middleware,
	}, api.HandlerSet{
		Turn:          chatHandler.Turn,
		GetSession:    chatHandler.GetSession,
		DeleteSession: chatHandler.DeleteSession,

		CreateListing: listingHandler.Create,
		SearchListing: listingHandler.Search,
		GetListing:    listingHandler.Get,
		DeleteListing: listingHandler.Delete,
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
