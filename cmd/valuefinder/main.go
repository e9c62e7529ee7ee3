package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/api/rest"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/api/websocket"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/cache"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/config"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest/oddsapi"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest/torvik"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/publisher"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/scheduler"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store/repository"
)

const (
	serviceName    = "valuefinder"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - CBB Value Finder", serviceName, serviceVersion)

	// Load configuration (YAML file + environment overrides)
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.OddsAPI.APIKey == "" {
		log.Fatal("THE_ODDS_API_KEY is required (env or config file)")
	}

	// Initialize database connection (optional; history endpoints need it)
	var db *store.Database
	var resultRepo *repository.ResultRepository
	db, err = store.NewDatabase(cfg.Postgres.DSN)
	if err != nil {
		log.Printf("⚠️  Database unavailable: %v (running without persistence)", err)
		db = nil
	} else {
		defer db.Close()
		log.Println("✓ Connected to database")

		if err := db.RunMigrations(); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Println("✓ Database migrations applied")

		resultRepo = repository.NewResultRepository(db)
	}

	// Initialize Redis with retry logic (optional; cache + alert streams)
	var redisCache *cache.RedisCache
	var redisPublisher *publisher.RedisPublisher
	maxRetries := 5
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if redisCache != nil {
		defer redisCache.Close()
		redisPublisher = publisher.NewRedisPublisherFromClient(redisCache.Client())
		log.Println("✓ Connected to Redis")
	} else {
		log.Printf("⚠️  Redis unavailable: %v (running without cache and alert streams)", err)
	}

	// Initialize feed clients
	oddsClient := oddsapi.New(cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey, cfg.OddsAPI.Regions, cfg.OddsAPI.Markets)
	projectionIngester := torvik.NewIngester(torvik.New(cfg.Projection.BaseURL), cfg.Projection.Year)
	feeds := ingest.NewFeedSet(oddsClient, projectionIngester, cfg.OddsAPI.Sport)
	defer feeds.Close()

	// Initialize scheduler
	schedulerConfig := &scheduler.Config{
		Interval:      cfg.Refresh.Interval.Std(),
		MaxRetries:    cfg.Refresh.MaxRetries,
		RetryDelay:    cfg.Refresh.RetryDelay.Std(),
		AlertEdgePct:  cfg.Refresh.AlertEdgePct,
		SnapshotTTL:   cfg.Refresh.SnapshotTTL.Std(),
		EnablePolling: cfg.Refresh.EnablePolling,
		AliasTable:    cfg.Analysis.AliasTable,
		Catalog:       cfg.CatalogConfig(),
	}

	sched := scheduler.NewOrchestrator(feeds, resultRepo, redisCache, redisPublisher, schedulerConfig)

	// Initialize WebSocket server and wire it as the snapshot broadcaster
	wsServer := websocket.NewServer()
	sched.SetBroadcaster(wsServer)

	// Start scheduler in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)
	log.Println("✓ Scheduler started")

	// Initialize REST API server
	restServer := rest.NewServer(cfg.Server.RESTPort, db, sched, sched)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.Server.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()
	log.Printf("✓ REST API server listening on :%s", cfg.Server.RESTPort)

	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.Server.WSPort)
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("✓ WebSocket server listening on :%s", cfg.Server.WSPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
