package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/cache"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/publisher"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store/repository"
)

// Broadcaster pushes a finished snapshot to connected clients.
type Broadcaster interface {
	BroadcastSnapshot(snapshot *analysis.Snapshot)
}

// Config holds refresh scheduling and engine policy.
type Config struct {
	Interval      time.Duration // Default: 5m
	MaxRetries    int           // Default: 3
	RetryDelay    time.Duration // Default: 5s
	AlertEdgePct  float64       // |edge| threshold for stream alerts
	SnapshotTTL   time.Duration // cache TTL for the latest snapshot
	EnablePolling bool          // Default: true

	AliasTable map[string]string
	Catalog    analysis.CatalogConfig
}

// DefaultConfig returns default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		Interval:      5 * time.Minute,
		MaxRetries:    3,
		RetryDelay:    5 * time.Second,
		AlertEdgePct:  5.0,
		SnapshotTTL:   15 * time.Minute,
		EnablePolling: true,
		Catalog:       analysis.DefaultCatalogConfig(),
	}
}

// Orchestrator runs the periodic refresh cycle: fetch both feeds, rebuild
// the catalog, run the engine, then persist, cache, publish and broadcast
// the snapshot. A cycle fails atomically; the previous snapshot stays
// current until a full cycle succeeds.
type Orchestrator struct {
	feeds       *ingest.FeedSet
	repo        *repository.ResultRepository
	cache       *cache.RedisCache
	publisher   *publisher.RedisPublisher
	broadcaster Broadcaster
	config      *Config
	cancel      context.CancelFunc

	mu     sync.RWMutex
	latest *analysis.Snapshot
}

// NewOrchestrator creates a refresh orchestrator. repo, cache, publisher
// and broadcaster are each optional; a nil collaborator is skipped.
func NewOrchestrator(feeds *ingest.FeedSet, repo *repository.ResultRepository, redisCache *cache.RedisCache, redisPublisher *publisher.RedisPublisher, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		feeds:     feeds,
		repo:      repo,
		cache:     redisCache,
		publisher: redisPublisher,
		config:    config,
	}
}

// SetBroadcaster attaches a snapshot broadcaster (wired from main after the
// WebSocket server exists).
func (o *Orchestrator) SetBroadcaster(b Broadcaster) {
	o.broadcaster = b
}

// Latest returns the most recently completed snapshot, or nil before the
// first successful cycle.
func (o *Orchestrator) Latest() *analysis.Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.latest
}

// Start begins the refresh loop and blocks until the context is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("→ Refresh scheduler started (interval: %v, alert threshold: %.1f%%)",
		o.config.Interval, o.config.AlertEdgePct)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if !o.config.EnablePolling {
		log.Println("  Polling disabled; waiting for manual refresh triggers only")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(o.config.Interval)
	defer ticker.Stop()

	consecutiveErrors := 0
	maxConsecutiveErrors := 5

	// Run immediately on start
	o.refreshWithRetry(ctx, &consecutiveErrors, maxConsecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Refresh scheduler stopped")
			return
		case <-ticker.C:
			o.refreshWithRetry(ctx, &consecutiveErrors, maxConsecutiveErrors)
		}
	}
}

// Stop cancels the refresh loop and releases feed resources.
func (o *Orchestrator) Stop() {
	log.Println("Stopping refresh scheduler...")
	if o.cancel != nil {
		o.cancel()
	}
	if o.feeds != nil {
		o.feeds.Close()
	}
	log.Println("✓ Refresh scheduler stopped")
}

// TriggerRefresh runs one refresh cycle immediately (manual trigger from
// the REST API).
func (o *Orchestrator) TriggerRefresh(ctx context.Context) (*analysis.Snapshot, error) {
	log.Println("Manual refresh triggered")
	return o.runCycle(ctx)
}

// refreshWithRetry runs a cycle with retry and consecutive-error damping.
func (o *Orchestrator) refreshWithRetry(ctx context.Context, consecutiveErrors *int, maxConsecutiveErrors int) {
	var err error

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		_, err = o.runCycle(ctx)
		if err == nil {
			*consecutiveErrors = 0
			return
		}

		log.Printf("  ⚠️  Refresh attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			log.Printf("  Retrying in %v...", o.config.RetryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	*consecutiveErrors++
	log.Printf("  ❌ All %d retry attempts failed. Consecutive errors: %d/%d",
		o.config.MaxRetries, *consecutiveErrors, maxConsecutiveErrors)

	if *consecutiveErrors >= maxConsecutiveErrors {
		log.Printf("  ⚠️  High error rate detected. Backing off before next cycle...")
		select {
		case <-ctx.Done():
		case <-time.After(20 * time.Second):
		}
	}
}

// runCycle performs one full refresh cycle.
func (o *Orchestrator) runCycle(ctx context.Context) (*analysis.Snapshot, error) {
	startTime := time.Now()

	games, rows, err := o.feeds.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching cycle inputs: %w", err)
	}

	catalog, err := analysis.NewCatalog(rows, o.config.Catalog)
	if err != nil {
		if !errors.Is(err, analysis.ErrCatalogEmpty) {
			return nil, fmt.Errorf("building catalog: %w", err)
		}
		// Market-only mode: every rating degrades to the default.
		log.Printf("  ⚠️  %v, publishing market-only results", err)
	}

	engine := analysis.NewEngine(catalog, o.config.AliasTable)
	snapshot := engine.Analyze(games)

	o.mu.Lock()
	o.latest = snapshot
	o.mu.Unlock()

	o.distribute(ctx, snapshot)

	log.Printf("  ✓ Cycle complete in %v: %d results, %d dropped, %d unresolved",
		time.Since(startTime).Round(time.Millisecond),
		len(snapshot.Results), snapshot.QuotesDropped, snapshot.Unresolved)

	return snapshot, nil
}

// distribute fans a finished snapshot out to the optional collaborators.
// Distribution failures are logged, not fatal: the snapshot is already
// current in memory.
func (o *Orchestrator) distribute(ctx context.Context, snapshot *analysis.Snapshot) {
	if o.repo != nil {
		if runID, err := o.repo.SaveSnapshot(ctx, snapshot); err != nil {
			log.Printf("  ⚠️  Failed to persist run: %v", err)
		} else {
			log.Printf("  ✓ Persisted run %d", runID)
		}
	}

	if o.cache != nil {
		if err := o.cache.SetSnapshot(ctx, snapshot, o.config.SnapshotTTL); err != nil {
			log.Printf("  ⚠️  Failed to cache snapshot: %v", err)
		}
	}

	if o.publisher != nil {
		if err := o.publisher.PublishSnapshot(ctx, snapshot); err != nil {
			log.Printf("  ⚠️  Failed to publish snapshot: %v", err)
		}

		alerts := 0
		for _, result := range snapshot.Results {
			if math.Abs(result.EdgePercent) < o.config.AlertEdgePct {
				continue
			}
			if err := o.publisher.PublishEdgeAlert(ctx, result); err != nil {
				log.Printf("  ⚠️  Failed to publish alert for %s: %v", result.Matchup, err)
				continue
			}
			alerts++
		}
		if alerts > 0 {
			log.Printf("  ✓ Published %d edge alerts", alerts)
		}
	}

	if o.broadcaster != nil {
		o.broadcaster.BroadcastSnapshot(snapshot)
	}
}

// GetStatus returns current scheduler status.
func (o *Orchestrator) GetStatus() map[string]interface{} {
	o.mu.RLock()
	var lastRun interface{}
	if o.latest != nil {
		lastRun = o.latest.GeneratedAt
	}
	o.mu.RUnlock()

	return map[string]interface{}{
		"polling_enabled": o.config.EnablePolling,
		"interval":        o.config.Interval.String(),
		"alert_edge_pct":  o.config.AlertEdgePct,
		"last_run":        lastRun,
	}
}
