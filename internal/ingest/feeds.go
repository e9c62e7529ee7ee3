package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest/oddsapi"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest/torvik"
)

// FeedSet fetches both inputs of one analysis cycle: the odds board and the
// projection rows. Either feed failing fails the whole cycle; partial inputs
// are never handed to the engine.
type FeedSet struct {
	odds       *oddsapi.Client
	projection *torvik.Ingester
	sportKey   string
}

// NewFeedSet creates the feed pair for one sport.
func NewFeedSet(odds *oddsapi.Client, projection *torvik.Ingester, sportKey string) *FeedSet {
	if sportKey == "" {
		sportKey = oddsapi.SportCollegeBasketball
	}
	return &FeedSet{
		odds:       odds,
		projection: projection,
		sportKey:   sportKey,
	}
}

// Close releases feed resources.
func (f *FeedSet) Close() {
	if f.projection != nil {
		f.projection.Close()
	}
}

// Fetch retrieves both feeds for one refresh cycle.
func (f *FeedSet) Fetch(ctx context.Context) ([]analysis.GameRecord, []analysis.RawRow, error) {
	games, err := f.odds.FetchOdds(ctx, f.sportKey)
	if err != nil {
		return nil, nil, fmt.Errorf("odds feed: %w", err)
	}

	rows, err := f.projection.FetchProjections(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("projection feed: %w", err)
	}

	log.Printf("[ingest] ✓ cycle inputs ready: %d games, %d projection rows", len(games), len(rows))
	return games, rows, nil
}
