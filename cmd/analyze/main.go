package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/config"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest/oddsapi"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/ingest/torvik"
)

// analyze fetches the current odds board and the season projections once,
// runs the edge analysis, and prints the results to stdout. No database or
// Redis required.
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config file")
	year := flag.Int("year", 0, "Override projection season year")
	minEdge := flag.Float64("min-edge", 0, "Only print games with |edge| >= this many points")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall fetch timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *year > 0 {
		cfg.Projection.Year = *year
	}
	if cfg.OddsAPI.APIKey == "" {
		log.Fatal("THE_ODDS_API_KEY is required (env or config file)")
	}

	oddsClient := oddsapi.New(cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey, cfg.OddsAPI.Regions, cfg.OddsAPI.Markets)
	projectionIngester := torvik.NewIngester(torvik.New(cfg.Projection.BaseURL), cfg.Projection.Year)
	feeds := ingest.NewFeedSet(oddsClient, projectionIngester, cfg.OddsAPI.Sport)
	defer feeds.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	games, rows, err := feeds.Fetch(ctx)
	if err != nil {
		log.Fatalf("Fetch failed: %v", err)
	}
	log.Printf("✓ Fetched %d games and %d projection rows", len(games), len(rows))

	catalog, err := analysis.NewCatalog(rows, cfg.CatalogConfig())
	if err != nil {
		if !errors.Is(err, analysis.ErrCatalogEmpty) {
			log.Fatalf("Failed to build projection catalog: %v", err)
		}
		log.Println("⚠️  Projection catalog is empty, model side will use the default rating")
	}

	engine := analysis.NewEngine(catalog, cfg.Analysis.AliasTable)
	snapshot := engine.Analyze(games)

	printSnapshot(snapshot, *minEdge)
}

func printSnapshot(snapshot *analysis.Snapshot, minEdge float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCHUP\tPRICE\tMARKET\tMODEL\tEDGE\tNOTES")

	printed := 0
	for _, r := range snapshot.Results {
		if r.EdgePercent < minEdge && r.EdgePercent > -minEdge {
			continue
		}
		notes := ""
		if !r.HomeResolved || !r.AwayResolved {
			notes = "unresolved team"
		}
		fmt.Fprintf(w, "%s\t%+d\t%.1f%%\t%.1f%%\t%+.2f\t%s\n",
			r.Matchup, r.Price, r.MarketProb*100, r.ModelProb*100, r.EdgePercent, notes)
		printed++
	}
	w.Flush()

	fmt.Printf("\n%d games shown, %d quotes dropped, %d unresolved team names, catalog size %d\n",
		printed, snapshot.QuotesDropped, snapshot.Unresolved, snapshot.CatalogSize)
}
