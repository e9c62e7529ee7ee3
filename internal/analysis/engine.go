package analysis

import (
	"fmt"
	"log"
	"time"
)

// Engine runs one full edge analysis: resolve both sides of every quote
// against the projection catalog, combine ratings through the Log5 model,
// convert the market price to an implied probability, and report the
// difference as a percentage edge.
type Engine struct {
	resolver      *Resolver
	defaultRating float64
}

// NewEngine creates an engine over one catalog and alias table. The catalog
// is immutable for the engine's lifetime; build a fresh engine per refresh.
func NewEngine(catalog *Catalog, aliases map[string]string) *Engine {
	return &Engine{
		resolver:      NewResolver(catalog, aliases),
		defaultRating: catalog.config.DefaultRating,
	}
}

// Analyze produces one MatchResult per retained quote, in input order.
//
// Per-game failures never abort the run: games without bookmakers are
// skipped, games with invalid or missing prices are dropped and counted,
// and an unresolved team degrades to the default rating with its Resolved
// flag cleared so operators can tell a bad match from an even model verdict.
func (e *Engine) Analyze(games []GameRecord) *Snapshot {
	snapshot := &Snapshot{
		GeneratedAt: time.Now().UTC(),
		CatalogSize: e.resolver.catalog.Len(),
	}

	for _, game := range games {
		quote, ok, err := NormalizeQuote(game)
		if err != nil {
			log.Printf("[analysis] ⚠️  dropping quote: %v", err)
			snapshot.QuotesDropped++
			continue
		}
		if !ok {
			continue // no bookmakers quoted this game
		}

		marketProb, err := ImpliedProbability(quote.Price)
		if err != nil {
			log.Printf("[analysis] ⚠️  dropping quote %s @ %s: %v", quote.AwayTeam, quote.HomeTeam, err)
			snapshot.QuotesDropped++
			continue
		}

		homeRating, homeResolved := e.resolveRating(quote.HomeTeam)
		awayRating, awayResolved := e.resolveRating(quote.AwayTeam)
		if !homeResolved {
			snapshot.Unresolved++
		}
		if !awayResolved {
			snapshot.Unresolved++
		}

		modelProb := WinProbability(homeRating, awayRating)

		snapshot.Results = append(snapshot.Results, MatchResult{
			HomeTeam:     quote.HomeTeam,
			AwayTeam:     quote.AwayTeam,
			Matchup:      fmt.Sprintf("%s @ %s", quote.AwayTeam, quote.HomeTeam),
			Price:        quote.Price,
			MarketProb:   marketProb,
			ModelProb:    modelProb,
			EdgePercent:  (modelProb - marketProb) * 100,
			HomeResolved: homeResolved,
			AwayResolved: awayResolved,
		})
	}

	return snapshot
}

// resolveRating resolves one team's strength rating, degrading to the
// default on a failed lookup rather than guessing.
func (e *Engine) resolveRating(name string) (float64, bool) {
	rec, err := e.resolver.Resolve(name)
	if err != nil {
		return e.defaultRating, false
	}
	return rec.Rating, true
}
