package analysis

import "time"

// GameRecord is one game as delivered by the odds feed.
// Field layout mirrors the-odds-api v4 event shape; the engine only reads
// home_team, away_team and the first bookmaker/market/outcome.
type GameRecord struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's quoted markets for a game.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is one market (spreads, h2h, ...) quoted by a bookmaker.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single priced outcome. Price is a pointer so a missing
// price field is distinguishable from an actual zero.
type Outcome struct {
	Name  string   `json:"name"`
	Price *int     `json:"price"` // American odds
	Point *float64 `json:"point,omitempty"`
}

// Quote is the representative market price extracted from one GameRecord.
type Quote struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Price    int    `json:"price"` // American odds
}

// TeamRecord is the canonical form of one projection-catalog row.
type TeamRecord struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"` // strength rating in (0,1)
}

// MatchResult is the per-game output of the edge calculator.
// HomeResolved/AwayResolved distinguish "rating defaulted because the team
// never matched the catalog" from a genuinely even model verdict.
type MatchResult struct {
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	Matchup     string  `json:"matchup"` // "Away @ Home"
	Price       int     `json:"price"`
	MarketProb  float64 `json:"market_probability"`
	ModelProb   float64 `json:"model_probability"`
	EdgePercent float64 `json:"edge_pct"`

	HomeResolved bool `json:"home_resolved"`
	AwayResolved bool `json:"away_resolved"`
}

// Snapshot is the result of one full analysis run.
// QuotesDropped counts games skipped for missing or invalid prices;
// Unresolved counts team lookups that fell back to the default rating.
type Snapshot struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	Results       []MatchResult `json:"results"`
	QuotesDropped int           `json:"quotes_dropped"`
	Unresolved    int           `json:"unresolved"`
	CatalogSize   int           `json:"catalog_size"`
}
