package store

import "time"

// AnalysisRun is one persisted refresh cycle.
type AnalysisRun struct {
	RunID         int64     `json:"run_id" db:"run_id"`
	GeneratedAt   time.Time `json:"generated_at" db:"generated_at"`
	CatalogSize   int       `json:"catalog_size" db:"catalog_size"`
	QuotesDropped int       `json:"quotes_dropped" db:"quotes_dropped"`
	Unresolved    int       `json:"unresolved" db:"unresolved"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// EdgeResult is one persisted per-game result row.
type EdgeResult struct {
	ResultID     int64     `json:"result_id" db:"result_id"`
	RunID        int64     `json:"run_id" db:"run_id"`
	HomeTeam     string    `json:"home_team" db:"home_team"`
	AwayTeam     string    `json:"away_team" db:"away_team"`
	Price        int       `json:"price" db:"price"`
	MarketProb   float64   `json:"market_probability" db:"market_prob"`
	ModelProb    float64   `json:"model_probability" db:"model_prob"`
	EdgePercent  float64   `json:"edge_pct" db:"edge_pct"`
	HomeResolved bool      `json:"home_resolved" db:"home_resolved"`
	AwayResolved bool      `json:"away_resolved" db:"away_resolved"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
