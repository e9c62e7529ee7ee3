package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/store"
)

// ResultRepository handles analysis run and edge result persistence.
type ResultRepository struct {
	db *store.Database
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *store.Database) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveSnapshot persists one full analysis run and its results atomically.
func (r *ResultRepository) SaveSnapshot(ctx context.Context, snapshot *analysis.Snapshot) (int64, error) {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning run transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO analysis_runs (generated_at, catalog_size, quotes_dropped, unresolved)
		VALUES ($1, $2, $3, $4)
		RETURNING run_id
	`, snapshot.GeneratedAt, snapshot.CatalogSize, snapshot.QuotesDropped, snapshot.Unresolved).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("inserting analysis run: %w", err)
	}

	for _, result := range snapshot.Results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO edge_results
				(run_id, home_team, away_team, price, market_prob, model_prob, edge_pct, home_resolved, away_resolved)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, runID, result.HomeTeam, result.AwayTeam, result.Price,
			result.MarketProb, result.ModelProb, result.EdgePercent,
			result.HomeResolved, result.AwayResolved)
		if err != nil {
			return 0, fmt.Errorf("inserting edge result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}

	return runID, nil
}

// GetRecentRuns returns the most recent analysis runs, newest first.
func (r *ResultRepository) GetRecentRuns(ctx context.Context, limit int) ([]*store.AnalysisRun, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT run_id, generated_at, catalog_size, quotes_dropped, unresolved, created_at
		FROM analysis_runs
		ORDER BY generated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.AnalysisRun
	for rows.Next() {
		run := &store.AnalysisRun{}
		if err := rows.Scan(&run.RunID, &run.GeneratedAt, &run.CatalogSize,
			&run.QuotesDropped, &run.Unresolved, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRunByID returns one analysis run.
func (r *ResultRepository) GetRunByID(ctx context.Context, runID int64) (*store.AnalysisRun, error) {
	run := &store.AnalysisRun{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT run_id, generated_at, catalog_size, quotes_dropped, unresolved, created_at
		FROM analysis_runs
		WHERE run_id = $1
	`, runID).Scan(&run.RunID, &run.GeneratedAt, &run.CatalogSize,
		&run.QuotesDropped, &run.Unresolved, &run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("fetching run %d: %w", runID, err)
	}
	return run, nil
}

// GetResultsByRun returns all edge results for one run in insertion order.
func (r *ResultRepository) GetResultsByRun(ctx context.Context, runID int64) ([]*store.EdgeResult, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT result_id, run_id, home_team, away_team, price, market_prob,
			model_prob, edge_pct, home_resolved, away_resolved, created_at
		FROM edge_results
		WHERE run_id = $1
		ORDER BY result_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// GetTeamHistory returns past results involving a team, newest first.
func (r *ResultRepository) GetTeamHistory(ctx context.Context, team string, limit int) ([]*store.EdgeResult, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT result_id, run_id, home_team, away_team, price, market_prob,
			model_prob, edge_pct, home_resolved, away_resolved, created_at
		FROM edge_results
		WHERE home_team = $1 OR away_team = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, team, limit)
	if err != nil {
		return nil, fmt.Errorf("querying team history: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// PruneRunsBefore deletes runs older than the cutoff; edge results cascade.
func (r *ResultRepository) PruneRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM analysis_runs WHERE generated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return res.RowsAffected()
}

func scanResults(rows *sql.Rows) ([]*store.EdgeResult, error) {
	var results []*store.EdgeResult
	for rows.Next() {
		result := &store.EdgeResult{}
		if err := rows.Scan(&result.ResultID, &result.RunID, &result.HomeTeam,
			&result.AwayTeam, &result.Price, &result.MarketProb, &result.ModelProb,
			&result.EdgePercent, &result.HomeResolved, &result.AwayResolved,
			&result.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning edge result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
