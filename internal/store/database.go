package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database holds the PostgreSQL connection for run-history persistence.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens and verifies a database connection.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migration pairs a version name with its DDL. Statements are embedded
// rather than read from disk so the binary carries its own schema.
type migration struct {
	version string
	ddl     string
}

var migrations = []migration{
	{
		version: "001_create_analysis_runs",
		ddl: `
			CREATE TABLE IF NOT EXISTS analysis_runs (
				run_id         BIGSERIAL PRIMARY KEY,
				generated_at   TIMESTAMPTZ NOT NULL,
				catalog_size   INT NOT NULL,
				quotes_dropped INT NOT NULL DEFAULT 0,
				unresolved     INT NOT NULL DEFAULT 0,
				created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: "002_create_edge_results",
		ddl: `
			CREATE TABLE IF NOT EXISTS edge_results (
				result_id     BIGSERIAL PRIMARY KEY,
				run_id        BIGINT NOT NULL REFERENCES analysis_runs(run_id) ON DELETE CASCADE,
				home_team     TEXT NOT NULL,
				away_team     TEXT NOT NULL,
				price         INT NOT NULL,
				market_prob   DOUBLE PRECISION NOT NULL,
				model_prob    DOUBLE PRECISION NOT NULL,
				edge_pct      DOUBLE PRECISION NOT NULL,
				home_resolved BOOLEAN NOT NULL,
				away_resolved BOOLEAN NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: "003_index_edge_results",
		ddl: `
			CREATE INDEX IF NOT EXISTS idx_edge_results_run ON edge_results(run_id);
			CREATE INDEX IF NOT EXISTS idx_edge_results_teams ON edge_results(home_team, away_team);
			CREATE INDEX IF NOT EXISTS idx_edge_results_edge ON edge_results(edge_pct DESC)
		`,
	},
}

// RunMigrations applies any unapplied migrations in order.
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")
	return nil
}

func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

func (db *Database) runMigration(m migration) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", m.version)
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.ddl); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", m.version)
	return nil
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
