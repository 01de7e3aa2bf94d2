package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY,
	target VARCHAR(16) NOT NULL,
	base_url TEXT NOT NULL,
	status VARCHAR(16) NOT NULL,
	started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

CREATE TABLE IF NOT EXISTS route_hits (
	id BIGSERIAL PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	alias VARCHAR(255) NOT NULL,
	method VARCHAR(16) NOT NULL,
	url TEXT NOT NULL,
	status INTEGER NOT NULL,
	scenario VARCHAR(255) NOT NULL DEFAULT '',
	hit_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_route_hits_run ON route_hits(run_id);

CREATE TABLE IF NOT EXISTS scenario_results (
	run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name VARCHAR(255) NOT NULL,
	outcome VARCHAR(16) NOT NULL,
	duration_ms BIGINT NOT NULL,
	screenshot TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, name)
);
`

// Migrate creates the run ledger tables
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create ledger tables: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
