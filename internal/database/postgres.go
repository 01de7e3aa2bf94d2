package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lumaqa/lumacheck/internal/config"
	_ "github.com/lib/pq"
)

// Open establishes a connection to the run ledger database
func Open(ctx context.Context, cfg *config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ledger writes come from one suite process
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
