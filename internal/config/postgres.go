package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// PostgresConfig holds configuration for the run ledger database
type PostgresConfig struct {
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	Database string `env:"POSTGRES_DB"`
	Host     string `env:"POSTGRES_HOSTNAME"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables.
// A nil environ reads the process environment.
func LoadPostgresConfig(environ map[string]string) (*PostgresConfig, error) {
	var config PostgresConfig
	if err := env.ParseWithOptions(&config, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse postgres configuration: %w", err)
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("POSTGRES_HOSTNAME is required")
	}

	return &config, nil
}

// LedgerEnabled reports whether the environment points at a ledger database.
// The suite runs without one.
func LedgerEnabled(environ map[string]string) bool {
	var probe struct {
		Host string `env:"POSTGRES_HOSTNAME"`
	}
	if err := env.ParseWithOptions(&probe, env.Options{Environment: environ}); err != nil {
		return false
	}
	return probe.Host != ""
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}
