package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds configuration for the stub storefront server
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	// SeedEmail and SeedPassword register a customer at startup so the
	// login scenarios have an account to sign in with.
	SeedEmail     string `env:"TEST_USER_EMAIL"`
	SeedPassword  string `env:"TEST_USER_PASSWORD"`
	SeedFirstName string `env:"TEST_FIRST_NAME" envDefault:"Jane"`
	SeedLastName  string `env:"TEST_LAST_NAME" envDefault:"Doe"`
}

// LoadServerConfig loads server configuration from environment variables.
// A nil environ reads the process environment.
func LoadServerConfig(environ map[string]string) (ServerConfig, error) {
	var config ServerConfig
	if err := env.ParseWithOptions(&config, env.Options{Environment: environ}); err != nil {
		return config, fmt.Errorf("failed to parse server configuration: %w", err)
	}

	port, err := strconv.Atoi(config.Port)
	if err != nil || port < 0 || port > 65535 {
		return config, fmt.Errorf("PORT must be a valid port number, got %q", config.Port)
	}

	return config, nil
}
