package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storefront targets.
const (
	TargetLive = "live"
	TargetStub = "stub"
)

// DefaultBaseURL is the public Luma demo store the suite was written against.
const DefaultBaseURL = "https://magento.softwaretestingboard.com/"

// SessionCookie is the cookie Magento keys a storefront session by.
const SessionCookie = "PHPSESSID"

// DefaultRequestTimeout bounds page loads and route waits.
const DefaultRequestTimeout = 60 * time.Second

// SuiteConfig holds the browser runner configuration.
type SuiteConfig struct {
	BaseURL         string        `env:"BASE_URL" envDefault:"https://magento.softwaretestingboard.com/"`
	Browser         string        `env:"BROWSER" envDefault:"chromium"`
	Headless        bool          `env:"HEADLESS" envDefault:"true"`
	SlowMo          time.Duration `env:"SLOW_MO" envDefault:"0s"`
	ViewportWidth   int           `env:"VIEWPORT_WIDTH" envDefault:"1280"`
	ViewportHeight  int           `env:"VIEWPORT_HEIGHT" envDefault:"800"`
	CommandTimeout  time.Duration `env:"COMMAND_TIMEOUT" envDefault:"60s"`
	PageLoadTimeout time.Duration `env:"PAGE_LOAD_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	ScreenshotsDir  string        `env:"SCREENSHOTS_DIR" envDefault:"screenshots"`
	RoutesFile      string        `env:"ROUTES_FILE"`
	Storefront      string        `env:"STOREFRONT" envDefault:"live"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadSuiteConfig parses the suite configuration. A nil environ reads the
// process environment.
func LoadSuiteConfig(environ map[string]string) (*SuiteConfig, error) {
	var cfg SuiteConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse suite configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *SuiteConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}

	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("BROWSER must be one of chromium, firefox, webkit, got %q", c.Browser)
	}

	switch c.Storefront {
	case TargetLive, TargetStub:
	default:
		return fmt.Errorf("STOREFRONT must be %q or %q, got %q", TargetLive, TargetStub, c.Storefront)
	}

	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("VIEWPORT_WIDTH and VIEWPORT_HEIGHT must be positive")
	}
	if c.CommandTimeout <= 0 || c.PageLoadTimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}

// WithBaseURL returns a copy of the configuration pointed at another origin.
func (c SuiteConfig) WithBaseURL(base string) SuiteConfig {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	c.BaseURL = base
	return c
}

// Milliseconds converts a duration into the float form playwright expects.
func Milliseconds(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
