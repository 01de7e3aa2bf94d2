// Package browser owns the playwright process, the launched browser and the
// per-scenario sessions the page objects drive.
package browser

import (
	"fmt"
	"sync"

	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Install downloads the driver and the named browser.
func Install(kind string) error {
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{kind},
	}); err != nil {
		return fmt.Errorf("could not install playwright %s: %w", kind, err)
	}
	return nil
}

// Runtime is one running browser shared by every session of a test binary.
type Runtime struct {
	cfg      config.SuiteConfig
	registry *routes.Registry
	logger   *zap.Logger

	pw      *playwright.Playwright
	browser playwright.Browser

	mu        sync.Mutex
	observers []routes.Observer
}

// Launch starts playwright and the configured browser.
func Launch(cfg *config.SuiteConfig, logger *zap.Logger) (*Runtime, error) {
	registry, err := routes.LoadRegistryFile(cfg.RoutesFile)
	if err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browserType, err := selectBrowser(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(config.Milliseconds(cfg.SlowMo)),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", cfg.Browser, err)
	}

	logger.Info("browser launched",
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.String("base_url", cfg.BaseURL))

	return &Runtime{
		cfg:      *cfg,
		registry: registry,
		logger:   logger,
		pw:       pw,
		browser:  b,
	}, nil
}

func selectBrowser(pw *playwright.Playwright, kind string) (playwright.BrowserType, error) {
	switch kind {
	case "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", kind)
	}
}

// Config returns the configuration the runtime was launched with.
func (r *Runtime) Config() config.SuiteConfig {
	return r.cfg
}

// Registry returns the route table shared by all sessions.
func (r *Runtime) Registry() *routes.Registry {
	return r.registry
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() *zap.Logger {
	return r.logger
}

// AddObserver subscribes o to the route hits of every session created
// afterwards.
func (r *Runtime) AddObserver(o routes.Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// NewSession opens a fresh browser context and page.
func (r *Runtime) NewSession() (*Session, error) {
	r.mu.Lock()
	observers := append([]routes.Observer(nil), r.observers...)
	r.mu.Unlock()
	return newSession(r.browser, r.cfg, r.registry, r.logger, observers)
}

// Close shuts the browser and the playwright driver down.
func (r *Runtime) Close() error {
	if err := r.browser.Close(); err != nil {
		_ = r.pw.Stop()
		return fmt.Errorf("could not close browser: %w", err)
	}
	if err := r.pw.Stop(); err != nil {
		return fmt.Errorf("could not stop playwright: %w", err)
	}
	return nil
}
