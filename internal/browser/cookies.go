package browser

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// CookieJar is the cookie store of one browser context.
type CookieJar interface {
	Cookies() ([]playwright.Cookie, error)
	Set(cookies []playwright.Cookie) error
	Clear() error
}

type contextJar struct {
	ctx playwright.BrowserContext
}

func (j contextJar) Cookies() ([]playwright.Cookie, error) {
	return j.ctx.Cookies()
}

func (j contextJar) Set(cookies []playwright.Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	return j.ctx.AddCookies(toOptional(cookies))
}

func (j contextJar) Clear() error {
	return j.ctx.ClearCookies()
}

func toOptional(cookies []playwright.Cookie) []playwright.OptionalCookie {
	out := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		oc := playwright.OptionalCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   playwright.String(c.Domain),
			Path:     playwright.String(c.Path),
			HttpOnly: playwright.Bool(c.HttpOnly),
			Secure:   playwright.Bool(c.Secure),
			SameSite: c.SameSite,
		}
		// Session cookies report -1.
		if c.Expires > 0 {
			oc.Expires = playwright.Float(c.Expires)
		}
		out = append(out, oc)
	}
	return out
}

func filterCookies(cookies []playwright.Cookie, names []string) []playwright.Cookie {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []playwright.Cookie
	for _, c := range cookies {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// Validator checks a restored cookie set.
type Validator func(cookies []playwright.Cookie) error

// RequireCookie accepts a cookie set only when it contains name.
func RequireCookie(name string) Validator {
	return func(cookies []playwright.Cookie) error {
		for _, c := range cookies {
			if c.Name == name && c.Value != "" {
				return nil
			}
		}
		return fmt.Errorf("session cookie %s is missing", name)
	}
}

// SessionCache keeps the cookies produced by a setup step (usually a login)
// so later scenarios can reuse them instead of repeating the step.
type SessionCache struct {
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string][]playwright.Cookie
}

// NewSessionCache creates an empty cache.
func NewSessionCache(logger *zap.Logger) *SessionCache {
	return &SessionCache{
		logger:  logger,
		entries: make(map[string][]playwright.Cookie),
	}
}

// Restore brings jar into the state cached under id. When nothing is cached,
// or the cached cookies fail validate, the jar is cleared, setup runs and the
// resulting cookies are validated and cached.
func (c *SessionCache) Restore(jar CookieJar, id string, setup func() error, validate Validator) error {
	c.mu.Lock()
	cached, ok := c.entries[id]
	c.mu.Unlock()

	if ok {
		if err := jar.Clear(); err != nil {
			return fmt.Errorf("could not clear cookies: %w", err)
		}
		if err := jar.Set(cached); err != nil {
			return fmt.Errorf("could not restore session %q: %w", id, err)
		}
		current, err := jar.Cookies()
		if err != nil {
			return err
		}
		if err := validate(current); err == nil {
			c.logger.Debug("session restored", zap.String("session", id))
			return nil
		}
		c.logger.Info("cached session is no longer valid, recreating", zap.String("session", id))
		c.Invalidate(id)
	}

	if err := jar.Clear(); err != nil {
		return fmt.Errorf("could not clear cookies: %w", err)
	}
	if err := setup(); err != nil {
		return fmt.Errorf("session %q setup failed: %w", id, err)
	}
	cookies, err := jar.Cookies()
	if err != nil {
		return err
	}
	if err := validate(cookies); err != nil {
		return fmt.Errorf("session %q is invalid after setup: %w", id, err)
	}

	c.mu.Lock()
	c.entries[id] = cookies
	c.mu.Unlock()
	c.logger.Debug("session cached", zap.String("session", id), zap.Int("cookies", len(cookies)))
	return nil
}

// Invalidate drops the cookies cached under id.
func (c *SessionCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}
