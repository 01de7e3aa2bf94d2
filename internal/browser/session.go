package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// submitScript posts a urlencoded body from inside the page so the request
// carries the page cookies and shows up as a page response.
const submitScript = `async ([url, body]) => {
	const r = await fetch(url, {
		method: 'POST',
		credentials: 'include',
		headers: {'Content-Type': 'application/x-www-form-urlencoded; charset=UTF-8'},
		body: body
	});
	return r.status;
}`

// Session is one isolated browser context with a single page, wired to its
// own route interceptor.
type Session struct {
	cfg    config.SuiteConfig
	logger *zap.Logger

	context playwright.BrowserContext
	page    playwright.Page
	routes  *routes.Client
}

func newSession(b playwright.Browser, cfg config.SuiteConfig, registry *routes.Registry, logger *zap.Logger, observers []routes.Observer) (*Session, error) {
	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(config.Milliseconds(cfg.CommandTimeout))
	bctx.SetDefaultNavigationTimeout(config.Milliseconds(cfg.PageLoadTimeout))

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	opts := []routes.InterceptorOption{routes.WithLogger(logger)}
	for _, o := range observers {
		opts = append(opts, routes.WithObserver(o))
	}
	interceptor := routes.NewInterceptor(registry, opts...)

	page.OnResponse(func(resp playwright.Response) {
		interceptor.Observe(resp.Request().Method(), resp.URL(), resp.Status())
	})

	s := &Session{
		cfg:     cfg,
		logger:  logger,
		context: bctx,
		page:    page,
	}

	client, err := routes.NewClient(cfg.BaseURL, s, interceptor,
		routes.WithTimeout(cfg.RequestTimeout),
		routes.WithClientLogger(logger))
	if err != nil {
		_ = bctx.Close()
		return nil, err
	}
	s.routes = client

	return s, nil
}

// Page returns the session page.
func (s *Session) Page() playwright.Page {
	return s.page
}

// Routes returns the navigation client bound to this session.
func (s *Session) Routes() *routes.Client {
	return s.routes
}

// Config returns the suite configuration.
func (s *Session) Config() config.SuiteConfig {
	return s.cfg
}

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger {
	return s.logger
}

// Visit navigates the page and waits for the DOM to be ready.
func (s *Session) Visit(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

// Submit posts body to url with fetch from inside the page.
func (s *Session) Submit(ctx context.Context, url, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Evaluate(submitScript, []string{url, body})
	return err
}

// Fetch sends a request through the context request API, which shares the
// page cookies. Redirects are followed and the final status is returned.
func (s *Session) Fetch(ctx context.Context, method, url, body string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	opts := playwright.APIRequestContextFetchOptions{
		Method: playwright.String(method),
	}
	if body != "" {
		opts.Data = body
	}
	resp, err := s.page.Request().Fetch(url, opts)
	if err != nil {
		return 0, err
	}
	defer resp.Dispose()
	return resp.Status(), nil
}

// Stub answers every request matching pattern with a canned response.
func (s *Session) Stub(pattern string, status int, contentType, body string) error {
	s.logger.Debug("stubbing route", zap.String("pattern", pattern), zap.Int("status", status))
	return s.page.Route(pattern, func(route playwright.Route) {
		if err := route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(status),
			ContentType: playwright.String(contentType),
			Body:        body,
		}); err != nil {
			s.logger.Warn("could not fulfill stubbed route", zap.String("pattern", pattern), zap.Error(err))
		}
	})
}

// Jar exposes the context cookies.
func (s *Session) Jar() CookieJar {
	return contextJar{ctx: s.context}
}

// ClearCookies removes every cookie from the context.
func (s *Session) ClearCookies() error {
	return s.Jar().Clear()
}

// Cookie returns the named cookie, if set.
func (s *Session) Cookie(name string) (playwright.Cookie, bool, error) {
	cookies, err := s.Jar().Cookies()
	if err != nil {
		return playwright.Cookie{}, false, err
	}
	for _, c := range cookies {
		if c.Name == name {
			return c, true, nil
		}
	}
	return playwright.Cookie{}, false, nil
}

// PreserveCookies snapshots the named cookies so they can be carried into
// another session with RestoreCookies.
func (s *Session) PreserveCookies(names ...string) ([]playwright.Cookie, error) {
	cookies, err := s.Jar().Cookies()
	if err != nil {
		return nil, err
	}
	return filterCookies(cookies, names), nil
}

// RestoreCookies adds previously preserved cookies to the context.
func (s *Session) RestoreCookies(cookies []playwright.Cookie) error {
	return s.Jar().Set(cookies)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func screenshotPath(dir, name string) string {
	name = strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if name == "" {
		name = "screenshot"
	}
	return filepath.Join(dir, name+".png")
}

// Screenshot writes a full-page PNG into the screenshots directory and
// returns its path.
func (s *Session) Screenshot(name string) (string, error) {
	if err := os.MkdirAll(s.cfg.ScreenshotsDir, 0755); err != nil {
		return "", fmt.Errorf("could not create screenshots directory: %w", err)
	}
	path := screenshotPath(s.cfg.ScreenshotsDir, name)
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("could not save screenshot: %w", err)
	}
	return path, nil
}

// Close closes the page and its context.
func (s *Session) Close() error {
	return s.context.Close()
}
