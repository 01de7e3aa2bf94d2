package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Driver performs the browser side of a route operation.
type Driver interface {
	// Visit navigates the page to an absolute URL.
	Visit(ctx context.Context, url string) error
	// Submit posts a form body from inside the page so that the request
	// carries the page cookies and is seen by the interceptor.
	Submit(ctx context.Context, url, body string) error
	// Fetch sends an out-of-band request sharing the page cookies and
	// returns the response status.
	Fetch(ctx context.Context, method, url, body string) (int, error)
}

// Client couples a registry, an interceptor and a driver into the
// declare/act/await navigation contract.
type Client struct {
	interceptor *Interceptor
	driver      Driver
	base        *url.URL
	timeout     time.Duration
	logger      *zap.Logger
	seq         atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout bounds every wait performed by the client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithClientLogger sets the client logger.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client. Relative URLs are resolved against baseURL.
func NewClient(baseURL string, driver Driver, interceptor *Interceptor, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute, got %q", baseURL)
	}

	c := &Client{
		interceptor: interceptor,
		driver:      driver,
		base:        base,
		timeout:     60 * time.Second,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Interceptor returns the interceptor the client registers aliases with.
func (c *Client) Interceptor() *Interceptor {
	return c.interceptor
}

// Resolve turns a path such as "/juno-jacket.html" into an absolute URL.
func (c *Client) Resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return u.String()
	}
	// Paths are relative to the site root even when the base has a path.
	if strings.HasPrefix(ref, "/") && c.base.Path != "" && c.base.Path != "/" {
		return c.base.ResolveReference(&url.URL{Path: strings.TrimSuffix(c.base.Path, "/") + u.Path, RawQuery: u.RawQuery}).String()
	}
	return c.base.ResolveReference(u).String()
}

// lookup returns the route stored under key, rooted at the base path.
func (c *Client) lookup(key string) (Route, error) {
	route, err := c.interceptor.Registry().Lookup(key)
	if err != nil {
		return Route{}, err
	}
	return route.AtRoot(c.base.EscapedPath()), nil
}

// Expect registers the route stored under key.
func (c *Client) Expect(key string) error {
	c.logger.Info("expecting route", zap.String("route", key))
	route, err := c.lookup(key)
	if err != nil {
		return err
	}
	c.interceptor.ExpectRoute(key, route)
	return nil
}

// Wait waits for an alias registered earlier with Expect, bounded by the
// client timeout.
func (c *Client) Wait(ctx context.Context, key string) (Hit, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.interceptor.Wait(ctx, key)
}

// VisitAndWait expects key, navigates to ref (or to the route pattern when
// ref is omitted) and waits until the expected request resolves.
func (c *Client) VisitAndWait(ctx context.Context, key string, ref ...string) (Hit, error) {
	route, err := c.lookup(key)
	if err != nil {
		return Hit{}, err
	}

	target := route.Pattern
	if len(ref) > 0 && ref[0] != "" {
		target = ref[0]
	}
	c.logger.Info("visiting and waiting for route", zap.String("route", key), zap.String("url", target))

	c.interceptor.ExpectRoute(key, route)
	if err := c.driver.Visit(ctx, c.Resolve(target)); err != nil {
		return Hit{}, fmt.Errorf("failed to visit %s: %w", target, err)
	}
	return c.Wait(ctx, key)
}

// Do expects key, runs action and waits for the expected request. The alias
// is registered before the action so the action cannot outrun it.
func (c *Client) Do(ctx context.Context, key string, action func() error) (Hit, error) {
	if err := c.Expect(key); err != nil {
		return Hit{}, err
	}
	if err := action(); err != nil {
		return Hit{}, err
	}
	return c.Wait(ctx, key)
}

// DoRoute is Do for a route built at run time. The alias is the route key.
func (c *Client) DoRoute(ctx context.Context, route Route, action func() error) (Hit, error) {
	c.logger.Info("expecting route", zap.Stringer("route", route))
	route = route.AtRoot(c.base.EscapedPath())
	c.interceptor.ExpectRoute(route.Key, route)
	if err := action(); err != nil {
		return Hit{}, err
	}
	return c.Wait(ctx, route.Key)
}

// SendRequest issues a request outside the page and requires a 200 response.
func (c *Client) SendRequest(ctx context.Context, ref, method, body string) error {
	target := c.Resolve(ref)
	c.logger.Info("sending request", zap.String("method", method), zap.String("url", target))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.driver.Fetch(ctx, strings.ToUpper(method), target, body)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, target, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, target, status)
	}
	return nil
}

// FormRequest posts formData to ref from inside the page and waits for the
// request to complete.
func (c *Client) FormRequest(ctx context.Context, ref, formData string) (Hit, error) {
	target := c.Resolve(ref)
	u, err := url.Parse(target)
	if err != nil {
		return Hit{}, fmt.Errorf("invalid form url %q: %w", ref, err)
	}

	name := fmt.Sprintf("formRequest-%d", c.seq.Add(1))
	route, err := NewRoute(name, http.MethodPost, u.EscapedPath())
	if err != nil {
		return Hit{}, err
	}

	c.interceptor.ExpectRoute(name, route)
	defer c.interceptor.Forget(name)

	c.logger.Info("submitting form request", zap.String("url", target))
	if err := c.driver.Submit(ctx, target, formData); err != nil {
		return Hit{}, fmt.Errorf("failed to submit form to %s: %w", target, err)
	}
	return c.Wait(ctx, name)
}
