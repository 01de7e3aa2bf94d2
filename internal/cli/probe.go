package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lumaqa/lumacheck/internal/routes"
	"go.uber.org/zap"
)

// ProbeOptions tunes a probe run
type ProbeOptions struct {
	// Keys restricts the probe to these routes. Empty probes every GET route
	// with a literal pattern.
	Keys    []string
	Timeout time.Duration
	Retries uint64
}

// ProbeResult is the outcome of visiting one route
type ProbeResult struct {
	Key     string
	URL     string
	Status  int
	Latency time.Duration
	Err     error
}

// OK reports whether the route answered without a client or server error
func (r ProbeResult) OK() bool {
	return r.Err == nil && r.Status > 0 && r.Status < http.StatusBadRequest
}

// observingTransport reports every response, redirects included, to the
// interceptor the way the browser response hook does.
type observingTransport struct {
	next        http.RoundTripper
	interceptor *routes.Interceptor
}

func (t observingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.interceptor.Observe(req.Method, req.URL.String(), resp.StatusCode)
	return resp, nil
}

// httpDriver is a routes.Driver that navigates with plain HTTP requests
type httpDriver struct {
	client  *http.Client
	retries uint64
	logger  *zap.Logger
}

func newHTTPDriver(interceptor *routes.Interceptor, timeout time.Duration, retries uint64, logger *zap.Logger) (*httpDriver, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &httpDriver{
		client: &http.Client{
			Jar:       jar,
			Timeout:   timeout,
			Transport: observingTransport{next: http.DefaultTransport, interceptor: interceptor},
		},
		retries: retries,
		logger:  logger,
	}, nil
}

// do sends a request, retrying transport failures with exponential backoff
func (d *httpDriver) do(ctx context.Context, method, target, body string) (int, error) {
	var status int
	op := func() error {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err := d.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		status = resp.StatusCode
		return nil
	}
	notify := func(err error, wait time.Duration) {
		d.logger.Warn("request failed, retrying", zap.String("url", target), zap.Duration("wait", wait), zap.Error(err))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.retries), ctx)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return 0, err
	}
	return status, nil
}

func (d *httpDriver) Visit(ctx context.Context, target string) error {
	_, err := d.do(ctx, http.MethodGet, target, "")
	return err
}

func (d *httpDriver) Submit(ctx context.Context, target, body string) error {
	_, err := d.do(ctx, http.MethodPost, target, body)
	return err
}

func (d *httpDriver) Fetch(ctx context.Context, method, target, body string) (int, error) {
	return d.do(ctx, method, target, body)
}

// probeable reports whether a route can be visited as is
func probeable(r routes.Route) bool {
	return r.Method == http.MethodGet && !strings.Contains(r.Pattern, "*")
}

// Probe visits routes on baseURL and waits for each to resolve, recording
// status and latency. Route failures are reported in the results; the error
// is only set when the probe itself cannot run.
func Probe(ctx context.Context, baseURL string, registry *routes.Registry, opts ProbeOptions, logger *zap.Logger) ([]ProbeResult, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	var selected []routes.Route
	if len(opts.Keys) == 0 {
		for _, r := range registry.Routes() {
			if probeable(r) {
				selected = append(selected, r)
			}
		}
	} else {
		for _, key := range opts.Keys {
			r, err := registry.Lookup(key)
			if err != nil {
				return nil, err
			}
			if !probeable(r) {
				return nil, fmt.Errorf("route %s cannot be probed: only literal GET routes are visited", key)
			}
			selected = append(selected, r)
		}
	}

	interceptor := routes.NewInterceptor(registry, routes.WithLogger(logger))
	driver, err := newHTTPDriver(interceptor, opts.Timeout, opts.Retries, logger)
	if err != nil {
		return nil, err
	}
	defer driver.client.CloseIdleConnections()

	client, err := routes.NewClient(baseURL, driver, interceptor,
		routes.WithTimeout(opts.Timeout),
		routes.WithClientLogger(logger))
	if err != nil {
		return nil, err
	}

	results := make([]ProbeResult, 0, len(selected))
	for _, r := range selected {
		res := ProbeResult{Key: r.Key, URL: client.Resolve(r.Pattern)}

		start := time.Now()
		hit, err := client.VisitAndWait(ctx, r.Key)
		res.Latency = time.Since(start)
		interceptor.Forget(r.Key)

		if err != nil {
			res.Err = err
			if errors.Is(err, context.Canceled) {
				return append(results, res), err
			}
		} else {
			res.Status = hit.Status
		}

		logger.Info("probed route",
			zap.String("route", r.Key),
			zap.Int("status", res.Status),
			zap.Duration("latency", res.Latency),
			zap.Error(res.Err))
		results = append(results, res)
	}
	return results, nil
}

// WriteProbe prints probe results as a table and returns how many failed
func WriteProbe(w io.Writer, results []ProbeResult) (int, error) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tSTATUS\tLATENCY\tURL")

	failed := 0
	for _, r := range results {
		status := fmt.Sprint(r.Status)
		if r.Err != nil {
			status = "error: " + r.Err.Error()
		}
		if !r.OK() {
			failed++
		}
		u := r.URL
		if parsed, err := url.Parse(r.URL); err == nil {
			u = parsed.RequestURI()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Key, status, r.Latency.Round(time.Millisecond), u)
	}
	return failed, tw.Flush()
}
