package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStorefront(t *testing.T) *httptest.Server {
	t.Helper()
	site, err := storefront.New(fixtures.MustLoad())
	require.NoError(t, err)
	server := httptest.NewServer(site)
	t.Cleanup(server.Close)
	return server
}

func TestProbe_Storefront(t *testing.T) {
	server := newStorefront(t)

	// GIVEN a handful of routes on the stub storefront
	keys := []string{
		routes.LoadPage,
		routes.LogInPage,
		routes.CartPage,
		routes.HoodiePDP,
		routes.Limiter,
		routes.CheckoutPage,
		routes.SearchTerms,
	}

	// WHEN they are probed
	results, err := Probe(context.Background(), server.URL+"/", routes.DefaultRegistry(), ProbeOptions{
		Keys:    keys,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	// THEN each reports the first response its pattern matched
	got := make(map[string]int, len(results))
	for _, r := range results {
		require.NoError(t, r.Err, r.Key)
		got[r.Key] = r.Status
	}
	assert.Equal(t, map[string]int{
		routes.LoadPage:     http.StatusOK,
		routes.LogInPage:    http.StatusOK,
		routes.CartPage:     http.StatusOK,
		routes.HoodiePDP:    http.StatusOK,
		routes.Limiter:      http.StatusOK,
		routes.CheckoutPage: http.StatusFound,
		routes.SearchTerms:  http.StatusNotFound,
	}, got)

	// AND the table counts the missing page as a failure
	var out bytes.Buffer
	failed, err := WriteProbe(&out, results)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "/search/term/popular/")
}

func TestProbe_DefaultSelection(t *testing.T) {
	server := newStorefront(t)
	registry := routes.DefaultRegistry()

	results, err := Probe(context.Background(), server.URL+"/", registry, ProbeOptions{Timeout: 5 * time.Second}, zap.NewNop())
	require.NoError(t, err)

	// Only GET routes are visited
	var want int
	for _, r := range registry.Routes() {
		if r.Method == http.MethodGet {
			want++
		}
	}
	assert.Len(t, results, want)
}

func TestProbe_InvalidSelection(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		wantErr error
	}{
		{name: "unknown key", keys: []string{"NoSuchRoute"}, wantErr: routes.ErrUnknownRoute},
		{name: "POST route", keys: []string{routes.LogInResult}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Probe(context.Background(), "http://127.0.0.1:1/", routes.DefaultRegistry(), ProbeOptions{Keys: tt.keys}, zap.NewNop())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestProbe_UnreachableTarget(t *testing.T) {
	// GIVEN a closed server
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL + "/"
	server.Close()

	// WHEN it is probed
	results, err := Probe(context.Background(), base, routes.DefaultRegistry(), ProbeOptions{
		Keys:    []string{routes.LoadPage},
		Timeout: time.Second,
	}, zap.NewNop())

	// THEN the route fails but the probe completes
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.False(t, results[0].OK())
}

func TestHTTPDriver_SendRequestFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /customer/account/logout/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/customer/account/logoutSuccess/", http.StatusFound)
	})
	mux.HandleFunc("GET /customer/account/logoutSuccess/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /checkout/cart/delete/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/checkout/cart/missing/", http.StatusFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "redirect to a page", path: "/customer/account/logout/"},
		{name: "redirect to a missing page", path: "/checkout/cart/delete/", wantErr: routes.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a client driven over plain HTTP
			interceptor := routes.NewInterceptor(routes.DefaultRegistry())
			driver, err := newHTTPDriver(interceptor, time.Second, 0, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(driver.client.CloseIdleConnections)
			client, err := routes.NewClient(server.URL+"/", driver, interceptor)
			require.NoError(t, err)

			// WHEN a request answered with a 302 is sent
			err = client.SendRequest(context.Background(), tt.path, "post", "")

			// THEN only the status after the redirect counts
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWriteRoutes(t *testing.T) {
	registry, err := routes.NewRegistry(
		mustRoute(t, "CartPage", "GET", "/checkout/cart/"),
		mustRoute(t, "LogInResult", "POST", "/customer/account/loginPost/"),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteRoutes(&out, registry))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"KEY", "METHOD", "PATTERN"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"CartPage", "GET", "/checkout/cart/"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"LogInResult", "POST", "/customer/account/loginPost/"}, strings.Fields(lines[2]))
}

func mustRoute(t *testing.T, key, method, pattern string) routes.Route {
	t.Helper()
	r, err := routes.NewRoute(key, method, pattern)
	require.NoError(t, err)
	return r
}
