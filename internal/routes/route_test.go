package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_Matches(t *testing.T) {
	tests := []struct {
		name    string
		route   Route
		method  string
		url     string
		matches bool
	}{
		{
			name:    "substring on path",
			route:   mustRoute("CartPage", "GET", "/checkout/cart/"),
			method:  "GET",
			url:     "https://magento.softwaretestingboard.com/checkout/cart/",
			matches: true,
		},
		{
			name:    "method is case insensitive",
			route:   mustRoute("AddToCartResult", "POST", "/checkout/cart/add/"),
			method:  "post",
			url:     "https://shop.test/checkout/cart/add/uenc/aHR0cHM6/product/1812/",
			matches: true,
		},
		{
			name:    "method mismatch",
			route:   mustRoute("AddToCartResult", "POST", "/checkout/cart/add/"),
			method:  "GET",
			url:     "https://shop.test/checkout/cart/add/",
			matches: false,
		},
		{
			name:    "query is part of the target",
			route:   mustRoute("Limiter", "GET", "/women/tops-women.html?product_list_limit="),
			method:  "GET",
			url:     "https://shop.test/women/tops-women.html?product_list_limit=36",
			matches: true,
		},
		{
			name:    "query missing",
			route:   mustRoute("Limiter", "GET", "/women/tops-women.html?product_list_limit="),
			method:  "GET",
			url:     "https://shop.test/women/tops-women.html",
			matches: false,
		},
		{
			name:    "root matches root",
			route:   mustRoute("LoadPage", "GET", "/"),
			method:  "GET",
			url:     "https://shop.test/",
			matches: true,
		},
		{
			name:    "root matches root with query",
			route:   mustRoute("LoadPage", "GET", "/"),
			method:  "GET",
			url:     "https://shop.test/?utm_source=test",
			matches: true,
		},
		{
			name:    "root matches bare origin",
			route:   mustRoute("LoadPage", "GET", "/"),
			method:  "GET",
			url:     "https://shop.test",
			matches: true,
		},
		{
			name:    "root does not match every page",
			route:   mustRoute("LoadPage", "GET", "/"),
			method:  "GET",
			url:     "https://shop.test/static/version1/frontend/Magento/luma/en_US/requirejs/require.js",
			matches: false,
		},
		{
			name:    "root at base path",
			route:   mustRoute("LoadPage", "GET", "/").AtRoot("/luma/"),
			method:  "GET",
			url:     "https://shop.test/luma/",
			matches: true,
		},
		{
			name:    "root at base path without trailing slash",
			route:   mustRoute("LoadPage", "GET", "/").AtRoot("/luma/"),
			method:  "GET",
			url:     "https://shop.test/luma?utm_source=test",
			matches: true,
		},
		{
			name:    "site root is outside the base path",
			route:   mustRoute("LoadPage", "GET", "/").AtRoot("/luma/"),
			method:  "GET",
			url:     "https://shop.test/",
			matches: false,
		},
		{
			name:    "glob within one segment",
			route:   mustRoute("AnyWomenListing", "GET", "/women/*.html"),
			method:  "GET",
			url:     "https://shop.test/women/tops-women.html",
			matches: true,
		},
		{
			name:    "single star does not cross segments",
			route:   mustRoute("AnyWomenListing", "GET", "/women/*.html"),
			method:  "GET",
			url:     "https://shop.test/women/tops-women/jackets-women.html",
			matches: false,
		},
		{
			name:    "double star crosses segments",
			route:   mustRoute("AnyWomenPage", "GET", "/women/**"),
			method:  "GET",
			url:     "https://shop.test/women/tops-women/jackets-women.html",
			matches: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.route.Matches(tt.method, tt.url))
		})
	}
}

func TestNewRoute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		method  string
		pattern string
		wantErr string
	}{
		{name: "missing key", method: "GET", pattern: "/", wantErr: "route key is required"},
		{name: "bad method", key: "X", method: "TRACE", pattern: "/", wantErr: "unsupported method"},
		{name: "missing pattern", key: "X", method: "GET", wantErr: "pattern is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoute(tt.key, tt.method, tt.pattern)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	r, err := NewRoute("LogOut", "post", "/customer/account/logout/")
	require.NoError(t, err)
	assert.Equal(t, "POST", r.Method)
	assert.Equal(t, "LogOut POST /customer/account/logout/", r.String())
}
