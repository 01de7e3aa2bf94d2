// Package routes maps named storefront requests to method/URL patterns and
// synchronizes browser actions with the network calls they trigger.
//
// A scenario declares the request it expects (an alias), performs the UI
// action, and then waits for the alias to resolve before asserting DOM state.
package routes

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrUnknownRoute is returned when a key is not in the registry.
	ErrUnknownRoute = errors.New("unknown route key")
	// ErrNotExpected is returned when waiting on an alias that was never registered.
	ErrNotExpected = errors.New("route was not expected")
	// ErrUnexpectedStatus is returned by SendRequest for non-200 responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Route is a named request: an HTTP method plus a URL pattern.
type Route struct {
	Key     string `yaml:"key"`
	Method  string `yaml:"method"`
	Pattern string `yaml:"pattern"`

	matcher glob.Glob
	// root is the escaped path the "/" pattern stands for, without its
	// trailing slash. Empty means the site root.
	root string
}

// NewRoute validates and compiles a route.
func NewRoute(key, method, pattern string) (Route, error) {
	r := Route{Key: key, Method: strings.ToUpper(method), Pattern: pattern}
	if err := r.compile(); err != nil {
		return Route{}, err
	}
	return r, nil
}

func mustRoute(key, method, pattern string) Route {
	r, err := NewRoute(key, method, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Route) compile() error {
	if r.Key == "" {
		return fmt.Errorf("route key is required")
	}
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return fmt.Errorf("route %s: unsupported method %q", r.Key, r.Method)
	}
	if r.Pattern == "" {
		return fmt.Errorf("route %s: pattern is required", r.Key)
	}

	r.matcher = nil
	if strings.Contains(r.Pattern, "*") {
		g, err := glob.Compile(r.Pattern, '/')
		if err != nil {
			return fmt.Errorf("route %s: invalid glob %q: %w", r.Key, r.Pattern, err)
		}
		r.matcher = g
	}
	return nil
}

// Matches reports whether a request with the given method and URL is the one
// this route describes.
//
// The pattern is matched against the path and query of the URL:
// "/" only matches the storefront root (see AtRoot), patterns containing "*" are globs where "*"
// stays inside one path segment and "**" crosses segments, and anything else
// matches as a substring.
func (r Route) Matches(method, rawURL string) bool {
	if !strings.EqualFold(r.Method, method) {
		return false
	}

	target := requestTarget(rawURL)

	if r.Pattern == "/" {
		path, _, _ := strings.Cut(target, "?")
		return path == r.root || path == r.root+"/"
	}
	if r.matcher != nil {
		return r.matcher.Match(target)
	}
	return strings.Contains(target, r.Pattern)
}

// AtRoot returns a copy of r whose "/" pattern matches the storefront mounted
// at basePath instead of the site root. Other patterns are unaffected.
func (r Route) AtRoot(basePath string) Route {
	r.root = strings.TrimSuffix(basePath, "/")
	return r
}

// String renders the route the way it is logged.
func (r Route) String() string {
	return fmt.Sprintf("%s %s %s", r.Key, r.Method, r.Pattern)
}

func requestTarget(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	target := u.EscapedPath()
	if target == "" {
		target = "/"
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}
