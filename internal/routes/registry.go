package routes

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry maps route keys to routes. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Route
}

// NewRegistry builds a registry from the given routes.
func NewRegistry(routes ...Route) (*Registry, error) {
	r := &Registry{routes: make(map[string]Route, len(routes))}
	for _, route := range routes {
		if err := r.Register(route); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a fresh registry holding every Luma route.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(lumaRoutes...)
	if err != nil {
		panic(fmt.Sprintf("default route table is invalid: %v", err))
	}
	return r
}

// Register adds a route. Keys must be unique.
func (r *Registry) Register(route Route) error {
	route.Method = strings.ToUpper(route.Method)
	if err := route.compile(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[route.Key]; exists {
		return fmt.Errorf("route %s is already registered", route.Key)
	}
	r.routes[route.Key] = route
	return nil
}

// Override adds a route or replaces the one registered under the same key.
func (r *Registry) Override(route Route) error {
	route.Method = strings.ToUpper(route.Method)
	if err := route.compile(); err != nil {
		return err
	}

	r.mu.Lock()
	r.routes[route.Key] = route
	r.mu.Unlock()
	return nil
}

// Lookup returns the route registered under key.
func (r *Registry) Lookup(key string) (Route, error) {
	r.mu.RLock()
	route, ok := r.routes[key]
	r.mu.RUnlock()

	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, key)
	}
	return route, nil
}

// Keys returns every registered key in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.routes))
	for key := range r.routes {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Routes returns every registered route ordered by key.
func (r *Registry) Routes() []Route {
	keys := r.Keys()
	out := make([]Route, 0, len(keys))

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range keys {
		out = append(out, r.routes[key])
	}
	return out
}

type routeFile struct {
	Routes []Route `yaml:"routes"`
}

// LoadRegistry returns the default registry with the routes from a YAML
// document applied on top. Entries with an existing key replace it.
//
//	routes:
//	  - key: CheckoutPage
//	    method: GET
//	    pattern: /checkout/index/
func LoadRegistry(data []byte) (*Registry, error) {
	var file routeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse route file: %w", err)
	}

	reg := DefaultRegistry()
	for _, route := range file.Routes {
		if err := reg.Override(route); err != nil {
			return nil, fmt.Errorf("invalid route in route file: %w", err)
		}
	}
	return reg, nil
}

// LoadRegistryFile reads a route file from disk. An empty path yields the
// default registry.
func LoadRegistryFile(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}
	return LoadRegistry(data)
}
