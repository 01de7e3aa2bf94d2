package routes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hit is one observed response that matched an expected alias.
type Hit struct {
	Alias  string
	Method string
	URL    string
	Status int
	At     time.Time
}

// Observer receives every hit the interceptor records.
type Observer interface {
	RouteHit(hit Hit)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Hit)

// RouteHit calls f(hit).
func (f ObserverFunc) RouteHit(hit Hit) { f(hit) }

type alias struct {
	route Route
	hits  []Hit
	// changed is closed and replaced whenever hits grows or the alias is
	// re-registered, waking every pending Wait.
	changed chan struct{}
}

// Interceptor tracks expected routes by alias and matches observed responses
// against them. Hits are consumed in arrival order, one per Wait.
type Interceptor struct {
	registry *Registry
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	aliases   map[string]*alias
	observers []Observer
}

// InterceptorOption configures an Interceptor.
type InterceptorOption func(*Interceptor)

// WithLogger sets the interceptor logger.
func WithLogger(logger *zap.Logger) InterceptorOption {
	return func(i *Interceptor) { i.logger = logger }
}

// WithClock overrides the hit timestamp source.
func WithClock(now func() time.Time) InterceptorOption {
	return func(i *Interceptor) { i.now = now }
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) InterceptorOption {
	return func(i *Interceptor) { i.observers = append(i.observers, o) }
}

// NewInterceptor creates an interceptor resolving keys through registry.
func NewInterceptor(registry *Registry, opts ...InterceptorOption) *Interceptor {
	i := &Interceptor{
		registry: registry,
		logger:   zap.NewNop(),
		now:      time.Now,
		aliases:  make(map[string]*alias),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Registry returns the registry used to resolve keys.
func (i *Interceptor) Registry() *Registry {
	return i.registry
}

// AddObserver registers an observer for subsequent hits.
func (i *Interceptor) AddObserver(o Observer) {
	i.mu.Lock()
	i.observers = append(i.observers, o)
	i.mu.Unlock()
}

// Expect registers the route stored under key as an alias of the same name.
func (i *Interceptor) Expect(key string) error {
	route, err := i.registry.Lookup(key)
	if err != nil {
		return err
	}
	i.ExpectRoute(key, route)
	return nil
}

// ExpectRoute registers route under an arbitrary alias. Registering an alias
// again drops hits queued under the previous registration.
func (i *Interceptor) ExpectRoute(name string, route Route) {
	i.logger.Debug("expecting route", zap.String("alias", name), zap.Stringer("route", route))

	i.mu.Lock()
	defer i.mu.Unlock()

	if prev, ok := i.aliases[name]; ok {
		close(prev.changed)
	}
	i.aliases[name] = &alias{route: route, changed: make(chan struct{})}
}

// Forget drops an alias and everything queued under it.
func (i *Interceptor) Forget(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if a, ok := i.aliases[name]; ok {
		close(a.changed)
		delete(i.aliases, name)
	}
}

// Reset drops every alias.
func (i *Interceptor) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	for name, a := range i.aliases {
		close(a.changed)
		delete(i.aliases, name)
	}
}

// Observe records a response seen by the browser. It is safe to call from
// the driver's event goroutines.
func (i *Interceptor) Observe(method, url string, status int) {
	at := i.now()

	i.mu.Lock()
	var matched []Hit
	for name, a := range i.aliases {
		if !a.route.Matches(method, url) {
			continue
		}
		hit := Hit{Alias: name, Method: method, URL: url, Status: status, At: at}
		a.hits = append(a.hits, hit)
		close(a.changed)
		a.changed = make(chan struct{})
		matched = append(matched, hit)
	}
	observers := append([]Observer(nil), i.observers...)
	i.mu.Unlock()

	for _, hit := range matched {
		i.logger.Debug("route resolved",
			zap.String("alias", hit.Alias),
			zap.String("url", hit.URL),
			zap.Int("status", hit.Status))
		for _, o := range observers {
			o.RouteHit(hit)
		}
	}
}

// Wait blocks until the alias has an unconsumed hit and returns the oldest one.
func (i *Interceptor) Wait(ctx context.Context, name string) (Hit, error) {
	for {
		i.mu.Lock()
		a, ok := i.aliases[name]
		if !ok {
			i.mu.Unlock()
			return Hit{}, fmt.Errorf("%w: @%s", ErrNotExpected, name)
		}
		if len(a.hits) > 0 {
			hit := a.hits[0]
			a.hits = a.hits[1:]
			i.mu.Unlock()
			return hit, nil
		}
		changed := a.changed
		i.mu.Unlock()

		select {
		case <-ctx.Done():
			return Hit{}, fmt.Errorf("timed out waiting for @%s: %w", name, ctx.Err())
		case <-changed:
		}
	}
}

// Pending returns the number of unconsumed hits queued under an alias.
func (i *Interceptor) Pending(name string) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	if a, ok := i.aliases[name]; ok {
		return len(a.hits)
	}
	return 0
}
