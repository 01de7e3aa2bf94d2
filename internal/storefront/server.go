// Package storefront serves a small Luma-shaped shop so the suite and the CLI
// can run without the public demo site.
package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/fixtures"
	"go.uber.org/zap"
)

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCustomer registers an account when the server is created
func WithCustomer(c Customer) Option {
	return func(s *Server) {
		s.seed = append(s.seed, c)
	}
}

// Server is the stub storefront http.Handler
type Server struct {
	catalog *fixtures.Catalog
	store   *Store
	render  *renderer
	logger  *zap.Logger
	mux     *http.ServeMux
	seed    []Customer
}

// New builds a storefront serving catalog
func New(catalog *fixtures.Catalog, opts ...Option) (*Server, error) {
	s := &Server{
		catalog: catalog,
		store:   NewStore(),
		logger:  zap.NewNop(),
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range s.seed {
		if _, err := s.store.Register(c); err != nil {
			return nil, fmt.Errorf("failed to seed customer %s: %w", c.Email, err)
		}
		s.logger.Info("seeded customer", zap.String("email", c.Email))
	}

	rd, err := newRenderer(catalog, s.logger)
	if err != nil {
		return nil, err
	}
	s.render = rd
	s.routes()
	return s, nil
}

// Store exposes the in-memory state, mainly for tests
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /", s.handleCatalogPath)

	s.mux.HandleFunc("GET /customer/account/{$}", s.handleAccount)
	s.mux.HandleFunc("GET /customer/account/login/", s.handleLogin)
	s.mux.HandleFunc("POST /customer/account/loginPost/", s.handleLoginPost)
	s.mux.HandleFunc("GET /customer/account/create/", s.handleCreate)
	s.mux.HandleFunc("POST /customer/account/createpost/", s.handleCreatePost)
	s.mux.HandleFunc("GET /customer/account/logout/", s.handleLogout)
	s.mux.HandleFunc("POST /customer/account/logout/", s.handleLogoutPost)
	s.mux.HandleFunc("GET /customer/account/logoutSuccess/", s.handleLogoutSuccess)
	s.mux.HandleFunc("GET /customer/account/forgotpassword/", s.handleForgot)
	s.mux.HandleFunc("POST /customer/account/forgotpasswordpost/", s.handleForgotPost)

	s.mux.HandleFunc("GET /catalogsearch/result/", s.handleSearch)
	s.mux.HandleFunc("GET /catalog/product_compare/", s.handleCompare)
	s.mux.HandleFunc("POST /catalog/product_compare/add/", s.handleAddToCompare)
	s.mux.HandleFunc("POST /wishlist/index/add/", s.handleAddToWishlist)
	s.mux.HandleFunc("POST /review/product/post/id/{sku}/", s.handleReviewPost)

	s.mux.HandleFunc("GET /checkout/cart/{$}", s.handleCart)
	s.mux.HandleFunc("POST /checkout/cart/add/product/{sku}/", s.handleAddToCart)
	s.mux.HandleFunc("POST /checkout/cart/delete/", s.handleCartDelete)
	s.mux.HandleFunc("POST /checkout/cart/updatePost/", s.handleCartUpdate)
	s.mux.HandleFunc("POST /checkout/cart/couponPost/", s.handleCouponPost)
	s.mux.HandleFunc("GET /checkout/cart/configure/id/{id}/", s.handleConfigure)
	s.mux.HandleFunc("POST /checkout/cart/updateItemOptions/id/{id}/", s.handleUpdateItemOptions)
	s.mux.HandleFunc("POST /checkout/sidebar/removeItem/", s.handleSidebarRemove)
	s.mux.HandleFunc("POST /checkout/sidebar/updateItemQty/", s.handleSidebarQty)
	s.mux.HandleFunc("GET /checkout/{$}", s.handleCheckout)
}

type sessionKey struct{}

// sessionID returns the PHPSESSID attached by ServeHTTP
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

// statusRecorder captures the response status for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ServeHTTP attaches the session cookie, dispatches and logs the request
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var current string
	if c, err := r.Cookie(config.SessionCookie); err == nil {
		current = c.Value
	}
	id, created := s.store.Open(current)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     config.SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))

	s.logger.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.RequestURI()),
		zap.Int("status", rec.status),
		zap.Bool("new_session", created),
		zap.Duration("elapsed", time.Since(start)))
}

// redirect queues flash messages and sends a 302 to target
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string, flash ...Flash) {
	if len(flash) > 0 {
		_ = s.store.Update(sessionID(r), func(sess *Session) error {
			sess.Flash = append(sess.Flash, flash...)
			return nil
		})
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// back returns the same-site referer path, or fallback
func back(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	return ref.RequestURI()
}

func (s *Server) show(w http.ResponseWriter, r *http.Request, p page) {
	s.render.render(w, s.store.Snapshot(sessionID(r)), p)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, page{
		name:   "simple",
		title:  "Whoops, our bad...",
		status: http.StatusNotFound,
		content: []string{
			"The page you requested was not found, and we have a fine guess why.",
		},
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Snapshot(sessionID(r))
	if len(sess.Cart) == 0 {
		s.redirect(w, r, "/checkout/cart/")
		return
	}
	s.render.render(w, sess, page{
		name:      "simple",
		title:     "Checkout",
		bodyClass: "checkout-index-index",
		content:   []string{msgNoCheckout},
	})
}
