package storefront

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lumaqa/lumacheck/internal/fixtures"
)

// Domain errors
var (
	ErrAccountExists    = errors.New("account already exists")
	ErrInvalidLogin     = errors.New("invalid login or password")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrMissingField     = errors.New("required field is missing")
	ErrUnknownLine      = errors.New("cart line does not exist")
)

const minPasswordLength = 8

// Customer represents a registered storefront account
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// FullName is the name shown in the header greeting
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// validate checks the fields the create account form requires
func (c *Customer) validate() error {
	if c.FirstName == "" || c.LastName == "" || c.Email == "" {
		return ErrMissingField
	}
	if len(strings.TrimSpace(c.Password)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// CartLine represents one configured product in a cart
type CartLine struct {
	ID      int
	Product fixtures.Product
	Size    string
	Color   string
	Qty     int
}

// Subtotal is price times quantity
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Qty)
}

// Flash is a one-shot page message
type Flash struct {
	Kind string
	Text string
}

// Flash kinds, matching Luma's message classes
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashNotice  = "notice"
)

// Session holds the state behind one PHPSESSID cookie
type Session struct {
	ID       string
	Customer *Customer
	Cart     []CartLine
	Compare  []fixtures.Product
	Coupon   string
	Flash    []Flash
	nextLine int
}

// ItemsCount is the total quantity in the cart
func (s *Session) ItemsCount() int {
	n := 0
	for _, l := range s.Cart {
		n += l.Qty
	}
	return n
}

// Subtotal is the sum of the cart line subtotals
func (s *Session) Subtotal() float64 {
	total := 0.0
	for _, l := range s.Cart {
		total += l.Subtotal()
	}
	return total
}

// AddLine adds qty of product to the cart, merging lines with the same options
func (s *Session) AddLine(p fixtures.Product, size, color string, qty int) CartLine {
	for i, l := range s.Cart {
		if l.Product.SKU == p.SKU && l.Size == size && l.Color == color {
			s.Cart[i].Qty += qty
			return s.Cart[i]
		}
	}
	s.nextLine++
	line := CartLine{ID: s.nextLine, Product: p, Size: size, Color: color, Qty: qty}
	s.Cart = append(s.Cart, line)
	return line
}

// Line returns the cart line with the given id
func (s *Session) Line(id int) (*CartLine, error) {
	for i := range s.Cart {
		if s.Cart[i].ID == id {
			return &s.Cart[i], nil
		}
	}
	return nil, ErrUnknownLine
}

// RemoveLine drops a cart line
func (s *Session) RemoveLine(id int) error {
	for i, l := range s.Cart {
		if l.ID == id {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			return nil
		}
	}
	return ErrUnknownLine
}

// AddFlash queues a message for the next rendered page
func (s *Session) AddFlash(kind, text string) {
	s.Flash = append(s.Flash, Flash{Kind: kind, Text: text})
}

// snapshot copies the session for rendering and clears the flash queue
func (s *Session) snapshot() Session {
	out := *s
	out.Cart = append([]CartLine(nil), s.Cart...)
	out.Compare = append([]fixtures.Product(nil), s.Compare...)
	s.Flash = nil
	return out
}

// Store is the in-memory state of the stub storefront
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	customers map[string]*Customer
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		customers: make(map[string]*Customer),
	}
}

// Register adds a customer account
func (st *Store) Register(c Customer) (*Customer, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	key := strings.ToLower(c.Email)
	if _, ok := st.customers[key]; ok {
		return nil, ErrAccountExists
	}
	st.customers[key] = &c
	return &c, nil
}

// Authenticate returns the customer for valid credentials
func (st *Store) Authenticate(email, password string) (*Customer, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	c, ok := st.customers[strings.ToLower(email)]
	if !ok || c.Password != password {
		return nil, ErrInvalidLogin
	}
	return c, nil
}

// Open returns the session for id, starting a new one when id is unknown
func (st *Store) Open(id string) (sessionID string, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; ok && id != "" {
		return id, false
	}
	s := &Session{ID: uuid.NewString()}
	st.sessions[s.ID] = s
	return s.ID, true
}

// Update runs fn with the session locked
func (st *Store) Update(id string, fn func(*Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		s = &Session{ID: id}
		st.sessions[id] = s
	}
	return fn(s)
}

// Snapshot returns a copy of the session and consumes its flash messages
func (st *Store) Snapshot(id string) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return Session{ID: id}
	}
	return s.snapshot()
}

// Sessions is the number of open sessions
func (st *Store) Sessions() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
