// Package pages holds the page objects the scenarios drive. Every page object
// fails the owning test on error, so call sites read as a list of steps.
package pages

import (
	"context"
	"regexp"
	"testing"

	"github.com/lumaqa/lumacheck/internal/browser"
	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/fixtures"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ui is embedded by every page object.
type ui struct {
	t      testing.TB
	page   playwright.Page
	routes *routes.Client
	log    *zap.Logger
	expect playwright.PlaywrightAssertions
}

func newUI(t testing.TB, s *browser.Session) ui {
	return ui{
		t:      t,
		page:   s.Page(),
		routes: s.Routes(),
		log:    s.Logger().With(zap.String("test", t.Name())),
		expect: playwright.NewPlaywrightAssertions(config.Milliseconds(s.Config().CommandTimeout)),
	}
}

func (u *ui) step(msg string, fields ...zap.Field) {
	u.log.Info(msg, fields...)
}

func (u *ui) get(selector string) playwright.Locator {
	return u.page.Locator(selector)
}

// containing is the first match of selector whose text contains text.
func (u *ui) containing(selector, text string) playwright.Locator {
	return u.page.Locator(selector).Filter(playwright.LocatorFilterOptions{HasText: text}).First()
}

func (u *ui) must(err error, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, err, msgAndArgs...)
}

func (u *ui) visible(l playwright.Locator, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Locator(l).ToBeVisible(), msgAndArgs...)
}

func (u *ui) hidden(l playwright.Locator, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Locator(l).Not().ToBeVisible(), msgAndArgs...)
}

func (u *ui) text(l playwright.Locator, text string, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Locator(l).ToContainText(text), msgAndArgs...)
}

func (u *ui) count(l playwright.Locator, n int, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Locator(l).ToHaveCount(n), msgAndArgs...)
}

func (u *ui) exists(l playwright.Locator, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Locator(l).Not().ToHaveCount(0), msgAndArgs...)
}

func (u *ui) hasClass(l playwright.Locator, class string) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Locator(l).ToHaveClass(classPattern(class)))
}

func (u *ui) urlContains(fragment string) {
	u.t.Helper()
	require.NoError(u.t, u.expect.Page(u.page).ToHaveURL(regexp.MustCompile(regexp.QuoteMeta(fragment))),
		"url should contain %s", fragment)
}

func (u *ui) click(l playwright.Locator, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, l.Click(), msgAndArgs...)
}

func (u *ui) forceClick(l playwright.Locator, msgAndArgs ...interface{}) {
	u.t.Helper()
	require.NoError(u.t, l.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)}), msgAndArgs...)
}

func (u *ui) fill(l playwright.Locator, value string) {
	u.t.Helper()
	require.NoError(u.t, l.Fill(value))
}

func (u *ui) hover(l playwright.Locator) {
	u.t.Helper()
	require.NoError(u.t, l.Hover())
}

func (u *ui) countOf(l playwright.Locator) int {
	u.t.Helper()
	n, err := l.Count()
	require.NoError(u.t, err)
	return n
}

func (u *ui) textOf(l playwright.Locator) string {
	u.t.Helper()
	s, err := l.TextContent()
	require.NoError(u.t, err)
	return s
}

// visitAndWait navigates to the route stored under key and waits for it.
func (u *ui) visitAndWait(key string, ref ...string) routes.Hit {
	u.t.Helper()
	hit, err := u.routes.VisitAndWait(context.Background(), key, ref...)
	require.NoError(u.t, err, "visit %s", key)
	return hit
}

// do runs action and waits for the route stored under key.
func (u *ui) do(key string, action func() error) routes.Hit {
	u.t.Helper()
	hit, err := u.routes.Do(context.Background(), key, action)
	require.NoError(u.t, err, "waiting for @%s", key)
	return hit
}

func classPattern(class string) *regexp.Regexp {
	return regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(class) + `(\s|$)`)
}

// Site bundles every page object for one scenario.
type Site struct {
	Session  *browser.Session
	Account  *config.Account
	Catalog  *fixtures.Catalog
	Routes   *routes.Client
	Auth     *Authorization
	Forms    *Forms
	Results  *Results
	Nav      *Navigation
	Search   *Search
	Listing  *Listing
	Product  *Product
	Gallery  *Gallery
	Widgets  *Widgets
	Reviews  *Reviews
	Cart     *CartPage
	Checkout *Checkout
}

// New builds the page objects for t on top of s. account may be nil for
// scenarios that never log in.
func New(t testing.TB, s *browser.Session, account *config.Account) *Site {
	u := newUI(t, s)
	catalog := fixtures.MustLoad()

	forms := &Forms{ui: u}
	res := &Results{ui: u}
	product := &Product{ui: u}
	cart := &CartPage{ui: u}

	return &Site{
		Session:  s,
		Account:  account,
		Catalog:  catalog,
		Routes:   s.Routes(),
		Auth:     &Authorization{ui: u, forms: forms, results: res},
		Forms:    forms,
		Results:  res,
		Nav:      &Navigation{ui: u},
		Search:   &Search{ui: u},
		Listing:  &Listing{ui: u},
		Product:  product,
		Gallery:  &Gallery{ui: u},
		Widgets:  &Widgets{ui: u},
		Reviews:  &Reviews{ui: u, forms: forms},
		Cart:     cart,
		Checkout: &Checkout{ui: u, forms: forms, cart: cart, product: product, results: res},
	}
}
