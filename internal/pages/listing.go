package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Sort labels offered by the listing toolbar.
const (
	SortPosition = "Position"
	SortName     = "Product Name"
	SortPrice    = "Price"
)

var defaultListingElements = []string{
	selectors.PageTitle,
	selectors.ToolbarProducts,
	selectors.ProductItems,
}

// Listing covers category product listings, their toolbar and filters.
type Listing struct {
	ui
}

func visibleOnly(selector string) string {
	return selector + " >> visible=true"
}

// VerifyListingElements checks each selector is shown. With no selectors it
// checks title, toolbar and product grid.
func (l *Listing) VerifyListingElements(sels ...string) {
	l.t.Helper()
	if len(sels) == 0 {
		sels = defaultListingElements
	}
	for _, sel := range sels {
		l.step("verifying listing element", zap.String("selector", sel))
		l.visible(l.get(sel).First(), "%s should be visible", sel)
	}
}

func (l *Listing) ShouldContainFilterBlock() {
	l.t.Helper()
	l.visible(l.get(selectors.SidebarMain).First())
}

func (l *Listing) ShouldContainAdditionalSidebar() {
	l.t.Helper()
	l.visible(l.get(selectors.SidebarAdditional).First())
}

// toolbarRoute is the registry route for key when the page is the listing it
// was recorded on, or the same query on the current listing otherwise.
func (l *Listing) toolbarRoute(key, param string) routes.Route {
	l.t.Helper()
	route, err := l.routes.Interceptor().Registry().Lookup(key)
	l.must(err)

	current, err := url.Parse(l.page.URL())
	l.must(err)
	if strings.HasPrefix(route.Pattern, current.Path+"?") {
		return route
	}
	adapted, err := routes.NewRoute(key, http.MethodGet, current.Path+"?"+param+"=")
	l.must(err)
	return adapted
}

func (l *Listing) doToolbar(key, param string, action func() error) {
	l.t.Helper()
	route := l.toolbarRoute(key, param)
	_, err := l.routes.DoRoute(context.Background(), route, action)
	require.NoError(l.t, err, "waiting for @%s", key)
}

// ChangeLimiter picks n products per page.
func (l *Listing) ChangeLimiter(n int) {
	l.t.Helper()
	l.step("changing limiter", zap.Int("limit", n))

	limiter := l.get(visibleOnly(selectors.LimiterOptions)).First()
	l.doToolbar(routes.Limiter, "product_list_limit", func() error {
		_, err := limiter.SelectOption(playwright.SelectOptionValues{Labels: &[]string{strconv.Itoa(n)}})
		return err
	})
}

// VerifyProductsNumber checks the listing shows exactly n products.
func (l *Listing) VerifyProductsNumber(n int) {
	l.t.Helper()
	l.step("verifying products number", zap.Int("want", n))
	l.count(l.get(selectors.ListedProducts), n)
}

// SortBy orders the listing by label.
func (l *Listing) SortBy(label string) {
	l.t.Helper()
	l.step("sorting", zap.String("by", label))

	sorter := l.get(visibleOnly(selectors.SorterOptions)).First()
	l.doToolbar(routes.Sorter, "product_list_order", func() error {
		_, err := sorter.SelectOption(playwright.SelectOptionValues{Labels: &[]string{label}})
		return err
	})
}

// VerifySorting checks the sorter shows label and, for name and price, that
// the listed products are in ascending order.
func (l *Listing) VerifySorting(label string) {
	l.t.Helper()
	l.step("verifying sorting", zap.String("by", label))

	l.text(l.get(visibleOnly(selectors.SorterSelected)).First(), label)

	switch label {
	case SortName:
		names, err := l.get(selectors.ListedProducts + " " + selectors.ProductItemName).AllTextContents()
		l.must(err)
		require.True(l.t, sortedByName(names), "products should be sorted by name: %v", names)
	case SortPrice:
		texts, err := l.get(selectors.ListedProducts + " " + selectors.FinalPrice).AllTextContents()
		l.must(err)
		prices, err := parsePrices(texts)
		l.must(err)
		require.True(l.t, sort.Float64sAreSorted(prices), "products should be sorted by price: %v", prices)
	}
}

// ChangeMode switches the listing between grid and list. Selecting the mode
// already shown sends no request.
func (l *Listing) ChangeMode(mode string) {
	l.t.Helper()
	l.step("changing mode", zap.String("mode", mode))

	if l.countOf(l.get(selectors.ModeActive(mode))) > 0 {
		l.step("mode already active", zap.String("mode", mode))
		return
	}
	button := l.get(visibleOnly(selectors.ModeButton(mode))).First()
	l.doToolbar(routes.Mode, "product_list_mode", func() error { return button.Click() })
}

func (l *Listing) VerifyCurrentMode(mode string) {
	l.t.Helper()
	l.visible(l.get(selectors.ModeActive(mode)).First())
	l.visible(l.get(selectors.ProductsWrapperMode(mode)).First())
}

// VerifyFilterList checks a list filter is offered.
func (l *Listing) VerifyFilterList(name string) {
	l.t.Helper()
	l.step("verifying filter", zap.String("filter", name))
	l.visible(l.get(selectors.FilterTitle(name)).First())
}

// VerifyFilterBlocks checks a swatch filter is offered and renders its
// swatch block at position index.
func (l *Listing) VerifyFilterBlocks(name string, index int) {
	l.t.Helper()
	l.VerifyFilterList(name)
	l.exists(l.get(selectors.FiltersBlock+" "+selectors.FilterOptionsContent+" "+selectors.SwatchAttribute).Nth(index),
		"swatch filter %q", name)
}

// ShouldBeCollapsible expands the filter and checks it reports itself open.
func (l *Listing) ShouldBeCollapsible(name string) {
	l.t.Helper()
	l.step("expanding filter", zap.String("filter", name))

	title := l.get(selectors.FilterTitle(name)).First()
	l.click(title)
	l.must(l.expect.Locator(title).ToHaveAttribute("aria-expanded", "true"))
	l.hasClass(l.get(selectors.FilterItem(name)).First(), "active")
}

// Filter applies the first option of the expanded list filter.
func (l *Listing) Filter() {
	l.t.Helper()
	l.step("applying filter")
	option := l.get(selectors.FilterOptionsItemActive + " " + selectors.FilterOptionsLink).First()
	l.visible(option)
	l.click(option)
}

// FilterByAttributes applies the first swatch of the index-th swatch filter.
func (l *Listing) FilterByAttributes(attributeType string, index int) {
	l.t.Helper()
	l.step("applying swatch filter", zap.String("type", attributeType), zap.Int("index", index))

	block := l.get(selectors.FiltersBlock + " " + selectors.FilterOptionsContent + " " + selectors.SwatchAttribute).Nth(index)
	swatch := block.Locator(selectors.SwatchOption + "." + attributeType).First()
	l.forceClick(swatch)
}

func (l *Listing) VerifyFilterValue() {
	l.t.Helper()
	l.visible(l.get(selectors.FilterValue).First())
}

// ClearFilters removes every applied filter.
func (l *Listing) ClearFilters() {
	l.t.Helper()
	l.step("clearing filters")
	clear := l.get(selectors.FilterClear).First()
	l.visible(clear)
	l.click(clear)
}

func sortedByName(names []string) bool {
	normalized := make([]string, len(names))
	for i, n := range names {
		normalized[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return sort.StringsAreSorted(normalized)
}

func parsePrices(texts []string) ([]float64, error) {
	prices := make([]float64, 0, len(texts))
	for _, t := range texts {
		clean := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(t))
		p, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", t, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}
