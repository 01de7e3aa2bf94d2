package pages

import (
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Widgets covers product grids and promo blocks.
type Widgets struct {
	ui
}

// GridWidgetItems returns the products of the visible grid widget.
func (w *Widgets) GridWidgetItems() playwright.Locator {
	w.t.Helper()
	w.step("getting grid widget")
	grid := w.get(selectors.GridWidget).First()
	w.visible(grid)
	return grid.Locator(selectors.ProductItem)
}

// VerifyNumberOfElements checks selector matches exactly n elements.
func (w *Widgets) VerifyNumberOfElements(selector string, n int) {
	w.t.Helper()
	w.step("verifying number of elements", zap.String("selector", selector), zap.Int("want", n))
	w.count(w.get(selector), n, "%s", selector)
}

// VerifyLocatorCount is VerifyNumberOfElements for a locator already in hand.
func (w *Widgets) VerifyLocatorCount(l playwright.Locator, n int) {
	w.t.Helper()
	w.count(l, n)
}

// VerifyURLOnClick clicks the index-th match of selector and checks the URL.
func (w *Widgets) VerifyURLOnClick(selector string, index int, url string) {
	w.t.Helper()
	w.step("verifying redirection url", zap.String("selector", selector), zap.Int("index", index), zap.String("url", url))
	w.click(w.get(selector).Nth(index))
	w.urlContains(url)
}

// VerifyWidgetInfo checks the index-th promo caption.
func (w *Widgets) VerifyWidgetInfo(index int, info string) {
	w.t.Helper()
	w.step("verifying widget info", zap.Int("index", index))
	w.text(w.get(selectors.Info).Nth(index), info)
}
