package pages

import (
	"github.com/lumaqa/lumacheck/internal/selectors"
	"go.uber.org/zap"
)

var arrows = []string{"prev", "next"}

// Gallery covers the product page image gallery.
type Gallery struct {
	ui
}

// Gallery checks the gallery placeholder is shown.
func (g *Gallery) Gallery() {
	g.t.Helper()
	g.visible(g.get(selectors.ProductMedia).Locator(selectors.GalleryPlaceholder).First())
}

// VerifyArrowScrolling clicks each arrow and checks an image stays active.
func (g *Gallery) VerifyArrowScrolling() {
	g.t.Helper()
	g.step("verifying arrow scrolling")
	for _, arrow := range arrows {
		g.step("clicking arrow", zap.String("arrow", arrow))
		g.forceClick(g.get(selectors.Arrow(arrow)).First())
		g.visible(g.get(selectors.ActiveImage).First())
	}
}
