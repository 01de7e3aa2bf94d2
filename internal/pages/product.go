package pages

import (
	"strings"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Where a product is acted on.
type Where string

const (
	OnListing Where = "Listing Page"
	OnPDP     Where = "PDP"
)

type cellElement struct {
	name      string
	selector  string
	equipment bool
}

var productCell = []cellElement{
	{"image", selectors.ProductImage, true},
	{"title", selectors.ProductTitle, true},
	{"reviews", selectors.ProductReviews, true},
	{"price", selectors.PriceBox, true},
	{"size", selectors.ProductSize, false},
	{"colors", selectors.ProductColors, false},
	{"add to cart", selectors.AddToCart, true},
}

// Product covers product cells on listings and the product detail page.
type Product struct {
	ui
}

func (p *Product) item() playwright.Locator {
	return p.get(selectors.ProductItem).First()
}

func (p *Product) details() playwright.Locator {
	return p.item().Locator(selectors.ProductItemDetails).First()
}

func (p *Product) onPDP() bool {
	return p.countOf(p.get(selectors.ProductInfoMain)) > 0
}

func (p *Product) scope(where Where) playwright.Locator {
	if where == OnPDP {
		return p.get(selectors.ProductInfoMain).First()
	}
	return p.details()
}

// VerifyProductCellElements checks the first product cell. Swatches are not
// expected on equipment.
func (p *Product) VerifyProductCellElements(isEquipment bool) {
	p.t.Helper()
	p.step("verifying product cell elements", zap.Bool("equipment", isEquipment))

	item := p.item()
	p.hover(item)
	for _, e := range productCell {
		if isEquipment && !e.equipment {
			continue
		}
		p.visible(item.Locator(e.selector).First(), "product cell should show %s", e.name)
	}
}

// VerifyActionElements hovers the first product and checks the wishlist and
// compare actions are rendered.
func (p *Product) VerifyActionElements() {
	p.t.Helper()
	for _, sel := range []string{selectors.WishlistAction, selectors.CompareAction} {
		p.step("verifying hidden product action", zap.String("selector", sel))
		item := p.item()
		p.visible(item)
		p.hover(item)
		p.exists(item.Locator(selectors.ActionsSecondary + " " + sel))
	}
}

// ProductName is the trimmed name of the first listed product.
func (p *Product) ProductName() string {
	p.t.Helper()
	return strings.TrimSpace(p.textOf(p.details().Locator(selectors.ProductItemName).First()))
}

// PDPName is the trimmed title of the product detail page.
func (p *Product) PDPName() string {
	p.t.Helper()
	return strings.TrimSpace(p.textOf(p.get(selectors.PDPPageTitle).First()))
}

// SelectSize picks a size swatch by its text.
func (p *Product) SelectSize(where Where, value string) {
	p.t.Helper()
	p.step("selecting size", zap.String("where", string(where)), zap.String("size", value))

	attr := p.scope(where).Locator(selectors.SwatchAttributeOf("size")).First()
	option := attr.Locator(selectors.SwatchRoleOption).Filter(playwright.LocatorFilterOptions{HasText: value}).First()
	p.click(option)
	p.hasClass(option, "selected")
}

// SelectColor picks a color swatch by its option label.
func (p *Product) SelectColor(where Where, value string) {
	p.t.Helper()
	p.step("selecting color", zap.String("where", string(where)), zap.String("color", value))

	attr := p.scope(where).Locator(selectors.SwatchAttributeOf("color")).First()
	option := attr.Locator(selectors.OptionLabel(value)).First()
	p.click(option)
	p.hasClass(option, "selected")
}

// configureDefaults picks the first size and color when the product offers
// swatches.
func (p *Product) configureDefaults(scope playwright.Locator) {
	p.t.Helper()
	for _, attr := range []string{"size", "color"} {
		options := scope.Locator(selectors.SwatchAttributeOf(attr) + " " + selectors.SwatchOption)
		if p.countOf(options) == 0 {
			continue
		}
		p.step("selecting default option", zap.String("attribute", attr))
		p.click(options.First())
	}
}

// AddToCart adds the first listed product, or the PDP product, to the cart
// and waits for the cart request. Unless configured is set, the first size
// and color are chosen first.
func (p *Product) AddToCart(where Where, configured bool) {
	p.t.Helper()
	p.step("adding to cart", zap.String("where", string(where)))

	switch where {
	case OnListing:
		item := p.item()
		p.hover(item)
		if !configured {
			p.configureDefaults(p.details())
		}
		p.do(routes.AddToCartResult, func() error {
			return item.Locator(selectors.AddToCart).First().Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
		})
	case OnPDP:
		if !configured {
			p.configureDefaults(p.scope(OnPDP))
		}
		button := p.get(selectors.AddToCartButtonPDP)
		p.visible(button)
		p.do(routes.AddToCartResult, func() error { return button.Click() })
	default:
		require.Failf(p.t, "unknown product location", "%q", where)
	}
}

// AddToWishlistOrCompare clicks the wishlist or compare action of the PDP
// product, or of the first listed product, and waits for the request.
func (p *Product) AddToWishlistOrCompare(kind string) {
	p.t.Helper()
	p.step("adding to wishlist or compare", zap.String("kind", kind))

	var key, listingSel, pdpSel string
	switch strings.ToLower(kind) {
	case "wishlist":
		key, listingSel, pdpSel = routes.AddToWishlistResult, selectors.WishlistAction, selectors.PDPWishlistAction
	case "compare":
		key, listingSel, pdpSel = routes.AddToCompareResult, selectors.CompareAction, selectors.PDPCompareAction
	default:
		require.Failf(p.t, "unknown product action", "%q", kind)
	}

	var link playwright.Locator
	if p.onPDP() {
		link = p.get(pdpSel).First()
	} else {
		item := p.item()
		p.hover(item)
		link = item.Locator(selectors.AddToLinks + " " + listingSel).First()
	}
	p.do(key, func() error {
		return link.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
	})
}

// CompareProducts opens the comparison page from the sidebar.
func (p *Product) CompareProducts() {
	p.t.Helper()
	p.step("opening compare products")
	link := p.get(selectors.CompareLink).First()
	p.visible(link)
	p.do(routes.CompareProductsPage, func() error { return link.Click() })
}

// CompareTable returns the rows of the comparison table.
func (p *Product) CompareTable() playwright.Locator {
	return p.get(selectors.ProductComparisonTable)
}

// Related returns the related product cells of a PDP.
func (p *Product) Related() playwright.Locator {
	return p.get(selectors.RelatedProductsBlock + " " + selectors.ProductItem)
}

// VerifyMainPDPElements checks the PDP layout blocks.
func (p *Product) VerifyMainPDPElements() {
	p.t.Helper()
	p.step("verifying main PDP elements")
	for _, sel := range []string{selectors.PDPPageTitle, selectors.ProductInfoMain, selectors.ProductGallery, selectors.ProductDetails} {
		p.visible(p.get(sel).First(), "%s should be visible", sel)
	}
}

// DisplayProductInfo checks name, price, stock, sku, swatches and the add to
// cart controls.
func (p *Product) DisplayProductInfo() {
	p.t.Helper()
	p.step("verifying product info")

	require.NotEmpty(p.t, p.PDPName(), "product title")
	p.text(p.get(selectors.ProductPriceBox).First(), "$")
	p.text(p.get(selectors.ProductInfoMain+" "+selectors.ProductStock).First(), "In stock")
	require.NotEmpty(p.t, strings.TrimSpace(p.textOf(p.get(selectors.ProductSKU).First())), "product sku")

	if p.countOf(p.get(selectors.ProductSizeOption)) > 0 {
		p.visible(p.get(selectors.ProductSizeOption).First())
		p.visible(p.get(selectors.ProductColorOption).First())
	}
	p.must(p.expect.Locator(p.get(selectors.QtyInputPDP)).ToHaveValue("1"))
	p.visible(p.get(selectors.AddToCartButtonPDP))
}

// VerifyTabSwitching opens each tab and checks its content is shown.
func (p *Product) VerifyTabSwitching(tabs []fixtures.Element) {
	p.t.Helper()
	for _, tab := range tabs {
		p.step("switching tab", zap.String("tab", tab.Name))
		p.click(p.get(selectors.TabLink(tab.Selector)).First())
		p.visible(p.get(tab.Selector).First(), "tab %q content", tab.Name)
	}
}

// DetailsSectionText checks the Details tab carries a description.
func (p *Product) DetailsSectionText() {
	p.t.Helper()
	p.step("verifying details section")
	p.click(p.get(selectors.TabLink(selectors.DescriptionTab)).First())
	desc := p.get(selectors.DescriptionText).First()
	p.visible(desc)
	require.NotEmpty(p.t, strings.TrimSpace(p.textOf(desc)), "product description")
}

// MoreInformationSections checks the More Information tab lists attributes.
func (p *Product) MoreInformationSections() {
	p.t.Helper()
	p.step("verifying more information section")
	p.click(p.get(selectors.TabLink(selectors.AdditionalTab)).First())
	table := p.get(selectors.AdditionalInfoTable)
	p.visible(table)
	p.exists(table.Locator("th"))
}

// AddDefaultProductToCart adds the hoodie in size M and its first color.
func (p *Product) AddDefaultProductToCart() {
	p.t.Helper()
	p.step("adding default product to cart")
	p.visitAndWait(routes.HoodiePDP)
	p.SelectSize(OnPDP, "M")
	first := p.get(selectors.ProductColorOption).First()
	p.click(first)
	p.AddToCart(OnPDP, true)
}

// AddDefaultEquipmentProductToCart adds the water bottle.
func (p *Product) AddDefaultEquipmentProductToCart() {
	p.t.Helper()
	p.step("adding default equipment product to cart")
	p.visitAndWait(routes.WaterBottlePDP)
	p.AddToCart(OnPDP, true)
}
