package selectors

import "fmt"

const (
	SidebarMain              = ".sidebar-main"
	SidebarAdditional        = ".sidebar-additional"
	Block                    = ".block"
	ToolbarAmount            = ".toolbar-amount"
	ToolbarNumber            = ".toolbar-number"
	LimiterOptions           = "#limiter.limiter-options"
	SorterOptions            = "#sorter.sorter-options"
	SortDirection            = ".sorter-action"
	FilterOptions            = ".filter-options"
	FilterOptionsTitle       = ".filter-options-title"
	FilterOptionsItem        = ".filter-options-item"
	FilterOptionsCollapsible = `[data-role="collapsible"]`
	FilterOptionsContent     = ".filter-options-content"
	FilterOptionsLink        = ".filter-options-content a"
	SwatchAttribute          = ".swatch-attribute"
	SwatchOption             = ".swatch-option"
	FilterOptionsItemActive  = ".filter-options-item.allow.active"
	FilterValue              = ".filter-value"
	FilterClear              = ".filter-clear"
	PageTitle                = ".page-title"
	ToolbarProducts          = ".toolbar-products"
	ProductItems             = ".product-items"
	FiltersBlock             = "#layered-filter-block"
	CompareSection           = "#block-compare-heading"
	WishlistSection          = ".block-wishlist"
	GridWidget               = ".widget-product-grid"
	ProductItem              = "li.product-item"
	Info                     = "span.info"
	WidgetBlocks             = ".block-promo"
	GridBlocksHeading        = ".content-heading"
	ProductItemPrice         = ".product-item .price-box .price"
	ProductItemName          = ".product-item-name"
	ListedProducts           = ".products.wrapper li.product-item"
	SorterSelected           = "#sorter.sorter-options option:checked"
)

// ProductsWrapperMode matches the product list rendered in grid or list mode.
func ProductsWrapperMode(mode string) string {
	return fmt.Sprintf(".products.wrapper.%s.products-%s", mode, mode)
}

// ModeButton matches the toolbar link that switches to mode.
func ModeButton(mode string) string {
	return fmt.Sprintf("a.mode-%s", mode)
}

// ModeActive matches the toolbar marker of the current mode.
func ModeActive(mode string) string {
	return fmt.Sprintf("strong.mode-%s.active", mode)
}

// FilterTitle matches the collapsible title of a layered-navigation filter.
func FilterTitle(name string) string {
	return fmt.Sprintf("%s %s:has-text(%q)", FiltersBlock, FilterOptionsTitle, name)
}

// FilterItem matches the whole filter block (title and content) by name.
func FilterItem(name string) string {
	return fmt.Sprintf("%s %s:has(%s:has-text(%q))", FiltersBlock, FilterOptionsItem, FilterOptionsTitle, name)
}
