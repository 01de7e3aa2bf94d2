package selectors

import "fmt"

const (
	Thumbnail              = ".fotorama__thumb"
	DescriptionTab         = "#description"
	AdditionalTab          = "#additional"
	ReviewsTab             = "#reviews"
	RelatedProductsBlock   = ".block.related"
	ProductItemDetails     = ".product-item-details"
	ProductImage           = ".product-image-photo"
	ProductTitle           = ".product-item-name"
	ProductReviews         = ".rating-result"
	ProductPrice           = ".normal-price"
	ProductSize            = ".swatch-attribute.size"
	ProductColors          = ".swatch-attribute.color"
	AddToCart              = ".action.tocart"
	WishlistAction         = "a.action.towishlist"
	CompareAction          = "a.action.tocompare"
	ActionsSecondary       = ".actions-secondary"
	AddToLinks             = `[data-role="add-to-links"]`
	ProductInfoMain        = ".product-info-main"
	ProductGallery         = ".product.media"
	ProductDetails         = ".product.info.detailed"
	PDPPageTitle           = "h1.page-title span"
	ProductStock           = ".stock"
	ProductSKU             = ".product.attribute.sku .value"
	ProductPriceBox        = ".product-info-main .price-box"
	ProductSizeOption      = ".swatch-attribute.size .swatch-option"
	ProductColorOption     = ".swatch-attribute.color .swatch-option"
	AdditionalInfoSection  = "#additional"
	AdditionalInfoTable    = "#product-attribute-specs-table"
	DescriptionText        = "#description"
	AddToCartButtonPDP     = "#product-addtocart-button"
	QtyInputPDP            = "#qty"
	ProductComparisonTable = "#product-comparison tr"
	CompareLink            = ".actions-toolbar a.action.compare"
	ProductMedia           = ".product.media"
	GalleryPlaceholder     = ".gallery-placeholder"
	ActiveImage            = ".fotorama__stage__frame.fotorama__active img"
	SwatchRoleOption       = `[role="option"]`
	PDPTabTitle            = ".product.data.items .data.item.title"
	PDPWishlistAction      = ".product-addto-links a.action.towishlist"
	PDPCompareAction       = ".product-addto-links a.action.tocompare"
	PriceBox               = ".price-box"
	FinalPrice             = `[data-price-type="finalPrice"] .price`
)

// Arrow matches the gallery navigation arrow for "prev" or "next".
func Arrow(direction string) string {
	return fmt.Sprintf(".fotorama__arr--%s", direction)
}

// SwatchAttributeOf matches the swatch block for an attribute such as "size" or "color".
func SwatchAttributeOf(attribute string) string {
	return fmt.Sprintf(".swatch-attribute.%s", attribute)
}

// OptionLabel matches a swatch option by its accessible label.
func OptionLabel(label string) string {
	return fmt.Sprintf(`[option-label=%q]`, label)
}

// TabLink matches a PDP tab header anchored at the given content id.
func TabLink(contentID string) string {
	return fmt.Sprintf(`%s a[href="%s"]`, PDPTabTitle, contentID)
}
