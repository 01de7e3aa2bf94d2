package selectors

const (
	MiniCartToggle      = `[data-block="minicart"] .showcart`
	MiniCartWrapper     = "#minicart-content-wrapper"
	MiniCartItemsWrap   = "#minicart-items-wrapper"
	CloseMiniCartButton = "#btn-minicart-close"
	ItemsTotal          = ".items-total .count"
	PriceWrapper        = ".amount .price-wrapper"
	CartProductDetails  = ".product-item-details"
	ProductOptions      = "dl.product.options"
	QtyValue            = ".details-qty .value"
	EditButton          = ".action.edit"
	DeleteButton        = ".action.delete"
	UpdateCartForm      = "#product_addtocart_form"
	SizeSwatch          = ".swatch-attribute.size"
	CheckoutButton      = "#top-cart-btn-checkout"
	UpdateCartButton    = "#product-updatecart-button"
	QtyInput            = ".details-qty input.cart-item-qty"
	UpdateMiniCartBtn   = ".details-qty button.update-cart-item"
	SeeDetailsToggle    = ".product.options .toggle"
	ViewAndEditCart     = "a.action.viewcart"

	// Cart page.
	CartItem                 = "#shopping-cart-table .cart.item"
	CartPageProductName      = ".product-item-name a"
	ProductCartOptions       = ".item-options"
	CartProductPrice         = ".col.price .price"
	ProductQtyInput          = ".col.qty input.qty"
	ProductSubtotal          = ".col.subtotal .price"
	EditButtonCart           = ".action-edit"
	DeleteButtonCart         = ".action-delete"
	CartProductImage         = ".product-image-photo"
	CartSummary              = ".cart-summary"
	CartTotals               = "#cart-totals"
	QtyInputCart             = "#shopping-cart-table input.qty"
	UpdateShoppingCartButton = `button[name="update_cart_action"][value="update_qty"]`
	CheckoutSection          = ".checkout-methods-items"
	ProceedToCheckoutButton  = `button[data-role="proceed-to-checkout"]`
	MultiCheckoutButton      = ".action.multicheckout"
	CouponBlock              = "#block-discount .title"
	CouponCodeInput          = "#coupon_code"
	ApplyCouponButton        = "#discount-coupon-form .action.apply"
	CancelCouponButton       = "#discount-coupon-form .action.cancel"
	ShippingBlockTitle       = "#block-shipping .title"
	CountrySelect            = `select[name="country_id"]`
	StateSelect              = `select[name="region_id"]`
	ZipInput                 = `input[name="postcode"]`
	UpdateActionButton       = ".action.update"
	ShippingRateOptions      = "#co-shipping-method-form"
	EmptyCartMessage         = ".cart-empty"
)
