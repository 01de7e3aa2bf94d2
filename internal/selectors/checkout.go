package selectors

import "fmt"

// One-page checkout.
const (
	ProgressBar                  = ".opc-progress-bar"
	ProgressBarStepItem          = ".opc-progress-bar-item"
	ShippingAddressSection       = "#checkout-step-shipping"
	ShippingMethodSection        = "#checkout-step-shipping_method"
	SummarySidebarSection        = ".opc-block-summary"
	ItemsInCartSection           = ".block.items-in-cart"
	PaymentMethodsSection        = ".payment-methods"
	DiscountSection              = ".payment-option.discount-code"
	ShippingInfoSection          = ".opc-block-shipping-information"
	ShippingInfoTitle            = ".shipping-information-title"
	CheckoutProductTitle         = ".product-item-name"
	CheckoutProductQty           = ".details-qty .value"
	CheckoutProductPrice         = ".subtotal .price"
	CheckoutProductOptions       = ".product.options"
	CheckoutProductImage         = ".product-image-container"
	NextButton                   = "#shipping-method-buttons-container"
	PlaceOrderButton             = ".payment-method._active .actions-toolbar"
	ShippingAddressItem          = ".shipping-address-item"
	ShippingMethodTable          = ".table-checkout-shipping-method"
	ShippingMethodRadio          = `input[type="radio"]`
	BillingSameAsShippingSection = ".billing-address-same-as-shipping-block"
	BillingAddressDetailsSection = ".billing-address-details"
	AddAddressButton             = ".new-address-popup"
	ModalAddressWrap             = ".modal-popup._show .modal-inner-wrap"
	SaveButton                   = ".action-save-address"
	CheckoutCouponBlock          = "#block-discount-heading"
	DiscountCodeInput            = "#discount-code"
	CheckoutApplyCouponButton    = ".action-apply"
	CancelAction                 = ".action-cancel"
	ValidationMessageSection     = ".payment-option-content .messages"
	CreateAccountButton          = "#registration"
	SuccessTYPage                = ".checkout-success"

	// Guest shipping form.
	CheckoutEmailAddressField = "#customer-email-fieldset #customer-email"
	CheckoutFirstNameField    = `#shipping-new-address-form input[name="firstname"]`
	CheckoutLastNameField     = `#shipping-new-address-form input[name="lastname"]`
	StreetAddressField        = `#shipping-new-address-form input[name="street[0]"]`
	CityField                 = `#shipping-new-address-form input[name="city"]`
	ZipPostalCodeField        = `#shipping-new-address-form input[name="postcode"]`
	PhoneNumberField          = `#shipping-new-address-form input[name="telephone"]`
	CountryField              = `#shipping-new-address-form select[name="country_id"]`
	StateProvinceField        = `#shipping-new-address-form select[name="region_id"]`
)

// Multi-address checkout.
const (
	MultiShippingTable            = "#multiship-addresses-table"
	ContinueButton                = ".action.continue"
	BackButton                    = ".action.back"
	AddItemButton                 = "button.action.add"
	ShippingBlock                 = ".block-shipping"
	ShippingToSection             = ".block-shipping .box-shipping-address"
	CartItemsSection              = ".block-shipping .box-items"
	BillingBlock                  = ".block-billing"
	PaymentBox                    = ".box-billing-method"
	OrderReviewTable              = ".block-shipping .table-order-review"
	PlaceOrderMultiShippingButton = "#review-button"
	CheckoutSubmitButton          = ".actions-toolbar .action.primary"
	SendToListControl             = `#multiship-addresses-table select[name^="ship"]`
	SelectShippingAddressDropdown = `#multiship-addresses-table select[name^="ship"]`
	SelectBillingAddressDropdown  = `select[name="billing_address_id"]`
	OptionElements                = "option"
	ProductItemsInTable           = "#multiship-addresses-table tbody tr"
	RemoveItemButton              = "#multiship-addresses-table .action.delete"
	EditItemButton                = ".action.edit"
	UpdateItem                    = ".action.update"
	EditAddressButton             = ".box-shipping-address .action.edit"
	ActionGenericButton           = ".box-billing-address .action"
	QtyFieldMultiShipping         = `td[data-th="Qty"]`
	InputQtyField                 = "input.qty"
	AddressesBlock                = "#multiship-addresses-table"
	AddressesToChoose             = `select[name^="ship"] option`
	MultiShippingSuccessTYPage    = ".multicheckout.success"
	MultiShippingButton           = ".action.multicheckout"

	// New shipping address form reached from the multi-address table.
	NewStreetAddressField   = "#street_1"
	NewCityField            = "#city"
	NewZipPostalCodeField   = "#zip"
	NewPhoneNumberField     = "#telephone"
	NewCountrySelect        = "#country"
	NewStateProvinceSelect  = "#region_id"
	NewAddressSubmitButton  = `button[type="submit"].action.save`
	SavedAddressMessageArea = ".messages .message-success"
)

// DataTh matches a table cell by its responsive column label.
func DataTh(column string) string {
	return fmt.Sprintf(`[data-th=%q]`, column)
}
