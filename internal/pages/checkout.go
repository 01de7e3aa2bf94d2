package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Checkout sections whose elements can be verified.
const (
	SectionShipping      = "Shipping"
	SectionPayments      = "Payments"
	SectionOrderItem     = "Order Item"
	SectionAddresses     = "Addresses"
	SectionReview        = "Review"
	SectionAddNewAddress = "Add New Address"
)

// OrderKind selects the one-page or the multi-address checkout.
type OrderKind string

const (
	OnePageCheckout OrderKind = "Checkout"
	MultiCheckout   OrderKind = "Multicheckout"
)

// AddressKind selects the shipping or billing address dropdown.
type AddressKind string

const (
	ShippingAddress AddressKind = "Shipping"
	BillingAddress  AddressKind = "Billing"
)

const (
	nextSectionInterval = 5 * time.Second
	nextSectionRetries  = 10
)

var errStillOnStep = errors.New("still on the current checkout step")

var onePageSections = map[string][]cellElement{
	SectionShipping: {
		{name: "Progress Bar", selector: selectors.ProgressBar},
		{name: "Shipping Address", selector: selectors.ShippingAddressSection},
		{name: "Shipping Methods", selector: selectors.ShippingMethodSection},
		{name: "Order Summary", selector: selectors.SummarySidebarSection},
	},
	SectionPayments: {
		{name: "Progress Bar", selector: selectors.ProgressBar},
		{name: "Payment Method", selector: selectors.PaymentMethodsSection},
		{name: "Discount Section", selector: selectors.DiscountSection},
		{name: "Order Summary", selector: selectors.SummarySidebarSection},
		{name: "Shipping Information", selector: selectors.ShippingInfoSection},
	},
	SectionOrderItem: {
		{name: "title", selector: selectors.CheckoutProductTitle},
		{name: "qty", selector: selectors.CheckoutProductQty},
		{name: "price", selector: selectors.CheckoutProductPrice},
		{name: "options", selector: selectors.CheckoutProductOptions},
		{name: "photo", selector: selectors.CheckoutProductImage},
	},
}

var multiAddressSections = map[string][]cellElement{
	SectionAddresses: {
		{name: "Table", selector: selectors.MultiShippingTable},
		{name: "Go to Shipping Information", selector: selectors.ContinueButton},
		{name: "Back to Shopping Cart", selector: selectors.BackButton},
		{name: "Update Qty & Addresses", selector: selectors.UpdateActionButton},
		{name: "Enter a New Address", selector: selectors.AddItemButton},
	},
	SectionShipping: {
		{name: "Shipping Information", selector: selectors.ShippingBlock},
		{name: "Shipping To", selector: selectors.ShippingToSection},
		{name: "Items", selector: selectors.CartItemsSection},
		{name: "Go to Billing Information", selector: selectors.ContinueButton},
		{name: "Back to Select Addresses", selector: selectors.BackButton},
	},
	SectionPayments: {
		{name: "Billing Information", selector: selectors.BillingBlock},
		{name: "Payment Method", selector: selectors.PaymentBox},
		{name: "Go to Review Your Order", selector: selectors.ContinueButton},
		{name: "Back to Shipping Information", selector: selectors.BackButton},
	},
	SectionReview: {
		{name: "Billing Information", selector: selectors.BillingBlock},
		{name: "Shipping Information", selector: selectors.PaymentBox},
		{name: "Items", selector: selectors.OrderReviewTable},
		{name: "Back to Shipping Information", selector: selectors.BackButton},
		{name: "Place Order", selector: selectors.PlaceOrderMultiShippingButton},
	},
}

var multipleAddressColumns = []string{"Product", "Qty", "Send To", "Actions"}

func sectionElements(sections map[string][]cellElement, kind string) ([]cellElement, error) {
	elements, ok := sections[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported section element type: %s", kind)
	}
	return elements, nil
}

// nextStep describes how to leave a multi-address checkout step.
type nextStep struct {
	button   string
	selector string
	route    string
	from     string
}

func nextStepFor(kind string) (nextStep, error) {
	switch kind {
	case SectionAddresses:
		return nextStep{
			button:   "Go to Shipping Information",
			selector: selectors.ContinueButton,
			route:    routes.MultiShippingMethodPage,
			from:     "/multishipping/checkout/addresses/",
		}, nil
	case SectionShipping:
		return nextStep{
			button:   "Go to Billing Information",
			selector: selectors.ContinueButton,
			route:    routes.MultiShippingBillingPage,
			from:     "/multishipping/checkout/shipping/",
		}, nil
	case SectionAddNewAddress:
		return nextStep{
			button:   "Enter a New Address",
			selector: selectors.AddItemButton,
			route:    routes.MultiShipNewAddressPage,
			from:     "/multishipping/checkout/addresses/",
		}, nil
	}
	return nextStep{}, fmt.Errorf("unknown section type: %s", kind)
}

type thankYou struct {
	selector string
	message  string
	success  string
	place    string
	cont     string
}

func thankYouFor(kind OrderKind) (thankYou, error) {
	switch kind {
	case OnePageCheckout:
		return thankYou{
			selector: selectors.SuccessTYPage,
			message:  ThankYouMessage,
			success:  routes.SuccessPage,
			place:    selectors.PlaceOrderButton,
			cont:     selectors.ContinueButton,
		}, nil
	case MultiCheckout:
		return thankYou{
			selector: selectors.MultiShippingSuccessTYPage,
			message:  ThankYouMultiMessage,
			success:  routes.SuccessMultiPage,
			place:    selectors.CheckoutSubmitButton,
			cont:     selectors.CheckoutSubmitButton,
		}, nil
	}
	return thankYou{}, fmt.Errorf("unknown checkout type: %s", kind)
}

func addressDropdown(kind AddressKind) (string, error) {
	switch kind {
	case ShippingAddress:
		return selectors.SelectShippingAddressDropdown, nil
	case BillingAddress:
		return selectors.SelectBillingAddressDropdown, nil
	}
	return "", fmt.Errorf("unknown address type: %s", kind)
}

// Step is one page of the multi-address checkout walk.
type Step struct {
	PageTitle   string
	ButtonText  string
	ElementType string
	RouteKey    string
}

// Checkout covers the one-page and the multi-address checkout.
type Checkout struct {
	ui
	forms   *Forms
	cart    *CartPage
	product *Product
	results *Results
}

func (c *Checkout) verifySection(kind string, sections map[string][]cellElement, expandItems bool) {
	c.t.Helper()
	c.step("verifying checkout elements", zap.String("section", kind))

	elements, err := sectionElements(sections, kind)
	require.NoError(c.t, err)
	if expandItems {
		c.ExpandItemsSection()
	}
	for _, e := range elements {
		l := c.get(e.selector).First()
		c.visible(l, "%s should be visible", e.name)
		c.must(c.expect.Locator(l).Not().ToBeEmpty(), "%s should not be empty", e.name)
	}
}

// VerifyCheckoutElements checks a one-page checkout section. The order
// summary items are expanded first except on the payments step.
func (c *Checkout) VerifyCheckoutElements(kind string) {
	c.t.Helper()
	c.verifySection(kind, onePageSections, kind != SectionPayments)
}

func (c *Checkout) VerifyMultipleAddressesCheckoutElements(kind string) {
	c.t.Helper()
	c.verifySection(kind, multiAddressSections, false)
}

func (c *Checkout) VerifyMultipleAddressesTable() {
	c.t.Helper()
	table := c.get(selectors.MultiShippingTable)
	for _, column := range multipleAddressColumns {
		c.step("verifying multiple addresses column", zap.String("column", column))
		c.visible(table.Locator(selectors.DataTh(column)).First())
	}
}

// ShouldShowProgress checks the named progress step is the active one.
func (c *Checkout) ShouldShowProgress(section string) {
	c.t.Helper()
	c.step("verifying checkout progress", zap.String("section", section))
	item := c.get(selectors.ProgressBar + " " + selectors.ProgressBarStepItem).
		Filter(playwright.LocatorFilterOptions{HasText: section}).First()
	c.hasClass(item, "_active")
}

func (c *Checkout) ExpandItemsSection() {
	c.t.Helper()
	c.step("expanding items in cart")
	items := c.get(selectors.SummarySidebarSection).Locator(selectors.ItemsInCartSection).First()
	c.click(items)
	c.hasClass(items, "active")
}

// ClickOnButton clicks the enabled match of selector showing text.
func (c *Checkout) ClickOnButton(selector, text string) {
	c.t.Helper()
	c.step("clicking button", zap.String("selector", selector), zap.String("text", text))
	button := c.containing(selector, text)
	c.visible(button)
	c.must(c.expect.Locator(button).ToBeEnabled())
	c.click(button)
}

// clickUntilLeft clicks and, after every click, waits interval before
// checking whether the URL still contains from. It clicks at most retries+1
// times and returns how many clicks were made.
func clickUntilLeft(ctx context.Context, click func() error, url func() string, from string, interval time.Duration, retries uint64) (int, error) {
	left := func() bool { return !strings.Contains(url(), from) }

	clicks := 0
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), retries), ctx)
	err := backoff.Retry(func() error {
		if clicks > 0 && left() {
			return nil
		}
		clicks++
		if err := click(); err != nil {
			return err
		}
		return errStillOnStep
	}, policy)
	if err == nil {
		return clicks, nil
	}

	// The policy stops right after the last click.
	select {
	case <-ctx.Done():
		return clicks, ctx.Err()
	case <-time.After(interval):
	}
	if left() {
		return clicks, nil
	}
	if errors.Is(err, errStillOnStep) {
		return clicks, err
	}
	return clicks, fmt.Errorf("%w: %v", errStillOnStep, err)
}

// GoToNextSection leaves the current multi-address step. Luma sometimes
// ignores the first click, so the click is repeated every five seconds until
// the URL changes, then the next step's request is awaited.
func (c *Checkout) GoToNextSection(kind string) {
	c.t.Helper()
	next, err := nextStepFor(kind)
	require.NoError(c.t, err)
	c.step("going to next checkout section", zap.String("button", next.button), zap.String("route", next.route))

	c.must(c.routes.Expect(next.route))

	ctx := context.Background()
	click := func() error {
		c.step("clicking next section button", zap.String("button", next.button))
		return c.get(next.selector).First().Click()
	}
	clicks, err := clickUntilLeft(ctx, click, c.page.URL, next.from, nextSectionInterval, nextSectionRetries)
	if err != nil {
		require.Failf(c.t, "checkout step did not advance", "%s after %d clicks: %v", next.button, clicks, err)
	}

	_, err = c.routes.Wait(ctx, next.route)
	require.NoError(c.t, err, "waiting for @%s", next.route)
}

// VerifyShippingSection checks the selected address and shipping method.
func (c *Checkout) VerifyShippingSection() {
	c.t.Helper()
	c.step("verifying selected shipping address and method")
	address := c.get(selectors.ShippingAddressItem).First()
	c.exists(address)
	c.hasClass(address, "selected-item")
	c.must(c.expect.Locator(c.get(selectors.ShippingMethodTable).Locator(selectors.ShippingMethodRadio).First()).ToBeChecked())
}

func (c *Checkout) VerifyBillingSection() {
	c.t.Helper()
	c.step("verifying billing address")
	for _, sel := range []string{selectors.BillingSameAsShippingSection, selectors.BillingAddressDetailsSection} {
		c.visible(c.get(sel).First())
	}
}

// CheckShippingMethod picks the index-th shipping method.
func (c *Checkout) CheckShippingMethod(index int) {
	c.t.Helper()
	c.step("checking shipping method", zap.Int("index", index))
	c.click(c.get(selectors.ShippingMethodTable).Locator(selectors.ShippingMethodRadio).Nth(index))
}

func (c *Checkout) ExpandSendToAddress() {
	c.t.Helper()
	c.step("expanding send to address")
	c.click(c.get(selectors.SendToListControl).First())
}

// ModalShouldAppear opens the new address modal.
func (c *Checkout) ModalShouldAppear() {
	c.t.Helper()
	c.ClickOnButton(selectors.AddAddressButton, "New Address")
	c.visible(c.get(selectors.ModalAddressWrap))
}

func (c *Checkout) SaveNewAddress() {
	c.t.Helper()
	c.step("saving new address")
	save := c.get(selectors.SaveButton).First()
	c.text(save, "Save Address")
	c.click(save)
}

// OptionList returns the options of the first shipping or billing dropdown.
func (c *Checkout) OptionList(kind AddressKind) playwright.Locator {
	c.t.Helper()
	sel, err := addressDropdown(kind)
	require.NoError(c.t, err)
	return c.get(sel).First().Locator(selectors.OptionElements)
}

// Products returns the rows of the multi-address table.
func (c *Checkout) Products() playwright.Locator {
	return c.get(selectors.ProductItemsInTable)
}

// Addresses returns the saved address cards.
func (c *Checkout) Addresses() playwright.Locator {
	return c.get(selectors.ShippingAddressItem)
}

// SelectAddress picks the index-th option of the first dropdown of kind.
func (c *Checkout) SelectAddress(kind AddressKind, index int) {
	c.t.Helper()
	c.step("selecting address", zap.String("kind", string(kind)), zap.Int("index", index))
	sel, err := addressDropdown(kind)
	require.NoError(c.t, err)
	_, err = c.get(sel).First().SelectOption(playwright.SelectOptionValues{Indexes: &[]int{index}})
	c.must(err)
}

// RemoveItem removes the index-th row of the multi-address table and waits
// for the table to reload.
func (c *Checkout) RemoveItem(index int) {
	c.t.Helper()
	c.step("removing item", zap.Int("index", index))
	remove := c.get(selectors.RemoveItemButton).Nth(index)
	c.do(routes.MultiShippingPage, func() error { return remove.Click() })
}

func (c *Checkout) ChangeAddress() {
	c.t.Helper()
	c.step("changing shipping address")
	c.ClickOnButton(selectors.ShippingToSection+" "+selectors.EditItemButton, "Change")
}

// UpdateAddressAndVerify saves the address table and checks it can be
// edited again.
func (c *Checkout) UpdateAddressAndVerify() {
	c.t.Helper()
	c.step("updating address")
	c.click(c.get(selectors.UpdateItem).First())
	edit := c.get(selectors.EditAddressButton).First()
	c.visible(edit)
	c.text(edit, "Edit")
}

func (c *Checkout) ChangeBilling() {
	c.t.Helper()
	c.step("changing billing address")
	c.ClickOnButton(selectors.ActionGenericButton, "Change")
}

func (c *Checkout) EditItems() {
	c.t.Helper()
	c.step("editing items")
	c.ClickOnButton(selectors.EditItemButton, "Edit")
}

// UpdateQty types n into the quantity of the second table row.
func (c *Checkout) UpdateQty(n int) {
	c.t.Helper()
	c.step("updating quantity", zap.Int("qty", n))
	c.fill(c.get(selectors.QtyFieldMultiShipping).Nth(1).Locator(selectors.InputQtyField), fmt.Sprint(n))
}

func (c *Checkout) ShouldContainAddresses() {
	c.t.Helper()
	c.step("verifying selectable addresses")
	c.exists(c.get(selectors.AddressesBlock + " " + selectors.AddressesToChoose))
}

// NavigateBackToSection clicks a back button and waits for the previous
// step.
func (c *Checkout) NavigateBackToSection(selector, text, key, urlPart string) {
	c.t.Helper()
	c.step("navigating back", zap.String("button", text), zap.String("route", key))
	button := c.containing(selector, text)
	c.visible(button)
	c.do(key, func() error { return button.Click() })
	c.urlContains(urlPart)
}

// VerifyThankYouPage checks the success page of kind.
func (c *Checkout) VerifyThankYouPage(kind OrderKind) {
	c.t.Helper()
	c.step("verifying thank you page", zap.String("kind", string(kind)))
	ty, err := thankYouFor(kind)
	require.NoError(c.t, err)
	c.results.VerifyPageTitle(ThankYouTitle)
	c.results.VerifyTextInSection(ty.selector, ty.message)
}

// VerifyOptions checks the first dropdown matching selector has n options.
func (c *Checkout) VerifyOptions(selector string, n int) {
	c.t.Helper()
	c.step("verifying dropdown options", zap.String("selector", selector), zap.Int("want", n))
	c.count(c.get(selector).First().Locator(selectors.OptionElements), n)
}

// ClickOnEditButtons clicks the index-th edit link of the shipping
// information block: 0 is Ship To, 1 is Shipping Method.
func (c *Checkout) ClickOnEditButtons(index int) {
	c.t.Helper()
	c.step("clicking edit button", zap.Int("index", index))
	c.click(c.get(selectors.ShippingInfoSection + " " + selectors.ShippingInfoTitle + " " + selectors.EditButtonCart).Nth(index))
}

// PlaceOrder places the order and waits for the success page.
func (c *Checkout) PlaceOrder(kind OrderKind) {
	c.t.Helper()
	c.step("placing order", zap.String("kind", string(kind)))
	ty, err := thankYouFor(kind)
	require.NoError(c.t, err)

	c.must(c.routes.Expect(ty.success))
	c.ClickOnButton(ty.place, "Place Order")
	_, err = c.routes.Wait(context.Background(), ty.success)
	require.NoError(c.t, err, "waiting for @%s", ty.success)
}

// CompleteOrderFlow places the order and checks the success page. Unless
// after is given, it then continues shopping back to the home page.
func (c *Checkout) CompleteOrderFlow(kind OrderKind, after func()) {
	c.t.Helper()
	c.PlaceOrder(kind)
	c.VerifyThankYouPage(kind)

	if after != nil {
		after()
		return
	}
	ty, err := thankYouFor(kind)
	require.NoError(c.t, err)
	c.must(c.routes.Expect(routes.LoadPage))
	c.ClickOnButton(ty.cont, "Continue Shopping")
	_, err = c.routes.Wait(context.Background(), routes.LoadPage)
	require.NoError(c.t, err, "waiting for @%s", routes.LoadPage)
}

// OpenCouponSection expands the discount block of the payment step.
func (c *Checkout) OpenCouponSection() {
	c.t.Helper()
	c.step("opening checkout coupon section")
	block := c.get(selectors.CheckoutCouponBlock)
	c.must(c.expect.Locator(block).ToHaveAttribute("aria-expanded", "false"))
	c.click(block)
	c.must(c.expect.Locator(block).ToHaveAttribute("aria-expanded", "true"))
}

// ApplyCoupon submits code. The payment step applies it in the background,
// so callers follow up with VerifyCouponMessage.
func (c *Checkout) ApplyCoupon(code string) {
	c.t.Helper()
	c.step("applying checkout coupon", zap.String("code", code))
	input := c.get(selectors.DiscountCodeInput)
	c.visible(input)
	c.fill(input, code)
	c.click(c.get(selectors.DiscountSection + " " + selectors.CheckoutApplyCouponButton).First())
}

func (c *Checkout) CancelCoupon() {
	c.t.Helper()
	c.step("cancelling checkout coupon")
	c.click(c.containing(selectors.CancelAction, "Cancel coupon"))
}

// VerifyCouponMessage waits until the discount messages contain message.
func (c *Checkout) VerifyCouponMessage(message string) {
	c.t.Helper()
	c.step("verifying coupon message", zap.String("message", message))
	c.text(c.get(selectors.ValidationMessageSection).First(), message)
}

// ApplyCouponAndVerify applies code and checks the outcome. A valid coupon is
// cancelled again afterwards.
func (c *Checkout) ApplyCouponAndVerify(code, kind string) {
	c.t.Helper()
	message := MsgCheckoutCouponOK
	if kind == "Invalid" {
		message = MsgCheckoutCouponBad
	}

	c.OpenCouponSection()
	c.ApplyCoupon(code)
	c.VerifyCouponMessage(message)

	if kind == "Valid" {
		c.CancelCoupon()
		c.VerifyCouponMessage(MsgCheckoutCouponOff)
	}
}

// FillFullShippingAddress fills the new shipping address form with addr,
// saves it and checks the confirmation.
func (c *Checkout) FillFullShippingAddress(addr config.Address) {
	c.t.Helper()
	c.step("filling full shipping address")

	id := func(sel string) string { return strings.TrimPrefix(sel, "#") }
	c.forms.FillShippingData(
		[]Field{
			{ID: id(selectors.NewStreetAddressField), Value: addr.Street},
			{ID: id(selectors.NewCityField), Value: addr.City},
			{ID: id(selectors.NewZipPostalCodeField), Value: addr.Zip},
			{ID: id(selectors.NewPhoneNumberField), Value: addr.Phone},
		},
		[]SelectField{
			{Selector: selectors.NewCountrySelect, Value: addr.Country},
			{Selector: selectors.NewStateProvinceSelect, Value: addr.State},
		},
	)
	c.ClickOnButton(selectors.NewAddressSubmitButton, "Save Address")
	c.results.VerifyPageMessage(MsgAddressSaved)
}

// FillGuestShipping fills the guest email and shipping address form of the
// one-page checkout.
func (c *Checkout) FillGuestShipping(email string, account *config.Account) {
	c.t.Helper()
	c.step("filling guest shipping address", zap.String("email", email))

	inputs := []SelectField{
		{Selector: selectors.CheckoutEmailAddressField, Value: email},
		{Selector: selectors.CheckoutFirstNameField, Value: account.FirstName},
		{Selector: selectors.CheckoutLastNameField, Value: account.LastName},
		{Selector: selectors.StreetAddressField, Value: account.Address.Street},
		{Selector: selectors.CityField, Value: account.Address.City},
		{Selector: selectors.ZipPostalCodeField, Value: account.Address.Zip},
		{Selector: selectors.PhoneNumberField, Value: account.Address.Phone},
	}
	for _, in := range inputs {
		c.fill(c.get(in.Selector).First(), in.Value)
	}

	for _, s := range []SelectField{
		{Selector: selectors.CountryField, Value: account.Address.Country},
		{Selector: selectors.StateProvinceField, Value: account.Address.State},
	} {
		_, err := c.get(s.Selector).First().SelectOption(playwright.SelectOptionValues{Labels: &[]string{s.Value}})
		c.must(err, "select %q in %s", s.Value, s.Selector)
	}
}

// VerifyCountChange checks selector now matches initial+change elements.
func (c *Checkout) VerifyCountChange(selector string, initial, change int) {
	c.t.Helper()
	c.step("verifying count change", zap.String("selector", selector), zap.Int("from", initial), zap.Int("change", change))
	c.count(c.get(selector), initial+change)
}

// AddDefaultProductIfNeeded fills an empty cart with the default products,
// then opens the checkout.
func (c *Checkout) AddDefaultProductIfNeeded() {
	c.t.Helper()
	if c.cart.IsEmpty() {
		c.product.AddDefaultProductToCart()
		c.product.AddDefaultEquipmentProductToCart()
	}
	c.visitAndWait(routes.CheckoutPage)
}

// PerformStepAction leaves the multi-address step described by step.
func (c *Checkout) PerformStepAction(step Step) {
	c.t.Helper()
	c.step("performing step action", zap.String("page", step.PageTitle))
	if step.ButtonText == "" {
		return
	}
	switch step.ElementType {
	case SectionAddresses, SectionShipping:
		c.GoToNextSection(step.ElementType)
	default:
		c.must(c.routes.Expect(step.RouteKey))
		c.ClickOnButton(selectors.ContinueButton, step.ButtonText)
		_, err := c.routes.Wait(context.Background(), step.RouteKey)
		require.NoError(c.t, err, "waiting for @%s", step.RouteKey)
	}
}

// RedirectToMultiCheckout opens the multi-address checkout from the cart.
func (c *Checkout) RedirectToMultiCheckout() {
	c.t.Helper()
	c.step("redirecting to multi-address checkout")
	c.visitAndWait(routes.CartPage)
	button := c.containing(selectors.MultiShippingButton, "Check Out with Multiple Addresses")
	c.visible(button)
	c.do(routes.MultiShippingPage, func() error { return button.Click() })
}
