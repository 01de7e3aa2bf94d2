package pages

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// CartKind is the cart surface an operation targets.
type CartKind string

const (
	MiniCart CartKind = "Mini Cart"
	Cart     CartKind = "Cart"
)

func (k CartKind) validate() error {
	switch k {
	case MiniCart, Cart:
		return nil
	}
	return fmt.Errorf("unknown cart type: %s", k)
}

var cartItemElements = []cellElement{
	{name: "title", selector: selectors.CartPageProductName},
	{name: "options", selector: selectors.ProductCartOptions},
	{name: "price", selector: selectors.CartProductPrice},
	{name: "qty", selector: selectors.ProductQtyInput},
	{name: "subtotal", selector: selectors.ProductSubtotal},
	{name: "edit", selector: selectors.EditButtonCart},
	{name: "delete", selector: selectors.DeleteButtonCart},
	{name: "photo", selector: selectors.CartProductImage},
}

var summaryLabels = []string{
	"Estimate Shipping and Tax",
	"Subtotal",
	"Tax",
	"Order Total",
	"Proceed to Checkout",
	"Check Out with Multiple Addresses",
}

// CartPage covers the mini cart and the shopping cart page.
type CartPage struct {
	ui
}

func (c *CartPage) kind(k CartKind) {
	c.t.Helper()
	require.NoError(c.t, k.validate())
}

func (c *CartPage) miniCart() playwright.Locator {
	return c.get(selectors.MiniCartWrapper)
}

// OpenMiniCart opens the header mini cart.
func (c *CartPage) OpenMiniCart() {
	c.t.Helper()
	c.step("opening mini cart")
	toggle := c.get(selectors.MiniCartToggle)
	c.click(toggle)
	c.hasClass(toggle, "active")
}

func (c *CartPage) CloseMiniCart() {
	c.t.Helper()
	c.step("closing mini cart")
	c.click(c.get(selectors.CloseMiniCartButton))
	c.must(c.expect.Locator(c.get(selectors.MiniCartToggle)).Not().ToHaveClass(classPattern("active")))
}

// ShouldBeEmpty checks the mini cart reports no items.
func (c *CartPage) ShouldBeEmpty() {
	c.t.Helper()
	c.step("verifying mini cart is empty")
	c.text(c.miniCart(), MsgEmptyCart)
}

// IsEmpty visits the cart page and reports whether it lists no items.
func (c *CartPage) IsEmpty() bool {
	c.t.Helper()
	c.visitAndWait(routes.CartPage)
	empty := c.countOf(c.get(selectors.CartItem)) == 0
	c.step("checked cart", zap.Bool("empty", empty))
	return empty
}

// VerifyItemsCount checks the item counter and that a price is shown.
func (c *CartPage) VerifyItemsCount(n int, kind CartKind) {
	c.t.Helper()
	c.kind(kind)
	c.step("verifying cart items count", zap.String("cart", string(kind)), zap.Int("want", n))

	scope := c.page.Locator("body")
	if kind == MiniCart {
		scope = c.miniCart()
	}
	c.text(scope.Locator(selectors.ItemsTotal).First(), strconv.Itoa(n))
	c.text(scope.Locator(selectors.PriceWrapper).First(), "$")
}

// VerifyProductDetailsInMiniCart expands the item options and checks the
// item controls.
func (c *CartPage) VerifyProductDetailsInMiniCart(name string) {
	c.t.Helper()
	c.step("verifying mini cart product details", zap.String("product", name))

	details := c.miniCart().Locator(selectors.CartProductDetails).First()
	c.visible(details.Locator(selectors.ProductItemName).Filter(playwright.LocatorFilterOptions{HasText: name}).First())

	toggle := details.Locator(selectors.SeeDetailsToggle).Filter(playwright.LocatorFilterOptions{HasText: "See Details"}).First()
	c.visible(toggle)
	c.click(toggle)

	options := details.Locator(selectors.ProductOptions).First()
	c.text(options, "Size")
	c.text(options, "Color")
	c.must(c.expect.Locator(details.Locator(selectors.QtyValue).First()).Not().ToBeEmpty())
	c.visible(details.Locator(selectors.EditButton).First())
	c.visible(details.Locator(selectors.DeleteButton).First())

	view := c.miniCart().Locator(selectors.ViewAndEditCart).First()
	c.visible(view)
	c.must(c.expect.Locator(view).ToHaveAttribute("href", regexp.MustCompile(`checkout/cart`)))
}

// VerifyProductDetailsInCart checks the first cart row and the summary box.
func (c *CartPage) VerifyProductDetailsInCart() {
	c.t.Helper()
	item := c.get(selectors.CartItem).First()
	for _, e := range cartItemElements {
		c.step("verifying cart item element", zap.String("element", e.name))
		c.visible(item.Locator(e.selector).First(), "cart item should show %s", e.name)
	}

	summary := c.get(selectors.CartSummary)
	for _, label := range summaryLabels {
		c.visible(summary.Filter(playwright.LocatorFilterOptions{HasText: label}).First(), "cart summary should show %q", label)
	}
}

// RedirectToPDP clicks the first cart image and checks the URL.
func (c *CartPage) RedirectToPDP(url string) {
	c.t.Helper()
	c.step("redirecting to PDP", zap.String("url", url))
	c.click(c.get(selectors.CartProductImage).First())
	c.urlContains(url)
}

// EditCartItem opens the configure page of the first cart item.
func (c *CartPage) EditCartItem(kind CartKind) {
	c.t.Helper()
	c.kind(kind)
	c.step("editing cart item", zap.String("cart", string(kind)))

	var edit playwright.Locator
	if kind == MiniCart {
		c.OpenMiniCart()
		edit = c.miniCart().Locator(selectors.EditButton).First()
		c.visible(edit)
	} else {
		edit = c.get(selectors.EditButtonCart).First()
	}
	c.do(routes.EditPage, func() error { return edit.Click() })
	c.urlContains("/checkout/cart/configure/")
}

// UpdateCartPDP switches the configured item to size L and saves it.
func (c *CartPage) UpdateCartPDP() {
	c.t.Helper()
	c.step("updating cart item from PDP")

	form := c.get(selectors.UpdateCartForm)
	size := form.Locator(selectors.SizeSwatch + " " + selectors.SwatchOption).Filter(playwright.LocatorFilterOptions{HasText: "L"}).First()
	c.click(size)

	button := form.Locator(selectors.UpdateCartButton)
	c.visible(button)
	c.do(routes.UpdateResult, func() error { return button.Click() })
}

// DeleteCartItem removes the first cart item. The mini cart asks for
// confirmation and updates in place, so it has no page request to await.
func (c *CartPage) DeleteCartItem(kind CartKind) {
	c.t.Helper()
	c.kind(kind)
	c.step("deleting cart item", zap.String("cart", string(kind)))

	if kind == MiniCart {
		c.OpenMiniCart()
		c.click(c.miniCart().Locator(selectors.DeleteButton).First())
		accept := c.get(selectors.ModalConfirm)
		c.visible(accept)
		c.click(accept)
		return
	}
	remove := c.get(selectors.DeleteButtonCart).First()
	c.do(routes.DeleteResult, func() error { return remove.Click() })
}

// ChangeCartItemQuantity sets the first item quantity to n. The mini cart
// posts it in the background; the cart page reloads.
func (c *CartPage) ChangeCartItemQuantity(n int, kind CartKind) {
	c.t.Helper()
	c.kind(kind)
	c.step("changing cart item quantity", zap.String("cart", string(kind)), zap.Int("qty", n))

	qty := strconv.Itoa(n)
	if kind == MiniCart {
		input := c.miniCart().Locator(selectors.QtyInput).First()
		c.fill(input, qty)
		c.must(input.Blur())
		update := c.miniCart().Locator(selectors.UpdateMiniCartBtn).First()
		c.do(routes.ChangeQty, func() error { return update.Click() })
		return
	}

	input := c.get(selectors.QtyInputCart).First()
	c.fill(input, qty)
	c.must(input.Blur())
	update := c.get(selectors.UpdateShoppingCartButton)
	c.do(routes.CartPage, func() error { return update.Click() })
}

// ClickCheckoutButton proceeds to checkout from either cart.
func (c *CartPage) ClickCheckoutButton(kind CartKind) {
	c.t.Helper()
	c.kind(kind)
	c.step("clicking proceed to checkout", zap.String("cart", string(kind)))

	var button playwright.Locator
	if kind == MiniCart {
		button = c.miniCart().Locator(selectors.CheckoutButton)
		c.text(button, "Proceed to Checkout")
	} else {
		button = c.get(selectors.CheckoutSection).Locator(selectors.ProceedToCheckoutButton).First()
		c.must(c.expect.Locator(button).ToHaveAttribute("title", "Proceed to Checkout"))
	}
	c.do(routes.CheckoutPage, func() error { return button.Click() })
}

func (c *CartPage) expandSection(selector string) {
	c.t.Helper()
	title := c.get(selector)
	c.must(c.expect.Locator(title).ToHaveAttribute("aria-expanded", "false"))
	c.click(title)
	c.must(c.expect.Locator(title).ToHaveAttribute("aria-expanded", "true"))
}

// OpenCouponSection expands Apply Discount Code.
func (c *CartPage) OpenCouponSection() {
	c.t.Helper()
	c.step("opening coupon section")
	c.expandSection(selectors.CouponBlock)
}

// ApplyCoupon submits code and waits for the coupon post.
func (c *CartPage) ApplyCoupon(code string) {
	c.t.Helper()
	c.step("applying coupon", zap.String("code", code))

	input := c.get(selectors.CouponCodeInput)
	c.visible(input)
	c.fill(input, code)
	apply := c.get(selectors.ApplyCouponButton)
	c.do(routes.CouponResult, func() error { return apply.Click() })
}

func (c *CartPage) CancelCoupon() {
	c.t.Helper()
	c.step("cancelling coupon")
	cancel := c.get(selectors.CancelCouponButton)
	c.do(routes.CouponResult, func() error { return cancel.Click() })
}

// OpenTaxSection expands Estimate Shipping and Tax.
func (c *CartPage) OpenTaxSection() {
	c.t.Helper()
	c.step("opening tax section")
	c.expandSection(selectors.ShippingBlockTitle)
}

// FillTaxSection picks country and state and types the zip code.
func (c *CartPage) FillTaxSection(country, state, zip string) {
	c.t.Helper()
	c.step("filling tax section", zap.String("country", country), zap.String("state", state))

	for _, s := range []SelectField{
		{Selector: selectors.CountrySelect, Value: country},
		{Selector: selectors.StateSelect, Value: state},
	} {
		field := c.get(s.Selector).First()
		_, err := field.SelectOption(playwright.SelectOptionValues{Labels: &[]string{s.Value}})
		c.must(err, "select %q in %s", s.Value, s.Selector)
	}

	input := c.get(selectors.ZipInput).First()
	c.visible(input)
	c.fill(input, zip)
}

// VerifyShippingRates requests rates and checks some are listed.
func (c *CartPage) VerifyShippingRates() {
	c.t.Helper()
	c.step("getting shipping rates")

	update := c.get(selectors.UpdateActionButton).First()
	c.visible(update)
	c.click(update)

	rates := c.get(selectors.ShippingRateOptions)
	c.visible(rates)
	c.exists(rates.Locator("td"))
}
