//go:build e2e

package e2e

import (
	"testing"

	"github.com/lumaqa/lumacheck/internal/pages"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
)

// TestStubSmoke drives the core storefront flows against the in-process
// storefront so the page objects and route registry can be checked without
// a live Luma deployment.
// Feature: Storefront Smoke
//
//	Scenario: Core shopper journeys
//	  Given the stub storefront is serving the catalog
//	  When I log in, search, browse, review and shop
//	  Then every page confirms the action the way Luma does
func TestStubSmoke(t *testing.T) {
	requireStub(t)

	t.Run("log in", func(t *testing.T) {
		site := newSite(t)
		site.Auth.LogIn(site.Account)
	})

	t.Run("log in with wrong password", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.LogInPage)

		site.Auth.FillInLogInData(site.Account.Email, "123456789")
		site.Forms.Submit("login")

		site.Results.VerifyAlert(pages.MsgLoginIncorrect)
	})

	t.Run("sign up", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.SignUpPage)
		email := pages.RandomEmail()

		site.Auth.FillSignUpForm(pages.SignUpFields(site.Account, email))
		await(t, site, routes.SignUpResult, func() { site.Forms.Submit("submit") })

		site.Results.VerifyPageMessage(pages.MsgRegistered)
		site.Results.VerifyTextInSection(selectors.DashboardInfoBlock, email)
	})

	t.Run("search", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.LoadPage)

		site.Forms.FillField("search", "jacket")
		await(t, site, routes.SearchResults, func() { site.Forms.Submit("search") })

		site.Search.ShouldDisplaySearchResults()
		urlContains(t, site, "q=jacket")
	})

	t.Run("listing toolbar", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.ListingPage)
		site.Listing.VerifyListingElements()

		site.Listing.ChangeMode("list")
		site.Listing.VerifyCurrentMode("list")

		site.Listing.SortBy(pages.SortName)
		site.Listing.VerifySorting(pages.SortName)
	})

	t.Run("add to cart from PDP", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.JunoJacketPDP)

		site.Product.AddToCart(pages.OnPDP, false)
		site.Results.VerifyPageMessage(pages.MsgAddedToCart("Juno Jacket"))

		site.Cart.OpenMiniCart()
		site.Cart.VerifyItemsCount(1, pages.MiniCart)
		site.Cart.VerifyProductDetailsInMiniCart("Juno Jacket")
	})

	t.Run("cart coupon", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.JunoJacketPDP)
		site.Product.AddToCart(pages.OnPDP, false)
		visit(t, site, routes.CartPage)

		site.Cart.OpenCouponSection()
		site.Cart.ApplyCoupon("h20")
		site.Results.VerifyPageMessage(pages.MsgCartCouponApplied("h20"))

		site.Cart.CancelCoupon()
		site.Results.VerifyPageMessage(pages.MsgCouponCanceled)
	})

	t.Run("compare and wishlist", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.JunoJacketPDP)

		site.Product.AddToWishlistOrCompare("Compare")
		site.Results.VerifyPageMessage(pages.MsgAddedToCompare("Juno Jacket"))

		site.Product.AddToWishlistOrCompare("Wishlist")
		site.Results.VerifyPageMessage(pages.MsgWishlistLogin)
		urlContains(t, site, "/customer/account/login/")
	})

	t.Run("review", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.JunoJacketPDP)
		site.Reviews.ClickAddYourReview()

		site.Reviews.FillReviewForm(5, reviewForm(site))
		site.Reviews.SubmitReview()
		site.Results.VerifyPageMessage(pages.MsgReviewSubmitted)
	})
}
