//go:build e2e

package e2e

import (
	"testing"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"github.com/lumaqa/lumacheck/internal/pages"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
)

// TestMenu walks the top navigation.
// Feature: Main Menu
//
//	Scenario: Menu tabs expand and redirect
//	  Given I am on the home page
//	  When I hover a menu tab
//	  Then its submenu lists the expected categories
//	  And clicking the tab opens its category page
func TestMenu(t *testing.T) {
	requireLive(t)

	for _, item := range fixtures.MustLoad().Menu {
		t.Run(item.Tab, func(t *testing.T) {
			site := newSite(t)
			visit(t, site, routes.LoadPage)

			site.Nav.ShouldContainTab(item.Tab)
			if len(item.Submenu) > 0 {
				site.Nav.ShouldBeExpandable(item.Tab)
				for _, subtab := range item.Submenu {
					if nested, ok := site.Catalog.SubMenuOf(subtab); ok {
						site.Nav.ShouldBeExpandable(subtab)
						for _, subsub := range nested {
							site.Nav.ShouldContainSubtabLevel2(item.Tab, subtab, subsub)
						}
						continue
					}
					site.Nav.ShouldContainSubtabLevel1(item.Tab, subtab)
				}
			}

			site.Nav.ShouldVerifyRedirection(item.Tab, item.URL)
		})
	}

	for _, link := range fixtures.MustLoad().ActionLinks {
		t.Run("header link "+link.Label, func(t *testing.T) {
			site := newSite(t)
			visit(t, site, routes.LoadPage)
			site.Nav.ShouldVerifyNavigationLinks(link.Label, link.URL)
		})
	}
}

// TestFooter covers the footer links and the pages behind them.
// Feature: Footer
//
//	Scenario: Footer links open their pages
//	  Given I am on the home page
//	  When I click a footer link
//	  Then I land on the linked page
func TestFooter(t *testing.T) {
	requireLive(t)

	for _, link := range fixtures.MustLoad().Footer {
		t.Run("link "+link.Label, func(t *testing.T) {
			site := newSite(t)
			visit(t, site, routes.LoadPage)
			site.Widgets.VerifyNumberOfElements(selectors.FooterPanel, len(site.Catalog.Footer))

			site.Nav.ShouldVerifyFooter(link.Label, link.URL)
		})
	}

	t.Run("popular search terms", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.SearchTerms)
		site.Results.VerifyPageTitle("Popular Search Terms")

		site.Search.ClickSearchTerm(pages.TermsPopular)

		site.Results.VerifyPageTitle("Search results")
		site.Product.VerifyProductCellElements(false)
	})

	t.Run("privacy policy", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.PrivacyPolicyPage)
		site.Results.VerifyPageTitle("Privacy Policy")

		site.Nav.ShouldContainNavPanel(selectors.PrivacyPolicyNavPanel)
		site.Results.VerifyTextInSection(selectors.PrivacyPolicyContent, ".")
	})

	t.Run("advanced search", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.AdvancedSearchPage)
		site.Results.VerifyTextInSection(selectors.Title, "Advanced Search")

		site.Forms.FillField("sku", "WT09")
		site.Search.AdvancedSearch()

		site.Results.VerifyTextInSection(selectors.Title, "Catalog Advanced Search")
		site.Product.VerifyProductCellElements(false)
		site.Results.VerifyPageMessage(pages.MsgSearchNoMatch)
	})

	t.Run("orders and returns", func(t *testing.T) {
		site := newSite(t)
		if site.Account.OrderNumber == "" {
			t.Skip("ORDER_NUMBER is not set")
		}
		visit(t, site, routes.OrdersReturnsPage)
		site.Results.VerifyTextInSection(selectors.Title, "Orders and Returns")

		site.Forms.FillOarFields([]pages.Field{
			{ID: selectors.OrderIDField, Value: site.Account.OrderNumber},
			{ID: selectors.BillingLastnameField, Value: site.Account.LastName},
			{ID: selectors.OAREmailField, Value: site.Account.Email},
		})
		await(t, site, routes.OrdersReturnsResult, func() { site.Forms.Submit("submit") })

		site.Results.VerifyTextInSection(selectors.Title, "Order # "+site.Account.OrderNumber)
	})
}

// TestSearch covers quick search and the search results page.
// Feature: Quick Search
//
//	Scenario: Search from the header
//	  Given I am on the home page
//	  When I type a query and submit it
//	  Then the autocomplete opens
//	  And the search results page lists matching products
func TestSearch(t *testing.T) {
	requireLive(t)

	const resultsPath = "/catalogsearch/result/?q=+Jacket"

	t.Run("from header", func(t *testing.T) {
		site := newSite(t)
		visit(t, site, routes.LoadPage)

		site.Forms.FillField("search", "jacket")
		site.Search.ShouldShowAutocomplete()
		await(t, site, routes.SearchResults, func() { site.Forms.Submit("search") })

		site.Search.ShouldDisplaySearchResults()
		site.Results.VerifyTextInSection(selectors.PageTitle, "Search results")
	})

	for _, element := range fixtures.MustLoad().SearchResultElements {
		t.Run("results contain "+element.Name, func(t *testing.T) {
			site := newSite(t)
			openPath(t, site, resultsPath)
			site.Listing.VerifyListingElements(element.Selector)
		})
	}

	t.Run("related search terms", func(t *testing.T) {
		site := newSite(t)
		openPath(t, site, resultsPath)

		site.Widgets.VerifyLocatorCount(site.Search.SearchTerms(pages.TermsRelated), 5)
		site.Search.ClickSearchTerm(pages.TermsRelated)

		site.Results.VerifyTextInSection(selectors.PageTitle, "Search results")
	})
}

// TestHotSellers covers the home page product grid.
// Feature: Hot Sellers
//
//	Scenario: Add a hot seller to the cart
//	  Given I am on the home page
//	  When I pick size M and color Purple of the first hot seller
//	  And I add it to the cart
//	  Then I see the added to cart message
func TestHotSellers(t *testing.T) {
	requireLive(t)

	const first = "Breathe-Easy Tank"

	home := func(t *testing.T) *pages.Site {
		t.Helper()
		site := newSite(t)
		visit(t, site, routes.LoadPage)
		return site
	}

	t.Run("grid", func(t *testing.T) {
		site := home(t)
		site.Results.VerifyTextInSection(selectors.GridBlocksHeading, "Hot Sellers")
		site.Widgets.VerifyLocatorCount(site.Widgets.GridWidgetItems(), 6)
	})

	t.Run("product item elements", func(t *testing.T) {
		site := home(t)
		site.Product.VerifyProductCellElements(false)
		site.Product.VerifyActionElements()
	})

	t.Run("add to cart", func(t *testing.T) {
		site := home(t)
		site.Product.SelectSize(pages.OnListing, "M")
		site.Product.SelectColor(pages.OnListing, "Purple")

		site.Product.AddToCart(pages.OnListing, true)
		site.Results.VerifyPageMessage(pages.MsgAddedToCart(first))
	})

	t.Run("add to wishlist", func(t *testing.T) {
		site := home(t)
		site.Product.AddToWishlistOrCompare("Wishlist")

		site.Results.VerifyPageMessage(pages.MsgWishlistLogin)
		urlContains(t, site, "/customer/account/login/")
	})

	t.Run("add to compare", func(t *testing.T) {
		site := home(t)
		site.Product.AddToWishlistOrCompare("Compare")
		site.Results.VerifyPageMessage(pages.MsgAddedToCompare(first))
	})
}

// TestHomeWidgets covers the promo blocks of the home page.
// Feature: Home Widgets
//
//	Scenario: Promo blocks link to their landing pages
//	  Given I am on the home page
//	  Then each promo block shows its caption
//	  And clicking it opens its landing page
func TestHomeWidgets(t *testing.T) {
	requireLive(t)

	widgets := fixtures.MustLoad().HomeWidgets
	for i, w := range widgets {
		t.Run(w.Name, func(t *testing.T) {
			site := newSite(t)
			visit(t, site, routes.LoadPage)

			site.Widgets.VerifyNumberOfElements(selectors.WidgetBlocks, len(widgets))
			site.Widgets.VerifyWidgetInfo(i, w.Info)
			site.Widgets.VerifyURLOnClick(selectors.WidgetBlocks, i, w.URL)
		})
	}
}
