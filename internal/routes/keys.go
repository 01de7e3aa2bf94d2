package routes

// Route keys known to the default Luma registry.
const (
	AddToCartResult           = "AddToCartResult"
	AddToCompareResult        = "AddToCompareResult"
	AddToWishlistResult       = "AddToWishlistResult"
	AdvancedSearchPage        = "AdvancedSearchPage"
	AdvancedSearchResult      = "AdvancedSearchResult"
	CartPage                  = "CartPage"
	ChangeQty                 = "ChangeQty"
	CheckoutPage              = "CheckoutPage"
	CompareProductsPage       = "CompareProductsPage"
	CouponResult              = "CouponResult"
	DeleteResult              = "DeleteResult"
	EditPage                  = "EditPage"
	ForgotPasswordPage        = "ForgotPasswordPage"
	HoodiePDP                 = "HoodiePDP"
	JunoJacketPDP             = "JunoJacketPDP"
	Limiter                   = "Limiter"
	ListingPage               = "ListingPage"
	ListingPantsPage          = "ListingPantsPage"
	LoadPage                  = "LoadPage"
	LogInPage                 = "LogInPage"
	LogInResult               = "LogInResult"
	LogOut                    = "LogOut"
	Mode                      = "Mode"
	OrdersReturnsPage         = "OrdersReturnsPage"
	OrdersReturnsResult       = "OrdersReturnsResult"
	PrivacyPolicyPage         = "PrivacyPolicyPage"
	ResetPasswordResult       = "ResetPasswordResult"
	SearchResult              = "SearchResult"
	SearchTerms               = "SearchTerms"
	SignUpPage                = "SignUpPage"
	SignUpResult              = "SignUpResult"
	Sorter                    = "Sorter"
	UpdateResult              = "UpdateResult"
	WaterBottlePDP            = "WaterBottlePDP"
	MultiShippingPage         = "MultiShippingPage"
	MultiShippingMethodPage   = "MultiShippingMethodPage"
	MultiShippingBillingPage  = "MultiShippingBillingPage"
	MultiShippingOverviewPage = "MultiShippingOverviewPage"
	MultiShipNewAddressPage   = "MultiShipNewAddressPage"
	SuccessPage               = "SuccessPage"
	SuccessMultiPage          = "SuccessMultiPage"
	LogInRedirectPage         = "LogInRedirectPage"
	SearchResults             = "SearchResults"
	ResetPassword             = "ResetPassword"
)

var lumaRoutes = []Route{
	mustRoute(AddToCartResult, "POST", "/checkout/cart/add/"),
	mustRoute(AddToCompareResult, "POST", "/catalog/product_compare/add/"),
	mustRoute(AddToWishlistResult, "POST", "/wishlist/index/add/"),
	mustRoute(AdvancedSearchPage, "GET", "/catalogsearch/advanced/"),
	mustRoute(AdvancedSearchResult, "GET", "/catalogsearch/advanced/result/"),
	mustRoute(CartPage, "GET", "/checkout/cart/"),
	mustRoute(ChangeQty, "POST", "/checkout/sidebar/updateItemQty/"),
	mustRoute(CheckoutPage, "GET", "/checkout/"),
	mustRoute(CompareProductsPage, "GET", "/catalog/product_compare/"),
	mustRoute(CouponResult, "POST", "/checkout/cart/couponPost/"),
	mustRoute(DeleteResult, "POST", "/checkout/cart/delete/"),
	mustRoute(EditPage, "GET", "/checkout/cart/configure/"),
	mustRoute(ForgotPasswordPage, "GET", "/customer/account/forgotpassword/"),
	mustRoute(HoodiePDP, "GET", "/circe-hooded-ice-fleece.html"),
	mustRoute(JunoJacketPDP, "GET", "/juno-jacket.html"),
	mustRoute(Limiter, "GET", "/women/tops-women.html?product_list_limit="),
	mustRoute(ListingPage, "GET", "/women/tops-women/hoodies-and-sweatshirts-women.html"),
	mustRoute(ListingPantsPage, "GET", "/women/bottoms-women/pants-women.html"),
	mustRoute(LoadPage, "GET", "/"),
	mustRoute(LogInPage, "GET", "/customer/account/login/"),
	mustRoute(LogInResult, "POST", "/customer/account/loginPost/"),
	mustRoute(LogOut, "POST", "/customer/account/logout/"),
	mustRoute(Mode, "GET", "/women/tops-women.html?product_list_mode="),
	mustRoute(OrdersReturnsPage, "GET", "/sales/guest/form/"),
	mustRoute(OrdersReturnsResult, "GET", "/sales/guest/view/"),
	mustRoute(PrivacyPolicyPage, "GET", "/privacy-policy-cookie-restriction-mode"),
	mustRoute(ResetPasswordResult, "POST", "/customer/account/forgotpasswordpost/"),
	mustRoute(SearchResult, "GET", "/catalogsearch/result/"),
	mustRoute(SearchTerms, "GET", "/search/term/popular/"),
	mustRoute(SignUpPage, "GET", "/customer/account/create/"),
	mustRoute(SignUpResult, "POST", "/customer/account/createpost/"),
	mustRoute(Sorter, "GET", "/women/tops-women.html?product_list_order="),
	mustRoute(UpdateResult, "POST", "/checkout/cart/updateItemOptions/"),
	mustRoute(WaterBottlePDP, "GET", "/affirm-water-bottle.html"),

	// Multi-address checkout steps and order success pages.
	mustRoute(MultiShippingPage, "GET", "/multishipping/checkout/addresses/"),
	mustRoute(MultiShippingMethodPage, "GET", "/multishipping/checkout/shipping/"),
	mustRoute(MultiShippingBillingPage, "GET", "/multishipping/checkout/billing/"),
	mustRoute(MultiShippingOverviewPage, "GET", "/multishipping/checkout/overview/"),
	mustRoute(MultiShipNewAddressPage, "GET", "/multishipping/checkout_address/newShipping/"),
	mustRoute(SuccessPage, "GET", "/checkout/onepage/success/"),
	mustRoute(SuccessMultiPage, "GET", "/multishipping/checkout/success/"),
	mustRoute(LogInRedirectPage, "GET", "/multishipping/checkout/login/"),
	mustRoute(SearchResults, "GET", "/catalogsearch/result/"),
	mustRoute(ResetPassword, "GET", "/customer/account/forgotpassword/"),
}
