// Package selectors holds the CSS selectors for Luma storefront markup,
// grouped by page area.
package selectors

// Authorization: log in, sign up and the account dashboard.
const (
	AuthorizationPanel        = `[data-ui-id="page-title-wrapper"]`
	CreateAccountLink         = "a.create"
	DashboardInfoBlock        = ".block-dashboard-info"
	EmailAddressField         = "#email_address"
	FirstNameField            = "#firstname"
	GreetMessage              = "li.greet.welcome"
	LastNameField             = "#lastname"
	LogInInput                = `input[title="Email"]`
	NewCustomer               = ".block-new-customer"
	PasswordConfirmationField = "#password-confirmation"
	PasswordField             = "#password"
	PasswordInput             = `input[title="Password"]`
	ResetPanel                = ".action.remind"
	SignOut                   = ".authorization-link a"
	HeaderAuthorizationLinks  = "li.authorization-link a"
	CustomerMenuToggle        = ".customer-welcome .action.switch"
)
