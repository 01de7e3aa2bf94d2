package pages

import (
	"github.com/lumaqa/lumacheck/internal/browser"
	"github.com/lumaqa/lumacheck/internal/config"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
	"go.uber.org/zap"
)

// Authorization covers log in, sign up and sign out.
type Authorization struct {
	ui
	forms   *Forms
	results *Results
}

// FillInLogInData types the credentials into the customer login form.
func (a *Authorization) FillInLogInData(email, password string) {
	a.t.Helper()
	a.step("filling in user data", zap.String("email", email))

	emailInput := a.get(selectors.LogInInput).First()
	a.must(a.expect.Locator(emailInput).ToHaveAttribute("aria-required", "true"))
	a.fill(emailInput, email)

	passwordInput := a.get(selectors.PasswordInput).First()
	a.must(a.expect.Locator(passwordInput).ToHaveAttribute("aria-required", "true"))
	a.fill(passwordInput, password)
}

// FillSignUpForm fills the create account form.
func (a *Authorization) FillSignUpForm(fields []Field) {
	a.t.Helper()
	a.step("filling sign up form")
	for _, f := range fields {
		a.forms.FillField(f.ID, f.Value)
	}
}

// SignUpFields is the create account form filled for account, with email
// substituted.
func SignUpFields(account *config.Account, email string) []Field {
	return []Field{
		{ID: "firstname", Value: account.FirstName},
		{ID: "lastname", Value: account.LastName},
		{ID: "email_address", Value: email},
		{ID: "password", Value: account.Password},
		{ID: "password-confirmation", Value: account.Password},
	}
}

// LogIn signs account in through the login page.
func (a *Authorization) LogIn(account *config.Account) {
	a.t.Helper()
	a.step("logging in", zap.String("email", account.Email))

	a.visitAndWait(routes.LogInPage)
	a.results.VerifyTextInSection(selectors.AuthorizationPanel, "Customer Login")
	a.FillInLogInData(account.Email, account.Password)
	a.do(routes.LogInResult, func() error {
		a.forms.Submit("login")
		return nil
	})
	a.results.VerifyTextInSection(selectors.GreetMessage, "Welcome, "+account.FullName()+"!")
}

// LogInAndSetCookie logs in once per cache and restores the resulting
// session cookies on later calls.
func (a *Authorization) LogInAndSetCookie(cache *browser.SessionCache, s *browser.Session, account *config.Account) {
	a.t.Helper()
	err := cache.Restore(s.Jar(), "customer:"+account.Email, func() error {
		a.LogIn(account)
		return nil
	}, browser.RequireCookie(config.SessionCookie))
	a.must(err, "restore customer session")
}

// SignOut opens the customer menu and signs out.
func (a *Authorization) SignOut() {
	a.t.Helper()
	a.step("signing out")

	toggle := a.get(selectors.CustomerMenuToggle).First()
	a.click(toggle)
	a.click(a.containing(selectors.SignOut, "Sign Out"))
	a.results.VerifyPageTitle("You are signed out")
}

// RemindPassword requests a password reset link for email from the login page.
func (a *Authorization) RemindPassword(email string) {
	a.t.Helper()
	a.step("reminding password", zap.String("email", email))

	remind := a.get(selectors.ResetPanel).First()
	a.text(remind, "Forgot Your Password?")
	a.do(routes.ResetPassword, func() error { return remind.Click() })

	a.forms.FillField("email_address", email)
	a.forms.Submit("submit")
	a.results.VerifyAlert(MsgResetPassword(email))
}
