//go:build e2e

package e2e

import (
	"testing"

	"github.com/lumaqa/lumacheck/internal/pages"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
)

// TestLogIn covers the customer login page.
// Feature: Customer Login
//
//	Scenario: Log in with valid credentials
//	  Given I am on the customer login page
//	  When I submit the test customer credentials
//	  Then I should be greeted by my full name
func TestLogIn(t *testing.T) {
	requireLive(t)

	t.Run("correct credentials", func(t *testing.T) {
		site := newSite(t)
		site.Auth.LogIn(site.Account)
	})

	t.Run("incorrect password", func(t *testing.T) {
		site := newSite(t)

		// Given I am on the customer login page
		visit(t, site, routes.LogInPage)
		site.Results.VerifyTextInSection(selectors.AuthorizationPanel, "Customer Login")

		// When I submit a wrong password
		site.Auth.FillInLogInData(site.Account.Email, "123456789")
		site.Forms.Submit("login")

		// Then the sign-in error is shown
		site.Results.VerifyAlert(pages.MsgLoginIncorrect)
	})

	t.Run("from header link", func(t *testing.T) {
		site := newSite(t)

		// Given I am on the home page
		visit(t, site, routes.LoadPage)

		// When I follow the Sign In header link and log in
		site.Nav.ShouldVerifyNavigationLinks("Sign In", "/account/login/")
		site.Results.VerifyTextInSection(selectors.AuthorizationPanel, "Customer Login")
		site.Auth.FillInLogInData(site.Account.Email, site.Account.Password)
		await(t, site, routes.LogInResult, func() { site.Forms.Submit("login") })

		// Then I should be greeted by my full name
		site.Results.VerifyTextInSection(selectors.GreetMessage, "Welcome, "+site.Account.FullName()+"!")
	})

	t.Run("remind password", func(t *testing.T) {
		site := newSite(t)

		visit(t, site, routes.LogInPage)
		site.Auth.RemindPassword(site.Account.Email)
	})

	t.Run("sign out", func(t *testing.T) {
		site := newSite(t)

		site.Auth.LogIn(site.Account)
		site.Auth.SignOut()
	})
}

// TestSignUp covers the create account form.
// Feature: Customer Registration
//
//	Scenario: Register a new customer
//	  Given I am on the create account page
//	  When I submit the form with a fresh email address
//	  Then I should see the registration confirmation
//	  And my dashboard should show the new email address
func TestSignUp(t *testing.T) {
	requireLive(t)

	open := func(t *testing.T) *pages.Site {
		t.Helper()
		site := newSite(t)
		visit(t, site, routes.SignUpPage)
		site.Results.VerifyTextInSection(selectors.AuthorizationPanel, "Create New Customer Account")
		return site
	}

	t.Run("correct data", func(t *testing.T) {
		site := open(t)
		email := pages.RandomEmail()

		site.Auth.FillSignUpForm(pages.SignUpFields(site.Account, email))
		await(t, site, routes.SignUpResult, func() { site.Forms.Submit("submit") })

		site.Results.VerifyPageMessage(pages.MsgRegistered)
		site.Results.VerifyTextInSection(selectors.DashboardInfoBlock, email)
	})

	t.Run("existing email address", func(t *testing.T) {
		site := open(t)

		site.Auth.FillSignUpForm(pages.SignUpFields(site.Account, site.Account.Email))
		await(t, site, routes.SignUpResult, func() { site.Forms.Submit("submit") })

		site.Results.VerifyPageMessage(pages.MsgAccountExists)
	})

	t.Run("incorrect password", func(t *testing.T) {
		site := open(t)

		site.Forms.FillField("password", "test")
		site.Forms.FillField("password-confirmation", "123")
		site.Forms.Submit("submit")

		site.Results.VerifyMageErrorMessage(pages.MsgPasswordTooShort)
		site.Results.VerifyMageErrorMessage(pages.MsgPasswordMismatch)
	})
}
