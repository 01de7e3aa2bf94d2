package storefront

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	accountPath = "/customer/account/"
	loginPath   = "/customer/account/login/"
	createPath  = "/customer/account/create/"
)

// formField is one input of the create account form
type formField struct {
	ID    string
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

type loginContent struct {
	Email string
}

type createContent struct {
	Personal []formField
	SignIn   []formField
}

// signUpForm holds the submitted create account values
type signUpForm struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Confirmation string
}

func parseSignUp(r *http.Request) signUpForm {
	return signUpForm{
		FirstName:    strings.TrimSpace(r.PostFormValue("firstname")),
		LastName:     strings.TrimSpace(r.PostFormValue("lastname")),
		Email:        strings.TrimSpace(r.PostFormValue("email")),
		Password:     r.PostFormValue("password"),
		Confirmation: r.PostFormValue("password_confirmation"),
	}
}

// validate returns the per-field messages Luma shows under each input
func (f signUpForm) validate() map[string]string {
	errs := make(map[string]string)
	required := map[string]string{
		"firstname":             f.FirstName,
		"lastname":              f.LastName,
		"email_address":         f.Email,
		"password":              f.Password,
		"password-confirmation": f.Confirmation,
	}
	for id, v := range required {
		if v == "" {
			errs[id] = msgRequiredField
		}
	}
	if _, missing := errs["password"]; !missing && len(strings.TrimSpace(f.Password)) < minPasswordLength {
		errs["password"] = msgPasswordTooShort
	}
	if _, missing := errs["password-confirmation"]; !missing && f.Confirmation != f.Password {
		errs["password-confirmation"] = msgPasswordMismatch
	}
	return errs
}

// content renders the form with the submitted values and errors
func (f signUpForm) content(errs map[string]string) createContent {
	field := func(id, name, label, typ, value string) formField {
		return formField{ID: id, Name: name, Label: label, Type: typ, Value: value, Error: errs[id]}
	}
	return createContent{
		Personal: []formField{
			field("firstname", "firstname", "First Name", "text", f.FirstName),
			field("lastname", "lastname", "Last Name", "text", f.LastName),
		},
		SignIn: []formField{
			field("email_address", "email", "Email", "email", f.Email),
			field("password", "password", "Password", "password", ""),
			field("password-confirmation", "password_confirmation", "Confirm Password", "password", ""),
		},
	}
}

func (s *Server) signIn(r *http.Request, c *Customer) {
	_ = s.store.Update(sessionID(r), func(sess *Session) error {
		sess.Customer = c
		return nil
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Snapshot(sessionID(r))
	if sess.Customer != nil {
		s.redirect(w, r, accountPath, sess.Flash...)
		return
	}
	s.render.render(w, sess, page{
		name:      "login",
		title:     "Customer Login",
		bodyClass: "customer-account-login",
		content:   loginContent{},
	})
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("login[username]"))
	c, err := s.store.Authenticate(email, r.PostFormValue("login[password]"))
	if err != nil {
		s.logger.Debug("login rejected", zap.String("email", email), zap.Error(err))
		s.redirect(w, r, loginPath, Flash{Kind: FlashError, Text: msgLoginIncorrect})
		return
	}
	s.signIn(r, c)
	s.redirect(w, r, accountPath)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, page{
		name:      "create",
		title:     "Create New Customer Account",
		bodyClass: "customer-account-create",
		content:   signUpForm{}.content(nil),
	})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	form := parseSignUp(r)
	if errs := form.validate(); len(errs) > 0 {
		s.show(w, r, page{
			name:      "create",
			title:     "Create New Customer Account",
			bodyClass: "customer-account-create",
			content:   form.content(errs),
		})
		return
	}

	c, err := s.store.Register(Customer{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	switch {
	case errors.Is(err, ErrAccountExists):
		s.redirect(w, r, createPath, Flash{Kind: FlashError, Text: msgAccountExists})
		return
	case err != nil:
		s.redirect(w, r, createPath, Flash{Kind: FlashError, Text: err.Error()})
		return
	}

	s.logger.Info("registered customer", zap.String("email", c.Email))
	s.signIn(r, c)
	s.redirect(w, r, accountPath, Flash{Kind: FlashSuccess, Text: msgRegistered})
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Snapshot(sessionID(r))
	if sess.Customer == nil {
		s.redirect(w, r, loginPath, sess.Flash...)
		return
	}
	s.render.render(w, sess, page{
		name:      "account",
		title:     "My Account",
		bodyClass: "customer-account-index",
		content:   sess.Customer,
	})
}

func (s *Server) signOut(r *http.Request) {
	_ = s.store.Update(sessionID(r), func(sess *Session) error {
		sess.Customer = nil
		sess.Cart = nil
		sess.Coupon = ""
		return nil
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.signOut(r)
	s.redirect(w, r, "/customer/account/logoutSuccess/")
}

// handleLogoutPost is the background sign out Luma's header issues
func (s *Server) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	s.signOut(r)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogoutSuccess(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, page{
		name:      "simple",
		title:     "You are signed out",
		bodyClass: "customer-account-logoutsuccess",
		content:   []string{msgSignedOut},
	})
}

func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, page{
		name:      "forgot",
		title:     "Forgot Your Password?",
		bodyClass: "customer-account-forgotpassword",
	})
}

func (s *Server) handleForgotPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	if email == "" {
		s.redirect(w, r, "/customer/account/forgotpassword/", Flash{Kind: FlashError, Text: msgRequiredField})
		return
	}
	s.redirect(w, r, loginPath, Flash{Kind: FlashSuccess, Text: msgResetPassword(email)})
}
