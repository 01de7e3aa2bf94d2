package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Account is the registered customer the suite logs in as, plus the data it
// types into checkout and review forms.
type Account struct {
	Email       string `env:"TEST_USER_EMAIL"`
	Password    string `env:"TEST_USER_PASSWORD"`
	FirstName   string `env:"TEST_FIRST_NAME"`
	LastName    string `env:"TEST_LAST_NAME"`
	OrderNumber string `env:"ORDER_NUMBER"`
	Review      string `env:"REVIEW" envDefault:"Warm, light and fits true to size."`
	Address     Address
}

// Address is the shipping address used by checkout scenarios.
type Address struct {
	Street  string `env:"SHIPPING_ADDRESS"`
	City    string `env:"CITY"`
	Phone   string `env:"PHONE_NUMBER"`
	Zip     string `env:"ZIP_CODE" envDefault:"12345-6789"`
	Country string `env:"COUNTRY" envDefault:"United States"`
	State   string `env:"STATE" envDefault:"Alaska"`
}

// LoadAccount loads the test customer. A nil environ reads the process
// environment.
func LoadAccount(environ map[string]string) (*Account, error) {
	var account Account
	if err := env.ParseWithOptions(&account, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse account configuration: %w", err)
	}

	// Validate required fields
	if account.Email == "" {
		return nil, fmt.Errorf("TEST_USER_EMAIL is required")
	}
	if account.Password == "" {
		return nil, fmt.Errorf("TEST_USER_PASSWORD is required")
	}
	if account.FirstName == "" {
		return nil, fmt.Errorf("TEST_FIRST_NAME is required")
	}
	if account.LastName == "" {
		return nil, fmt.Errorf("TEST_LAST_NAME is required")
	}

	return &account, nil
}

// FullName is the name Luma greets a logged-in customer with.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// HasAddress reports whether enough address data is present for guest checkout.
func (a *Account) HasAddress() bool {
	return a.Address.Street != "" && a.Address.City != "" && a.Address.Phone != ""
}
