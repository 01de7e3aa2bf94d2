package pages

import (
	"math/rand/v2"
	"strings"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns six random characters from [A-Za-z0-9].
func RandomString() string {
	var b strings.Builder
	b.Grow(6)
	for range 6 {
		b.WriteByte(alphanumeric[rand.IntN(len(alphanumeric))])
	}
	return b.String()
}

// RandomEmail returns an address that has never been registered.
func RandomEmail() string {
	return "luma." + strings.ToLower(RandomString()) + RandomString() + "@example.com"
}
