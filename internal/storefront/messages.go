package storefront

import "fmt"

// Luma storefront copy
const (
	msgLoginIncorrect   = "The account sign-in was incorrect or your account is disabled temporarily. Please wait and try again later."
	msgRegistered       = "Thank you for registering with Main Website Store."
	msgAccountExists    = "There is already an account with this email address. If you are sure that it is your email address, click here to get your password and access your account."
	msgPasswordTooShort = "Minimum length of this field must be equal or greater than 8 symbols. Leading and trailing spaces will be ignored."
	msgPasswordMismatch = "Please enter the same value again."
	msgChooseOptions    = "You need to choose options for your item."
	msgSignedOut        = "You have signed out and will go to our homepage in 5 seconds."
	msgNoCheckout       = "Checkout is only available on the live storefront."
	msgRequiredField    = "This is a required field."
	msgWishlistLogin    = "You must login or register to add items to your wishlist."
	msgReviewSubmitted  = "You submitted your review for moderation."
	msgCouponCanceled   = "You canceled the coupon code."
	msgEmptyCart        = "You have no items in your shopping cart."
	msgNoResults        = "Your search returned no results."
)

func msgAddedToCart(product string) string {
	return fmt.Sprintf("You added %s to your shopping cart.", product)
}

func msgCartUpdated(product string) string {
	return fmt.Sprintf("%s was updated in your shopping cart.", product)
}

func msgAddedToCompare(product string) string {
	return fmt.Sprintf("You added product %s to the comparison list.", product)
}

func msgResetPassword(email string) string {
	return fmt.Sprintf("If there is an account associated with %s you will receive an email with a link to reset your password.", email)
}

func msgCouponInvalid(code string) string {
	return fmt.Sprintf("The coupon code %q is not valid.", code)
}

func msgCouponApplied(code string) string {
	return fmt.Sprintf("You used coupon code %q.", code)
}

func msgAddedToWishlist(product string) string {
	return fmt.Sprintf("%s has been added to your Wish List.", product)
}
