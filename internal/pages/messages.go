package pages

import "fmt"

// Storefront messages the scenarios assert on.
const (
	MsgLoginIncorrect    = "The account sign-in was incorrect or your account is disabled temporarily. Please wait and try again later."
	MsgRegistered        = "Thank you for registering with Main Website Store."
	MsgAccountExists     = "There is already an account with this email address."
	MsgPasswordTooShort  = "Minimum length of this field must be equal or greater than 8 symbols. Leading and trailing spaces will be ignored."
	MsgPasswordMismatch  = "Please enter the same value again."
	MsgRequiredField     = "This is a required field."
	MsgWishlistLogin     = "You must login or register to add items to your wishlist."
	MsgReviewSubmitted   = "You submitted your review for moderation."
	MsgCouponCanceled    = "You canceled the coupon code."
	MsgCheckoutCouponBad = "The coupon code isn't valid. Verify the code and try again."
	MsgCheckoutCouponOK  = "Your coupon was successfully applied."
	MsgCheckoutCouponOff = "Your coupon was successfully removed."
	MsgAddressSaved      = "You saved the address."
	MsgEmptyCart         = "You have no items in your shopping cart."
	MsgSearchNoMatch     = "Don't see what you're looking for?"

	ThankYouTitle        = "Thank you for your purchase!"
	ThankYouMessage      = "We'll email you an order confirmation with details and tracking info"
	ThankYouMultiMessage = "For successfully order items, you'll receive a confirmation email including order numbers, tracking information and more details."
)

// MsgAddedToCart is shown after a product lands in the cart.
func MsgAddedToCart(product string) string {
	return fmt.Sprintf("You added %s to your shopping cart.", product)
}

// MsgCartUpdated is shown after a cart item is reconfigured.
func MsgCartUpdated(product string) string {
	return fmt.Sprintf("%s was updated in your shopping cart.", product)
}

// MsgAddedToCompare is shown after a product is added to the comparison list.
func MsgAddedToCompare(product string) string {
	return fmt.Sprintf("You added product %s to the comparison list.", product)
}

// MsgResetPassword is shown after a password reminder is requested.
func MsgResetPassword(email string) string {
	return fmt.Sprintf("If there is an account associated with %s you will receive an email with a link to reset your password.", email)
}

// MsgCartCouponInvalid is the cart page response to an unknown code.
func MsgCartCouponInvalid(code string) string {
	return fmt.Sprintf("The coupon code %q is not valid.", code)
}

// MsgCartCouponApplied is the cart page response to an accepted code.
func MsgCartCouponApplied(code string) string {
	return fmt.Sprintf("You used coupon code %q.", code)
}
