package selectors

import "fmt"

const (
	ReviewsSummary   = ".product-reviews-summary"
	AddReviewButton  = ".reviews-actions a.add"
	ViewReviewCount  = `.reviews-actions a.view [itemprop="reviewCount"]`
	RatingSummary    = ".rating-summary"
	ReviewsTabActive = ".product.data.items .title.active"
	ReviewItems      = ".review-items .review-item"
	NicknameField    = "#nickname_field"
	SummaryField     = "#summary_field"
	ReviewField      = "#review_field"
	SubmitButton     = "button.submit"
	SuccessMessage   = ".message-success"
	ReviewsTabID     = "tab-label-reviews"
)

// RatingLabel matches the star label for a 1-5 rating in the review form.
func RatingLabel(rating int) string {
	return fmt.Sprintf(`label[for="Rating_%d"]`, rating)
}
