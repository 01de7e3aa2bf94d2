package pages

import (
	"regexp"
	"strconv"

	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var firstNumber = regexp.MustCompile(`\d+`)

// parseReviewCount reads the first integer of a label such as "3 Reviews".
func parseReviewCount(text string) int {
	n, err := strconv.Atoi(firstNumber.FindString(text))
	if err != nil {
		return 0
	}
	return n
}

// Reviews covers the PDP review summary, tab and form.
type Reviews struct {
	ui
	forms *Forms
}

// ReviewCount is the number of reviews announced by the summary.
func (r *Reviews) ReviewCount() int {
	r.t.Helper()
	return parseReviewCount(r.textOf(r.get(selectors.ViewReviewCount).First()))
}

func (r *Reviews) VerifyReviewsSummaryElements() {
	r.t.Helper()
	r.step("verifying review summary elements")

	r.visible(r.get(selectors.ReviewsSummary).First())
	add := r.get(selectors.AddReviewButton).First()
	r.visible(add)
	r.text(add, "Add Your Review")
	r.visible(r.get(selectors.RatingSummary).First())
	require.Greater(r.t, r.ReviewCount(), 0, "product should have reviews")
}

func (r *Reviews) ClickAddYourReview() {
	r.t.Helper()
	r.step("clicking add your review")
	r.click(r.get(selectors.AddReviewButton).First())
}

func (r *Reviews) VerifyRedirectedToReviewsTab() {
	r.t.Helper()
	r.step("verifying reviews tab is active")
	r.must(r.expect.Locator(r.get(selectors.ReviewsTabActive).First()).ToHaveId(selectors.ReviewsTabID))
}

// VerifyCorrectNumberOfReviews checks the reviews tab lists as many reviews
// as the summary announces.
func (r *Reviews) VerifyCorrectNumberOfReviews() {
	r.t.Helper()
	want := r.ReviewCount()
	r.step("verifying number of reviews", zap.Int("want", want))
	r.ClickAddYourReview()
	r.count(r.get(selectors.ReviewItems), want)
}

// FillReviewForm fills the review fields and picks a star rating.
func (r *Reviews) FillReviewForm(rating int, fields []Field) {
	r.t.Helper()
	r.step("filling review form", zap.Int("rating", rating))
	for _, f := range fields {
		r.forms.FillField(f.ID, f.Value)
	}
	require.NoError(r.t, r.get(selectors.RatingLabel(rating)).First().Click(playwright.LocatorClickOptions{
		Force: playwright.Bool(true),
	}))
}

func (r *Reviews) SubmitReview() {
	r.t.Helper()
	r.step("submitting review")
	r.click(r.get(selectors.SubmitButton).First())
}
