package pages

import (
	"github.com/lumaqa/lumacheck/internal/selectors"
	"go.uber.org/zap"
)

// Results checks titles and messages rendered after an action.
type Results struct {
	ui
}

func (r *Results) verifyText(selector, text string) {
	r.t.Helper()
	r.step("verifying text", zap.String("selector", selector), zap.String("text", text))
	r.visible(r.containing(selector, text), "%s should show %q", selector, text)
}

// VerifyTextInSection checks that a visible element under selector contains text.
func (r *Results) VerifyTextInSection(selector, text string) {
	r.t.Helper()
	r.verifyText(selector, text)
}

func (r *Results) VerifyPageTitle(title string) {
	r.t.Helper()
	r.verifyText(selectors.ResultsPageTitle, title)
}

func (r *Results) VerifyPageMessage(text string) {
	r.t.Helper()
	r.verifyText(selectors.PageMessage, text)
}

func (r *Results) VerifyMageErrorMessage(text string) {
	r.t.Helper()
	r.verifyText(selectors.MageErrorMessage, text)
}

func (r *Results) VerifyAlert(text string) {
	r.t.Helper()
	r.verifyText(selectors.Alert, text)
}
