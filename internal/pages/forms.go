package pages

import (
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Field is a form input addressed by element id.
type Field struct {
	ID    string
	Value string
}

// Forms fills and submits storefront forms.
type Forms struct {
	ui
}

// FillField types value into the input with the given id.
func (f *Forms) FillField(id, value string) {
	f.t.Helper()
	f.step("filling form field", zap.String("field", id))
	f.fill(f.get("#"+id), value)
}

// SelectValue picks an option by label. The element must be a Luma styled
// select.
func (f *Forms) SelectValue(selector, value string) {
	f.t.Helper()
	f.step("selecting value", zap.String("selector", selector), zap.String("value", value))

	field := f.get(selector).First()
	f.hasClass(field, "select")
	_, err := field.SelectOption(playwright.SelectOptionValues{Labels: &[]string{value}})
	f.must(err, "select %q in %s", value, selector)
}

// Submit clicks the visible submit button carrying the given action class.
func (f *Forms) Submit(action string) {
	f.t.Helper()
	f.step("submitting form", zap.String("action", action))

	button := f.get(selectors.SubmitByAction + "." + action).First()
	f.visible(button)
	f.click(button)
}

// FillOarFields fills the Orders and Returns form.
func (f *Forms) FillOarFields(fields []Field) {
	f.t.Helper()
	f.step("filling orders and returns form")
	for _, field := range fields {
		f.FillField(field.ID, field.Value)
	}
}

// FillShippingData fills address inputs by id, then picks country and region
// from their selects.
func (f *Forms) FillShippingData(fields []Field, selects []SelectField) {
	f.t.Helper()
	f.step("filling shipping data")
	for _, field := range fields {
		f.FillField(field.ID, field.Value)
	}
	for _, s := range selects {
		f.SelectValue(s.Selector, s.Value)
	}
}

// SelectField is a select element addressed by CSS selector.
type SelectField struct {
	Selector string
	Value    string
}
