package pages

import (
	"fmt"

	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Search term lists.
const (
	TermsRelated = "related"
	TermsPopular = "popular"
)

// Search covers quick search, advanced search and search term lists.
type Search struct {
	ui
}

// AdvancedSearch submits the advanced search form.
func (s *Search) AdvancedSearch() {
	s.t.Helper()
	s.step("submitting advanced search")
	button := s.get(selectors.SearchButton).First()
	s.visible(button)
	s.do(routes.AdvancedSearchResult, func() error { return button.Click() })
}

func (s *Search) ShouldShowAutocomplete() {
	s.t.Helper()
	s.step("verifying autocomplete")
	s.visible(s.get(selectors.Autocomplete))
}

func (s *Search) ShouldDisplaySearchResults() {
	s.t.Helper()
	s.step("verifying search results")
	s.visible(s.get(selectors.SearchResults).First())
}

func termsSelector(kind string) (string, error) {
	switch kind {
	case TermsRelated:
		return selectors.RelatedSearchTerms, nil
	case TermsPopular:
		return selectors.PopularSearchTerms, nil
	default:
		return "", fmt.Errorf("unknown search terms type: %s", kind)
	}
}

// SearchTerms returns the related or popular term items.
func (s *Search) SearchTerms(kind string) playwright.Locator {
	s.t.Helper()
	sel, err := termsSelector(kind)
	s.must(err)
	return s.get(sel)
}

// ClickSearchTerm clicks the first term of a list and waits for the results.
func (s *Search) ClickSearchTerm(kind string) {
	s.t.Helper()
	s.step("clicking search term", zap.String("kind", kind))

	first := s.SearchTerms(kind).First()
	s.visible(first)
	s.do(routes.SearchResults, func() error { return first.Locator("a").First().Click() })
}
