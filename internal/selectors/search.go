package selectors

const (
	Autocomplete       = "#search_autocomplete"
	PopularSearchTerms = ".search-terms li.item"
	RelatedSearchTerms = ".block dd.item"
	SearchButton       = ".actions-toolbar .search"
	SearchField        = "#search"
	SearchResults      = ".search.results"
	SKUSearchField     = "#sku"
)
