package selectors

const (
	ResultsPageTitle = ".page-title"
	PageMessage      = ".message"
	MageErrorMessage = ".mage-error"
	Alert            = `[role="alert"]`
	SubmitByAction   = `button[type="submit"]`
)
