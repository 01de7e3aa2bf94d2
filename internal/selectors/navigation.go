package selectors

import "fmt"

const (
	NavigationMenu        = `[class="navigation"]`
	MenuItem              = `[role="menuitem"]`
	CategoryItem          = "li.category-item"
	ExpandableIcon        = "span.ui-menu-icon"
	SubMenu               = "ul.submenu"
	PageTitleHeading      = "#page-title-heading"
	HeaderLinks           = "ul.header.links a"
	FooterLinks           = "ul.footer.links a"
	FooterPanel           = ".footer.links li"
	Title                 = ".page-title"
	PrivacyPolicyNavPanel = "#privacy-policy-nav-content"
	PrivacyPolicyContent  = ".privacy-policy-content"
	ModalConfirm          = ".modal-popup.confirm._show .action-primary.action-accept"

	// Orders and Returns form fields, by element id.
	OrderIDField         = "oar-order-id"
	BillingLastnameField = "oar-billing-lastname"
	OAREmailField        = "oar_email"
)

// Tab matches the top-level category item whose label contains tab.
func Tab(tab string) string {
	return fmt.Sprintf("%s:has-text(%q)", CategoryItem, tab)
}

// TabExpandableIcon matches the submenu arrow of a category item.
func TabExpandableIcon(tab string) string {
	return Tab(tab) + " " + ExpandableIcon
}
