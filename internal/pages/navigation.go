package pages

import (
	"github.com/lumaqa/lumacheck/internal/selectors"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Navigation covers the top menu, header links and footer links.
type Navigation struct {
	ui
}

func (n *Navigation) tab(tab string) playwright.Locator {
	return n.containing(selectors.CategoryItem, tab)
}

func (n *Navigation) expandableIcon(tab string) playwright.Locator {
	return n.tab(tab).Locator(selectors.ExpandableIcon).First()
}

// ShouldContainTab checks the menu has an item labelled tab.
func (n *Navigation) ShouldContainTab(tab string) {
	n.t.Helper()
	n.step("verifying tab in menu", zap.String("tab", tab))
	n.exists(n.get(selectors.NavigationMenu).Locator(selectors.MenuItem).Filter(playwright.LocatorFilterOptions{HasText: tab}),
		"menu should contain %q", tab)
}

// ShouldBeExpandable checks tab carries a submenu arrow.
func (n *Navigation) ShouldBeExpandable(tab string) {
	n.t.Helper()
	n.step("verifying expandable tab", zap.String("tab", tab))
	n.exists(n.expandableIcon(tab), "%q should be expandable", tab)
}

// ShouldContainSubtabLevel1 hovers tab and checks its submenu lists subtab.
func (n *Navigation) ShouldContainSubtabLevel1(tab, subtab string) {
	n.t.Helper()
	n.step("verifying subtab", zap.String("tab", tab), zap.String("subtab", subtab))

	icon := n.expandableIcon(tab)
	n.visible(icon)
	n.hover(n.tab(tab))
	n.visible(n.tab(tab).Locator(selectors.SubMenu).First())
	n.visible(n.containing(selectors.SubMenu+" "+selectors.CategoryItem, subtab), "%q should list %q", tab, subtab)
}

// ShouldContainSubtabLevel2 walks tab > subtab and checks subsubtab is shown.
func (n *Navigation) ShouldContainSubtabLevel2(tab, subtab, subsubtab string) {
	n.t.Helper()
	n.ShouldContainSubtabLevel1(tab, subtab)

	second := n.tab(tab).Locator(selectors.SubMenu).First().Locator(selectors.CategoryItem).
		Filter(playwright.LocatorFilterOptions{HasText: subtab}).First()
	n.hover(second)
	n.visible(second.Locator(selectors.SubMenu).First().Locator(selectors.CategoryItem).
		Filter(playwright.LocatorFilterOptions{HasText: subsubtab}).First(),
		"%q > %q should list %q", tab, subtab, subsubtab)
}

// ShouldVerifyRedirection clicks tab and checks the landing page.
func (n *Navigation) ShouldVerifyRedirection(tab, url string) {
	n.t.Helper()
	n.step("verifying redirection", zap.String("tab", tab), zap.String("url", url))

	n.click(n.tab(tab).Locator("a").First())
	n.urlContains(url)
	n.text(n.get(selectors.PageTitleHeading), tab)
}

// ShouldVerifyNavigationLinks clicks a header link and checks where it lands.
func (n *Navigation) ShouldVerifyNavigationLinks(link, url string) {
	n.t.Helper()
	n.step("verifying navigation link", zap.String("link", link), zap.String("url", url))

	l := n.containing(selectors.HeaderLinks, link)
	n.visible(l)
	n.click(l)
	n.urlContains(url)
}

// ShouldVerifyFooter clicks a footer link and checks where it lands.
func (n *Navigation) ShouldVerifyFooter(link, url string) {
	n.t.Helper()
	n.step("verifying footer link", zap.String("link", link), zap.String("url", url))

	l := n.containing(selectors.FooterLinks, link)
	n.visible(l)
	n.click(l)
	n.urlContains(url)
}

func (n *Navigation) ShouldContainNavPanel(selector string) {
	n.t.Helper()
	n.visible(n.get(selector).First())
}

// ShouldConfirmModal accepts the open confirmation modal.
func (n *Navigation) ShouldConfirmModal() {
	n.t.Helper()
	n.step("confirming modal")
	accept := n.get(selectors.ModalConfirm)
	n.visible(accept)
	n.click(accept)
}
