package storefront

import (
	"cmp"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"go.uber.org/zap"
)

// Listing toolbar query parameters
const (
	paramMode  = "product_list_mode"
	paramOrder = "product_list_order"
	paramLimit = "product_list_limit"
)

const (
	hotSellerCount = 6
	relatedCount   = 4
)

// sortOrders maps sorter labels to their query values
var sortOrders = []toolbarOption{
	{Label: "Position", Value: "position"},
	{Label: "Product Name", Value: "name"},
	{Label: "Price", Value: "price"},
}

// toolbarOption is one sorter, limiter or mode choice
type toolbarOption struct {
	Label  string
	Value  string
	URL    string
	Active bool
}

// toolbarMode is a grid/list switch
type toolbarMode struct {
	Name   string
	Label  string
	URL    string
	Active bool
}

// filterOption is one value of a layered-navigation filter
type filterOption struct {
	Label string
	URL   string
}

// filterView is a layered-navigation filter as rendered
type filterView struct {
	Name          string
	Param         string
	Swatch        bool
	AttributeType string
	Options       []filterOption
}

// appliedFilter is a filter currently narrowing the listing
type appliedFilter struct {
	Name  string
	Value string
}

type homeContent struct {
	Widgets    []fixtures.Widget
	HotSellers []fixtures.Product
}

type categoryContent struct {
	Widgets  []fixtures.Widget
	Grid     string
	Products []fixtures.Product
}

type listingContent struct {
	Search   bool
	Related  []string
	Products []fixtures.Product
	Total    int
	Mode     string
	Modes    []toolbarMode
	Sorts    []toolbarOption
	Limits   []toolbarOption
	Filters  []filterView
	Applied  []appliedFilter
	ClearURL string
	Compare  []fixtures.Product
	Empty    string
}

type productContent struct {
	Product fixtures.Product
	Related []fixtures.Product
	Action  string
	Edit    bool
	Size    string
	Color   string
	Qty     int
}

type compareContent struct {
	Products []fixtures.Product
}

// toolbarURL builds a listing URL with key set to value. The changed
// parameter always comes first so "path?key=" prefixes keep matching.
func toolbarURL(path string, query url.Values, key, value string) string {
	rest := url.Values{}
	for k, v := range query {
		if k != key {
			rest[k] = v
		}
	}
	out := path + "?" + url.QueryEscape(key) + "=" + url.QueryEscape(value)
	if encoded := rest.Encode(); encoded != "" {
		out += "&" + encoded
	}
	return out
}

// parseLimit returns the requested page size when it is one of limits,
// otherwise the smallest limit.
func parseLimit(raw string, limits []int) int {
	if len(limits) == 0 {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil && slices.Contains(limits, n) {
		return n
	}
	return slices.Min(limits)
}

// sortProducts orders products in place. Unknown orders keep catalog order.
func sortProducts(products []fixtures.Product, order string) {
	switch order {
	case "name":
		slices.SortStableFunc(products, func(a, b fixtures.Product) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case "price":
		slices.SortStableFunc(products, func(a, b fixtures.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	}
}

// filterParam is the query key of a filter name
func filterParam(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// productBySKU finds a catalog product by SKU
func (s *Server) productBySKU(sku string) (fixtures.Product, bool) {
	for _, p := range s.catalog.Products {
		if p.SKU == sku {
			return p, true
		}
	}
	return fixtures.Product{}, false
}

// productsUnder returns the products in any category below a landing page
func (s *Server) productsUnder(path string) []fixtures.Product {
	prefix := strings.TrimSuffix(path, ".html") + "/"
	var out []fixtures.Product
	for _, p := range s.catalog.Products {
		if slices.ContainsFunc(p.Categories, func(c string) bool { return strings.HasPrefix(c, prefix) }) {
			out = append(out, p)
		}
	}
	return out
}

// related returns up to relatedCount products sharing a category with p
func (s *Server) related(p fixtures.Product) []fixtures.Product {
	var out []fixtures.Product
	for _, other := range s.catalog.Products {
		if other.SKU == p.SKU {
			continue
		}
		if slices.ContainsFunc(other.Categories, func(c string) bool { return slices.Contains(p.Categories, c) }) {
			out = append(out, other)
		}
		if len(out) == relatedCount {
			break
		}
	}
	return out
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	hot := s.catalog.Products
	if len(hot) > hotSellerCount {
		hot = hot[:hotSellerCount]
	}
	s.show(w, r, page{
		name:      "home",
		title:     "Home Page",
		bodyClass: "cms-home cms-index-index",
		content:   homeContent{Widgets: s.catalog.HomeWidgets, HotSellers: hot},
	})
}

// handleCatalogPath serves category landing pages, listings and product pages
func (s *Server) handleCatalogPath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	for _, c := range s.catalog.Categories {
		if c.URL != path {
			continue
		}
		products := s.productsUnder(path)
		if len(products) == 0 {
			products = s.catalog.Products
		}
		if len(products) > hotSellerCount {
			products = products[:hotSellerCount]
		}
		s.show(w, r, page{
			name:      "category",
			title:     c.Name,
			bodyClass: "catalog-category-view page-layout-1column",
			content:   categoryContent{Widgets: c.Widgets, Grid: c.Grid, Products: products},
		})
		return
	}

	if l, ok := s.catalog.Listing(path); ok {
		sess := s.store.Snapshot(sessionID(r))
		s.render.render(w, sess, page{
			name:      "listing",
			title:     l.Name,
			bodyClass: "catalog-category-view page-products",
			content:   s.listing(r, sess, path, s.catalog.ProductsIn(path), false),
		})
		return
	}

	if strings.HasSuffix(path, ".html") {
		key := strings.TrimSuffix(strings.TrimPrefix(path, "/"), ".html")
		if p, ok := s.catalog.ProductByURLKey(key); ok {
			s.showProduct(w, r, productContent{
				Product: p,
				Related: s.related(p),
				Action:  fmt.Sprintf("/checkout/cart/add/product/%s/", p.SKU),
				Qty:     1,
			})
			return
		}
	}

	s.notFound(w, r)
}

func (s *Server) showProduct(w http.ResponseWriter, r *http.Request, content productContent) {
	s.show(w, r, page{
		name:      "product",
		bodyClass: "catalog-product-view page-product-configurable",
		content:   content,
	})
}

// listing builds the toolbar, filters and page of products for path
func (s *Server) listing(r *http.Request, sess Session, path string, products []fixtures.Product, search bool) listingContent {
	query := r.URL.Query()
	toolbar := s.catalog.Toolbar

	products = slices.Clone(products)
	var applied []appliedFilter
	for _, f := range s.catalog.Filters {
		value := query.Get(filterParam(f.Name))
		if value == "" {
			continue
		}
		applied = append(applied, appliedFilter{Name: f.Name, Value: value})
		switch filterParam(f.Name) {
		case "size":
			products = slices.DeleteFunc(products, func(p fixtures.Product) bool { return !slices.Contains(p.Sizes, value) })
		case "color":
			products = slices.DeleteFunc(products, func(p fixtures.Product) bool { return !slices.Contains(p.Colors, value) })
		}
	}

	order := query.Get(paramOrder)
	sortProducts(products, order)
	total := len(products)
	if limit := parseLimit(query.Get(paramLimit), toolbar.Limits); limit > 0 && len(products) > limit {
		products = products[:limit]
	}

	mode := query.Get(paramMode)
	if !slices.Contains(toolbar.Modes, mode) {
		mode = "grid"
	}

	content := listingContent{
		Search:   search,
		Products: products,
		Total:    total,
		Mode:     mode,
		Applied:  applied,
		ClearURL: path,
		Compare:  sess.Compare,
		Empty:    msgNoResults,
	}
	if search {
		content.ClearURL = path + "?q=" + url.QueryEscape(query.Get("q"))
		content.Related = []string{query.Get("q")}
	}

	for _, m := range []string{"grid", "list"} {
		content.Modes = append(content.Modes, toolbarMode{
			Name:   m,
			Label:  strings.ToUpper(m[:1]) + m[1:],
			URL:    toolbarURL(path, query, paramMode, m),
			Active: m == mode,
		})
	}
	for _, o := range sortOrders {
		o.URL = toolbarURL(path, query, paramOrder, o.Value)
		o.Active = o.Value == order || (order == "" && o.Value == "position")
		content.Sorts = append(content.Sorts, o)
	}
	current := parseLimit(query.Get(paramLimit), toolbar.Limits)
	for _, n := range slices.Sorted(slices.Values(toolbar.Limits)) {
		v := strconv.Itoa(n)
		content.Limits = append(content.Limits, toolbarOption{
			Label:  v,
			Value:  v,
			URL:    toolbarURL(path, query, paramLimit, v),
			Active: n == current,
		})
	}

	for _, f := range s.catalog.Filters {
		view := filterView{
			Name:          f.Name,
			Param:         filterParam(f.Name),
			Swatch:        f.Type == fixtures.FilterSwatch,
			AttributeType: f.AttributeType,
		}
		for _, v := range filterValues(f, products) {
			view.Options = append(view.Options, filterOption{Label: v, URL: toolbarURL(path, query, view.Param, v)})
		}
		content.Filters = append(content.Filters, view)
	}
	return content
}

// filterValues lists the options a filter offers for products
func filterValues(f fixtures.Filter, products []fixtures.Product) []string {
	var values []string
	add := func(vs []string) {
		for _, v := range vs {
			if !slices.Contains(values, v) {
				values = append(values, v)
			}
		}
	}
	switch filterParam(f.Name) {
	case "size":
		for _, p := range products {
			add(p.Sizes)
		}
	case "color":
		for _, p := range products {
			add(p.Colors)
		}
	default:
		values = []string{"Yes"}
	}
	return values
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var found []fixtures.Product
	if q != "" {
		needle := strings.ToLower(q)
		for _, p := range s.catalog.Products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				found = append(found, p)
			}
		}
	}
	s.logger.Debug("search", zap.String("q", q), zap.Int("results", len(found)))

	sess := s.store.Snapshot(sessionID(r))
	s.render.render(w, sess, page{
		name:      "listing",
		title:     fmt.Sprintf("Search results for: '%s'", q),
		bodyClass: "catalogsearch-result-index page-products",
		content:   s.listing(r, sess, r.URL.Path, found, true),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Snapshot(sessionID(r))
	s.render.render(w, sess, page{
		name:      "compare",
		title:     "Compare Products",
		bodyClass: "catalog-product_compare-index",
		content:   compareContent{Products: sess.Compare},
	})
}

func (s *Server) handleAddToCompare(w http.ResponseWriter, r *http.Request) {
	p, ok := s.productBySKU(r.PostFormValue("id"))
	if !ok {
		s.redirect(w, r, back(r, "/"))
		return
	}
	_ = s.store.Update(sessionID(r), func(sess *Session) error {
		if !slices.ContainsFunc(sess.Compare, func(c fixtures.Product) bool { return c.SKU == p.SKU }) {
			sess.Compare = append(sess.Compare, p)
		}
		return nil
	})
	s.redirect(w, r, back(r, "/"), Flash{Kind: FlashSuccess, Text: msgAddedToCompare(p.Name)})
}

func (s *Server) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	if s.store.Snapshot(sessionID(r)).Customer == nil {
		s.redirect(w, r, "/customer/account/login/", Flash{Kind: FlashError, Text: msgWishlistLogin})
		return
	}
	p, ok := s.productBySKU(r.PostFormValue("id"))
	if !ok {
		s.redirect(w, r, back(r, "/"))
		return
	}
	s.redirect(w, r, back(r, "/"), Flash{Kind: FlashSuccess, Text: msgAddedToWishlist(p.Name)})
}

func (s *Server) handleReviewPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.productBySKU(r.PathValue("sku"))
	if !ok {
		s.notFound(w, r)
		return
	}
	for _, field := range []string{"ratings", "nickname", "title", "detail"} {
		if strings.TrimSpace(r.PostFormValue(field)) == "" {
			s.redirect(w, r, p.Path(), Flash{Kind: FlashError, Text: msgRequiredField})
			return
		}
	}
	s.redirect(w, r, p.Path(), Flash{Kind: FlashSuccess, Text: msgReviewSubmitted})
}
