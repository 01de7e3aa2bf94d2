// Package fixtures provides the storefront data the scenarios assert against.
package fixtures

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// MenuTab is a top-level navigation entry.
type MenuTab struct {
	Tab     string   `yaml:"tab"`
	URL     string   `yaml:"url"`
	Submenu []string `yaml:"submenu"`
}

// SubMenu lists the third-level entries under a second-level tab.
type SubMenu struct {
	Tab     string   `yaml:"tab"`
	Submenu []string `yaml:"submenu"`
}

// Link is a labelled navigation link.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Widget is a promo block. URL is empty for blocks that do not link anywhere.
type Widget struct {
	Name string `yaml:"name"`
	Info string `yaml:"info"`
	URL  string `yaml:"url"`
}

// Category is a category landing page.
type Category struct {
	Name    string   `yaml:"name"`
	URL     string   `yaml:"url"`
	Grid    string   `yaml:"grid"`
	Widgets []Widget `yaml:"widgets"`
}

// Listing is a product listing page and its expected size.
type Listing struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Items     int    `yaml:"items"`
	Equipment bool   `yaml:"equipment"`
}

// Filter kinds.
const (
	FilterList   = "list"
	FilterSwatch = "swatch"
)

// Filter is a layered-navigation filter.
type Filter struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	AttributeType string `yaml:"attributeType"`
	Index         int    `yaml:"index"`
}

// Toolbar holds the listing toolbar options.
type Toolbar struct {
	Limits    []int    `yaml:"limits"`
	SortTypes []string `yaml:"sortTypes"`
	Modes     []string `yaml:"modes"`
}

// Element is a named selector.
type Element struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
}

// Coupon kinds.
const (
	CouponValid   = "Valid"
	CouponInvalid = "Invalid"
)

// Coupon is a discount code and whether the store accepts it.
type Coupon struct {
	Code string `yaml:"code"`
	Kind string `yaml:"kind"`
}

// Product is a catalog entry served by the stub storefront.
type Product struct {
	SKU         string   `yaml:"sku"`
	Name        string   `yaml:"name"`
	URLKey      string   `yaml:"urlKey"`
	Price       float64  `yaml:"price"`
	Sizes       []string `yaml:"sizes"`
	Colors      []string `yaml:"colors"`
	Equipment   bool     `yaml:"equipment"`
	Categories  []string `yaml:"categories"`
	Reviews     int      `yaml:"reviews"`
	Description string   `yaml:"description"`
}

// Path is the product page path.
func (p Product) Path() string {
	return "/" + p.URLKey + ".html"
}

// Catalog is the full fixture document.
type Catalog struct {
	Menu                 []MenuTab  `yaml:"menu"`
	SubMenus             []SubMenu  `yaml:"submenus"`
	ActionLinks          []Link     `yaml:"actionLinks"`
	Footer               []Link     `yaml:"footer"`
	HomeWidgets          []Widget   `yaml:"homeWidgets"`
	Categories           []Category `yaml:"categories"`
	Listings             []Listing  `yaml:"listings"`
	Filters              []Filter   `yaml:"filters"`
	Toolbar              Toolbar    `yaml:"toolbar"`
	SearchResultElements []Element  `yaml:"searchResultElements"`
	CompareTable         []string   `yaml:"compareTable"`
	PDPTabs              []Element  `yaml:"pdpTabs"`
	Coupons              []Coupon   `yaml:"coupons"`
	Products             []Product  `yaml:"products"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses and validates the embedded catalog. The result is shared and
// must not be modified.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	return loaded, loadErr
}

// MustLoad is Load for test setup.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the cross references the scenarios rely on.
func (c *Catalog) Validate() error {
	if len(c.Menu) == 0 {
		return fmt.Errorf("catalog: menu is empty")
	}
	for _, tab := range c.Menu {
		if !strings.HasPrefix(tab.URL, "/") {
			return fmt.Errorf("catalog: menu tab %q has a non-path url %q", tab.Tab, tab.URL)
		}
	}
	for _, l := range c.Listings {
		if l.Items <= 0 {
			return fmt.Errorf("catalog: listing %q must have a positive item count", l.Name)
		}
	}
	for _, f := range c.Filters {
		switch f.Type {
		case FilterList:
		case FilterSwatch:
			if f.AttributeType == "" {
				return fmt.Errorf("catalog: swatch filter %q needs an attributeType", f.Name)
			}
		default:
			return fmt.Errorf("catalog: filter %q has unknown type %q", f.Name, f.Type)
		}
	}
	for _, coupon := range c.Coupons {
		if coupon.Kind != CouponValid && coupon.Kind != CouponInvalid {
			return fmt.Errorf("catalog: coupon %q has unknown kind %q", coupon.Code, coupon.Kind)
		}
	}

	seen := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.SKU == "" || p.URLKey == "" || p.Name == "" {
			return fmt.Errorf("catalog: product %+v is missing sku, name or urlKey", p)
		}
		if seen[p.URLKey] {
			return fmt.Errorf("catalog: duplicate product url key %q", p.URLKey)
		}
		seen[p.URLKey] = true
		if !p.Equipment && (len(p.Sizes) == 0 || len(p.Colors) == 0) {
			return fmt.Errorf("catalog: configurable product %q needs sizes and colors", p.Name)
		}
	}
	return nil
}

// SubMenuOf returns the third-level entries under tab, if any.
func (c *Catalog) SubMenuOf(tab string) ([]string, bool) {
	for _, s := range c.SubMenus {
		if s.Tab == tab {
			return s.Submenu, true
		}
	}
	return nil, false
}

// Product returns the product with the given name.
func (c *Catalog) Product(name string) (Product, bool) {
	for _, p := range c.Products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// ProductByURLKey returns the product served at /<key>.html.
func (c *Catalog) ProductByURLKey(key string) (Product, bool) {
	for _, p := range c.Products {
		if p.URLKey == key {
			return p, true
		}
	}
	return Product{}, false
}

// ProductsIn returns the products listed under a category path, in catalog order.
func (c *Catalog) ProductsIn(path string) []Product {
	var out []Product
	for _, p := range c.Products {
		for _, cat := range p.Categories {
			if cat == path {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Listing returns the listing stored under a URL path.
func (c *Catalog) Listing(path string) (Listing, bool) {
	for _, l := range c.Listings {
		if l.URL == path {
			return l, true
		}
	}
	return Listing{}, false
}
