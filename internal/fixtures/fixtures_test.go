package fixtures

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Menu, 6)
	assert.Len(t, c.Footer, 4)
	assert.Len(t, c.Listings, 19)
	assert.Len(t, c.Filters, 13)
	assert.Equal(t, []int{36, 24, 12}, c.Toolbar.Limits)
	assert.Equal(t, []string{"Position", "Product Name", "Price"}, c.Toolbar.SortTypes)
	assert.Equal(t, []string{"list", "grid"}, c.Toolbar.Modes)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestCatalog_Categories(t *testing.T) {
	c := MustLoad()

	got := map[string]int{}
	grids := map[string]string{}
	for _, cat := range c.Categories {
		got[cat.Name] = len(cat.Widgets)
		grids[cat.Name] = cat.Grid
	}

	want := map[string]int{"What's New": 3, "Women": 7, "Men": 6, "Gear": 6, "Sale": 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("widget counts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Luma's Latest", grids["What's New"])
	assert.Empty(t, grids["Sale"], "sale page has no grid widget")
}

func TestCatalog_SaleWidgetsWithoutURL(t *testing.T) {
	c := MustLoad()

	var unlinked []string
	for _, cat := range c.Categories {
		for _, w := range cat.Widgets {
			if w.URL == "" {
				unlinked = append(unlinked, cat.Name+"/"+w.Name)
			}
		}
	}

	assert.Equal(t, []string{"Sale/20% OFF", "Sale/Free shipping"}, unlinked)
}

func TestCatalog_SubMenuOf(t *testing.T) {
	c := MustLoad()

	tops, ok := c.SubMenuOf("Tops")
	require.True(t, ok)
	assert.Equal(t, []string{"Jackets", "Hoodies & Sweatshirts", "Tees", "Bras & Tanks"}, tops)

	_, ok = c.SubMenuOf("Bags")
	assert.False(t, ok)
}

func TestCatalog_Products(t *testing.T) {
	c := MustLoad()

	juno, ok := c.Product("Juno Jacket")
	require.True(t, ok)
	assert.Equal(t, "/juno-jacket.html", juno.Path())

	bottle, ok := c.ProductByURLKey("affirm-water-bottle")
	require.True(t, ok)
	assert.True(t, bottle.Equipment)

	pants := c.ProductsIn("/women/bottoms-women/pants-women.html")
	require.Len(t, pants, 1)
	assert.Equal(t, "Aeon Capri", pants[0].Name)

	listing, ok := c.Listing("/gear/watches.html")
	require.True(t, ok)
	assert.Equal(t, 9, listing.Items)
	assert.True(t, listing.Equipment)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "empty menu",
			doc:     "menu: []\n",
			wantErr: "menu is empty",
		},
		{
			name:    "bad filter type",
			doc:     "menu: [{tab: A, url: /a.html}]\nfilters: [{name: X, type: dropdown}]\n",
			wantErr: "unknown type",
		},
		{
			name:    "swatch without attribute type",
			doc:     "menu: [{tab: A, url: /a.html}]\nfilters: [{name: Size, type: swatch}]\n",
			wantErr: "needs an attributeType",
		},
		{
			name:    "bad coupon kind",
			doc:     "menu: [{tab: A, url: /a.html}]\ncoupons: [{code: x, kind: Maybe}]\n",
			wantErr: "unknown kind",
		},
		{
			name:    "duplicate product",
			doc:     "menu: [{tab: A, url: /a.html}]\nproducts:\n  - {sku: A, name: A, urlKey: a, equipment: true}\n  - {sku: B, name: B, urlKey: a, equipment: true}\n",
			wantErr: "duplicate product url key",
		},
		{
			name:    "zero listing items",
			doc:     "menu: [{tab: A, url: /a.html}]\nlistings: [{name: L, url: /l.html, items: 0}]\n",
			wantErr: "positive item count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
