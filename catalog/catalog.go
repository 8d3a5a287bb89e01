// Package catalog holds the product collection loaded for a session and the
// in-memory filtering done over it.
package catalog

import (
	"strings"

	"github.com/qyinm/craftshelf/types"
)

// Catalog is the ordered product collection for one session. It is never mutated
// after construction; filtering always returns a new slice.
type Catalog struct {
	products []types.Product
}

// New copies products into a Catalog.
func New(products []types.Product) Catalog {
	return Catalog{products: append([]types.Product(nil), products...)}
}

// Products returns a copy of every product in load order.
func (c Catalog) Products() []types.Product {
	return append([]types.Product(nil), c.products...)
}

// Len returns the number of products.
func (c Catalog) Len() int { return len(c.products) }

// At returns the product at index i in load order.
func (c Catalog) At(i int) (types.Product, bool) {
	if i < 0 || i >= len(c.products) {
		return types.Product{}, false
	}
	return c.products[i], true
}

// Categories returns the distinct lowercased, non-empty groups in order of first
// appearance. It is derived on every call.
func (c Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		g := strings.ToLower(p.Group())
		if strings.TrimSpace(g) == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Filter returns the products matching f, in catalog order. Products without a
// group never match a category filter. An empty result is not an error.
func (c Catalog) Filter(f types.Filter) []types.Product {
	idx := c.Matches(f)
	out := make([]types.Product, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.products[i])
	}
	return out
}

// Matches returns the load-order positions of the products matching f.
func (c Catalog) Matches(f types.Filter) []int {
	out := make([]int, 0)
	key := strings.ToLower(strings.TrimSpace(f.Text))
	for i, p := range c.products {
		if f.Mode == types.NoFilter {
			out = append(out, i)
			continue
		}
		if p.Group() == "" {
			continue
		}
		group := strings.ToLower(p.Group())
		if f.Mode == types.ListedCategory {
			if group == strings.ToLower(f.Text) {
				out = append(out, i)
			}
			continue
		}
		if matchGroup(f.Mode, group, key) {
			out = append(out, i)
		}
	}
	return out
}

// InCategory returns the positions of the products in name, an entry of
// Categories. Unlike an exact filter the name is not trimmed.
func (c Catalog) InCategory(name string) []int {
	return c.Matches(types.Category(name))
}

// Find returns the position of the first product with the given id.
func (c Catalog) Find(id string) (int, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, false
	}
	for i, p := range c.products {
		if strings.TrimSpace(p.ID()) == id {
			return i, true
		}
	}
	return 0, false
}

func matchGroup(mode types.FilterMode, group, key string) bool {
	switch mode {
	case types.ExactCategory:
		return group == key
	case types.CategorySubstring:
		return strings.Contains(group, key)
	default:
		return false
	}
}

// Suggest returns the categories containing text. Blank text yields nothing.
func (c Catalog) Suggest(text string) []string {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return nil
	}
	var out []string
	for _, g := range c.Categories() {
		if strings.Contains(g, key) {
			out = append(out, g)
		}
	}
	return out
}
