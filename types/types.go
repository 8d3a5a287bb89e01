package types

import (
	"context"
	"strings"
)

// FilterMode selects how a Filter compares its text against a product group.
type FilterMode int

const (
	NoFilter FilterMode = iota
	ExactCategory
	CategorySubstring
	// ListedCategory selects one entry of the catalog's category set. The text
	// is compared as listed, without trimming, so padded sheet groups stay reachable.
	ListedCategory
)

// String returns the string representation of the mode
func (m FilterMode) String() string {
	switch m {
	case NoFilter:
		return "none"
	case ExactCategory:
		return "exact"
	case CategorySubstring:
		return "substring"
	case ListedCategory:
		return "category"
	default:
		return "unknown"
	}
}

// ParseFilterMode maps "exact", "substring", "category" or "none" (case-insensitive)
// to a mode.
// Empty input means NoFilter.
func ParseFilterMode(raw string) (FilterMode, bool) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", "none":
		return NoFilter, true
	case "exact":
		return ExactCategory, true
	case "substring":
		return CategorySubstring, true
	case "category":
		return ListedCategory, true
	default:
		return NoFilter, false
	}
}

// Filter is the active filter for one render cycle.
type Filter struct {
	Mode FilterMode
	Text string
}

// Exact builds an exact-category filter.
func Exact(text string) Filter { return Filter{Mode: ExactCategory, Text: text} }

// Substring builds a category-substring filter.
func Substring(text string) Filter { return Filter{Mode: CategorySubstring, Text: text} }

// Category selects a name returned by the catalog's category set.
func Category(name string) Filter { return Filter{Mode: ListedCategory, Text: name} }

// Product is one catalog record. Every field is free text as it appears in the sheet.
type Product struct {
	id    string
	name  string
	price string
	image string
	desc  string
	group string
}

// NewProduct creates a new Product with the given fields
func NewProduct(id, name, price, image, desc, group string) Product {
	return Product{
		id:    id,
		name:  name,
		price: price,
		image: image,
		desc:  desc,
		group: group,
	}
}

// Getters for Product fields
func (p Product) ID() string          { return p.id }
func (p Product) Name() string        { return p.name }
func (p Product) Price() string       { return p.price }
func (p Product) Image() string       { return p.image }
func (p Product) Description() string { return p.desc }
func (p Product) Group() string       { return p.group }

// CatalogSource is the data access abstraction for the product catalog.
// Implementations perform a single fetch per call; callers decide how often to call.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}
