package dto

import (
	"strings"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var labelCaser = cases.Title(language.Und)

// FromProduct converts p, which sits at index in the catalog.
func FromProduct(index int, p types.Product, currency string) Product {
	return Product{
		Index:         index,
		ID:            strings.TrimSpace(p.ID()),
		Name:          strings.TrimSpace(p.Name()),
		Price:         render.FormatPrice(currency, p.Price()),
		ImageURL:      catalog.NormalizeImageLink(p.Image()),
		OriginalImage: p.Image(),
		Description:   catalog.PlainDescription(p.Description()),
		Category:      strings.ToLower(strings.TrimSpace(p.Group())),
	}
}

// FromMatches converts the catalog products at the given positions.
func FromMatches(c catalog.Catalog, positions []int, currency string) []Product {
	out := make([]Product, 0, len(positions))
	for _, i := range positions {
		if p, ok := c.At(i); ok {
			out = append(out, FromProduct(i, p, currency))
		}
	}
	return out
}

// FromCatalogCategories lists every category of c with its product count.
func FromCatalogCategories(c catalog.Catalog) []Category {
	names := c.Categories()
	out := make([]Category, 0, len(names))
	for _, name := range names {
		out = append(out, Category{
			Name:  name,
			Label: labelCaser.String(strings.TrimSpace(name)),
			Count: len(c.InCategory(name)),
		})
	}
	return out
}
