// Package render turns filtered products into display cards and drives a Surface.
// It knows nothing about terminals or HTML; each front end implements Surface.
package render

import (
	"context"
	"strings"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/types"
)

// DefaultCurrency prefixes every displayed price.
const DefaultCurrency = "₹"

// Placeholder replaces the card list when there is nothing to show.
type Placeholder int

const (
	PlaceholderNone Placeholder = iota
	PlaceholderLoading
	PlaceholderEmpty
	PlaceholderLoadFailed
)

// Text is the user-facing message for the placeholder.
func (p Placeholder) Text() string {
	switch p {
	case PlaceholderLoading:
		return "Loading products…"
	case PlaceholderEmpty:
		return "No products found"
	case PlaceholderLoadFailed:
		return "Failed to load products"
	default:
		return ""
	}
}

// ControlState is the visual state of an interactive control, such as an order button.
type ControlState int

const (
	ControlIdle ControlState = iota
	ControlPending
	ControlConfirmed
	ControlDisabled
)

// Card is the display form of one product.
type Card struct {
	Index         int
	ID            string
	Name          string
	Price         string
	ImageURL      string
	OriginalImage string
	Description   string
	Group         string
	Product       types.Product
}

// Surface is a display that can show cards, show a placeholder, and reflect control
// state. RenderCards and ShowPlaceholder each replace whatever was shown before.
type Surface interface {
	RenderCards(cards []Card)
	ShowPlaceholder(p Placeholder)
	SetControlState(control string, state ControlState)
}

// Options tune card formatting.
type Options struct {
	Currency string
}

func (o Options) currency() string {
	if o.Currency == "" {
		return DefaultCurrency
	}
	return o.Currency
}

// FormatPrice prefixes price with the currency symbol.
func FormatPrice(currency, price string) string {
	return currency + strings.TrimSpace(price)
}

// Cards builds one card per product, in order.
func Cards(products []types.Product, opts Options) []Card {
	cards := make([]Card, 0, len(products))
	for i, p := range products {
		cards = append(cards, Card{
			Index:         i,
			ID:            p.ID(),
			Name:          p.Name(),
			Price:         FormatPrice(opts.currency(), p.Price()),
			ImageURL:      catalog.NormalizeImageLink(p.Image()),
			OriginalImage: p.Image(),
			Description:   p.Description(),
			Group:         p.Group(),
			Product:       p,
		})
	}
	return cards
}

// Products draws products on s, or the empty placeholder when there are none.
func Products(s Surface, products []types.Product, opts Options) {
	if len(products) == 0 {
		s.ShowPlaceholder(PlaceholderEmpty)
		return
	}
	s.RenderCards(Cards(products, opts))
}

// Show draws the first view of a session: the failure placeholder when the load
// failed, otherwise f applied to c.
func Show(s Surface, c catalog.Catalog, loadErr error, f types.Filter, opts Options) []types.Product {
	if loadErr != nil {
		s.ShowPlaceholder(PlaceholderLoadFailed)
		return nil
	}
	return Apply(s, c, f, opts)
}

// Apply draws f applied to c. After a failed load c is empty, so later searches
// show the empty placeholder rather than the failure one.
func Apply(s Surface, c catalog.Catalog, f types.Filter, opts Options) []types.Product {
	products := c.Filter(f)
	Products(s, products, opts)
	return products
}

// Bootstrap shows the loading placeholder, performs the store's one-time load and
// draws the default filter. The load error, if any, is returned for logging.
func Bootstrap(ctx context.Context, s Surface, store *catalog.Store, defaultFilter types.Filter, opts Options) error {
	s.ShowPlaceholder(PlaceholderLoading)
	c, err := store.Load(ctx)
	Show(s, c, err, defaultFilter, opts)
	return err
}
