package web

import (
	"github.com/qyinm/craftshelf/render"
)

// pageSurface collects what one page request should show.
type pageSurface struct {
	cards       []render.Card
	placeholder render.Placeholder
}

var _ render.Surface = (*pageSurface)(nil)

func (p *pageSurface) RenderCards(cards []render.Card) {
	p.cards = cards
	p.placeholder = render.PlaceholderNone
}

func (p *pageSurface) ShowPlaceholder(ph render.Placeholder) {
	p.cards = nil
	p.placeholder = ph
}

// SetControlState is a no-op: a page is static once served and order buttons
// are plain links.
func (p *pageSurface) SetControlState(string, render.ControlState) {}
