package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/qyinm/craftshelf/catalog"
)

// TextSurface writes cards as plain text, one block per card. Used by the
// non-interactive CLI commands.
type TextSurface struct {
	W           io.Writer
	WithDetails bool
}

func (t TextSurface) RenderCards(cards []Card) {
	for i, c := range cards {
		if i > 0 {
			fmt.Fprintln(t.W)
		}
		fmt.Fprintf(t.W, "[%d] %s  %s\n", c.Index, c.Name, c.Price)
		if c.ID != "" {
			fmt.Fprintf(t.W, "    id: %s\n", c.ID)
		}
		if c.Group != "" {
			fmt.Fprintf(t.W, "    group: %s\n", c.Group)
		}
		if c.ImageURL != "" {
			fmt.Fprintf(t.W, "    image: %s\n", c.ImageURL)
		}
		if t.WithDetails && c.Description != "" {
			for _, line := range strings.Split(catalog.PlainDescription(c.Description), "\n") {
				fmt.Fprintf(t.W, "    %s\n", line)
			}
		}
	}
}

func (t TextSurface) ShowPlaceholder(p Placeholder) {
	if p == PlaceholderLoading {
		return
	}
	fmt.Fprintln(t.W, p.Text())
}

func (TextSurface) SetControlState(string, ControlState) {}
