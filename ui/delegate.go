package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/render"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cardItem adapts a render.Card to list.Item
type cardItem struct {
	card render.Card
}

func (i cardItem) FilterValue() string { return i.card.Group }

// cardState is shared between the model and the delegate so that both see the
// same details toggles and order button states. It is reset on every redraw.
type cardState struct {
	details    render.Details
	controls   map[string]render.ControlState
	generation int
}

func newCardState() *cardState {
	return &cardState{controls: make(map[string]render.ControlState)}
}

func (s *cardState) reset() {
	s.details.Reset()
	s.controls = make(map[string]render.ControlState)
	s.generation++
}

func (s *cardState) control(name string) render.ControlState {
	return s.controls[name]
}

func orderControl(index int) string {
	return fmt.Sprintf("order:%d", index)
}

const detailLines = 2

var titleCaser = cases.Title(language.Und)

// CardDelegate renders one product card over five lines:
// name and price, group and image, two lines of details, and the order button.
type CardDelegate struct {
	state *cardState
}

func (d CardDelegate) Height() int {
	return 3 + detailLines
}

func (d CardDelegate) Spacing() int {
	return 1
}

func (d CardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d CardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(cardItem)
	if !ok {
		return
	}
	card := ci.card
	selected := index == m.Index()
	width := m.Width()

	marker := "  "
	nameStyle := CardNameStyle
	if selected {
		marker = "▌ "
		nameStyle = CardNameSelectedStyle
	}

	// Line 1: name, price right-aligned
	price := card.Price
	nameWidth := width - len(marker) - runewidth.StringWidth(price) - 1
	line1 := marker + nameStyle.Render(fit(card.Name, nameWidth)) + " " + CardPriceStyle.Render(price)

	// Line 2: category and image link
	meta := card.ImageURL
	if card.Group != "" {
		meta = titleCaser.String(card.Group) + " • " + meta
	}
	line2 := "    " + CardMetaStyle.Render(fit(meta, width-4))

	// Lines 3-4: collapsed hint or the first lines of the description
	details := make([]string, detailLines)
	if d.state != nil && d.state.details.Expanded(card.Index) {
		body := wrap(catalog.PlainDescription(card.Description), width-6)
		if len(body) == 0 {
			body = []string{"No description"}
		}
		for i := range details {
			if i < len(body) {
				prefix := "  "
				if i == 0 {
					prefix = "▾ "
				}
				details[i] = "    " + prefix + CardDescStyle.Render(body[i])
			}
		}
	} else {
		details[0] = "    " + CardMetaStyle.Render("▸ View details (space)")
	}

	// Line 5: order button
	var state render.ControlState
	if d.state != nil {
		state = d.state.control(orderControl(card.Index))
	}
	line5 := "    " + orderButton(state)

	lines := append([]string{line1, line2}, details...)
	lines = append(lines, line5)
	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func orderButton(state render.ControlState) string {
	switch state {
	case render.ControlPending:
		return OrderPendingStyle.Render("⏳ Opening WhatsApp…")
	case render.ControlConfirmed:
		return OrderConfirmedStyle.Render("✓ Order sent")
	case render.ControlDisabled:
		return CardMetaStyle.Render("Order unavailable")
	default:
		return OrderIdleStyle.Render("[o] Order on WhatsApp")
	}
}

// fit truncates or pads s to exactly width terminal cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// wrap breaks text into lines no wider than width
func wrap(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if width < 10 {
		width = 10
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	var out []string
	for _, line := range strings.Split(wrapped, "\n") {
		if line = strings.TrimRight(line, " "); line != "" {
			out = append(out, line)
		}
	}
	return out
}
