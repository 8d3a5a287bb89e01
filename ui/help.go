package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/qyinm/craftshelf/faq"
)

// faqPanel is the help overlay: a question list and an answer slot below it.
type faqPanel struct {
	entries  []faq.Entry
	selected int
	answer   viewport.Model
	width    int
}

func newFAQPanel(entries []faq.Entry) faqPanel {
	p := faqPanel{entries: entries, answer: viewport.New(60, 8)}
	p.refresh()
	return p
}

func (p *faqPanel) move(delta int) {
	if len(p.entries) == 0 {
		return
	}
	p.selected = (p.selected + delta + len(p.entries)) % len(p.entries)
	p.refresh()
}

func (p *faqPanel) resize(width, height int) {
	w := width - 8
	if w < 30 {
		w = 30
	}
	h := height - len(p.entries) - 10
	if h < 3 {
		h = 3
	}
	p.width = w
	p.answer.Width = w
	p.answer.Height = h
	p.refresh()
}

// refresh renders the selected answer into the answer slot
func (p *faqPanel) refresh() {
	if len(p.entries) == 0 {
		p.answer.SetContent("")
		return
	}
	p.answer.SetContent(renderMarkdown(p.entries[p.selected].Answer, p.answer.Width))
	p.answer.GotoTop()
}

func (p faqPanel) View() string {
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render("Frequently asked questions"))
	b.WriteString("\n\n")
	for i, e := range p.entries {
		if i == p.selected {
			b.WriteString(QuestionActiveStyle.Render(e.Question))
		} else {
			b.WriteString(QuestionStyle.Render(e.Question))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.answer.View())
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render("↑/↓ choose • esc close"))
	return OverlayStyle.Render(b.String())
}

func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
