package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainDescription flattens a description cell to plain text. Sheet cells sometimes
// carry pasted HTML (<br>, <b>, <li>); block boundaries become newlines and runs of
// whitespace collapse.
func PlainDescription(desc string) string {
	if !strings.ContainsAny(desc, "<&") {
		return collapseLines(desc)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(desc))
	if err != nil {
		return collapseLines(desc)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p,div,li,h1,h2,h3,h4,tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})

	return collapseLines(doc.Text())
}

func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
