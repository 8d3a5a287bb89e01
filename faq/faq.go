// Package faq holds the question and answer pairs shown by the help overlay.
package faq

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultFAQ []byte

// Entry is one question and its markdown answer.
type Entry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Parse decodes a YAML list of entries. Entries without a question are dropped.
func Parse(data []byte) ([]Entry, error) {
	var raw []Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse faq: %w", err)
	}
	out := make([]Entry, 0, len(raw))
	for _, e := range raw {
		e.Question = strings.TrimSpace(e.Question)
		e.Answer = strings.TrimSpace(e.Answer)
		if e.Question == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Default returns the built-in entries.
func Default() []Entry {
	entries, err := Parse(defaultFAQ)
	if err != nil {
		panic(err)
	}
	return entries
}
