package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/craftshelf/types"
	"go.uber.org/zap"
)

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveSearch()
		return m, nil
	case msg.Type == tea.KeyUp:
		m.moveSuggestion(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveSuggestion(1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.search.Value()
		if m.suggestion >= 0 && m.suggestion < len(m.suggestions) {
			text = m.suggestions[m.suggestion]
			m.search.SetValue(text)
		}
		m.leaveSearch()
		return m.startSearch(text)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

func (m *Model) leaveSearch() {
	m.focus = focusCards
	m.search.Blur()
	m.suggestions = nil
	m.suggestion = -1
	m.resizePanes()
}

func (m *Model) refreshSuggestions() {
	matches := m.catalog.Suggest(m.search.Value())
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	m.suggestions = matches
	m.suggestion = -1
	m.resizePanes()
}

func (m *Model) moveSuggestion(delta int) {
	n := len(m.suggestions)
	if n == 0 {
		return
	}
	switch {
	case m.suggestion < 0 && delta > 0:
		m.suggestion = 0
	case m.suggestion < 0:
		m.suggestion = n - 1
	default:
		m.suggestion = (m.suggestion + delta + n) % n
	}
}

// startSearch shows the busy indicator and schedules a substring filter.
// Blank text is ignored and leaves the current view as it is.
func (m Model) startSearch(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" {
		return m, nil
	}
	if !m.loaded {
		m.status = "Still loading the catalog…"
		return m, nil
	}
	m.searchID++
	m.searching = true
	m.status = ""
	m.logger.Debug("search scheduled", zap.Int("request", m.searchID), zap.String("text", text))
	return m, tea.Batch(m.spinner.Tick, delaySearch(m.searchDelay, m.searchID, text))
}

func (m Model) handleSearchTick(msg searchTickMsg) Model {
	if msg.requestID != m.searchID {
		return m
	}
	m.applyFilter(types.Substring(msg.text))
	return m
}
