package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/order"
)

// Message types for async operations

type catalogLoadedMsg struct {
	catalog catalog.Catalog
	err     error
}

type searchTickMsg struct {
	requestID int
	text      string
}

type orderStepMsg struct {
	orderID    int
	generation int
	index      int
	kind       order.StepKind
	link       string
}

type linkOpenedMsg struct {
	link string
	err  error
}

// loadCatalog returns a tea.Cmd that performs the store's one-time load
func loadCatalog(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		c, err := store.Load(context.Background())
		return catalogLoadedMsg{catalog: c, err: err}
	}
}

// delaySearch emits the search once the loading indicator has been visible for d
func delaySearch(d time.Duration, requestID int, text string) tea.Cmd {
	msg := searchTickMsg{requestID: requestID, text: text}
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// orderSteps schedules every stage of seq after the pending one, which the caller
// applies synchronously.
func orderSteps(seq order.Sequence, orderID, generation, index int, link string) tea.Cmd {
	var cmds []tea.Cmd
	for _, step := range seq.Steps() {
		if step.Kind == order.StepPending {
			continue
		}
		msg := orderStepMsg{
			orderID:    orderID,
			generation: generation,
			index:      index,
			kind:       step.Kind,
			link:       link,
		}
		cmds = append(cmds, tea.Tick(step.At, func(time.Time) tea.Msg { return msg }))
	}
	return tea.Batch(cmds...)
}

// openLink hands link to the opener off the update loop
func openLink(opener order.Opener, link string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{link: link, err: opener.Open(link)}
	}
}
