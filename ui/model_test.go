package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/faq"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
)

type stubSource struct {
	products []types.Product
	err      error
}

func (s stubSource) FetchProducts(context.Context) ([]types.Product, error) {
	return s.products, s.err
}

func shopProducts() []types.Product {
	return []types.Product{
		types.NewProduct("H1", "Pearl Clip", "150", "https://drive.google.com/file/d/ABC123/view", "<p>Shiny pearls</p>", "Hair Accessories"),
		types.NewProduct("B1", "Canvas Tote", "450", "https://cdn.example.com/tote.png", "Roomy", "Bags"),
		types.NewProduct("H2", "Silk Scrunchie", "99", "https://cdn.example.com/scrunchie.png", "Soft", "hair accessories"),
		types.NewProduct("K1", "Felt Keychain", "60", "", "", "Keychains"),
	}
}

type openRecorder struct {
	links []string
	err   error
}

func (o *openRecorder) Open(link string) error {
	o.links = append(o.links, link)
	return o.err
}

func newTestModel(t *testing.T, src stubSource, opener order.Opener) Model {
	t.Helper()
	m := NewModel(Options{
		Store:         catalog.NewStore(src),
		DefaultFilter: types.Exact("hair accessories"),
		Render:        render.Options{Currency: "₹"},
		Composer: order.Composer{
			Base:          order.DefaultDeepLinkBase,
			Destination:   "15550001111",
			Currency:      "₹",
			StartingPrice: "199",
		},
		Sequence:    order.DefaultSequence(),
		Opener:      opener,
		FAQ:         faq.Default(),
		SkipWelcome: true,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

// load runs the model's load command and feeds the result back in
func load(t *testing.T, m Model) Model {
	t.Helper()
	c, err := m.store.Load(context.Background())
	next, _ := m.Update(catalogLoadedMsg{catalog: c, err: err})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cardIDs(m Model) []string {
	var ids []string
	for _, it := range m.list.Items() {
		ids = append(ids, it.(cardItem).card.ID)
	}
	return ids
}

func TestNewModelStartsLoading(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, stubSource{}, &openRecorder{})
	require.Equal(t, render.PlaceholderLoading, m.placeholder)
	require.Contains(t, m.View(), "Loading products")
	require.NotNil(t, m.Init())
}

func TestLoadShowsDefaultCategory(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	require.Equal(t, render.PlaceholderNone, m.placeholder)
	require.Equal(t, []string{"H1", "H2"}, cardIDs(m))
	require.Equal(t, []string{"hair accessories", "bags", "keychains"}, m.categories)
	require.Equal(t, 0, m.category)

	view := m.View()
	require.Contains(t, view, "Pearl Clip")
	require.Contains(t, view, "₹150")
	require.Contains(t, view, "https://lh3.googleusercontent.com/d/ABC123")
}

func TestLoadFailureThenSearchShowsEmpty(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{err: errors.New("offline")}, &openRecorder{}))
	require.Equal(t, render.PlaceholderLoadFailed, m.placeholder)
	require.Contains(t, m.View(), "Failed to load products")

	m, cmd := m.startSearchModel(t, "bags")
	require.NotNil(t, cmd)
	m, _ = update(t, m, searchTickMsg{requestID: m.searchID, text: "bags"})
	require.Equal(t, render.PlaceholderEmpty, m.placeholder)
	require.Contains(t, m.View(), "No products found")
}

func (m Model) startSearchModel(t *testing.T, text string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.startSearch(text)
	return next.(Model), cmd
}

func TestSearchAppliesSubstringAfterDelay(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))

	m, _ = update(t, m, runes("/"))
	require.Equal(t, focusSearch, m.focus)
	for _, r := range "chain" {
		m, _ = update(t, m, runes(string(r)))
	}
	require.Equal(t, []string{"keychains"}, m.suggestions)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, m.searching)
	require.Equal(t, focusCards, m.focus)
	require.Contains(t, m.View(), "Searching")
	// the old view stays until the delay elapses
	require.Equal(t, []string{"H1", "H2"}, cardIDs(m))

	m, _ = update(t, m, searchTickMsg{requestID: m.searchID, text: "chain"})
	require.False(t, m.searching)
	require.Equal(t, []string{"K1"}, cardIDs(m))
	require.Equal(t, types.Substring("chain"), m.filter)
	require.Equal(t, -1, m.category)
}

func TestSearchSuggestionSelection(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("a"))
	require.Equal(t, []string{"hair accessories", "bags", "keychains"}, m.suggestions)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.suggestion)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "bags", m.search.Value())
	m, _ = update(t, m, searchTickMsg{requestID: m.searchID, text: "bags"})
	require.Equal(t, []string{"B1"}, cardIDs(m))
}

func TestBlankSearchIsIgnored(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	id := m.searchID

	m, cmd := m.startSearchModel(t, "   ")
	require.Nil(t, cmd)
	require.False(t, m.searching)
	require.Equal(t, id, m.searchID)
	require.Equal(t, []string{"H1", "H2"}, cardIDs(m))
}

func TestStaleSearchTickIsDropped(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	m, _ = m.startSearchModel(t, "bags")
	stale := m.searchID
	m, _ = m.startSearchModel(t, "key")

	m, _ = update(t, m, searchTickMsg{requestID: stale, text: "bags"})
	require.True(t, m.searching)
	require.Equal(t, []string{"H1", "H2"}, cardIDs(m))

	m, _ = update(t, m, searchTickMsg{requestID: m.searchID, text: "key"})
	require.Equal(t, []string{"K1"}, cardIDs(m))
}

func TestCategoryCycling(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, m.category)
	require.Equal(t, []string{"B1"}, cardIDs(m))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 2, m.category)
	require.Equal(t, types.Category("keychains"), m.filter)

	m, _ = update(t, m, runes("r"))
	require.Equal(t, []string{"H1", "H2"}, cardIDs(m))
	require.Contains(t, m.View(), "Hair Accessories")
}

func TestDetailsToggleIsPerCardAndResetsOnRedraw(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	require.Contains(t, m.View(), "View details")

	m, _ = update(t, m, runes("d"))
	require.True(t, m.state.details.Expanded(0))
	require.False(t, m.state.details.Expanded(1))
	require.Contains(t, m.View(), "Shiny pearls")

	m, _ = update(t, m, runes("d"))
	require.False(t, m.state.details.Expanded(0))

	m, _ = update(t, m, runes("d"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.False(t, m.state.details.Expanded(0))
}

func TestOrderRunsStagedFeedbackThenOpens(t *testing.T) {
	t.Parallel()

	opener := &openRecorder{}
	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, opener))

	m, cmd := update(t, m, runes("o"))
	require.NotNil(t, cmd)
	require.Equal(t, render.ControlPending, m.state.control(orderControl(0)))
	require.Contains(t, m.View(), "Opening WhatsApp")

	// a second press while pending does nothing
	_, again := update(t, m, runes("o"))
	require.Nil(t, again)

	gen := m.state.generation
	m, _ = update(t, m, orderStepMsg{orderID: m.orderID, generation: gen, index: 0, kind: order.StepConfirmed})
	require.Equal(t, render.ControlConfirmed, m.state.control(orderControl(0)))
	require.Empty(t, opener.links)

	link := m.composer.ProductLink(shopProducts()[0])
	m, cmd = update(t, m, orderStepMsg{orderID: m.orderID, generation: gen, index: 0, kind: order.StepOpen, link: link})
	require.NotNil(t, cmd)
	opened := cmd()
	require.Equal(t, []string{link}, opener.links)
	require.Contains(t, link, "drive.google.com")
	require.NotContains(t, link, "googleusercontent")

	m, _ = update(t, m, opened)
	require.Equal(t, "WhatsApp opened", m.status)
}

func TestOrderFeedbackDroppedAfterRedraw(t *testing.T) {
	t.Parallel()

	opener := &openRecorder{}
	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, opener))
	m, _ = update(t, m, runes("o"))
	gen := m.state.generation

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, orderStepMsg{generation: gen, index: 0, kind: order.StepConfirmed})
	require.Equal(t, render.ControlIdle, m.state.control(orderControl(0)))

	// the open step still fires for the redrawn card set
	link := m.composer.ProductLink(shopProducts()[0])
	_, cmd := update(t, m, orderStepMsg{generation: gen, index: 0, kind: order.StepOpen, link: link})
	require.NotNil(t, cmd)
	cmd()
	require.Equal(t, []string{link}, opener.links)
}

func TestOpenFailureIsReported(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, stubSource{}, &openRecorder{})
	m, _ = update(t, m, linkOpenedMsg{link: "https://wa.me/1", err: errors.New("no browser")})
	require.True(t, strings.HasPrefix(m.status, "Could not open WhatsApp"))
}

func TestCustomOrderBlankRequirementWarns(t *testing.T) {
	t.Parallel()

	opener := &openRecorder{}
	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, opener))

	m, cmd := m.submitCustom("   ")
	require.Nil(t, cmd)
	require.Equal(t, requirementWarning, m.warning)
	require.Contains(t, m.View(), requirementWarning)
	require.Empty(t, opener.links)

	m, cmd = m.submitCustom("Blue bow, 3 inch")
	require.NotNil(t, cmd)
	require.Empty(t, m.warning)
	cmd()
	require.Len(t, opener.links, 1)
	require.Contains(t, opener.links[0], "Requirement%3A%20Blue%20bow")
	require.Contains(t, opener.links[0], "%E2%82%B9199")
}

func TestCustomOrderWarningClearsOnNextAction(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	m, _ = m.submitCustom(" ")
	require.Equal(t, requirementWarning, m.warning)

	m, _ = update(t, m, runes("j"))
	require.Empty(t, m.warning)
	require.NotContains(t, m.View(), requirementWarning)

	m, _ = m.submitCustom("")
	require.Equal(t, requirementWarning, m.warning)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Empty(t, m.warning)
	require.Contains(t, m.statusBar(), "1 product in Bags")
}

func TestCategoryCyclingReachesPaddedGroups(t *testing.T) {
	t.Parallel()

	products := []types.Product{
		types.NewProduct("B1", "Canvas Tote", "450", "", "", "Bags "),
		types.NewProduct("C1", "Claw Clip", "80", "", "", " Hair Clips"),
	}
	m := load(t, newTestModel(t, stubSource{products: products}, &openRecorder{}))
	require.Equal(t, []string{"bags ", " hair clips"}, m.categories)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, m.category)
	require.Equal(t, []string{"B1"}, cardIDs(m))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, m.category)
	require.Equal(t, []string{"C1"}, cardIDs(m))
	require.Contains(t, m.categoryBar(), "Hair Clips")
	require.Contains(t, m.statusBar(), "1 product in Hair Clips")
}

func TestCustomOrderOverlay(t *testing.T) {
	t.Parallel()

	m := load(t, newTestModel(t, stubSource{products: shopProducts()}, &openRecorder{}))
	m, _ = update(t, m, runes("c"))
	require.Equal(t, overlayCustom, m.overlay)
	require.NotNil(t, m.form)
	require.Contains(t, m.View(), "Custom order")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, overlayNone, m.overlay)
	require.Nil(t, m.form)
	require.Error(t, validateRequirement(" \n "))
	require.NoError(t, validateRequirement("a bow"))
}

func TestWelcomeAndHelpOverlays(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Store: catalog.NewStore(stubSource{}), FAQ: faq.Default()})
	require.Equal(t, overlayWelcome, m.overlay)
	require.Contains(t, m.View(), "Welcome")

	m, _ = update(t, m, runes("x"))
	require.Equal(t, overlayNone, m.overlay)

	m, _ = update(t, m, runes("?"))
	require.Equal(t, overlayHelp, m.overlay)
	require.Contains(t, m.View(), "How do I place an order?")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.faq.selected)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, len(m.faq.entries)-1, m.faq.selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, overlayNone, m.overlay)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, stubSource{}, &openRecorder{})
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFit(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abc  ", fit("abc", 5))
	require.Equal(t, "abcd…", fit("abcdefgh", 5))
	require.Equal(t, "", fit("abc", 0))
}
