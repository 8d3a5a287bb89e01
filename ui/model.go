package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/faq"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
	"go.uber.org/zap"
)

type focus int

const (
	focusCards focus = iota
	focusSearch
)

type overlay int

const (
	overlayNone overlay = iota
	overlayWelcome
	overlayHelp
	overlayCustom
)

const maxSuggestions = 6

// Options wires the model to the catalog and the ordering flow.
type Options struct {
	Store         *catalog.Store
	DefaultFilter types.Filter
	Render        render.Options
	Composer      order.Composer
	Sequence      order.Sequence
	Opener        order.Opener
	SearchDelay   time.Duration
	FAQ           []faq.Entry
	Logger        *zap.Logger
	SkipWelcome   bool
}

// Model is the main TUI model. It is the terminal's render.Surface.
type Model struct {
	store         *catalog.Store
	catalog       catalog.Catalog
	loaded        bool
	loadErr       error
	renderOpts    render.Options
	defaultFilter types.Filter
	filter        types.Filter
	composer      order.Composer
	sequence      order.Sequence
	opener        order.Opener
	searchDelay   time.Duration
	logger        *zap.Logger

	list        list.Model
	search      textinput.Model
	spinner     spinner.Model
	help        help.Model
	faq         faqPanel
	form        *huh.Form
	requirement *string
	keys        keyMap

	state       *cardState
	placeholder render.Placeholder
	categories  []string
	category    int
	suggestions []string
	suggestion  int

	focus     focus
	overlay   overlay
	searching bool
	searchID  int
	orderID   int
	status    string
	warning   string
	width     int
	height    int
}

var _ render.Surface = (*Model)(nil)

// NewModel creates a Model that loads from opts.Store when started
func NewModel(opts Options) Model {
	state := newCardState()

	l := list.New([]list.Item{}, CardDelegate{state: state}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.PromptStyle = SearchPromptStyle
	ti.Placeholder = "category, e.g. hair clips"
	ti.CharLimit = 80

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorRose)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opener := opts.Opener
	if opener == nil {
		opener = order.DefaultOpener()
	}
	if opts.Render.Currency == "" {
		opts.Render.Currency = render.DefaultCurrency
	}

	ov := overlayWelcome
	if opts.SkipWelcome {
		ov = overlayNone
	}

	return Model{
		store:         opts.Store,
		renderOpts:    opts.Render,
		defaultFilter: opts.DefaultFilter,
		filter:        opts.DefaultFilter,
		composer:      opts.Composer,
		sequence:      opts.Sequence,
		opener:        opener,
		searchDelay:   opts.SearchDelay,
		logger:        logger,
		list:          l,
		search:        ti,
		spinner:       s,
		help:          help.New(),
		faq:           newFAQPanel(opts.FAQ),
		requirement:   new(string),
		keys:          keys,
		state:         state,
		placeholder:   render.PlaceholderLoading,
		category:      -1,
		suggestion:    -1,
		overlay:       ov,
	}
}

// Init starts the catalog load
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCatalog(m.store), m.spinner.Tick)
}

// RenderCards replaces the view with cards, all collapsed and idle
func (m *Model) RenderCards(cards []render.Card) {
	m.state.reset()
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = cardItem{card: c}
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.placeholder = render.PlaceholderNone
}

// ShowPlaceholder replaces the view with a single message
func (m *Model) ShowPlaceholder(p render.Placeholder) {
	m.state.reset()
	m.list.SetItems([]list.Item{})
	m.placeholder = p
}

// SetControlState records the visual state of a card control
func (m *Model) SetControlState(control string, state render.ControlState) {
	m.state.controls[control] = state
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case catalogLoadedMsg:
		return m.handleLoaded(msg), nil

	case searchTickMsg:
		return m.handleSearchTick(msg), nil

	case orderStepMsg:
		return m.handleOrderStep(msg)

	case linkOpenedMsg:
		return m.handleLinkOpened(msg), nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.overlay == overlayCustom {
		return m.updateForm(msg)
	}
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) busy() bool {
	return m.searching || m.placeholder == render.PlaceholderLoading
}

func (m Model) handleLoaded(msg catalogLoadedMsg) Model {
	m.loaded = true
	m.loadErr = msg.err
	m.catalog = msg.catalog
	m.categories = msg.catalog.Categories()
	if msg.err != nil {
		m.logger.Error("catalog load failed", zap.Error(msg.err))
	} else {
		m.logger.Info("catalog loaded",
			zap.Int("products", msg.catalog.Len()),
			zap.Int("categories", len(m.categories)),
		)
	}
	render.Show(&m, m.catalog, msg.err, m.defaultFilter, m.renderOpts)
	m.filter = m.defaultFilter
	m.category = m.categoryIndex(m.defaultFilter)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayWelcome:
		m.overlay = overlayNone
		return m, nil
	case overlayHelp:
		return m.handleHelpKey(msg)
	case overlayCustom:
		if key.Matches(msg, m.keys.Back) {
			m.form = nil
			m.overlay = overlayNone
			return m, nil
		}
		return m.updateForm(msg)
	}

	// a custom-order warning lasts until the next interaction
	m.warning = ""

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.refreshSuggestions()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextGroup):
		m.cycleCategory(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevGroup):
		m.cycleCategory(-1)
		return m, nil
	case key.Matches(msg, m.keys.Details):
		if item, ok := m.list.SelectedItem().(cardItem); ok {
			m.state.details.Toggle(item.card.Index)
		}
		return m, nil
	case key.Matches(msg, m.keys.Order):
		return m.startOrder()
	case key.Matches(msg, m.keys.CustomOrder):
		return m.openCustomForm()
	case key.Matches(msg, m.keys.Reset):
		m.applyFilter(m.defaultFilter)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.faq.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.faq.move(1)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
	default:
		var cmd tea.Cmd
		m.faq.answer, cmd = m.faq.answer.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyFilter draws f immediately and supersedes any pending search
func (m *Model) applyFilter(f types.Filter) {
	m.searchID++
	m.searching = false
	m.warning = ""
	products := render.Apply(m, m.catalog, f, m.renderOpts)
	m.filter = f
	m.category = m.categoryIndex(f)
	m.logger.Debug("filter applied",
		zap.Stringer("mode", f.Mode),
		zap.String("text", f.Text),
		zap.Int("results", len(products)),
	)
}

func (m Model) categoryIndex(f types.Filter) int {
	var want string
	switch f.Mode {
	case types.ExactCategory:
		want = strings.ToLower(strings.TrimSpace(f.Text))
	case types.ListedCategory:
		want = strings.ToLower(f.Text)
	default:
		return -1
	}
	for i, c := range m.categories {
		if c == want {
			return i
		}
	}
	return -1
}

func (m *Model) cycleCategory(delta int) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	next := 0
	switch {
	case m.category >= 0:
		next = (m.category + delta + n) % n
	case delta < 0:
		next = n - 1
	}
	m.applyFilter(types.Category(m.categories[next]))
}

// resizePanes adjusts the list, search box and overlays to the window
func (m *Model) resizePanes() {
	// header, category bar, search line, status bar, help line
	reserved := 6 + len(m.suggestions)
	h := m.height - reserved
	if h < 0 {
		h = 0
	}
	m.list.SetSize(m.width, h)
	m.search.Width = m.width - len(m.search.Prompt) - 2
	m.help.Width = m.width
	m.faq.resize(m.width, m.height)
}

// View renders the current view
func (m Model) View() string {
	switch m.overlay {
	case overlayWelcome:
		return m.place(m.welcomeView())
	case overlayHelp:
		return m.place(m.faq.View())
	case overlayCustom:
		if m.form != nil {
			return m.place(OverlayStyle.Render(m.form.View()))
		}
	}

	sections := []string{
		TitleStyle.Render("Craft Shelf · handmade with love"),
		m.categoryBar(),
		m.searchView(),
		m.body(),
		m.statusBar(),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) welcomeView() string {
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render("Welcome to Craft Shelf"))
	b.WriteString("\n\n")
	b.WriteString("Handmade hair accessories, gifts and more.\n")
	b.WriteString("Browse by category, search, and order straight on WhatsApp.\n\n")
	b.WriteString(StatusBarStyle.Render("press any key to start shopping"))
	return OverlayStyle.Render(b.String())
}

func (m Model) categoryBar() string {
	if len(m.categories) == 0 {
		return ""
	}
	labels := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		label := titleCaser.String(strings.TrimSpace(c))
		if i == m.category {
			labels = append(labels, ActiveCategoryStyle.Render(label))
		} else {
			labels = append(labels, InactiveCategoryStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func (m Model) searchView() string {
	lines := []string{m.search.View()}
	if m.focus == focusSearch {
		for i, s := range m.suggestions {
			if i == m.suggestion {
				lines = append(lines, SuggestionActiveStyle.Render(s))
			} else {
				lines = append(lines, SuggestionStyle.Render(s))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) body() string {
	switch m.placeholder {
	case render.PlaceholderNone:
		return m.list.View()
	case render.PlaceholderLoading:
		return PlaceholderStyle.Render(m.spinner.View() + " " + m.placeholder.Text())
	case render.PlaceholderLoadFailed:
		return FailureStyle.Render(m.placeholder.Text())
	default:
		return PlaceholderStyle.Render(m.placeholder.Text())
	}
}

func (m Model) statusBar() string {
	switch {
	case m.searching:
		return StatusBarStyle.Render(m.spinner.View() + " Searching…")
	case m.warning != "":
		return WarningStyle.Render(m.warning)
	case m.status != "":
		return StatusBarStyle.Render(m.status)
	case m.placeholder == render.PlaceholderNone:
		return StatusBarStyle.Render(m.describeFilter())
	}
	return ""
}

func (m Model) describeFilter() string {
	n := len(m.list.Items())
	switch m.filter.Mode {
	case types.ExactCategory, types.ListedCategory:
		return pluralProducts(n) + " in " + titleCaser.String(strings.TrimSpace(m.filter.Text))
	case types.CategorySubstring:
		return pluralProducts(n) + " matching \"" + m.filter.Text + "\""
	default:
		return pluralProducts(n)
	}
}

func pluralProducts(n int) string {
	if n == 1 {
		return "1 product"
	}
	return fmt.Sprintf("%d products", n)
}
