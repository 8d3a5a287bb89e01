package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	Submit      key.Binding
	Back        key.Binding
	NextGroup   key.Binding
	PrevGroup   key.Binding
	Details     key.Binding
	Order       key.Binding
	CustomOrder key.Binding
	Reset       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextGroup:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "category")),
	PrevGroup:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev category")),
	Details:     key.NewBinding(key.WithKeys(" ", "d"), key.WithHelp("space", "details")),
	Order:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
	CustomOrder: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom order")),
	Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "default view")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextGroup, k.Details, k.Order, k.CustomOrder, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Details, k.Order},
		{k.Search, k.Submit, k.Back, k.Reset},
		{k.NextGroup, k.PrevGroup, k.CustomOrder},
		{k.Help, k.Quit},
	}
}
