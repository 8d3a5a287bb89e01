package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI palette so the shop looks the same in every terminal theme
var (
	ColorForeground = lipgloss.AdaptiveColor{Light: "0", Dark: "255"}
	ColorRose       = lipgloss.AdaptiveColor{Light: "5", Dark: "13"}
	ColorTeal       = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
	ColorLeaf       = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
	ColorAmber      = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	ColorRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorRose).
			Bold(true).
			Padding(0, 1)

	// Category bar
	ActiveCategoryStyle = lipgloss.NewStyle().
				Foreground(ColorRose).
				Bold(true).
				Underline(true).
				Padding(0, 1)
	InactiveCategoryStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	// Search
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(ColorTeal).
				Bold(true)
	SuggestionStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			PaddingLeft(2)
	SuggestionActiveStyle = lipgloss.NewStyle().
				Foreground(ColorRose).
				Bold(true).
				PaddingLeft(1).
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorRose)

	// Cards
	CardNameStyle         = lipgloss.NewStyle().Foreground(ColorTeal)
	CardNameSelectedStyle = lipgloss.NewStyle().Foreground(ColorRose).Bold(true)
	CardPriceStyle        = lipgloss.NewStyle().Foreground(ColorLeaf).Bold(true)
	CardMetaStyle         = lipgloss.NewStyle().Foreground(ColorMuted)
	CardDescStyle         = lipgloss.NewStyle().Foreground(ColorForeground)
	OrderIdleStyle        = lipgloss.NewStyle().Foreground(ColorLeaf)
	OrderPendingStyle     = lipgloss.NewStyle().Foreground(ColorAmber).Bold(true)
	OrderConfirmedStyle   = lipgloss.NewStyle().Foreground(ColorLeaf).Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true).
				Padding(1, 2)
	FailureStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(1, 2)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	// Overlays
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRose).
			Padding(1, 2)
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(ColorRose).
				Bold(true)
	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2)
	QuestionActiveStyle = lipgloss.NewStyle().
				Foreground(ColorTeal).
				Bold(true).
				PaddingLeft(1).
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorTeal)
)
