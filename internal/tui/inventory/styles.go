package inventory

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Bold(true).
			Padding(0, 1)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	statusStyle = statusBannerStyle.Render

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("orange")).
			Render

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224")).
				Padding(0, 0)

	listStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder(), false, false, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	previewStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	filterPaletteStyle = lipgloss.NewStyle().
				MarginLeft(1).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#334455"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	levelStyles = map[string]lipgloss.Style{
		"green":  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		"orange": lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")),
		"red":    lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		"grey":   lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
	}
)

func renderLevel(color, label string) string {
	style, ok := levelStyles[color]
	if !ok {
		style = levelStyles["grey"]
	}
	return style.Render(label)
}
