package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codeshelf/codeshelf/internal/labels"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	statusDirtyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	statusCleanStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

// renderBadges renders the label set as colored abbreviation chips.
func renderBadges(mapping *labels.Mapping, names []string) string {
	if len(names) == 0 {
		return ""
	}

	chips := make([]string, 0, len(names))
	for _, name := range names {
		badge := mapping.Badge(name)
		chip := lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color(badge.Color)).
			Padding(0, 1).
			Render(badge.Abbrev)
		chips = append(chips, chip)
	}
	return strings.Join(chips, " ")
}
