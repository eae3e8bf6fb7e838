package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

var (
	panelStyle   lipgloss.Style
	titleStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	passStyle    lipgloss.Style
	warnStyle    lipgloss.Style
	failStyle    lipgloss.Style
	spinnerStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the dashboard styles from the current ui theme.
// Run calls it again so a theme selected after package init takes effect.
func initStyles() {
	t := ui.GetCurrentTheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Pass)
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Warn)
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Fail)
	spinnerStyle = lipgloss.NewStyle().Foreground(t.Accent)
}
