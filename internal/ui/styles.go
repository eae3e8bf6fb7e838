package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBanner frames title and an optional subtitle in a rounded box.
func RenderBanner(title, subtitle string) string {
	t := GetCurrentTheme()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 2)
	lines := []string{lipgloss.NewStyle().Bold(t.Name != NoColorTheme.Name).Foreground(t.Text).Render(title)}
	if subtitle != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Dim).Render(subtitle))
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderTable renders rows as left-aligned columns separated by two
// spaces, with the first row underlined as a header.
func RenderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	header := lipgloss.NewStyle().Underline(GetCurrentTheme().Name != NoColorTheme.Name)
	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			style := lipgloss.NewStyle().Width(widths[i])
			if r == 0 {
				style = style.Inherit(header)
			}
			cells = append(cells, style.Render(cell))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
