package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color scheme. Line-oriented output (REPL, reports) uses
// the ANSI escape sequences; framed output and the dashboard use the
// lipgloss colors. Every escape sequence is empty in the "none" theme.
type Theme struct {
	Name string

	Bold      string
	Reset     string
	Success   string
	Warning   string
	Error     string
	Secondary string

	Accent lipgloss.TerminalColor
	Text   lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
	Pass   lipgloss.TerminalColor
	Warn   lipgloss.TerminalColor
	Fail   lipgloss.TerminalColor
}

// shades names the 256-color codes a theme is built from.
type shades struct {
	accent, text, dim, pass, warn, fail string
}

func newTheme(name string, c shades) Theme {
	esc := func(code string) string { return "\033[38;5;" + code + "m" }
	return Theme{
		Name:      name,
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Success:   esc(c.pass),
		Warning:   esc(c.warn),
		Error:     esc(c.fail),
		Secondary: esc(c.dim),
		Accent:    lipgloss.Color(c.accent),
		Text:      lipgloss.Color(c.text),
		Dim:       lipgloss.Color(c.dim),
		Pass:      lipgloss.Color(c.pass),
		Warn:      lipgloss.Color(c.warn),
		Fail:      lipgloss.Color(c.fail),
	}
}

var (
	// DarkTheme suits dark terminal backgrounds and is the default.
	DarkTheme = newTheme("dark", shades{accent: "39", text: "255", dim: "245", pass: "82", warn: "220", fail: "196"})

	// LightTheme uses darker shades for light backgrounds.
	LightTheme = newTheme("light", shades{accent: "27", text: "16", dim: "240", pass: "28", warn: "130", fail: "124"})

	// NoColorTheme is selected by -no-color, NO_COLOR or the "none" name.
	NoColorTheme = Theme{
		Name:   "none",
		Accent: lipgloss.NoColor{},
		Text:   lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
		Pass:   lipgloss.NoColor{},
		Warn:   lipgloss.NoColor{},
		Fail:   lipgloss.NoColor{},
	}

	themes = []Theme{DarkTheme, LightTheme, NoColorTheme}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the selectable theme names.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme activates t. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name.
//
// Returns:
//   - error: An error naming the accepted themes if name is unknown; the
//     active theme is then unchanged.
func SetTheme(name string) error {
	t, ok := LookupTheme(name)
	if !ok {
		return fmt.Errorf("unknown theme %q (want one of %v)", name, ThemeNames())
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme selects the theme for a run. noColor and a set NO_COLOR
// variable (https://no-color.org/) win over name; an unknown name falls
// back to the dark theme.
func InitTheme(noColor bool, name string) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if err := SetTheme(name); err != nil {
		SetCurrentTheme(DarkTheme)
	}
}
