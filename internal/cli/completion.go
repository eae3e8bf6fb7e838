package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/ui"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from flagRegistry, so adding a
// flag only requires appending to it.
type FlagCompletion struct {
	Name      string   // flag name without "-" (e.g., "format")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the list of all bigcalc flags, in help order.
var flagRegistry = []FlagCompletion{
	{Name: "h", Help: "Show help message"},
	{Name: "version", Help: "Show version information"},
	{Name: "e", Help: "Evaluate an expression and exit", ValueName: "expression"},
	{Name: "format", Help: "Output format", Values: config.Formats, ValueName: "format"},
	{Name: "verify", Help: "Run N randomized cross-check cases", Values: []string{"100", "1000", "10000"}, ValueName: "cases"},
	{Name: "limbs", Help: "Maximum operand size in limbs", Values: []string{"4", "8", "32", "128"}, ValueName: "limbs"},
	{Name: "seed", Help: "Verification seed", ValueName: "seed"},
	{Name: "workers", Help: "Concurrent verification workers", ValueName: "number"},
	{Name: "timeout", Help: "Maximum verification time", Values: []string{"30s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Name: "metrics-addr", Help: "Serve Prometheus metrics on this address", Values: []string{":9090"}, ValueName: "address"},
	{Name: "config", Help: "Read settings from a TOML file", ValueName: "file", IsFile: true},
	{Name: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Name: "log-format", Help: "Log output format", Values: logging.Formats, ValueName: "format"},
	{Name: "theme", Help: "Color theme", Values: ui.ThemeNames(), ValueName: "theme"},
	{Name: "tui", Help: "Show a live dashboard during -verify"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "quiet", Help: "Print results only"},
	{Name: "q", Help: "Print results only"},
	{Name: "v", Help: "Verbose output"},
	{Name: "completion", Help: "Generate completion script", Values: config.Shells, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(config.Shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion() string {
	opts := make([]string, 0, len(flagRegistry))
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		if f.IsFile {
			fmt.Fprintf(&cases, "        -%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.Name)
			continue
		}
		if len(f.Values) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
			f.Name, strings.Join(f.Values, " "))
	}

	return fmt.Sprintf(`# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bigcalc_completions bigcalc
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion() string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef bigcalc

# Zsh completion script for bigcalc
# Add this to your ~/.zshrc or place in $fpath

_bigcalc() {
    _arguments -s \
%s
}

_bigcalc "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats a flag as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, valueSuffix)
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for bigcalc",
		"# Add this to ~/.config/fish/completions/bigcalc.fish",
		"",
		"complete -c bigcalc -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats a flag as a fish complete command. Go flags
// take a single dash, which fish calls an old-style option.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c bigcalc", "-o " + f.Name, fmt.Sprintf("-d '%s'", f.Help)}
	if f.IsFile {
		parts = append(parts, "-rF")
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
