// Package config parses the bigcalc command line and environment into an
// AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/ui"
)

// EnvPrefix is prepended to every environment variable read by the parser.
const EnvPrefix = "BIGCALC_"

// Output formats accepted by -format.
const (
	FormatDec  = "dec"
	FormatHex  = "hex"
	FormatDiag = "diag"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatDec, FormatHex, FormatDiag}

// Shells lists the shells accepted by -completion.
var Shells = []string{"bash", "zsh", "fish"}

// Defaults applied before environment and flag values.
const (
	DefaultLimbs   = 8
	DefaultTimeout = 5 * time.Minute
	DefaultTheme   = "dark"
	MaxLimbs       = 1 << 12
)

// AppConfig holds the resolved configuration of a bigcalc run.
type AppConfig struct {
	// Expr is evaluated once and printed instead of starting the REPL.
	Expr string
	// Format is the output format: dec, hex or diag.
	Format string
	// Verify is the number of randomized cross-check cases; 0 disables
	// the verification run.
	Verify int
	// Limbs bounds the operand size generated by verification.
	Limbs int
	// Seed seeds the verification generator; 0 picks a time-based seed.
	Seed int64
	// Workers bounds verification concurrency; 0 means one per CPU.
	Workers int
	// Timeout bounds a verification run.
	Timeout time.Duration
	// MetricsAddr, when set, exposes Prometheus metrics on that address.
	MetricsAddr string
	// ConfigFile names a TOML file read below flags and environment.
	ConfigFile string
	// Completion, when set, prints a shell completion script and exits.
	Completion string
	// Theme names the color scheme: dark, light or none.
	Theme string
	// LogFormat selects console, json or plain log lines.
	LogFormat string
	LogLevel  string

	// TUI shows a -verify run on a full-screen dashboard.
	TUI     bool
	NoColor bool
	Quiet   bool
	Verbose bool
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Precedence is CLI flags, then BIGCALC_* environment variables, then the
// -config file, then defaults.
//
// Returns:
//   - AppConfig: the resolved configuration.
//   - error: flag.ErrHelp when -h was given, a parse error, or a
//     apperrors.ConfigError when validation fails.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.StringVar(&config.Expr, "e", "", "Evaluate an expression and exit.")
	fs.StringVar(&config.Format, "format", FormatDec, "Output format (dec, hex, diag).")
	fs.IntVar(&config.Verify, "verify", 0, "Run N randomized cross-check cases and exit.")
	fs.IntVar(&config.Limbs, "limbs", DefaultLimbs, "Maximum operand size in limbs for -verify.")
	fs.Int64Var(&config.Seed, "seed", 0, "Seed for -verify (0 for time-based).")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent verification workers (0 for one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of a verification run.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.ConfigFile, "config", "", "Read settings from a TOML file (flags and BIGCALC_* take precedence).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for a shell (bash, zsh, fish).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme (dark, light, none).")
	fs.BoolVar(&config.TUI, "tui", false, "Show -verify progress on a full-screen dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output (debug logging).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output (debug logging).")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled).")
	fs.StringVar(&config.LogFormat, "log-format", logging.FormatConsole, "Log format (console, json, plain).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if !isFlagSet(fs, "config") {
		if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
			config.ConfigFile = path
		}
	}
	if config.ConfigFile != "" {
		if err := applyFile(&config, fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errWriter, err)
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&config, fs)
	config = ApplyAdaptiveDefaults(config)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic validity of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return apperrors.NewConfigError("unknown format %q (want one of %v)", c.Format, Formats)
	}
	if c.Verify < 0 {
		return apperrors.NewConfigError("verify case count must be non-negative, got %d", c.Verify)
	}
	if c.Limbs < 1 || c.Limbs > MaxLimbs {
		return apperrors.NewConfigError("limbs must be in [1, %d], got %d", MaxLimbs, c.Limbs)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must be non-negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Completion != "" && !slices.Contains(Shells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q (want one of %v)", c.Completion, Shells)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if !slices.Contains(logging.Formats, c.LogFormat) {
		return apperrors.NewConfigError("unknown log format %q (want one of %v)", c.LogFormat, logging.Formats)
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.NewConfigError("unknown theme %q (want one of %v)", c.Theme, ui.ThemeNames())
	}
	if c.TUI && c.Verify == 0 {
		return apperrors.NewConfigError("-tui requires -verify")
	}
	return nil
}
