package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("bigcalc", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Format != FormatDec {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatDec)
	}
	if cfg.Theme != DefaultTheme || cfg.LogFormat != "console" || cfg.TUI {
		t.Errorf("Theme = %q, LogFormat = %q, TUI = %v; want dark, console, false", cfg.Theme, cfg.LogFormat, cfg.TUI)
	}
	if cfg.Limbs != DefaultLimbs {
		t.Errorf("Limbs = %d, want %d", cfg.Limbs, DefaultLimbs)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want adaptive default >= 1", cfg.Workers)
	}
	if cfg.Seed == 0 {
		t.Error("Seed should be filled from the clock")
	}
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{"-e", "2*3", "-format", "hex", "-verify", "50", "-limbs", "4",
		"-seed", "7", "-workers", "3", "-timeout", "10s", "-q", "-v",
		"-theme", "light", "-log-format", "plain", "-tui"}
	cfg, err := ParseConfig("bigcalc", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := AppConfig{
		Expr: "2*3", Format: FormatHex, Verify: 50, Limbs: 4, Seed: 7,
		Workers: 3, Timeout: 10 * time.Second, Quiet: true, Verbose: true,
		LogLevel: "debug", LogFormat: "plain", Theme: "light", TUI: true,
	}
	if cfg != want {
		t.Errorf("ParseConfig() = %+v, want %+v", cfg, want)
	}
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"-format", "oct"}},
		{"negative verify", []string{"-verify", "-1"}},
		{"zero limbs", []string{"-limbs", "0"}},
		{"too many limbs", []string{"-limbs", "100000"}},
		{"negative workers", []string{"-workers", "-2"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"unsupported shell", []string{"-completion", "tcsh"}},
		{"unknown theme", []string{"-theme", "solarized"}},
		{"unknown log format", []string{"-log-format", "xml"}},
		{"tui without verify", []string{"-tui"}},
		{"positional argument", []string{"1+1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("bigcalc", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ParseConfig(%v) error = %v, want ConfigError", tt.args, err)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := ParseConfig("bigcalc", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("ParseConfig(-h) error = %v, want flag.ErrHelp", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"FORMAT", "DIAG")
	t.Setenv(EnvPrefix+"LIMBS", "16")
	t.Setenv(EnvPrefix+"WORKERS", "not-a-number")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"SEED", "42")
	t.Setenv(EnvPrefix+"THEME", "Light")
	t.Setenv(EnvPrefix+"LOG_FORMAT", "JSON")

	cfg, err := ParseConfig("bigcalc", []string{"-limbs", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Format != FormatDiag {
		t.Errorf("Format = %q, want env value %q", cfg.Format, FormatDiag)
	}
	if cfg.Limbs != 2 {
		t.Errorf("Limbs = %d, flag should win over env", cfg.Limbs)
	}
	if cfg.Workers != EstimateWorkers() {
		t.Errorf("Workers = %d, invalid env value should be ignored", cfg.Workers)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s, want 90s", cfg.Timeout)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be set from env")
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Theme != "light" || cfg.LogFormat != "json" {
		t.Errorf("Theme = %q, LogFormat = %q; want light, json", cfg.Theme, cfg.LogFormat)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()
	if n, ok := parseCount("12"); !ok || n != 12 {
		t.Errorf("parseCount(12) = %d, %v", n, ok)
	}
	for _, in := range []string{"-1", "x", "99999999999999999999"} {
		if _, ok := parseCount(in); ok {
			t.Errorf("parseCount(%q) should fail", in)
		}
	}
}

func TestApplyAdaptiveDefaultsPreservesExplicit(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveDefaults(AppConfig{Workers: 5, Seed: 9, LogLevel: "warn", Verbose: true})
	if cfg.Workers != 5 || cfg.Seed != 9 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, explicit level should survive -v", cfg.LogLevel)
	}
}
