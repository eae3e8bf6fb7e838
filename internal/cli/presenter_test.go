package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/internal/verify"
)

func TestMain(m *testing.M) {
	ui.InitTheme(true, "")
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		value  expr.Value
		format string
		want   string
	}{
		{"decimal", expr.Value{Int: bigint.NewInt(255)}, "dec", "255"},
		{"negative decimal", expr.Value{Int: bigint.NewInt(-255)}, "dec", "-255"},
		{"hex", expr.Value{Int: bigint.NewInt(255)}, "hex", "0xff"},
		{"negative hex", expr.Value{Int: bigint.NewInt(-255)}, "hex", "-0xff"},
		{"zero hex", expr.Value{Int: new(bigint.Int)}, "hex", "0x0"},
		{"float ignores format", expr.Value{Float: 0.5, IsFloat: true}, "hex", "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatValue(tt.value, tt.format); got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("diagnostic", func(t *testing.T) {
		t.Parallel()
		got := FormatValue(expr.Value{Int: bigint.NewInt(-255)}, "diag")
		if !strings.HasPrefix(got, "-") || !strings.HasSuffix(got, "ff") {
			t.Errorf("FormatValue(diag) = %q, want sign and padded limbs", got)
		}
	})
}

func TestDisplayValue(t *testing.T) {
	t.Parallel()

	t.Run("quiet prints bare value", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		DisplayValue(&buf, expr.Value{Int: bigint.NewInt(42)}, "dec", true)
		if got := buf.String(); got != "42\n" {
			t.Errorf("output = %q, want %q", got, "42\n")
		}
	})

	t.Run("large value is annotated", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		x := new(bigint.Int).Lsh(bigint.NewInt(1), 100)
		DisplayValue(&buf, expr.Value{Int: x}, "dec", false)
		out := buf.String()
		if !strings.Contains(out, "= 1267650600228229401496703205376") {
			t.Errorf("output %q misses the value", out)
		}
		if !strings.Contains(out, "(101 bits)") {
			t.Errorf("output %q misses the bit length", out)
		}
	})

	t.Run("long value is truncated", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		x := new(bigint.Int).Lsh(bigint.NewInt(1), 8000)
		DisplayValue(&buf, expr.Value{Int: x}, "dec", false)
		out := buf.String()
		if !strings.Contains(out, "...") || !strings.Contains(out, "characters elided") {
			t.Errorf("output %q is not truncated", out)
		}
	})
}

func TestDisplayErrorShowsCaret(t *testing.T) {
	t.Parallel()
	env := expr.NewEnv()
	_, err := env.Eval("1 + $")
	if err == nil {
		t.Fatal("Eval succeeded on invalid input")
	}
	var buf bytes.Buffer
	DisplayError(&buf, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("DisplayError wrote %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "error: ") {
		t.Errorf("first line = %q, want error prefix", lines[0])
	}
	if got, want := strings.Index(lines[2], "^"), strings.Index(lines[1], "$"); got != want {
		t.Errorf("caret at column %d, want %d", got, want)
	}
}

func TestDisplayErrorPlain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayError(&buf, errors.New("boom"))
	if got := buf.String(); got != "error: boom\n" {
		t.Errorf("output = %q", got)
	}
}

func TestDisplayVars(t *testing.T) {
	t.Parallel()
	env := expr.NewEnv()

	var buf bytes.Buffer
	DisplayVars(&buf, env, "dec")
	if !strings.Contains(buf.String(), "No variables") {
		t.Errorf("empty env output = %q", buf.String())
	}

	env.Set("b", bigint.NewInt(2))
	env.Set("a", bigint.NewInt(255))
	buf.Reset()
	DisplayVars(&buf, env, "hex")
	out := buf.String()
	ia, ib := strings.Index(out, "a  "), strings.Index(out, "b  ")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("variables not listed in order:\n%s", out)
	}
	if !strings.Contains(out, "0xff") {
		t.Errorf("output misses hex value:\n%s", out)
	}
}

func sampleReport(mismatches int) verify.Report {
	r := verify.Report{
		Seed:     7,
		Cases:    1200,
		Checks:   12000,
		Oracles:  []string{"math/big"},
		Duration: 1500 * time.Millisecond,
		Memory:   metrics.MemorySnapshot{TotalAlloc: 3 << 20, NumGC: 4},
		System:   sysmon.Stats{CPUPercent: 12.5, LogicalCPUs: 8, MemPercent: 40, MemTotal: 16 << 30},
	}
	for i := range mismatches {
		r.Mismatches = append(r.Mismatches, verify.Mismatch{
			Case: i, Op: verify.OpAdd, Oracle: "math/big",
			X: strings.Repeat("f", 64), Y: "1", Got: "0", Want: "1",
		})
	}
	return r
}

func TestDisplayVerifyReport(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		report   verify.Report
		quiet    bool
		contains []string
		excludes []string
	}{
		{
			name:     "quiet",
			report:   sampleReport(0),
			quiet:    true,
			contains: []string{"cases=1200 checks=12000 skipped=0 mismatches=0 seed=7"},
		},
		{
			name:     "clean run",
			report:   sampleReport(0),
			contains: []string{"math/big", "seed 7", "1,200", "12,000", "3.0 MiB", "of 8 CPUs", "16.0 GiB", "all checks agree"},
			excludes: []string{"mismatches"},
		},
		{
			name:     "mismatches are tabulated",
			report:   sampleReport(2),
			contains: []string{"2 mismatches", "Oracle", "ffffffff...ffffffff"},
			excludes: []string{"more"},
		},
		{
			name:     "long mismatch list is capped",
			report:   sampleReport(maxShownMismatches + 3),
			contains: []string{"... and 3 more"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayVerifyReport(&buf, tt.report, tt.quiet)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output misses %q:\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q:\n%s", s, out)
				}
			}
		})
	}
}
