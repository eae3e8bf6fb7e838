// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayValue], [DisplayError], [DisplayVerifyReport].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue].

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/internal/verify"
)

const (
	// TruncationLimit is the length from which a displayed value is
	// truncated outside quiet mode.
	TruncationLimit = 1000
	// DisplayEdges is the number of characters kept at each end of a
	// truncated value.
	DisplayEdges = 40
	// maxShownMismatches caps the mismatch table of a verification report.
	maxShownMismatches = 10
	// operandEdges is the number of characters kept at each end of an
	// operand in the mismatch table.
	operandEdges = 8
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow)
)

// FormatValue renders v in the given output format. Floats ignore the
// format.
func FormatValue(v expr.Value, outputFormat string) string {
	if v.IsFloat {
		return v.String()
	}
	switch outputFormat {
	case config.FormatHex:
		return hexText(v.Int)
	case config.FormatDiag:
		return v.Int.String()
	default:
		return v.Int.Text(10)
	}
}

func hexText(x *bigint.Int) string {
	s := x.Text(16)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-0x" + rest
	}
	return "0x" + s
}

// DisplayValue writes an evaluation result. Quiet mode prints the bare
// value; otherwise long values are truncated and large integers are
// annotated with their bit length.
func DisplayValue(out io.Writer, v expr.Value, outputFormat string, quiet bool) {
	s := FormatValue(v, outputFormat)
	if quiet {
		fmt.Fprintln(out, s)
		return
	}
	shown, elided := s, 0
	if outputFormat != config.FormatDiag {
		shown, elided = format.Truncate(s, TruncationLimit, DisplayEdges)
	}
	fmt.Fprintf(out, "= %s%s%s", ui.ColorGreen(), shown, ui.ColorReset())
	if !v.IsFloat && v.Int.BitLen() > 64 {
		fmt.Fprintf(out, " %s(%d bits)%s", ui.ColorGrey(), v.Int.BitLen(), ui.ColorReset())
	}
	fmt.Fprintln(out)
	if elided > 0 {
		warningLabel.Fprintf(out, "  %d characters elided; run with -quiet for the full value\n", elided)
	}
}

// DisplayError writes err. Expression errors carrying a position are
// followed by the expression and a caret under the offending byte.
func DisplayError(out io.Writer, err error) {
	errorLabel.Fprint(out, "error: ")
	fmt.Fprintln(out, err)

	var evalErr apperrors.EvalError
	var exprErr *expr.Error
	if !errors.As(err, &evalErr) || !errors.As(err, &exprErr) {
		return
	}
	if exprErr.Pos < 0 || exprErr.Pos > len(evalErr.Expr) {
		return
	}
	fmt.Fprintf(out, "  %s\n  %s%s^%s\n", evalErr.Expr, strings.Repeat(" ", exprErr.Pos), ui.ColorRed(), ui.ColorReset())
}

// DisplayVars lists the session variables in name order.
func DisplayVars(out io.Writer, env *expr.Env, outputFormat string) {
	names := env.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "No variables defined.")
		return
	}
	rows := [][]string{{"Name", "Value"}}
	for _, name := range names {
		v, _ := env.Get(name)
		s, _ := format.Truncate(FormatValue(expr.Value{Int: v}, outputFormat), 2*DisplayEdges, DisplayEdges/2)
		rows = append(rows, []string{name, s})
	}
	fmt.Fprint(out, ui.RenderTable(rows))
}

// DisplayVerifyReport writes a verification summary. Quiet mode prints a
// single line.
func DisplayVerifyReport(out io.Writer, report verify.Report, quiet bool) {
	if quiet {
		fmt.Fprintf(out, "cases=%d checks=%d skipped=%d mismatches=%d seed=%d\n",
			report.Cases, report.Checks, report.Skipped, len(report.Mismatches), report.Seed)
		return
	}

	fmt.Fprintf(out, "\n%sVerification%s against %s (seed %d)\n",
		ui.ColorBold(), ui.ColorReset(), strings.Join(report.Oracles, ", "), report.Seed)
	rows := [][]string{
		{"Metric", "Value"},
		{"Cases", format.FormatNumberString(strconv.Itoa(report.Cases))},
		{"Checks", format.FormatNumberString(strconv.Itoa(report.Checks))},
		{"Skipped", strconv.Itoa(report.Skipped)},
		{"Duration", format.FormatExecutionDuration(report.Duration)},
		{"Rate", format.FormatRate(report.Checks, report.Duration)},
		{"Allocated", format.FormatBytes(report.Memory.TotalAlloc)},
		{"GC cycles", strconv.FormatUint(uint64(report.Memory.NumGC), 10)},
	}
	if report.System.LogicalCPUs > 0 {
		rows = append(rows, []string{"Host CPU", fmt.Sprintf("%.1f%% of %d CPUs", report.System.CPUPercent, report.System.LogicalCPUs)})
	}
	if report.System.MemTotal > 0 {
		rows = append(rows, []string{"Host memory", fmt.Sprintf("%.1f%% of %s", report.System.MemPercent, format.FormatBytes(report.System.MemTotal))})
	}
	fmt.Fprint(out, ui.RenderTable(rows))

	if len(report.Mismatches) == 0 {
		fmt.Fprintf(out, "%s✓ all checks agree%s\n", ui.ColorGreen(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s✗ %d mismatches%s\n", ui.ColorRed(), len(report.Mismatches), ui.ColorReset())
	table := [][]string{{"Case", "Op", "Oracle", "X", "Y", "Got", "Want"}}
	for i, m := range report.Mismatches {
		if i == maxShownMismatches {
			break
		}
		table = append(table, []string{
			strconv.Itoa(m.Case), string(m.Op), m.Oracle,
			shortOperand(m.X), shortOperand(m.Y), shortOperand(m.Got), shortOperand(m.Want),
		})
	}
	fmt.Fprint(out, ui.RenderTable(table))
	if hidden := len(report.Mismatches) - maxShownMismatches; hidden > 0 {
		fmt.Fprintf(out, "... and %d more\n", hidden)
	}
}

func shortOperand(s string) string {
	if s == "" {
		return "-"
	}
	short, _ := format.Truncate(s, 3*operandEdges, operandEdges)
	return short
}
