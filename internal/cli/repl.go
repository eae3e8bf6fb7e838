// Package cli provides the interactive REPL and the terminal presentation
// of evaluation results and verification reports.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/internal/verify"
)

// DefaultVerifyCases is used by the verify command when no count is given.
const DefaultVerifyCases = 200

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Format is the initial output format: dec, hex or diag.
	Format string
	// Quiet prints bare values and one-line reports.
	Quiet bool
	// Verify is the template for the verify command; its Cases field is
	// replaced by the command argument.
	Verify verify.Config
}

// REPL represents an interactive calculator session.
type REPL struct {
	config  REPLConfig
	env     *expr.Env
	logger  logging.Logger
	metrics *metrics.Metrics
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance evaluating in env. metrics may be
// nil.
func NewREPL(env *expr.Env, config REPLConfig, logger logging.Logger, m *metrics.Metrics) *REPL {
	if config.Format == "" {
		config.Format = "dec"
	}
	return &REPL{
		config:  config,
		env:     env,
		logger:  logger,
		metrics: m,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and processes lines until exit, EOF or the cancellation of
// ctx. Cancellation is observed between lines and inside verify runs.
func (r *REPL) Start(ctx context.Context) {
	if !r.config.Quiet {
		fmt.Fprintln(r.out, ui.RenderBanner("bigcalc", "arbitrary-precision integer calculator"))
		r.printHelp()
		fmt.Fprintln(r.out)
	}

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		if !r.config.Quiet {
			fmt.Fprint(r.out, ui.ColorGreen()+"> "+ui.ColorReset())
		}

		input, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || input == "") {
			if !errors.Is(err, io.EOF) {
				DisplayError(r.out, fmt.Errorf("read input: %w", err))
			}
			if !r.config.Quiet {
				fmt.Fprintln(r.out, "\nGoodbye!")
			}
			return
		}

		input = strings.TrimSpace(input)
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sCommands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<expr>%s          - Evaluate an expression, e.g. x = pow(2, 100) - 1\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %svars%s            - List variables (_ is the last result)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbuiltins%s        - List built-in functions\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdec|hex|diag%s    - Select the output format (now %s)\n", ui.ColorYellow(), ui.ColorReset(), r.config.Format)
	fmt.Fprintf(r.out, "  %sverify [n]%s      - Cross-check n random cases against the oracles\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display session and host status\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Leave the session\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs a command line or evaluates it as an expression.
// Commands are recognized only as whole lines, so a variable named like a
// command is still reachable inside larger expressions. Returns false if
// the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch {
	case len(args) == 0 && (cmd == "exit" || cmd == "quit"):
		if !r.config.Quiet {
			fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		}
		return false
	case len(args) == 0 && (cmd == "help" || cmd == "?"):
		r.printHelp()
	case len(args) == 0 && cmd == "vars":
		DisplayVars(r.out, r.env, r.config.Format)
	case len(args) == 0 && cmd == "builtins":
		for _, usage := range expr.Builtins() {
			fmt.Fprintf(r.out, "  %s\n", usage)
		}
	case len(args) == 0 && slices.Contains(config.Formats, cmd):
		r.config.Format = cmd
		fmt.Fprintf(r.out, "Output format: %s%s%s\n", ui.ColorGreen(), cmd, ui.ColorReset())
	case len(args) == 0 && cmd == "status":
		r.cmdStatus()
	case cmd == "verify" && len(args) <= 1 && isCount(args):
		r.cmdVerify(ctx, args)
	default:
		r.evaluate(input)
	}
	return true
}

// isCount reports whether args is empty or a single decimal count.
func isCount(args []string) bool {
	if len(args) == 0 {
		return true
	}
	_, err := strconv.Atoi(args[0])
	return err == nil
}

// evaluate evaluates input in the session environment and prints the
// result.
func (r *REPL) evaluate(input string) {
	start := time.Now()
	v, err := r.env.Eval(input)
	if r.metrics != nil {
		r.metrics.ObserveEvaluation(time.Since(start), err)
	}
	if err != nil {
		r.logger.Debug("evaluation failed", logging.String("expr", input), logging.Err(err))
		DisplayError(r.out, err)
		return
	}
	DisplayValue(r.out, v, r.config.Format, r.config.Quiet)
}

// cmdVerify handles the "verify" command.
func (r *REPL) cmdVerify(ctx context.Context, args []string) {
	cfg := r.config.Verify
	cfg.Cases = DefaultVerifyCases
	if len(args) == 1 {
		cfg.Cases, _ = strconv.Atoi(args[0])
	}
	if cfg.Cases <= 0 {
		DisplayError(r.out, fmt.Errorf("verify: case count must be positive, got %d", cfg.Cases))
		return
	}
	_, err := RunVerification(ctx, cfg, r.out, VerifyOptions{
		Quiet:   r.config.Quiet,
		Logger:  r.logger,
		Metrics: r.metrics,
	})
	if err != nil {
		DisplayError(r.out, err)
	}
	// The next run draws fresh operands.
	r.config.Verify.Seed++
}

// cmdStatus displays the session configuration and host load.
func (r *REPL) cmdStatus() {
	stats := sysmon.Sample()
	rows := [][]string{
		{"Setting", "Value"},
		{"Format", r.config.Format},
		{"Variables", strconv.Itoa(len(r.env.Names()))},
		{"Max bits", format.FormatNumberString(strconv.Itoa(r.env.MaxBits))},
		{"Verify seed", strconv.FormatInt(r.config.Verify.Seed, 10)},
		{"Verify limbs", strconv.Itoa(r.config.Verify.MaxLimbs)},
		{"Verify workers", strconv.Itoa(r.config.Verify.Workers)},
		{"Host CPU", fmt.Sprintf("%.1f%% of %d CPUs", stats.CPUPercent, stats.LogicalCPUs)},
		{"Host memory", fmt.Sprintf("%.1f%% of %s", stats.MemPercent, format.FormatBytes(stats.MemTotal))},
	}
	fmt.Fprint(r.out, ui.RenderTable(rows))
}
