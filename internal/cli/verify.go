package cli

import (
	"context"
	"io"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/verify"
)

// VerifyOptions configures RunVerification.
type VerifyOptions struct {
	// Quiet prints a one-line report and disables the spinner.
	Quiet   bool
	Logger  logging.Logger
	Metrics *metrics.Metrics
	// Oracles replaces the default oracles when non-empty.
	Oracles []verify.Oracle
}

// RunVerification runs a verification with a spinner on interactive
// terminals and prints the report.
//
// Returns:
//   - verify.Report: the report of the run, also on error.
//   - error: the runner error, or the first mismatch when the run
//     completed with disagreements.
func RunVerification(ctx context.Context, cfg verify.Config, out io.Writer, opts VerifyOptions) (verify.Report, error) {
	runnerOpts := []verify.Option{verify.WithMetrics(opts.Metrics)}
	if len(opts.Oracles) > 0 {
		runnerOpts = append(runnerOpts, verify.WithOracles(opts.Oracles...))
	}

	var s Spinner
	if !opts.Quiet && isTerminal(out) {
		s = newSpinner(spinner.WithWriter(out))
		s.UpdateSuffix(progressSuffix(0, cfg.Cases))
		s.Start()
		runnerOpts = append(runnerOpts, verify.WithProgress(func(done, total int) {
			s.UpdateSuffix(progressSuffix(done, total))
		}))
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(io.Discard, "verify")
	}
	report, err := verify.NewRunner(cfg, logger, runnerOpts...).Run(ctx)
	if s != nil {
		s.Stop()
	}

	DisplayVerifyReport(out, report, opts.Quiet)
	if err != nil {
		return report, err
	}
	return report, report.Err()
}
