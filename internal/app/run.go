package app

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/verify"
)

// runEval evaluates the -e expression once.
func (a *Application) runEval(ctx context.Context, out io.Writer) int {
	_, span := a.tracer.Start(ctx, "bigcalc.eval",
		trace.WithAttributes(attribute.Int("expr.length", len(a.Config.Expr))))
	defer span.End()

	start := time.Now()
	v, err := expr.NewEnv().Eval(a.Config.Expr)
	a.Metrics.ObserveEvaluation(time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		a.Logger.Debug("evaluation failed", logging.Err(err))
		cli.DisplayError(a.ErrWriter, err)
		return apperrors.ExitCode(err)
	}
	if !v.IsFloat {
		span.SetAttributes(attribute.Int("result.bits", v.Int.BitLen()))
	}
	cli.DisplayValue(out, v, a.Config.Format, a.Config.Quiet)
	return apperrors.ExitSuccess
}

// runVerify runs a -verify cross-check.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	ctx, span := a.tracer.Start(ctx, "bigcalc.verify", trace.WithAttributes(
		attribute.Int("verify.cases", a.Config.Verify),
		attribute.Int("verify.limbs", a.Config.Limbs),
		attribute.Int64("verify.seed", a.Config.Seed),
		attribute.Int("verify.workers", a.Config.Workers),
	))
	defer span.End()

	var (
		report verify.Report
		err    error
	)
	if a.Config.TUI {
		report, err = a.runDashboard(ctx, out)
	} else {
		report, err = cli.RunVerification(ctx, a.verifyConfig(a.Config.Verify), out, cli.VerifyOptions{
			Quiet:   a.Config.Quiet,
			Logger:  a.Logger,
			Metrics: a.Metrics,
		})
	}
	span.SetAttributes(
		attribute.Int("verify.checks", report.Checks),
		attribute.Int("verify.mismatches", len(report.Mismatches)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verification failed")
		cli.DisplayError(a.ErrWriter, err)
	}
	return apperrors.ExitCode(err)
}

// runDashboard runs the verification behind the live dashboard. Log entries
// are held back until the dashboard has released the terminal. On a terminal
// the dashboard stays up after the run until dismissed.
func (a *Application) runDashboard(ctx context.Context, out io.Writer) (verify.Report, error) {
	var logs bytes.Buffer
	interactive := cli.IsTerminal(out)
	report, err := tui.Run(ctx, a.verifyConfig(a.Config.Verify), tui.Options{
		Logger:       newLogger(a.Config, &logs),
		Metrics:      a.Metrics,
		Input:        a.in,
		Output:       out,
		AltScreen:    interactive,
		ExitWhenDone: !interactive,
	})
	_, _ = io.Copy(a.ErrWriter, &logs)

	cli.DisplayVerifyReport(out, report, a.Config.Quiet)
	if err != nil {
		return report, err
	}
	return report, report.Err()
}

// runREPL starts the interactive session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(expr.NewEnv(), cli.REPLConfig{
		Format: a.Config.Format,
		Quiet:  a.Config.Quiet,
		Verify: a.verifyConfig(0),
	}, a.Logger, a.Metrics)
	repl.SetInput(a.in)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// verifyConfig maps the application configuration to a verification run
// of the given number of cases.
func (a *Application) verifyConfig(cases int) verify.Config {
	return verify.Config{
		Cases:    cases,
		MaxLimbs: a.Config.Limbs,
		Seed:     a.Config.Seed,
		Workers:  a.Config.Workers,
		Timeout:  a.Config.Timeout,
	}
}
