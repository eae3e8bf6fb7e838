// Package app wires configuration, logging, metrics and tracing around the
// three bigcalc modes: one-shot evaluation, verification and the REPL.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/ui"
)

// tracerName identifies the spans emitted by this package.
const tracerName = "github.com/agbru/bigcalc/internal/app"

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Metrics

	in     io.Reader
	tracer trace.Tracer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the REPL input; it defaults to os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.in = r }
}

// WithTracerProvider sets the provider of evaluation and verification
// spans; it defaults to the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(a *Application) { a.tracer = tp.Tracer(tracerName) }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, in: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	if app.tracer == nil {
		app.tracer = otel.Tracer(tracerName)
	}
	app.Metrics = metrics.NewMetrics()
	return app, nil
}

// newLogger builds the logger on w in the configured format and level.
// Quiet runs only report warnings and errors unless a level was chosen.
func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Quiet && level == zerolog.InfoLevel {
		level = zerolog.WarnLevel
	}
	l, err := logging.New(w, cfg.LogFormat, level, cfg.NoColor)
	if err != nil {
		l, _ = logging.New(w, logging.FormatConsole, level, cfg.NoColor)
	}
	return l
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor, a.Config.Theme)
	if a.Config.NoColor {
		color.NoColor = true
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	if a.Config.MetricsAddr != "" {
		l, err := net.Listen("tcp", a.Config.MetricsAddr)
		if err != nil {
			cli.DisplayError(a.ErrWriter, apperrors.NewConfigError("metrics address: %v", err))
			return apperrors.ExitErrorConfig
		}
		srv := server.New(l.Addr().String(), a.Metrics, a.Logger)
		g.Go(func() error { return srv.Serve(ctx, l) })
	}

	var code int
	switch {
	case a.Config.Expr != "":
		code = a.runEval(ctx, out)
	case a.Config.Verify > 0:
		code = a.runVerify(ctx, out)
	default:
		code = a.runREPL(ctx, out)
	}

	cancel()
	if err := g.Wait(); err != nil {
		a.Logger.Error("metrics server failed", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
