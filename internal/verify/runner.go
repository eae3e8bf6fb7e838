package verify

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// Config controls a verification run.
type Config struct {
	// Cases is the number of operand pairs to draw.
	Cases int
	// MaxLimbs bounds the operand size in 64-bit limbs.
	MaxLimbs int
	// Seed makes a run reproducible; case i always draws the same operands.
	Seed int64
	// Workers bounds concurrency; values below 1 mean 1.
	Workers int
	// Timeout bounds the run; zero means no limit.
	Timeout time.Duration
	// Ops restricts the checked operations; empty means AllOps.
	Ops []Op
}

// Mismatch records one operation where bigint and an oracle disagreed.
type Mismatch struct {
	Case   int
	Op     Op
	Oracle string
	X, Y   string
	Got    string
	Want   string
}

// Err returns the mismatch as an apperrors.MismatchError.
func (m Mismatch) Err() error {
	return apperrors.MismatchError{Oracle: m.Oracle, Op: string(m.Op), Got: m.Got, Want: m.Want}
}

// Report summarizes a run. A run stopped by its context reports the cases
// completed before the stop.
type Report struct {
	Seed       int64
	Cases      int
	Checks     int
	Skipped    int
	Oracles    []string
	Mismatches []Mismatch
	Duration   time.Duration
	// Memory holds allocation growth over the run.
	Memory metrics.MemorySnapshot
	// System is a sample of host load taken at the end of the run.
	System sysmon.Stats
}

// Err returns the first mismatch as an error, or nil when all checks agreed.
func (r Report) Err() error {
	if len(r.Mismatches) == 0 {
		return nil
	}
	return apperrors.WrapError(r.Mismatches[0].Err(), "case %d (%d mismatches)", r.Mismatches[0].Case, len(r.Mismatches))
}

// Runner executes verification runs.
type Runner struct {
	cfg      Config
	oracles  []Oracle
	logger   logging.Logger
	metrics  *metrics.Metrics
	progress func(done, total int)
	found    func(Mismatch)
}

// Option configures a Runner.
type Option func(*Runner)

// WithOracles replaces the default oracles.
func WithOracles(oracles ...Oracle) Option {
	return func(r *Runner) { r.oracles = oracles }
}

// WithMetrics records case and mismatch counts in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithProgress installs a callback invoked after every case. It is called
// from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(done, total int)) Option {
	return func(r *Runner) { r.progress = fn }
}

// WithMismatchFunc installs a callback invoked for every mismatch as soon as
// it is found. Calls are serialized.
func WithMismatchFunc(fn func(Mismatch)) Option {
	return func(r *Runner) { r.found = fn }
}

// NewRunner creates a runner with the math/big oracle and any oracles
// compiled in by build tags.
func NewRunner(cfg Config, logger logging.Logger, opts ...Option) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxLimbs < 1 {
		cfg.MaxLimbs = 1
	}
	if len(cfg.Ops) == 0 {
		cfg.Ops = AllOps
	}
	r := &Runner{cfg: cfg, oracles: DefaultOracles(), logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run draws cfg.Cases operand pairs and checks them on cfg.Workers
// goroutines.
//
// Returns:
//   - Report: the checks performed and every mismatch found.
//   - error: apperrors.TimeoutError when cfg.Timeout elapsed, the context
//     error when ctx was canceled, or nil. Mismatches are not errors; see
//     Report.Err.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	if r.metrics != nil {
		r.metrics.VerificationStarted()
		defer r.metrics.VerificationFinished()
	}

	mc := metrics.NewMemoryCollector()
	before := mc.Snapshot()
	start := time.Now()

	var (
		next, done, checks, skipped atomic.Int64
		mu                          sync.Mutex
		mismatches                  []Mismatch
	)
	total := r.cfg.Cases

	g, gctx := errgroup.WithContext(ctx)
	for range r.cfg.Workers {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= total {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				res := r.check(i)
				checks.Add(int64(res.checks))
				skipped.Add(int64(res.skipped))
				if len(res.mismatches) > 0 {
					mu.Lock()
					mismatches = append(mismatches, res.mismatches...)
					if r.found != nil {
						for _, m := range res.mismatches {
							r.found(m)
						}
					}
					mu.Unlock()
				}
				n := int(done.Add(1))
				if r.progress != nil {
					r.progress(n, total)
				}
			}
		})
	}
	err := g.Wait()

	report := Report{
		Seed:       r.cfg.Seed,
		Cases:      int(done.Load()),
		Checks:     int(checks.Load()),
		Skipped:    int(skipped.Load()),
		Oracles:    r.oracleNames(),
		Mismatches: sortMismatches(mismatches),
		Duration:   time.Since(start),
		Memory:     mc.Snapshot().Sub(before),
		System:     sysmon.Sample(),
	}

	fields := []logging.Field{
		logging.Int("cases", report.Cases),
		logging.Int("checks", report.Checks),
		logging.Int("mismatches", len(report.Mismatches)),
		logging.Uint64("alloc_bytes", report.Memory.TotalAlloc),
		logging.Float64("seconds", report.Duration.Seconds()),
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		r.logger.Error("verification timed out", err, fields...)
		return report, apperrors.TimeoutError{Operation: "verify", Limit: r.cfg.Timeout}
	case err != nil:
		r.logger.Error("verification stopped", err, fields...)
		return report, err
	}
	r.logger.Info("verification finished", fields...)
	return report, nil
}

func (r *Runner) oracleNames() []string {
	names := make([]string, len(r.oracles))
	for i, o := range r.oracles {
		names[i] = o.Name()
	}
	return names
}

type caseResult struct {
	checks, skipped int
	mismatches      []Mismatch
}

// check runs every configured operation of case i against every oracle.
func (r *Runner) check(i int) caseResult {
	var res caseResult
	gen := newGenerator(r.cfg.Seed, i, r.cfg.MaxLimbs)
	x, y := gen.operand(), gen.operand()

	for _, op := range r.cfg.Ops {
		yArg := y
		switch op {
		case OpQuo, OpRem:
			yArg = gen.nonZero(y)
		case OpLsh, OpRsh:
			yArg = gen.shift()
		case OpFloat64, OpText:
			yArg = ""
		}
		got, err := compute(op, x, yArg)
		if err != nil {
			got = "error: " + err.Error()
		}
		for _, o := range r.oracles {
			want, err := o.Eval(op, x, yArg)
			if errors.Is(err, ErrUnsupported) {
				res.skipped++
				continue
			}
			if err != nil {
				want = "error: " + err.Error()
			}
			res.checks++
			if r.metrics != nil {
				r.metrics.ObserveVerifyCase(string(op))
			}
			if got == want {
				continue
			}
			m := Mismatch{Case: i, Op: op, Oracle: o.Name(), X: x, Y: yArg, Got: got, Want: want}
			res.mismatches = append(res.mismatches, m)
			if r.metrics != nil {
				r.metrics.ObserveMismatch(o.Name(), string(op))
			}
			r.logger.Debug("mismatch",
				logging.Int("case", i),
				logging.String("op", string(op)),
				logging.String("oracle", o.Name()),
				logging.String("x", x),
				logging.String("y", yArg))
		}
	}
	return res
}

// sortMismatches orders mismatches by case; workers finish out of order.
func sortMismatches(ms []Mismatch) []Mismatch {
	slices.SortStableFunc(ms, func(a, b Mismatch) int { return cmp.Compare(a.Case, b.Case) })
	return ms
}

// String renders a mismatch for logs and the REPL.
func (m Mismatch) String() string {
	return fmt.Sprintf("case %d %s [%s]: x=%s y=%s got=%s want=%s", m.Case, m.Op, m.Oracle, m.X, m.Y, m.Got, m.Want)
}
