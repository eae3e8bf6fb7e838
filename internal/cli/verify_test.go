package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/verify"
)

// MockSpinner records spinner calls.
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

// stubTerminal makes every writer a terminal and returns the spinner that
// RunVerification will use. Tests calling it must not run in parallel.
func stubTerminal(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	origSpinner, origTerminal := newSpinner, isTerminal
	newSpinner = func(...spinner.Option) Spinner { return mock }
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() {
		newSpinner, isTerminal = origSpinner, origTerminal
	})
	return mock
}

func TestRunVerificationDrivesSpinner(t *testing.T) {
	mock := stubTerminal(t)
	var out bytes.Buffer
	cfg := verify.Config{Cases: 10, MaxLimbs: 2, Seed: 3, Workers: 2}

	report, err := RunVerification(context.Background(), cfg, &out, VerifyOptions{})
	if err != nil {
		t.Fatalf("RunVerification() error = %v", err)
	}
	if report.Cases != 10 {
		t.Errorf("Cases = %d, want 10", report.Cases)
	}
	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
	}
	if len(mock.suffixes) != 11 {
		t.Errorf("got %d suffix updates, want 11", len(mock.suffixes))
	}
	if !strings.Contains(strings.Join(mock.suffixes, "\n"), "10/10") {
		t.Errorf("no final progress among %q", mock.suffixes)
	}
	if !strings.Contains(out.String(), "all checks agree") {
		t.Errorf("report missing:\n%s", out.String())
	}
}

func TestRunVerificationQuietSkipsSpinner(t *testing.T) {
	mock := stubTerminal(t)
	var out bytes.Buffer
	cfg := verify.Config{Cases: 3, MaxLimbs: 1, Seed: 1, Workers: 1}

	if _, err := RunVerification(context.Background(), cfg, &out, VerifyOptions{Quiet: true}); err != nil {
		t.Fatalf("RunVerification() error = %v", err)
	}
	if mock.started {
		t.Error("spinner started in quiet mode")
	}
	if !strings.HasPrefix(out.String(), "cases=3 ") {
		t.Errorf("output = %q", out.String())
	}
}

// lyingOracle answers every operation with the same wrong value.
type lyingOracle struct{}

func (lyingOracle) Name() string { return "liar" }

func (lyingOracle) Eval(verify.Op, string, string) (string, error) { return "lie", nil }

func TestRunVerificationReportsMismatch(t *testing.T) {
	t.Parallel()
	liar := lyingOracle{}

	var out bytes.Buffer
	cfg := verify.Config{Cases: 2, MaxLimbs: 1, Seed: 1, Workers: 1, Ops: []verify.Op{verify.OpCmp}}
	_, err := RunVerification(context.Background(), cfg, &out, VerifyOptions{Oracles: []verify.Oracle{liar}})

	var mismatch apperrors.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want MismatchError", err)
	}
	if mismatch.Oracle != "liar" {
		t.Errorf("Oracle = %q, want liar", mismatch.Oracle)
	}
	if !strings.Contains(out.String(), "mismatches") {
		t.Errorf("report missing mismatches:\n%s", out.String())
	}
}

func TestProgressSuffix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		done, total int
		want        string
	}{
		{0, 10, " verifying " + format.ProgressBar(0, ProgressBarWidth) + " 0/10"},
		{5, 10, " verifying " + format.ProgressBar(0.5, ProgressBarWidth) + " 5/10"},
		{0, 0, " verifying " + format.ProgressBar(0, ProgressBarWidth) + " 0/0"},
	}
	for _, tt := range tests {
		if got := progressSuffix(tt.done, tt.total); got != tt.want {
			t.Errorf("progressSuffix(%d, %d) = %q, want %q", tt.done, tt.total, got, tt.want)
		}
	}
}
