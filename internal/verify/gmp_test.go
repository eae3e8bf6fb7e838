//go:build gmp

package verify

import (
	"context"
	"testing"
)

func TestGMPOracleAgreesWithMathBig(t *testing.T) {
	t.Parallel()
	report, err := NewRunner(Config{Cases: 200, MaxLimbs: 6, Seed: 11, Workers: 2},
		quietLogger(), WithOracles(GMPOracle{})).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, mm := range report.Mismatches {
		t.Errorf("unexpected mismatch: %s", mm)
	}
	if report.Skipped != 200 {
		t.Errorf("Skipped = %d, want 200 (float64 unsupported)", report.Skipped)
	}
}
