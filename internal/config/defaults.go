package config

import (
	"runtime"
	"time"
)

// Resolution chain for verification settings (highest priority first):
//   1. CLI flags (-workers, -seed)
//   2. Environment variables (BIGCALC_WORKERS, BIGCALC_SEED)
//   3. Hardware estimation and clock (this file)

// ApplyAdaptiveDefaults fills the settings left at their zero value: the
// worker count from the CPU count and the seed from the clock. Explicit
// values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Verbose && cfg.LogLevel == "info" {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// EstimateWorkers returns the verification worker count for this machine.
// One goroutine per CPU, capped, since each case is short and CPU bound.
func EstimateWorkers() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 16:
		return numCPU
	default:
		return 16
	}
}
