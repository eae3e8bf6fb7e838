// Package metrics exposes bigcalc counters to Prometheus and reads runtime
// memory statistics for verification reports.
package metrics
