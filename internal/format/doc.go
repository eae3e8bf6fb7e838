// Package format holds the plain-text formatting helpers shared by the CLI
// presenter: durations, byte counts, digit grouping and truncation of long
// results.
package format
