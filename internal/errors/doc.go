// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// evaluation, verification) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method where they carry a cause, so
// errors.Is() and errors.As() see through them. Arithmetic range and syntax
// failures stay typed in package bigint and are wrapped here, not re-declared.
package apperrors
