package bigint

import (
	"errors"
	"fmt"
)

var (
	// ErrRange is wrapped by every RangeError.
	ErrRange = errors.New("value out of range")
	// ErrSyntax is wrapped by every SyntaxError.
	ErrSyntax = errors.New("invalid syntax")

	// ErrDivisionByZero is the cause of a division or remainder panic.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnderflow is the cause of a magnitude subtraction panic.
	ErrUnderflow = errors.New("magnitude subtraction underflow")
	// ErrInvalidBase is the cause of a Text panic for a base outside 2..36.
	ErrInvalidBase = errors.New("invalid base")
)

// RangeError reports a value that cannot be represented by the requested
// target, such as a conversion to a native integer or a shift amount wider
// than a machine word.
type RangeError struct {
	// Op is the operation that failed, e.g. "Int64" or "Lsh".
	Op string
	// Value is the diagnostic rendering of the offending value.
	Value string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bigint: %s: %s: %v", e.Op, e.Value, ErrRange)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// SyntaxError reports text that SetString could not parse.
type SyntaxError struct {
	Input string
	Base  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bigint: parsing %q (base %d): %v", e.Input, e.Base, ErrSyntax)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// PreconditionError is the panic value raised when a caller breaks a
// documented precondition. It is never returned by an operation; use Try or
// Recover to convert it into an error.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bigint: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(op string, err error) {
	panic(&PreconditionError{Op: op, Err: err})
}

// Recover stores a recovered *PreconditionError in *errp. Any other panic
// is re-raised. It must be called directly by a deferred statement:
//
//	defer bigint.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if pe, ok := r.(*PreconditionError); ok {
		*errp = pe
		return
	}
	panic(r)
}

// Try runs fn and reports a precondition violation raised inside it as an
// error.
func Try(fn func()) (err error) {
	defer Recover(&err)
	fn()
	return nil
}
