package expr

import "fmt"

// Error reports a failure at a byte offset of the source expression.
type Error struct {
	Pos int
	Msg string
	// Err is the underlying cause, if any, such as bigint.ErrDivisionByZero.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("at %d: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
