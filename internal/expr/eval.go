package expr

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// DefaultMaxBits bounds the size of values built by left shifts, pow, fact
// and setbit.
const DefaultMaxBits = 1 << 24

// LastResult is the identifier bound to the previous integer result.
const LastResult = "_"

// Value is the result of an evaluation: an integer, or a float64 when the
// outermost operation is float().
type Value struct {
	Int     *bigint.Int
	Float   float64
	IsFloat bool
}

// String renders an integer in decimal and a float in the shortest form
// that round-trips.
func (v Value) String() string {
	if v.IsFloat {
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	return v.Int.Text(10)
}

// Env holds the variables of an evaluation session. It is not safe for
// concurrent use.
type Env struct {
	vars map[string]*bigint.Int
	last *bigint.Int
	// MaxBits bounds result sizes; see DefaultMaxBits.
	MaxBits int
}

// NewEnv returns an empty environment with _ bound to 0.
func NewEnv() *Env {
	return &Env{
		vars:    make(map[string]*bigint.Int),
		last:    new(bigint.Int),
		MaxBits: DefaultMaxBits,
	}
}

// Get returns the value of a variable. "_" yields the last result.
func (e *Env) Get(name string) (*bigint.Int, bool) {
	if name == LastResult {
		return e.last, true
	}
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to an independent copy of v.
func (e *Env) Set(name string, v *bigint.Int) {
	e.vars[name] = v.Clone()
}

// Names returns the bound variable names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Eval parses and evaluates src. Failures are returned as an
// apperrors.EvalError wrapping an *Error; bigint preconditions that slip
// past the evaluator's own checks are recovered into errors.
func (e *Env) Eval(src string) (Value, error) {
	n, err := parse(src)
	if err != nil {
		return Value{}, apperrors.EvalError{Expr: src, Cause: err}
	}
	var v Value
	if perr := bigint.Try(func() { v, err = e.eval(n) }); perr != nil {
		err = &Error{Pos: n.pos(), Msg: perr.Error(), Err: perr}
	}
	if err != nil {
		return Value{}, apperrors.EvalError{Expr: src, Cause: err}
	}
	if !v.IsFloat {
		e.last = v.Int
	}
	return v, nil
}

func (e *Env) eval(n node) (Value, error) {
	switch n := n.(type) {
	case *numberNode:
		return intValue(n.val), nil
	case *identNode:
		v, ok := e.Get(n.name)
		if !ok {
			return Value{}, errorf(n.at, "undefined variable %q", n.name)
		}
		return intValue(v), nil
	case *unaryNode:
		x, err := e.evalInt(n.x)
		if err != nil {
			return Value{}, err
		}
		if n.op == "-" {
			return intValue(new(bigint.Int).Neg(x)), nil
		}
		return intValue(x), nil
	case *binaryNode:
		x, err := e.evalInt(n.x)
		if err != nil {
			return Value{}, err
		}
		y, err := e.evalInt(n.y)
		if err != nil {
			return Value{}, err
		}
		z, err := e.binary(n, x, y)
		if err != nil {
			return Value{}, err
		}
		return intValue(z), nil
	case *assignNode:
		if n.name == LastResult {
			return Value{}, errorf(n.at, "cannot assign to %s", LastResult)
		}
		x, err := e.evalInt(n.x)
		if err != nil {
			return Value{}, err
		}
		e.Set(n.name, x)
		return intValue(x), nil
	case *callNode:
		return e.call(n)
	}
	return Value{}, errorf(n.pos(), "unsupported expression %T", n)
}

func (e *Env) evalInt(n node) (*bigint.Int, error) {
	v, err := e.eval(n)
	if err != nil {
		return nil, err
	}
	if v.IsFloat {
		return nil, errorf(n.pos(), "float value used in integer expression")
	}
	return v.Int, nil
}

func (e *Env) binary(n *binaryNode, x, y *bigint.Int) (*bigint.Int, error) {
	z := new(bigint.Int)
	switch n.op {
	case "+":
		return z.Add(x, y), nil
	case "-":
		return z.Sub(x, y), nil
	case "*":
		return z.Mul(x, y), nil
	case "/", "%":
		if y.IsZero() {
			return nil, &Error{Pos: n.at, Msg: "division by zero", Err: bigint.ErrDivisionByZero}
		}
		if n.op == "/" {
			return z.Quo(x, y), nil
		}
		return z.Rem(x, y), nil
	case "<<", ">>":
		left := (n.op == "<<") != (y.Sign() < 0)
		if left && !x.IsZero() {
			if err := e.checkShift(n.at, x, y); err != nil {
				return nil, err
			}
		}
		var err error
		if n.op == "<<" {
			_, err = z.LshInt(x, y)
		} else {
			_, err = z.RshInt(x, y)
		}
		if err != nil {
			return nil, &Error{Pos: n.at, Msg: err.Error(), Err: err}
		}
		return z, nil
	}
	c := x.Cmp(y)
	var ok bool
	switch n.op {
	case "<":
		ok = c < 0
	case "<=":
		ok = c <= 0
	case ">":
		ok = c > 0
	case ">=":
		ok = c >= 0
	case "==":
		ok = c == 0
	case "!=":
		ok = c != 0
	default:
		return nil, errorf(n.at, "unknown operator %q", n.op)
	}
	if ok {
		return z.SetInt64(1), nil
	}
	return z, nil
}

// checkShift rejects left shifts whose result would exceed MaxBits.
func (e *Env) checkShift(at int, x, amount *bigint.Int) error {
	amt, err := new(bigint.Int).Abs(amount).Uint64()
	limit := uint64(e.MaxBits)
	if err != nil || amt > limit || uint64(x.BitLen())+amt > limit {
		return errorf(at, "shift result exceeds %d bits", e.MaxBits)
	}
	return nil
}

func intValue(v *bigint.Int) Value { return Value{Int: v} }

// describe is used in messages about operands.
func describe(v *bigint.Int) string {
	s := v.Text(10)
	if len(s) > 24 {
		return fmt.Sprintf("%s... (%d bits)", s[:20], v.BitLen())
	}
	return s
}
