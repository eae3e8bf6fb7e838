//go:generate mockgen -source=oracle.go -destination=mock_oracle_test.go -package=verify

package verify

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// Op names an operation under verification.
type Op string

// Operations checked by a run. Binary operations take x and y; shifts take
// the amount in y; Cmp yields -1, 0 or 1; Float64 yields the shortest
// decimal form of the nearest float64; Text yields x in decimal.
const (
	OpAdd     Op = "add"
	OpSub     Op = "sub"
	OpMul     Op = "mul"
	OpQuo     Op = "quo"
	OpRem     Op = "rem"
	OpLsh     Op = "lsh"
	OpRsh     Op = "rsh"
	OpCmp     Op = "cmp"
	OpFloat64 Op = "float64"
	OpText    Op = "text"
)

// AllOps lists every operation in report order.
var AllOps = []Op{OpAdd, OpSub, OpMul, OpQuo, OpRem, OpLsh, OpRsh, OpCmp, OpFloat64, OpText}

// ErrUnsupported is returned by an oracle that cannot evaluate an operation.
// The check is skipped.
var ErrUnsupported = errors.New("verify: operation not supported by oracle")

// Oracle evaluates operations with a reference implementation. Operands are
// signed base-16 strings; results are base 16 except for Cmp, Float64 and
// Text as documented on the Op constants.
type Oracle interface {
	Name() string
	Eval(op Op, x, y string) (string, error)
}

// BigOracle is the math/big reference. Division truncates toward zero,
// matching bigint.
type BigOracle struct{}

// Name implements Oracle.
func (BigOracle) Name() string { return "math/big" }

// Eval implements Oracle.
func (BigOracle) Eval(op Op, x, y string) (string, error) {
	a, ok := new(big.Int).SetString(x, 16)
	if !ok {
		return "", fmt.Errorf("math/big: bad operand %q", x)
	}
	b := new(big.Int)
	if y != "" {
		if _, ok := b.SetString(y, 16); !ok {
			return "", fmt.Errorf("math/big: bad operand %q", y)
		}
	}
	z := new(big.Int)
	switch op {
	case OpAdd:
		z.Add(a, b)
	case OpSub:
		z.Sub(a, b)
	case OpMul:
		z.Mul(a, b)
	case OpQuo:
		z.Quo(a, b)
	case OpRem:
		z.Rem(a, b)
	case OpLsh, OpRsh:
		n := uint(b.Uint64())
		if op == OpLsh {
			z.Lsh(new(big.Int).Abs(a), n)
		} else {
			z.Rsh(new(big.Int).Abs(a), n)
		}
		// bigint shifts the magnitude and keeps the sign.
		if a.Sign() < 0 {
			z.Neg(z)
		}
	case OpCmp:
		return strconv.Itoa(a.Cmp(b)), nil
	case OpFloat64:
		f, _ := new(big.Float).SetInt(a).Float64()
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case OpText:
		return a.Text(10), nil
	default:
		return "", ErrUnsupported
	}
	return z.Text(16), nil
}

// extraOracles is extended by build-tagged oracles.
var extraOracles []Oracle

// DefaultOracles returns math/big plus every oracle compiled in.
func DefaultOracles() []Oracle {
	return append([]Oracle{BigOracle{}}, extraOracles...)
}
