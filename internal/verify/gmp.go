//go:build gmp

package verify

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ncw/gmp"
)

func init() {
	extraOracles = append(extraOracles, GMPOracle{})
}

// GMPOracle evaluates operations with GNU MP through cgo.
type GMPOracle struct{}

// Name implements Oracle.
func (GMPOracle) Name() string { return "gmp" }

// Eval implements Oracle. Float64 is not supported.
func (GMPOracle) Eval(op Op, x, y string) (string, error) {
	a, ok := new(gmp.Int).SetString(x, 16)
	if !ok {
		return "", fmt.Errorf("gmp: bad operand %q", x)
	}
	b := new(gmp.Int)
	if y != "" {
		if _, ok := b.SetString(y, 16); !ok {
			return "", fmt.Errorf("gmp: bad operand %q", y)
		}
	}
	z := new(gmp.Int)
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
		mag := new(gmp.Int).Abs(a)
		if op == OpLsh {
			z.Lsh(mag, n)
		} else {
			z.Rsh(mag, n)
		}
		if a.Sign() < 0 {
			z.Neg(z)
		}
	case OpCmp:
		return strconv.Itoa(a.Cmp(b)), nil
	case OpText:
		return a.String(), nil
	default:
		return "", ErrUnsupported
	}
	// gmp renders decimal; re-encode through math/big to base 16.
	r, ok := new(big.Int).SetString(z.String(), 10)
	if !ok {
		return "", fmt.Errorf("gmp: unparsable result %q", z.String())
	}
	return r.Text(16), nil
}
