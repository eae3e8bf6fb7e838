package verify

import (
	"fmt"
	"strconv"

	"github.com/agbru/bigcalc/internal/bigint"
)

// compute evaluates op with bigint, in the result encoding of Oracle.Eval.
// Precondition panics are returned as errors.
func compute(op Op, xs, ys string) (string, error) {
	x, err := new(bigint.Int).SetString(xs, 16)
	if err != nil {
		return "", err
	}
	y := new(bigint.Int)
	if ys != "" {
		if _, err := y.SetString(ys, 16); err != nil {
			return "", err
		}
	}
	var (
		out   string
		opErr error
	)
	err = bigint.Try(func() {
		z := new(bigint.Int)
		switch op {
		case OpAdd:
			z.Add(x, y)
		case OpSub:
			z.Sub(x, y)
		case OpMul:
			z.Mul(x, y)
		case OpQuo:
			z.Quo(x, y)
		case OpRem:
			z.Rem(x, y)
		case OpLsh, OpRsh:
			n, convErr := y.Uint()
			if convErr != nil {
				opErr = convErr
				return
			}
			if op == OpLsh {
				z.Lsh(x, n)
			} else {
				z.Rsh(x, n)
			}
		case OpCmp:
			out = strconv.Itoa(x.Cmp(y))
			return
		case OpFloat64:
			out = strconv.FormatFloat(x.Float64(), 'g', -1, 64)
			return
		case OpText:
			out = x.Text(10)
			return
		default:
			opErr = fmt.Errorf("verify: unknown op %q", op)
			return
		}
		out = z.Text(16)
	})
	if err == nil {
		err = opErr
	}
	return out, err
}
