package expr

import (
	"fmt"
	"math"
	"sort"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/bigint"
)

type builtin struct {
	arity int
	usage string
	fn    func(e *Env, at int, args []*bigint.Int) (Value, error)
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"abs":    {1, "abs(x)", builtinAbs},
		"pow":    {2, "pow(x, k)", builtinPow},
		"fact":   {1, "fact(n)", builtinFact},
		"bit":    {2, "bit(x, i)", builtinBit},
		"setbit": {3, "setbit(x, i, b)", builtinSetBit},
		"bitlen": {1, "bitlen(x)", builtinBitLen},
		"float":  {1, "float(x)", builtinFloat},
	}
}

// Builtins returns the usage strings of the builtin functions, sorted.
func Builtins() []string {
	usages := make([]string, 0, len(builtins))
	for _, b := range builtins {
		usages = append(usages, b.usage)
	}
	sort.Strings(usages)
	return usages
}

func (e *Env) call(n *callNode) (Value, error) {
	b, ok := builtins[n.name]
	if !ok {
		return Value{}, errorf(n.at, "unknown function %q", n.name)
	}
	if len(n.args) != b.arity {
		return Value{}, errorf(n.at, "%s takes %d argument(s), got %d", b.usage, b.arity, len(n.args))
	}
	args := make([]*bigint.Int, len(n.args))
	for i, a := range n.args {
		v, err := e.evalInt(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return b.fn(e, n.at, args)
}

// toUint converts a non-negative argument to a machine-sized count.
func toUint(at int, v *bigint.Int, what string) (uint, error) {
	if v.Sign() < 0 {
		return 0, errorf(at, "%s must be non-negative, got %s", what, describe(v))
	}
	u, err := v.Uint64()
	if err != nil {
		return 0, &Error{Pos: at, Msg: fmt.Sprintf("%s too large: %s", what, describe(v)), Err: err}
	}
	n, err := safecast.Conv[uint](u)
	if err != nil {
		return 0, &Error{Pos: at, Msg: fmt.Sprintf("%s too large: %s", what, describe(v)), Err: err}
	}
	return n, nil
}

func builtinAbs(_ *Env, _ int, args []*bigint.Int) (Value, error) {
	return intValue(new(bigint.Int).Abs(args[0])), nil
}

func builtinPow(e *Env, at int, args []*bigint.Int) (Value, error) {
	x := args[0]
	k, err := toUint(at, args[1], "exponent")
	if err != nil {
		return Value{}, err
	}
	if k == 0 {
		return intValue(bigint.NewInt(1)), nil
	}
	// |x| <= 1 never grows.
	if x.CmpAbs(bigint.NewInt(1)) <= 0 {
		if x.Sign() < 0 && k%2 == 0 {
			return intValue(bigint.NewInt(1)), nil
		}
		return intValue(x.Clone()), nil
	}
	// x^k has floor(k*log2|x|)+1 bits; the estimate rejects oversized
	// results before any multiplication and the final check settles the
	// last bit the estimate cannot resolve.
	if float64(k)*log2Abs(x) > float64(e.MaxBits)+1 {
		return Value{}, errorf(at, "pow result exceeds %d bits", e.MaxBits)
	}
	result := bigint.NewInt(1)
	base := x.Clone()
	for {
		if k&1 == 1 {
			result.Mul(result, base)
		}
		k >>= 1
		if k == 0 {
			break
		}
		base.Mul(base, base)
	}
	if result.BitLen() > e.MaxBits {
		return Value{}, errorf(at, "pow result exceeds %d bits", e.MaxBits)
	}
	return intValue(result), nil
}

// log2Abs approximates log2|x| for a nonzero x from its top 64 bits.
func log2Abs(x *bigint.Int) float64 {
	n := x.BitLen()
	if n <= 64 {
		return math.Log2(math.Abs(x.Float64()))
	}
	top := new(bigint.Int).Abs(x)
	top.Rsh(top, uint(n-64))
	return math.Log2(top.Float64()) + float64(n-64)
}

func builtinFact(e *Env, at int, args []*bigint.Int) (Value, error) {
	n, err := toUint(at, args[0], "fact argument")
	if err != nil {
		return Value{}, err
	}
	result := bigint.NewInt(1)
	for i := uint(2); i <= n; i++ {
		result.MulWord(result, bigint.Word(i))
		if result.BitLen() > e.MaxBits {
			return Value{}, errorf(at, "fact result exceeds %d bits", e.MaxBits)
		}
	}
	return intValue(result), nil
}

func builtinBit(_ *Env, at int, args []*bigint.Int) (Value, error) {
	i, err := toUint(at, args[1], "bit index")
	if err != nil {
		return Value{}, err
	}
	return intValue(bigint.NewUint(uint64(args[0].Bit(i)))), nil
}

func builtinSetBit(e *Env, at int, args []*bigint.Int) (Value, error) {
	i, err := toUint(at, args[1], "bit index")
	if err != nil {
		return Value{}, err
	}
	b, err := toUint(at, args[2], "bit value")
	if err != nil {
		return Value{}, err
	}
	if b > 1 {
		return Value{}, errorf(at, "bit value must be 0 or 1, got %d", b)
	}
	if b == 1 && i >= uint(e.MaxBits) {
		return Value{}, errorf(at, "setbit result exceeds %d bits", e.MaxBits)
	}
	return intValue(new(bigint.Int).SetBit(args[0], i, b)), nil
}

func builtinBitLen(_ *Env, _ int, args []*bigint.Int) (Value, error) {
	return intValue(bigint.From(args[0].BitLen())), nil
}

func builtinFloat(_ *Env, _ int, args []*bigint.Int) (Value, error) {
	return Value{Float: args[0].Float64(), IsFloat: true}, nil
}
