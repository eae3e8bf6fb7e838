package verify

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// maxShift bounds generated shift amounts, enough to cross several limbs.
const maxShift = 5 * 64

// generator draws the operands of one case. Each case has its own stream so
// results do not depend on worker scheduling.
type generator struct {
	rng      *rand.Rand
	maxLimbs int
}

func newGenerator(seed int64, index, maxLimbs int) *generator {
	return &generator{
		rng:      rand.New(rand.NewPCG(uint64(seed), uint64(index))),
		maxLimbs: maxLimbs,
	}
}

// operand returns a signed base-16 integer. Besides uniform limbs it favors
// the shapes that stress carries and borrows: zero, all-ones limbs, powers
// of two and small values.
func (g *generator) operand() string {
	var b strings.Builder
	if g.rng.IntN(2) == 0 {
		b.WriteByte('-')
	}
	limbs := 1 + g.rng.IntN(g.maxLimbs)
	switch g.rng.IntN(8) {
	case 0:
		return "0"
	case 1:
		b.WriteString(strings.Repeat("ffffffffffffffff", limbs))
	case 2:
		b.WriteByte('1')
		b.WriteString(strings.Repeat("0", g.rng.IntN(16*limbs)))
	case 3:
		b.WriteString(strconv.FormatUint(g.rng.Uint64N(1<<16), 16))
	default:
		for i := range limbs {
			w := g.rng.Uint64()
			if i == 0 {
				b.WriteString(strconv.FormatUint(w, 16))
				continue
			}
			s := strconv.FormatUint(w, 16)
			b.WriteString(strings.Repeat("0", 16-len(s)))
			b.WriteString(s)
		}
	}
	return b.String()
}

// nonZero returns y, or a fresh non-zero operand when y is zero.
func (g *generator) nonZero(y string) string {
	for y == "0" || y == "-0" {
		y = g.operand()
	}
	return y
}

// shift returns a non-negative shift amount in base 16.
func (g *generator) shift() string {
	return strconv.FormatUint(g.rng.Uint64N(maxShift), 16)
}
