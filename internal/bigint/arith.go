package bigint

import "math/bits"

// Word is one limb of a magnitude: a native unsigned machine word.
type Word uint

const (
	_W = bits.UintSize // limb width in bits
	_M = ^Word(0)      // limb mask
)

// addWW returns x + y + c and the carry out. c must be 0 or 1.
func addWW(x, y, c Word) (sum, carry Word) {
	s, cc := bits.Add(uint(x), uint(y), uint(c))
	return Word(s), Word(cc)
}

// subWW returns x - y - b and the borrow out. b must be 0 or 1.
func subWW(x, y, b Word) (diff, borrow Word) {
	d, bb := bits.Sub(uint(x), uint(y), uint(b))
	return Word(d), Word(bb)
}

// mulAddWWW returns the double word hi<<_W + lo = x*y + c.
func mulAddWWW(x, y, c Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	l, cc := bits.Add(l, uint(c), 0)
	return Word(h + cc), Word(l)
}

// addMulVVW computes z += x*y over len(x) limbs and returns the carry out.
// len(z) must be at least len(x).
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i, xi := range x {
		hi, lo := mulAddWWW(xi, y, z[i])
		lo, cc := addWW(lo, c, 0)
		z[i] = lo
		c = hi + cc
	}
	return c
}

// divWW returns the quotient and remainder of (hi<<_W + lo) / d. hi < d.
func divWW(hi, lo, d Word) (q, r Word) {
	qq, rr := bits.Div(uint(hi), uint(lo), uint(d))
	return Word(qq), Word(rr)
}

// nlz returns the number of leading zero bits in x.
func nlz(x Word) uint {
	return uint(bits.LeadingZeros(uint(x)))
}
