package bigint

// Cmp compares x and y and returns -1, 0 or +1.
//
// A negative value sorts before a non-negative one. With equal signs the
// magnitudes are compared by logical length and then limb by limb from the
// top, and the result is inverted when both are negative.
func (x *Int) Cmp(y *Int) int {
	xneg := x.neg && !x.abs.isZero()
	yneg := y.neg && !y.abs.isZero()
	switch {
	case xneg && !yneg:
		return -1
	case !xneg && yneg:
		return 1
	}
	r := x.abs.cmp(y.abs)
	if xneg {
		r = -r
	}
	return r
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int {
	return x.abs.cmp(y.abs)
}

// Equal reports whether x and y hold the same value.
func (x *Int) Equal(y *Int) bool {
	return x.Cmp(y) == 0
}

// Bit returns bit i of |x|.
func (x *Int) Bit(i uint) uint {
	return x.abs.bit(i)
}

// SetBit sets z to x with bit i of the magnitude set to b (0 or 1) and
// returns z. The sign of x is kept.
func (z *Int) SetBit(x *Int, i uint, b uint) *Int {
	z.Set(x)
	z.neg = x.neg
	z.abs = z.abs.setBit(i, b)
	return z.canon()
}

// BitLen returns the number of bits in |x|, ignoring leading zeros.
func (x *Int) BitLen() int {
	return x.abs.bitLen()
}
