package bigint

// addMag sets z = z + x with ripple carry and returns z. A carry out of the
// most significant limb appends one limb.
func (z nat) addMag(x nat) nat {
	x = x.logical()
	z = z.reserve(len(x))
	var c Word
	for i, xi := range x {
		z[i], c = addWW(z[i], xi, c)
	}
	for i := len(x); c != 0 && i < len(z); i++ {
		z[i], c = addWW(z[i], 0, c)
	}
	if c != 0 {
		z = append(z, c)
	}
	return z
}

// subMag sets z = z - x with ripple borrow and returns z normalized.
// z must be at least x; anything else is a caller bug.
func (z nat) subMag(x nat) nat {
	if z.cmp(x) < 0 {
		precondition("sub", ErrUnderflow)
	}
	x = x.logical()
	var b Word
	for i, xi := range x {
		z[i], b = subWW(z[i], xi, b)
	}
	for i := len(x); b != 0 && i < len(z); i++ {
		z[i], b = subWW(z[i], 0, b)
	}
	return z.normalize(1)
}

// combine sets z = x + s·|y|, where s is -1 when yneg is set and +1
// otherwise. Every signed addition and subtraction, with a big or a scalar
// operand, funnels through here.
func (z *Int) combine(x *Int, yneg bool, y nat) *Int {
	if alias(z.abs, y) {
		y = y.clone()
	}
	xneg := x.neg
	z.abs = z.abs.set(x.abs)

	if xneg == yneg {
		z.abs = z.abs.addMag(y)
		z.neg = xneg
		return z.canon()
	}

	switch z.abs.cmp(y) {
	case 0:
		z.abs = z.abs[:0]
		z.neg = false
	case 1:
		z.abs = z.abs.subMag(y)
		z.neg = xneg
	default:
		d := y.clone().subMag(z.abs)
		z.abs = z.abs.set(d)
		z.neg = yneg
	}
	return z.canon()
}

// Add sets z to x + y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	return z.combine(x, y.neg, y.abs)
}

// Sub sets z to x - y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	return z.combine(x, !y.neg, y.abs)
}

// AddInt64 sets z to x + v and returns z.
func (z *Int) AddInt64(x *Int, v int64) *Int {
	neg, mag := splitInt64(v)
	return z.combine(x, neg, mag)
}

// SubInt64 sets z to x - v and returns z.
func (z *Int) SubInt64(x *Int, v int64) *Int {
	neg, mag := splitInt64(v)
	return z.combine(x, !neg, mag)
}

// splitInt64 returns the sign and magnitude of v as a fresh nat.
func splitInt64(v int64) (bool, nat) {
	if v < 0 {
		return true, nat(nil).setUint64(uint64(-(v + 1)) + 1)
	}
	return false, nat(nil).setUint64(uint64(v))
}
