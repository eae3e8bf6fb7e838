package bigint

// lsh sets z = x << n and returns z normalized. z may alias x.
func (z nat) lsh(x nat, n uint) nat {
	x = x.logical()
	m := len(x)
	if m == 0 {
		return z[:0]
	}
	whole, s := int(n/_W), n%_W

	z = z.reserve(m + whole + 1)[:m+whole+1]
	if s == 0 {
		z[m+whole] = 0
		copy(z[whole:], x)
	} else {
		// Top-down so the sweep can run in place: each destination limb
		// sits at or above the source limbs still to be read.
		z[m+whole] = 0
		for i := m - 1; i >= 0; i-- {
			z[i+whole+1] |= x[i] >> (_W - s)
			z[i+whole] = x[i] << s
		}
	}
	clear(z[:whole])
	return z.normalize(1)
}

// rsh sets z = x >> n (floor of the magnitude) and returns z normalized.
// z may alias x.
func (z nat) rsh(x nat, n uint) nat {
	x = x.logical()
	m := len(x)
	whole, s := n/_W, n%_W
	if whole >= uint(m) {
		return z[:0]
	}
	k := m - int(whole)
	src := x[whole:]

	z = z.reserve(k)[:k]
	if s == 0 {
		copy(z, src)
	} else {
		for i := 0; i < k-1; i++ {
			z[i] = src[i]>>s | src[i+1]<<(_W-s)
		}
		z[k-1] = src[k-1] >> s
	}
	return z.normalize(1)
}

// Lsh sets z to x << n and returns z. The sign of x is kept; the
// magnitude is multiplied by 2ⁿ.
func (z *Int) Lsh(x *Int, n uint) *Int {
	z.abs = z.abs.lsh(x.abs, n)
	z.neg = x.neg
	return z.canon()
}

// Rsh sets z to x >> n and returns z. The shift acts on the magnitude, so
// the result is sign(x)·⌊|x| / 2ⁿ⌋ with no sign extension.
func (z *Int) Rsh(x *Int, n uint) *Int {
	z.abs = z.abs.rsh(x.abs, n)
	z.neg = x.neg
	return z.canon()
}

// LshInt sets z to x << n, where a negative n shifts right by |n|.
//
// A left shift whose amount does not fit a machine word cannot be
// represented and returns a *RangeError, leaving z unchanged. A right shift
// by such an amount moves every bit out and yields 0.
func (z *Int) LshInt(x, n *Int) (*Int, error) {
	return z.shiftInt("Lsh", x, n, n.neg)
}

// RshInt sets z to x >> n, where a negative n shifts left by |n|. It fails
// under the same rule as LshInt.
func (z *Int) RshInt(x, n *Int) (*Int, error) {
	return z.shiftInt("Rsh", x, n, !n.neg)
}

func (z *Int) shiftInt(op string, x, n *Int, right bool) (*Int, error) {
	amt := n.abs.logical()
	if len(amt) <= 1 {
		var s uint
		if len(amt) == 1 {
			s = uint(amt[0])
		}
		if right {
			return z.Rsh(x, s), nil
		}
		return z.Lsh(x, s), nil
	}
	if right || x.abs.isZero() {
		// Every limb index fits in a word, so an amount wider than one
		// word exceeds the bit width of any magnitude.
		z.abs = z.abs[:0]
		z.neg = false
		return z, nil
	}
	return z, &RangeError{Op: op, Value: n.String()}
}
