package bigint

// mulAddWord sets z = z*y + r in a single pass and returns z. Limbs are
// appended while the carry escapes the top.
func (z nat) mulAddWord(y, r Word) nat {
	c := r
	for i := range z {
		c, z[i] = mulAddWWW(z[i], y, c)
	}
	if c != 0 {
		z = append(z, c)
	}
	return z
}

// mulMag sets z = x * y using the schoolbook method and returns z.
//
// For each limb y[j], least significant first, x·y[j] is accumulated into
// the running total j limbs up, which is the same as shifting the partial
// product left by one limb per step.
func (z nat) mulMag(x, y nat) nat {
	x, y = x.logical(), y.logical()
	if len(x) == 0 || len(y) == 0 {
		return z[:0]
	}
	if alias(z, x) || alias(z, y) {
		z = nil
	}
	n := len(x) + len(y)
	z = z.reserve(n)[:n]
	clear(z)
	for j, d := range y {
		if d == 0 {
			continue
		}
		z[j+len(x)] = addMulVVW(z[j:j+len(x)], x, d)
	}
	return z.normalize(1)
}

// Mul sets z to x * y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	if x.abs.isZero() || y.abs.isZero() {
		z.abs = z.abs[:0]
		z.neg = false
		return z
	}
	neg := x.neg != y.neg
	z.abs = z.abs.mulMag(x.abs, y.abs)
	z.neg = neg
	return z.canon()
}

// MulWord sets z to x * w and returns z.
func (z *Int) MulWord(x *Int, w Word) *Int {
	z.Set(x)
	if w == 0 {
		z.abs = z.abs[:0]
	} else {
		z.abs = z.abs.logical().mulAddWord(w, 0)
	}
	return z.canon()
}

// MulInt64 sets z to x * v and returns z.
func (z *Int) MulInt64(x *Int, v int64) *Int {
	neg, mag := splitInt64(v)
	xneg := x.neg
	z.abs = z.abs.mulMag(x.abs, mag)
	z.neg = xneg != neg
	return z.canon()
}
