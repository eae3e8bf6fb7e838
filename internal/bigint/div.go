package bigint

// divmod returns the quotient and remainder of |u| / |v| by restoring
// bit-serial long division. It walks the bits of u from the most
// significant set bit down, so leading zero limbs cost nothing; scalar and
// big divisors take the same path. v must not be zero.
func divmod(op string, u, v nat) (q, r nat) {
	v = v.logical()
	if len(v) == 0 {
		precondition(op, ErrDivisionByZero)
	}
	u = u.logical()
	if u.cmp(v) < 0 {
		return nil, u.clone()
	}

	q = make(nat, len(u))
	r = make(nat, 0, len(v)+1)
	for i := u.bitLen() - 1; i >= 0; i-- {
		r = r.lsh(r, 1)
		r = r.setBit(0, u.bit(uint(i)))
		if r.cmp(v) >= 0 {
			r = r.subMag(v)
			q[i/_W] |= 1 << (uint(i) % _W)
		}
	}
	return q.normalize(1), r.normalize(1)
}

// quoRem sets z to the truncated quotient x / (s·|y|) and r to the
// remainder, where s is -1 when yneg is set. Either result may be nil when
// the caller does not need it.
func quoRem(op string, z, r *Int, x *Int, yneg bool, y nat) {
	xneg := x.neg
	qm, rm := divmod(op, x.abs, y)
	if z != nil {
		z.abs, z.neg = qm, xneg != yneg
		z.canon()
	}
	if r != nil {
		r.abs, r.neg = rm, xneg
		r.canon()
	}
}

// Quo sets z to x / y truncated toward zero and returns z. y must not be
// zero.
func (z *Int) Quo(x, y *Int) *Int {
	quoRem("Quo", z, nil, x, y.neg, y.abs)
	return z
}

// Rem sets z to x % y and returns z. The result is zero or has the sign of
// x. y must not be zero.
func (z *Int) Rem(x, y *Int) *Int {
	quoRem("Rem", nil, z, x, y.neg, y.abs)
	return z
}

// QuoRem sets z to x / y and r to x % y, truncated toward zero, and
// returns (z, r). z and r must be distinct. y must not be zero.
func (z *Int) QuoRem(x, y, r *Int) (*Int, *Int) {
	quoRem("QuoRem", z, r, x, y.neg, y.abs)
	return z, r
}

// QuoRemWord sets z to x / d and returns the magnitude of the remainder,
// which carries the sign of x. d must not be zero.
func (z *Int) QuoRemWord(x *Int, d Word) (*Int, Word) {
	var r Int
	quoRem("QuoRemWord", z, &r, x, false, nat{d})
	if r.abs.isZero() {
		return z, 0
	}
	return z, r.abs[0]
}

// QuoInt64 sets z to x / d truncated toward zero and returns z.
func (z *Int) QuoInt64(x *Int, d int64) *Int {
	neg, mag := splitInt64(d)
	quoRem("QuoInt64", z, nil, x, neg, mag)
	return z
}

// RemInt64 sets z to x % d and returns z.
func (z *Int) RemInt64(x *Int, d int64) *Int {
	neg, mag := splitInt64(d)
	quoRem("RemInt64", nil, z, x, neg, mag)
	return z
}

// shortDiv sets z = x / d using one hardware division per limb and
// returns z with the remainder. It backs text conversion, where the
// divisor is always a single word.
func (z nat) shortDiv(x nat, d Word) (nat, Word) {
	x = x.logical()
	z = z.reserve(len(x))[:len(x)]
	var r Word
	for i := len(x) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], d)
	}
	return z.logical(), r
}
