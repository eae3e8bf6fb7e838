package bigint

// nat is an unsigned magnitude stored as limbs, least significant first.
//
// The stored length may include most-significant zero limbs. Code that
// needs the numeric length uses logicalLen or logical, which look past
// them without touching storage, so a nil nat, nat{} and nat{0, 0} all
// denote zero.
type nat []Word

// reserve returns z with at least n limbs. Limbs beyond the old length are
// zero. Growth goes through append, so repeated small increments reuse
// spare capacity instead of reallocating to the exact size every time.
func (z nat) reserve(n int) nat {
	if n <= len(z) {
		return z
	}
	if n <= cap(z) {
		old := len(z)
		z = z[:n]
		clear(z[old:])
		return z
	}
	return append(z, make(nat, n-len(z))...)
}

// normalize trims most-significant zero limbs, keeping at least
// max(floor, 1) limbs when z has that many.
func (z nat) normalize(floor int) nat {
	floor = max(floor, 1)
	n := len(z)
	for n > floor && z[n-1] == 0 {
		n--
	}
	return z[:n]
}

// logicalLen is the number of limbs up to and including the most
// significant nonzero one.
func (z nat) logicalLen() int {
	n := len(z)
	for n > 0 && z[n-1] == 0 {
		n--
	}
	return n
}

// logical returns z without its most-significant zero limbs. The result
// shares storage with z.
func (z nat) logical() nat {
	return z[:z.logicalLen()]
}

func (z nat) isZero() bool {
	return z.logicalLen() == 0
}

func (z nat) setWord(w Word) nat {
	z = z.reserve(1)[:1]
	z[0] = w
	return z
}

func (z nat) setUint64(v uint64) nat {
	if w := Word(v); uint64(w) == v {
		return z.setWord(w)
	}
	// Only reached when a limb is narrower than 64 bits.
	z = z.reserve(2)[:2]
	z[0] = Word(v)
	z[1] = Word(v >> 32)
	return z
}

// set copies the logical limbs of x into z.
func (z nat) set(x nat) nat {
	x = x.logical()
	z = z.reserve(len(x))[:len(x)]
	copy(z, x)
	return z
}

func (x nat) clone() nat {
	return nat(nil).set(x)
}

// cmp compares the logical values of x and y.
func (x nat) cmp(y nat) int {
	x, y = x.logical(), y.logical()
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// bitLen is the width of x in bits, ignoring leading zeros.
func (x nat) bitLen() int {
	x = x.logical()
	if len(x) == 0 {
		return 0
	}
	return len(x)*_W - int(nlz(x[len(x)-1]))
}

// bit returns bit i of x.
func (x nat) bit(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j]>>(i%_W)) & 1
}

// setBit sets bit i of z to b, growing z when needed.
func (z nat) setBit(i uint, b uint) nat {
	j := int(i / _W)
	m := Word(1) << (i % _W)
	switch b {
	case 0:
		if j < len(z) {
			z[j] &^= m
		}
		return z
	case 1:
		z = z.reserve(j + 1)
		z[j] |= m
		return z
	}
	panic("bigint: set bit value not 0 or 1")
}

// alias reports whether x and y share the same underlying array.
func alias(x, y nat) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}
