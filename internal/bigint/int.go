package bigint

// Int is a signed arbitrary-precision integer. The zero value is 0.
//
// neg may be set while abs is zero in the middle of an operation; every
// observer treats that negative zero as zero, and every exported operation
// leaves a canonical, non-negative zero behind.
type Int struct {
	neg bool
	abs nat
}

// Integer is the set of native integer types accepted by From.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// NewInt allocates and returns a new Int set to v.
func NewInt(v int64) *Int {
	return new(Int).SetInt64(v)
}

// NewUint allocates and returns a new Int set to v.
func NewUint(v uint64) *Int {
	return new(Int).SetUint64(v)
}

// NewWord allocates and returns a new single-limb Int set to w.
func NewWord(w Word) *Int {
	return new(Int).SetWord(w)
}

// From returns a new Int holding v. Narrow integer types widen through the
// 64-bit constructors.
func From[T Integer](v T) *Int {
	if v < 0 {
		return NewInt(int64(v))
	}
	return NewUint(uint64(v))
}

// SetInt64 sets z to v and returns z.
func (z *Int) SetInt64(v int64) *Int {
	z.neg = v < 0
	if v < 0 {
		// -(v+1) cannot overflow, including for math.MinInt64.
		z.abs = z.abs.setUint64(uint64(-(v + 1)) + 1)
	} else {
		z.abs = z.abs.setUint64(uint64(v))
	}
	return z
}

// SetUint64 sets z to v and returns z.
func (z *Int) SetUint64(v uint64) *Int {
	z.neg = false
	z.abs = z.abs.setUint64(v)
	return z
}

// SetWord sets z to the single limb w and returns z.
func (z *Int) SetWord(w Word) *Int {
	z.neg = false
	z.abs = z.abs.setWord(w)
	return z
}

// Set sets z to x and returns z. z does not share storage with x afterwards.
func (z *Int) Set(x *Int) *Int {
	if z != x {
		z.abs = z.abs.set(x.abs)
		z.neg = x.neg
	}
	return z.canon()
}

// Clone returns an independent copy of x.
func (x *Int) Clone() *Int {
	return new(Int).Set(x)
}

// Sign returns -1, 0 or +1 depending on the sign of x. Negative zero is 0.
func (x *Int) Sign() int {
	switch {
	case x.abs.isZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x is zero.
func (x *Int) IsZero() bool {
	return x.abs.isZero()
}

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.Set(x)
	z.neg = !x.neg
	return z.canon()
}

// Abs sets z to |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.Set(x)
	z.neg = false
	return z
}

// Bits returns the logical limbs of |x|, least significant first, without
// most-significant zero limbs. The slice shares storage with x.
func (x *Int) Bits() []Word {
	return x.abs.logical()
}

// Len returns the logical number of limbs in |x|.
func (x *Int) Len() int {
	return x.abs.logicalLen()
}

// Reserve grows the storage of z to at least n limbs without changing its
// value and returns z.
func (z *Int) Reserve(n int) *Int {
	z.abs = z.abs.reserve(n)
	return z
}

// Normalize drops most-significant zero limbs from the storage of z,
// keeping at least max(floor, 1) of them, and returns z.
func (z *Int) Normalize(floor int) *Int {
	z.abs = z.abs.normalize(floor)
	return z
}

// canon trims z and clears the sign of a zero value.
func (z *Int) canon() *Int {
	z.abs = z.abs.normalize(1)
	if z.abs.isZero() {
		z.neg = false
	}
	return z
}
