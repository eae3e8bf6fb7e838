package bigint

import "math"

// Uint returns x as a native unsigned word. It fails when x is negative or
// needs more than one limb.
func (x *Int) Uint() (uint, error) {
	m := x.abs.logical()
	switch {
	case len(m) == 0:
		return 0, nil
	case len(m) > 1 || x.neg:
		return 0, x.rangeError("Uint")
	}
	return uint(m[0]), nil
}

// Int returns x as a native signed word. It fails when |x| needs more than
// one limb or exceeds the magnitude of the int range for its sign.
func (x *Int) Int() (int, error) {
	m := x.abs.logical()
	switch {
	case len(m) == 0:
		return 0, nil
	case len(m) > 1:
		return 0, x.rangeError("Int")
	}
	w := m[0]
	if x.neg {
		if w > Word(math.MaxInt)+1 {
			return 0, x.rangeError("Int")
		}
		return -int(w-1) - 1, nil
	}
	if w > Word(math.MaxInt) {
		return 0, x.rangeError("Int")
	}
	return int(w), nil
}

// Uint64 returns x as a uint64, failing when it is negative or too wide.
func (x *Int) Uint64() (uint64, error) {
	v, ok := x.abs.uint64()
	if !ok || (x.neg && v != 0) {
		return 0, x.rangeError("Uint64")
	}
	return v, nil
}

// Int64 returns x as an int64, failing when it is out of range.
func (x *Int) Int64() (int64, error) {
	v, ok := x.abs.uint64()
	switch {
	case !ok:
		return 0, x.rangeError("Int64")
	case v == 0:
		return 0, nil
	case x.neg:
		if v > math.MaxInt64+1 {
			return 0, x.rangeError("Int64")
		}
		return -int64(v-1) - 1, nil
	case v > math.MaxInt64:
		return 0, x.rangeError("Int64")
	}
	return int64(v), nil
}

// IsInt64 reports whether x can be represented as an int64.
func (x *Int) IsInt64() bool {
	_, err := x.Int64()
	return err == nil
}

// IsUint64 reports whether x can be represented as a uint64.
func (x *Int) IsUint64() bool {
	_, err := x.Uint64()
	return err == nil
}

// uint64 returns the logical value of x if it fits 64 bits.
func (x nat) uint64() (uint64, bool) {
	m := x.logical()
	if len(m)*_W > 64 {
		return 0, false
	}
	var v uint64
	for i, w := range m {
		v |= uint64(w) << (uint(i) * _W)
	}
	return v, true
}

// Float64 returns the float64 nearest to x, ties to even. Values beyond
// the float64 range become ±Inf.
func (x *Int) Float64() float64 {
	m := x.abs.logical()
	n := len(m)
	if n == 0 {
		return 0
	}

	// Left-align the significant bits of the top limb, then fill the rest
	// of a 64-bit mantissa from the high bits of the limbs below it. Any
	// nonzero bit left over sets the low mantissa bit, which lies below the
	// 53-bit rounding point and keeps the single rounding correct.
	lz := int(nlz(m[n-1]))
	var mant uint64
	have := 0
	sticky := false
	for i := n - 1; i >= 0; i-- {
		w, width := uint64(m[i]), _W
		if i == n-1 {
			width -= lz
		}
		if have == 64 {
			if w != 0 {
				sticky = true
				break
			}
			continue
		}
		if have+width <= 64 {
			mant |= w << uint(64-have-width)
			have += width
			continue
		}
		take := 64 - have
		drop := uint(width - take)
		mant |= w >> drop
		sticky = w&(1<<drop-1) != 0
		have = 64
		if sticky {
			break
		}
	}
	if sticky {
		mant |= 1
	}

	exp := n*_W - lz - 64
	f := math.Ldexp(float64(mant), exp)
	if x.neg {
		f = -f
	}
	return f
}

func (x *Int) rangeError(op string) error {
	return &RangeError{Op: op, Value: x.String()}
}
