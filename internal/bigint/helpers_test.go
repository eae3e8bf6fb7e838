package bigint

import "math/big"

// toBig converts x to a math/big value for cross-checking.
func toBig(x *Int) *big.Int {
	ws := x.Bits()
	bw := make([]big.Word, len(ws))
	for i, w := range ws {
		bw[i] = big.Word(w)
	}
	b := new(big.Int).SetBits(bw)
	if x.Sign() < 0 {
		b.Neg(b)
	}
	return b
}

// fromBig builds an Int from a math/big value.
func fromBig(b *big.Int) *Int {
	bw := b.Bits()
	abs := make(nat, len(bw))
	for i, w := range bw {
		abs[i] = Word(w)
	}
	z := &Int{neg: b.Sign() < 0, abs: abs}
	return z.canon()
}

// fromWords64 assembles an Int from 64-bit chunks, least significant first.
func fromWords64(neg bool, ws []uint64) *Int {
	z := new(Int)
	for i := len(ws) - 1; i >= 0; i-- {
		z.Lsh(z, 64)
		z.Add(z, NewUint(ws[i]))
	}
	if neg {
		z.Neg(z)
	}
	return z
}

func mustBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic("bad literal " + s)
	}
	return b
}
