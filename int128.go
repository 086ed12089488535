// int128.go: fixed-width 128-bit integer containers
//
// Uint128 is an unsigned 128-bit integer held as two uint64 words. It is the
// single storage type for every integer value in the calculator; signed
// values are the same bits viewed in two's complement. Narrower word sizes
// (8/16/32/64) are produced by masking or sign-extending the 128-bit value,
// see value.go.
//
// Arithmetic is plain wrapping arithmetic built on math/bits. Division and
// remainder use schoolbook long division on 64-bit halves.
package ccalc

import (
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer; Hi holds the most significant word.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128 is Uint128 reinterpreted as a two's complement signed integer.
type Int128 struct {
	Uint128
}

func U128(lo uint64) Uint128  { return Uint128{Lo: lo} }
func I128(v int64) Int128     { return Int128{Uint128{Hi: uint64(v >> 63), Lo: uint64(v)}} }
func (u Uint128) Int() Int128 { return Int128{u} }

func (u Uint128) IsZero() bool { return u.Hi == 0 && u.Lo == 0 }

// SignBit reports whether bit 127 is set.
func (u Uint128) SignBit() bool { return u.Hi>>63 != 0 }

func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{hi, lo}
}

func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{hi, lo}
}

// Mul returns the low 128 bits of the product.
func (u Uint128) Mul(v Uint128) Uint128 {
	hi, lo := bits.Mul64(u.Lo, v.Lo)
	hi += u.Hi*v.Lo + u.Lo*v.Hi
	return Uint128{hi, lo}
}

// MulCheck is Mul plus an overflow indication: ok is false when the true
// product does not fit in 128 bits.
func (u Uint128) MulCheck(v Uint128) (r Uint128, ok bool) {
	if u.Hi != 0 && v.Hi != 0 {
		return u.Mul(v), false
	}
	hi, lo := bits.Mul64(u.Lo, v.Lo)
	p1h, p1l := bits.Mul64(u.Hi, v.Lo)
	p2h, p2l := bits.Mul64(u.Lo, v.Hi)
	if p1h != 0 || p2h != 0 {
		return u.Mul(v), false
	}
	s, c1 := bits.Add64(p1l, p2l, 0)
	hi2, c2 := bits.Add64(hi, s, 0)
	return Uint128{hi2, lo}, c1 == 0 && c2 == 0
}

// Div returns u / v. v must not be zero.
func (u Uint128) Div(v Uint128) Uint128 {
	q, _ := u.QuoRem(v)
	return q
}

// Rem returns u % v. v must not be zero.
func (u Uint128) Rem(v Uint128) Uint128 {
	_, r := u.QuoRem(v)
	return r
}

// QuoRem returns both quotient and remainder of u / v. v must not be zero.
func (u Uint128) QuoRem(v Uint128) (q, r Uint128) {
	if v.Hi == 0 {
		var rem uint64
		if u.Hi < v.Lo {
			q.Lo, rem = bits.Div64(u.Hi, u.Lo, v.Lo)
		} else {
			q.Hi, rem = bits.Div64(0, u.Hi, v.Lo)
			q.Lo, rem = bits.Div64(rem, u.Lo, v.Lo)
		}
		return q, Uint128{Lo: rem}
	}
	// Normalize so the divisor's top bit is set, divide the top 128 bits,
	// then correct the one-off estimate.
	n := uint(bits.LeadingZeros64(v.Hi))
	v1 := v.Shl(n)
	u1 := u.Shr(1)
	tq, _ := bits.Div64(u1.Hi, u1.Lo, v1.Hi)
	tq >>= 63 - n
	if tq != 0 {
		tq--
	}
	q = Uint128{Lo: tq}
	r = u.Sub(v.Mul(q))
	if r.Cmp(v) >= 0 {
		q = q.Add(Uint128{Lo: 1})
		r = r.Sub(v)
	}
	return q, r
}

func (u Uint128) And(v Uint128) Uint128 { return Uint128{u.Hi & v.Hi, u.Lo & v.Lo} }
func (u Uint128) Or(v Uint128) Uint128  { return Uint128{u.Hi | v.Hi, u.Lo | v.Lo} }
func (u Uint128) Xor(v Uint128) Uint128 { return Uint128{u.Hi ^ v.Hi, u.Lo ^ v.Lo} }
func (u Uint128) Not() Uint128          { return Uint128{^u.Hi, ^u.Lo} }
func (u Uint128) Neg() Uint128          { return Uint128{}.Sub(u) }

// Shl returns u << n; shifts of 128 or more yield zero.
func (u Uint128) Shl(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	case n == 0:
		return u
	default:
		return Uint128{u.Hi<<n | u.Lo>>(64-n), u.Lo << n}
	}
}

// Shr returns u >> n (logical); shifts of 128 or more yield zero.
func (u Uint128) Shr(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: u.Hi >> (n - 64)}
	case n == 0:
		return u
	default:
		return Uint128{u.Hi >> n, u.Lo>>n | u.Hi<<(64-n)}
	}
}

// Sar returns u >> n with sign replication from bit 127.
func (u Uint128) Sar(n uint) Uint128 {
	if !u.SignBit() {
		return u.Shr(n)
	}
	switch {
	case n >= 128:
		return Uint128{^uint64(0), ^uint64(0)}
	case n >= 64:
		return Uint128{^uint64(0), uint64(int64(u.Hi) >> (n - 64))}
	case n == 0:
		return u
	default:
		return Uint128{uint64(int64(u.Hi) >> n), u.Lo>>n | u.Hi<<(64-n)}
	}
}

// Cmp compares u and v as unsigned values: -1, 0 or +1.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// Cmp compares i and v as signed values.
func (i Int128) Cmp(v Int128) int {
	if i.SignBit() != v.SignBit() {
		if i.SignBit() {
			return -1
		}
		return 1
	}
	return i.Uint128.Cmp(v.Uint128)
}

func (i Int128) IsNeg() bool { return i.SignBit() }

// Abs returns the magnitude of i as an unsigned value. The most negative
// value maps onto its own bit pattern, which is its correct magnitude.
func (i Int128) Abs() Uint128 {
	if i.SignBit() {
		return i.Neg()
	}
	return i.Uint128
}

// Quo returns the signed quotient, truncating toward zero. v must not be zero.
func (i Int128) Quo(v Int128) Int128 {
	q := i.Abs().Div(v.Abs())
	if i.SignBit() != v.SignBit() {
		return Int128{q.Neg()}
	}
	return Int128{q}
}

// Rem returns the signed remainder; the result takes the dividend's sign.
// v must not be zero.
func (i Int128) Rem(v Int128) Int128 {
	r := i.Abs().Rem(v.Abs())
	if i.SignBit() {
		return Int128{r.Neg()}
	}
	return Int128{r}
}

// Uint64 returns the low 64 bits.
func (u Uint128) Uint64() uint64 { return u.Lo }

// Big returns u as a non-negative big.Int.
func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

// Big returns i as a signed big.Int.
func (i Int128) Big() *big.Int {
	if !i.SignBit() {
		return i.Uint128.Big()
	}
	return new(big.Int).Neg(i.Neg().Big())
}

// Float returns u as a *big.Float at the working precision.
func (u Uint128) Float() *big.Float {
	return new(big.Float).SetPrec(floatPrec).SetInt(u.Big())
}

// Float returns i as a *big.Float at the working precision.
func (i Int128) Float() *big.Float {
	return new(big.Float).SetPrec(floatPrec).SetInt(i.Big())
}

// Uint128FromFloat converts a finite whole f to Uint128. ok is false if f is
// negative, not a whole number, or too wide for 128 bits.
func Uint128FromFloat(f *big.Float) (u Uint128, ok bool) {
	if f == nil || f.IsInf() || f.Signbit() && f.Sign() != 0 {
		return Uint128{}, false
	}
	z, acc := f.Int(nil)
	if acc != big.Exact || z.BitLen() > 128 {
		return Uint128{}, false
	}
	var words [2]uint64
	for i, w := range z.Bits() {
		// big.Word is 64-bit on all supported platforms.
		words[i] = uint64(w)
	}
	return Uint128{words[1], words[0]}, true
}

// Int128FromFloat converts a finite whole f to Int128. ok is false if f is
// not whole or falls outside the signed 128-bit range.
func Int128FromFloat(f *big.Float) (i Int128, ok bool) {
	if f == nil || f.IsInf() {
		return Int128{}, false
	}
	z, acc := f.Int(nil)
	if acc != big.Exact {
		return Int128{}, false
	}
	neg := z.Sign() < 0
	mag := new(big.Int).Abs(z)
	if neg {
		// Allow down to -2^127.
		limit := new(big.Int).Lsh(big.NewInt(1), 127)
		if mag.Cmp(limit) > 0 {
			return Int128{}, false
		}
	} else if mag.BitLen() > 127 {
		return Int128{}, false
	}
	var words [2]uint64
	for i, w := range mag.Bits() {
		words[i] = uint64(w)
	}
	u := Uint128{words[1], words[0]}
	if neg {
		u = u.Neg()
	}
	return Int128{u}, true
}
