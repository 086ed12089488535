// value.go: the calculator's tagged value variant
//
// A Value is one of three kinds: a complex float, an unsigned integer or a
// signed integer. Integers of every word size (8/16/32/64/128 bits) live in
// the 128-bit container; after every integer-producing operation the result
// is trimmed to the active word size, masking for unsigned values and
// sign-extending for signed ones, so narrower widths wrap exactly like
// machine integers.
package ccalc

import "math/big"

type ValueKind int

const (
	KindComplex ValueKind = iota
	KindUint
	KindInt
)

func (k ValueKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	default:
		return "cplx"
	}
}

// Value is the variant type flowing through the evaluator. The zero Value
// is a complex NaN.
type Value struct {
	kind ValueKind
	cval Complex
	ival Uint128
}

func (v Value) Kind() ValueKind { return v.kind }

func ComplexValue(z Complex) Value { return Value{kind: KindComplex, cval: z} }

// UintValue returns an unsigned integer value trimmed to bits.
func UintValue(u Uint128, bits uint) Value {
	return Value{kind: KindUint, ival: TrimUint(u, bits)}
}

// IntValue returns a signed integer value trimmed (sign-extended) to bits.
func IntValue(i Int128, bits uint) Value {
	return Value{kind: KindInt, ival: TrimInt(i.Uint128, bits)}
}

// Uint returns the unsigned payload; valid for KindUint.
func (v Value) Uint() Uint128 { return v.ival }

// Int returns the signed payload; valid for KindInt.
func (v Value) Int() Int128 { return Int128{v.ival} }

// Complex returns v as a complex float, converting integer payloads.
func (v Value) Complex() Complex {
	switch v.kind {
	case KindUint:
		return complexFromFloat(v.ival.Float())
	case KindInt:
		return complexFromFloat(Int128{v.ival}.Float())
	default:
		return v.cval
	}
}

func (v Value) IsNaN() bool { return v.kind == KindComplex && v.cval.IsNaN() }

// IsZero reports a zero of any kind.
func (v Value) IsZero() bool {
	if v.kind == KindComplex {
		return v.cval.IsZero()
	}
	return v.ival.IsZero()
}

// intMask returns a Uint128 with the low bits set.
func intMask(bits uint) Uint128 {
	return Uint128{^uint64(0), ^uint64(0)}.Shr(128 - bits)
}

// TrimUint masks u down to the given word size.
func TrimUint(u Uint128, bits uint) Uint128 {
	if bits >= 128 {
		return u
	}
	return u.And(intMask(bits))
}

// TrimInt masks u down to the given word size and sign-extends from the
// width's top bit.
func TrimInt(u Uint128, bits uint) Uint128 {
	if bits >= 128 {
		return u
	}
	t := u.And(intMask(bits))
	if t.Shr(bits-1).Lo&1 != 0 {
		t = t.Or(intMask(bits).Not())
	}
	return t
}

// uintMaxFor returns the largest unsigned value of the word size.
func uintMaxFor(bits uint) Uint128 { return intMask(bits) }

// intMaxFor returns the largest signed value of the word size.
func intMaxFor(bits uint) Uint128 { return intMask(bits).Shr(1) }

// intMinMagFor returns the magnitude of the most negative signed value.
func intMinMagFor(bits uint) Uint128 {
	return Uint128{Lo: 1}.Shl(bits - 1)
}

// wholeRealInt tries to view v as a signed integer: integer kinds pass
// through, a complex passes when its imaginary part is zero and its real
// part is a whole number in the signed range of the word size.
func wholeRealInt(v Value, bits uint) (Value, bool) {
	switch v.kind {
	case KindUint, KindInt:
		return v, true
	default:
		z := v.cval
		if z.IsNaN() || z.Im.Sign() != 0 {
			return Value{}, false
		}
		i, ok := Int128FromFloat(z.Re)
		if !ok {
			return Value{}, false
		}
		if TrimInt(i.Uint128, bits) != i.Uint128 {
			return Value{}, false
		}
		return Value{kind: KindInt, ival: i.Uint128}, true
	}
}

// floatFromBig converts a big.Int to the working float precision.
func floatFromBig(z *big.Int) *big.Float {
	return newFloat().SetInt(z)
}
