// complex.go: arbitrary-precision complex numbers
//
// What this file does
// -------------------
// Complex is a pair of *big.Float parts at the working precision. This file
// carries the arithmetic (Add/Sub/Mul/Div/Neg), the structural operations
// (Conj, Abs, Arg, Norm, Proj), and the elementary transcendentals composed
// from the real-valued functions in floatmath.go. The gamma family lives in
// complex_extras.go.
//
// A nil part stands for NaN (big.Float has no NaN value); infinities are
// ordinary parts. Division by zero of a nonzero value yields the single
// complex infinity (+inf, 0).
//
// Transcendental results pass through scrubTiny, which zeroes a part that is
// vanishingly small relative to the other part. Such a part is rounding
// noise from the series evaluations (e.g. the imaginary residue of
// exp(i*pi)), far below the precision the calculator promises.
package ccalc

import "math/big"

// Complex is a complex number with *big.Float parts. Use newComplex or the
// From helpers; a zero Complex{} has nil parts, which denote NaN.
type Complex struct {
	Re, Im *big.Float
}

func newComplex(re, im *big.Float) Complex { return Complex{re, im} }

func complexFromFloat(re *big.Float) Complex { return Complex{re, newFloat()} }

func complexFromInt64(v int64) Complex { return complexFromFloat(floatFromInt64(v)) }

// complexNaN is the not-a-number complex value.
func complexNaN() Complex { return Complex{} }

// complexInf is the single complex infinity as Proj produces it.
func complexInf() Complex { return Complex{newFloat().SetInf(false), newFloat()} }

func (z Complex) IsNaN() bool { return z.Re == nil || z.Im == nil }

func (z Complex) IsInf() bool {
	return !z.IsNaN() && (z.Re.IsInf() || z.Im.IsInf())
}

func (z Complex) IsZero() bool {
	return !z.IsNaN() && z.Re.Sign() == 0 && z.Im.Sign() == 0
}

// IsReal reports whether the imaginary part is zero (NaN is not real).
func (z Complex) IsReal() bool { return !z.IsNaN() && z.Im.Sign() == 0 }

func (z Complex) Add(w Complex) Complex {
	return Complex{fadd(z.Re, w.Re), fadd(z.Im, w.Im)}
}

func (z Complex) Sub(w Complex) Complex {
	return Complex{fsub(z.Re, w.Re), fsub(z.Im, w.Im)}
}

func (z Complex) Neg() Complex {
	return Complex{fneg(z.Re), fneg(z.Im)}
}

func (z Complex) Conj() Complex {
	return Complex{z.Re, fneg(z.Im)}
}

func (z Complex) Mul(w Complex) Complex {
	if z.IsNaN() || w.IsNaN() {
		return complexNaN()
	}
	re := fsub(fmul(z.Re, w.Re), fmul(z.Im, w.Im))
	im := fadd(fmul(z.Re, w.Im), fmul(z.Im, w.Re))
	return Complex{re, im}
}

func (z Complex) Div(w Complex) Complex {
	if z.IsNaN() || w.IsNaN() {
		return complexNaN()
	}
	if w.IsZero() {
		if z.IsZero() {
			return complexNaN()
		}
		return complexInf()
	}
	if z.IsInf() && !w.IsInf() {
		return complexInf()
	}
	d := fadd(fmul(w.Re, w.Re), fmul(w.Im, w.Im))
	re := fquo(fadd(fmul(z.Re, w.Re), fmul(z.Im, w.Im)), d)
	im := fquo(fsub(fmul(z.Im, w.Re), fmul(z.Re, w.Im)), d)
	return Complex{re, im}
}

// Abs returns |z| as a real value.
func (z Complex) Abs() *big.Float {
	if z.IsNaN() {
		return nil
	}
	if z.IsInf() {
		return newFloat().SetInf(false)
	}
	return realSqrt(fadd(fmul(z.Re, z.Re), fmul(z.Im, z.Im)))
}

// Arg returns the phase angle of z in (-pi, pi].
func (z Complex) Arg() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	return complexFromFloat(realAtan2(z.Im, z.Re))
}

// Norm returns the squared magnitude of z.
func (z Complex) Norm() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	return complexFromFloat(fadd(fmul(z.Re, z.Re), fmul(z.Im, z.Im)))
}

// Proj maps every infinity onto the single point at infinity, preserving the
// sign of zero on the imaginary part.
func (z Complex) Proj() Complex {
	if z.IsInf() {
		im := newFloat()
		if z.Im.Signbit() {
			im.Neg(im)
		}
		return Complex{newFloat().SetInf(false), im}
	}
	return z
}

// scrubEps bounds the relative size at which a part is considered rounding
// noise of the other: well below the 50 significant digits carried, well
// above the 77-digit working precision floor.
var scrubEps = mustParseFloat("1e-65")

// scrubTiny zeroes a part whose magnitude is negligible relative to the
// other part. Applied to transcendental results only, never to plain
// arithmetic, so deliberately lopsided inputs pass through untouched.
func scrubTiny(z Complex) Complex {
	if z.IsNaN() || z.IsInf() {
		return z
	}
	ar, ai := fabs(z.Re), fabs(z.Im)
	if z.Re.Sign() != 0 && z.Im.Sign() != 0 {
		if ar.Cmp(fmul(ai, scrubEps)) < 0 {
			return Complex{newFloat(), z.Im}
		}
		if ai.Cmp(fmul(ar, scrubEps)) < 0 {
			return Complex{z.Re, newFloat()}
		}
	}
	return z
}

// Exp returns e**z.
func (z Complex) Exp() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	m := realExp(z.Re)
	if z.Im.Sign() == 0 {
		return complexFromFloat(m)
	}
	return scrubTiny(Complex{fmul(m, realCos(z.Im)), fmul(m, realSin(z.Im))})
}

// Log returns the principal natural logarithm; the branch cut runs along the
// negative real axis, which maps to imaginary part +pi.
func (z Complex) Log() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.IsZero() {
		return Complex{newFloat().SetInf(true), newFloat()}
	}
	lnAbs := realLog(z.Abs())
	if z.Im.Sign() == 0 && z.Re.Sign() < 0 {
		return Complex{lnAbs, newFloat().Set(floatPi)}
	}
	return scrubTiny(Complex{lnAbs, realAtan2(z.Im, z.Re)})
}

// Log2 returns the base-2 logarithm.
func (z Complex) Log2() Complex {
	l := z.Log()
	return Complex{fquo(l.Re, floatLn2), fquo(l.Im, floatLn2)}
}

// Log10 returns the base-10 logarithm.
func (z Complex) Log10() Complex {
	l := z.Log()
	return Complex{fquo(l.Re, floatLn10), fquo(l.Im, floatLn10)}
}

// Sqrt returns the principal square root.
func (z Complex) Sqrt() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.Im.Sign() == 0 && z.Re.Sign() >= 0 {
		return complexFromFloat(realSqrt(z.Re))
	}
	a := z.Abs()
	half := newFloat().SetFloat64(0.5)
	re := realSqrt(fmul(half, fadd(a, z.Re)))
	im := realSqrt(fmul(half, fsub(a, z.Re)))
	if z.Im.Signbit() {
		im = fneg(im)
	}
	return Complex{re, im}
}

// Cbrt returns the cube root: real for real input, else the principal value.
func (z Complex) Cbrt() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	third := fquo(floatFromInt64(1), floatFromInt64(3))
	if z.Im.Sign() == 0 {
		if z.Re.Sign() < 0 {
			return complexFromFloat(fneg(realPow(fneg(z.Re), third)))
		}
		if z.Re.Sign() == 0 {
			return complexFromFloat(newFloat())
		}
		return complexFromFloat(realPow(z.Re, third))
	}
	return z.Pow(complexFromFloat(third))
}

// Pow returns z**w. A whole real exponent uses repeated squaring, which
// keeps results like (-2)**3 exact; otherwise exp(w log z).
func (z Complex) Pow(w Complex) Complex {
	if z.IsNaN() || w.IsNaN() {
		return complexNaN()
	}
	if w.Im.Sign() == 0 {
		if e, ok := Int128FromFloat(w.Re); ok {
			return z.powWhole(e)
		}
	}
	if z.IsZero() {
		if w.Re.Sign() > 0 {
			return complexFromInt64(0)
		}
		return complexNaN()
	}
	return scrubTiny(w.Mul(z.Log()).Exp())
}

// powWhole returns z**e for a signed whole exponent by squaring.
func (z Complex) powWhole(e Int128) Complex {
	if e.IsNeg() {
		return complexFromInt64(1).Div(z.powWholeU(e.Neg()))
	}
	return z.powWholeU(e.Uint128)
}

func (z Complex) powWholeU(e Uint128) Complex {
	r := complexFromInt64(1)
	if e.Lo&1 != 0 {
		r = z
	}
	for {
		e = e.Shr(1)
		if e.IsZero() {
			return r
		}
		z = z.Mul(z)
		if e.Lo&1 != 0 {
			r = r.Mul(z)
		}
	}
}

// Sin returns the sine: sin re cosh im + i cos re sinh im.
func (z Complex) Sin() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.Im.Sign() == 0 {
		return complexFromFloat(realSin(z.Re))
	}
	re := fmul(realSin(z.Re), realCosh(z.Im))
	im := fmul(realCos(z.Re), realSinh(z.Im))
	return scrubTiny(Complex{re, im})
}

// Cos returns the cosine: cos re cosh im - i sin re sinh im.
func (z Complex) Cos() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.Im.Sign() == 0 {
		return complexFromFloat(realCos(z.Re))
	}
	re := fmul(realCos(z.Re), realCosh(z.Im))
	im := fneg(fmul(realSin(z.Re), realSinh(z.Im)))
	return scrubTiny(Complex{re, im})
}

func (z Complex) Tan() Complex {
	return z.Sin().Div(z.Cos())
}

// Sinh returns the hyperbolic sine: sinh re cos im + i cosh re sin im.
func (z Complex) Sinh() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.Im.Sign() == 0 {
		return complexFromFloat(realSinh(z.Re))
	}
	re := fmul(realSinh(z.Re), realCos(z.Im))
	im := fmul(realCosh(z.Re), realSin(z.Im))
	return scrubTiny(Complex{re, im})
}

// Cosh returns the hyperbolic cosine: cosh re cos im + i sinh re sin im.
func (z Complex) Cosh() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.Im.Sign() == 0 {
		return complexFromFloat(realCosh(z.Re))
	}
	re := fmul(realCosh(z.Re), realCos(z.Im))
	im := fmul(realSinh(z.Re), realSin(z.Im))
	return scrubTiny(Complex{re, im})
}

func (z Complex) Tanh() Complex {
	return z.Sinh().Div(z.Cosh())
}

func imagUnit() Complex { return newComplex(newFloat(), floatFromInt64(1)) }

// Asin returns -i log(iz + sqrt(1 - z**2)).
func (z Complex) Asin() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	i := imagUnit()
	one := complexFromInt64(1)
	r := i.Mul(z).Add(one.Sub(z.Mul(z)).Sqrt()).Log().Mul(i.Neg())
	return scrubTiny(r)
}

// Acos returns pi/2 - asin z.
func (z Complex) Acos() Complex {
	halfPi := complexFromFloat(fquo(floatPi, floatFromInt64(2)))
	return scrubTiny(halfPi.Sub(z.Asin()))
}

// Atan returns (i/2) log((1 - iz)/(1 + iz)).
func (z Complex) Atan() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	if z.Im.Sign() == 0 {
		return complexFromFloat(realAtan(z.Re))
	}
	i := imagUnit()
	one := complexFromInt64(1)
	iz := i.Mul(z)
	r := one.Sub(iz).Div(one.Add(iz)).Log().Mul(i).Mul(complexFromFloat(newFloat().SetFloat64(0.5)))
	return scrubTiny(r)
}

// Asinh returns log(z + sqrt(z**2 + 1)).
func (z Complex) Asinh() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	one := complexFromInt64(1)
	return scrubTiny(z.Add(z.Mul(z).Add(one).Sqrt()).Log())
}

// Acosh returns log(z + sqrt(z+1) sqrt(z-1)).
func (z Complex) Acosh() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	one := complexFromInt64(1)
	return scrubTiny(z.Add(z.Add(one).Sqrt().Mul(z.Sub(one).Sqrt())).Log())
}

// Atanh returns log((1+z)/(1-z)) / 2.
func (z Complex) Atanh() Complex {
	if z.IsNaN() {
		return complexNaN()
	}
	one := complexFromInt64(1)
	half := complexFromFloat(newFloat().SetFloat64(0.5))
	return scrubTiny(one.Add(z).Div(one.Sub(z)).Log().Mul(half))
}
