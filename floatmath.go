// floatmath.go: real elementary functions over *big.Float
//
// What this file does
// -------------------
// The calculator's floating point type is *big.Float at a fixed working
// precision (floatPrec). This file supplies the real-valued building blocks
// that the complex layer (complex.go, complex_extras.go) composes:
//
//   - guarded wrappers around ALTree/bigfloat's Exp, Log, Pow and Sqrt
//   - sine/cosine/tangent by Taylor series with argument reduction
//   - arctangent (halving transform) and atan2
//   - hyperbolic sine/cosine
//   - shared constants: pi, e, ln 2, ln 10
//
// NaN convention
// --------------
// big.Float has no NaN; operations that would produce one panic with
// big.ErrNaN instead. Throughout this package a nil *big.Float stands for
// NaN: every function here accepts nil inputs and returns nil results, and
// catchNaN converts a big.ErrNaN panic into a nil return. Infinities are
// ordinary big.Float values and flow through normally.
package ccalc

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// floatPrec is the working mantissa precision in bits. 256 bits give about
// 77 significant decimal digits; results are displayed at far fewer, so the
// guard digits absorb rounding in the transcendental series.
const floatPrec = 256

const (
	piStr   = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798214808651"
	eStr    = "2.71828182845904523536028747135266249775724709369995957496696762772407663035354759457138217852516642742746639193"
	ln2Str  = "0.693147180559945309417232121458176568075500134360255254120680009493393621969694715605863326996418687542001481021"
	ln10Str = "2.30258509299404568401799145468436420760110148862877297603332790096757260967735248023599720508959829834196778404"
)

var (
	floatPi   = mustParseFloat(piStr)
	floatE    = mustParseFloat(eStr)
	floatLn2  = mustParseFloat(ln2Str)
	floatLn10 = mustParseFloat(ln10Str)
)

func mustParseFloat(s string) *big.Float {
	f, _, err := big.ParseFloat(s, 10, floatPrec, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return f
}

// newFloat returns a zero *big.Float at the working precision.
func newFloat() *big.Float {
	return new(big.Float).SetPrec(floatPrec)
}

func floatFromInt64(v int64) *big.Float {
	return newFloat().SetInt64(v)
}

// catchNaN runs f and converts a big.ErrNaN panic into a nil result.
func catchNaN(f func() *big.Float) (res *big.Float) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); ok {
				res = nil
				return
			}
			panic(r)
		}
	}()
	return f()
}

// fadd, fsub, fmul, fquo are the wrapping arithmetic helpers. They allocate
// the result, propagate nil, and map big.ErrNaN (inf-inf, 0*inf, 0/0,
// inf/inf) to nil.
func fadd(x, y *big.Float) *big.Float {
	if x == nil || y == nil {
		return nil
	}
	return catchNaN(func() *big.Float { return newFloat().Add(x, y) })
}

func fsub(x, y *big.Float) *big.Float {
	if x == nil || y == nil {
		return nil
	}
	return catchNaN(func() *big.Float { return newFloat().Sub(x, y) })
}

func fmul(x, y *big.Float) *big.Float {
	if x == nil || y == nil {
		return nil
	}
	return catchNaN(func() *big.Float { return newFloat().Mul(x, y) })
}

func fquo(x, y *big.Float) *big.Float {
	if x == nil || y == nil {
		return nil
	}
	return catchNaN(func() *big.Float { return newFloat().Quo(x, y) })
}

func fneg(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	return newFloat().Neg(x)
}

func fabs(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	return newFloat().Abs(x)
}

// realExp returns e**x.
func realExp(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	if x.IsInf() {
		if x.Signbit() {
			return newFloat() // e**-inf = 0
		}
		return newFloat().SetInf(false)
	}
	return bigfloat.Exp(x)
}

// realLog returns the natural logarithm of x for x >= 0; nil for negative x.
func realLog(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	if x.Sign() < 0 {
		return nil
	}
	if x.Sign() == 0 {
		return newFloat().SetInf(true)
	}
	if x.IsInf() {
		return newFloat().SetInf(false)
	}
	return bigfloat.Log(x)
}

// realSqrt returns the square root of x for x >= 0; nil for negative x.
func realSqrt(x *big.Float) *big.Float {
	if x == nil || x.Sign() < 0 {
		return nil
	}
	if x.Sign() == 0 || x.IsInf() {
		return newFloat().Set(x)
	}
	return bigfloat.Sqrt(x)
}

// realPow returns x**y for positive finite x.
func realPow(x, y *big.Float) *big.Float {
	if x == nil || y == nil {
		return nil
	}
	return catchNaN(func() *big.Float { return bigfloat.Pow(x, y) })
}

// converged reports whether term no longer contributes to sum at the
// working precision.
func converged(sum, term *big.Float) bool {
	if term.Sign() == 0 {
		return true
	}
	se := sum.MantExp(nil)
	te := term.MantExp(nil)
	return se-te > floatPrec+8
}

// reduceTwoPi returns x reduced into [0, 2*pi).
func reduceTwoPi(x *big.Float) *big.Float {
	twoPi := newFloat().Mul(floatPi, floatFromInt64(2))
	q := newFloat().Quo(x, twoPi)
	n, _ := q.Int(nil)
	r := newFloat().Sub(x, newFloat().Mul(twoPi, newFloat().SetInt(n)))
	if r.Sign() < 0 {
		r.Add(r, twoPi)
	}
	return r
}

// sinCosSeries sums x**start/start! * (1 -+ x**2 terms...), the shared
// Taylor loop for sine (start=1) and cosine (start=0).
func sinCosSeries(x *big.Float, start int64) *big.Float {
	x2 := newFloat().Mul(x, x)
	term := newFloat().SetInt64(1)
	for i := int64(1); i <= start; i++ {
		term.Quo(newFloat().Mul(term, x), floatFromInt64(i))
	}
	sum := newFloat().Set(term)
	for n := start + 2; ; n += 2 {
		term = newFloat().Neg(term)
		term.Mul(term, x2)
		term.Quo(term, floatFromInt64(n*(n-1)))
		sum.Add(sum, term)
		if converged(sum, term) {
			return sum
		}
	}
}

// quadrantExact returns exact sine and cosine when the reduced argument
// lands bit-for-bit on a quadrant boundary of the stored pi. Arguments
// built from the pi constant hit these exactly, so sin(pi) is 0 rather
// than series rounding noise.
func quadrantExact(r *big.Float) (sin, cos *big.Float, ok bool) {
	halfPi := newFloat().Quo(floatPi, floatFromInt64(2))
	switch {
	case r.Sign() == 0:
		return newFloat(), floatFromInt64(1), true
	case r.Cmp(halfPi) == 0:
		return floatFromInt64(1), newFloat(), true
	case r.Cmp(floatPi) == 0:
		return newFloat(), floatFromInt64(-1), true
	case r.Cmp(newFloat().Add(floatPi, halfPi)) == 0:
		return floatFromInt64(-1), newFloat(), true
	}
	return nil, nil, false
}

// realSin returns sin x; nil for infinite x.
func realSin(x *big.Float) *big.Float {
	if x == nil || x.IsInf() {
		return nil
	}
	if x.Sign() == 0 {
		return newFloat().Set(x) // preserves -0
	}
	r := reduceTwoPi(x)
	if s, _, ok := quadrantExact(r); ok {
		return s
	}
	return sinCosSeries(r, 1)
}

// realCos returns cos x; nil for infinite x.
func realCos(x *big.Float) *big.Float {
	if x == nil || x.IsInf() {
		return nil
	}
	r := reduceTwoPi(x)
	if _, c, ok := quadrantExact(r); ok {
		return c
	}
	return sinCosSeries(r, 0)
}

func realTan(x *big.Float) *big.Float {
	return fquo(realSin(x), realCos(x))
}

// realAtan returns arctan x in (-pi/2, pi/2).
func realAtan(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	if x.Signbit() {
		return fneg(realAtan(fneg(x)))
	}
	if x.IsInf() {
		return newFloat().Quo(floatPi, floatFromInt64(2))
	}
	one := floatFromInt64(1)
	if x.Cmp(one) > 0 {
		// atan x = pi/2 - atan 1/x
		halfPi := newFloat().Quo(floatPi, floatFromInt64(2))
		return newFloat().Sub(halfPi, realAtan(newFloat().Quo(one, x)))
	}
	// Halve the argument until the series converges quickly:
	// atan x = 2 atan(x / (1 + sqrt(1 + x**2))).
	y := newFloat().Set(x)
	doublings := 0
	small := newFloat().SetFloat64(0.125)
	for y.Cmp(small) > 0 {
		y2 := newFloat().Mul(y, y)
		d := realSqrt(newFloat().Add(one, y2))
		d.Add(d, one)
		y.Quo(y, d)
		doublings++
	}
	// atan y = y - y**3/3 + y**5/5 - ...
	y2 := newFloat().Mul(y, y)
	pow := newFloat().Set(y)
	sum := newFloat().Set(y)
	for n := int64(3); ; n += 2 {
		pow.Mul(pow, y2)
		pow.Neg(pow)
		term := newFloat().Quo(pow, floatFromInt64(n))
		sum.Add(sum, term)
		if converged(sum, term) {
			break
		}
	}
	for ; doublings > 0; doublings-- {
		sum.Add(sum, sum)
	}
	return sum
}

// realAtan2 returns the angle of the point (x, y) in (-pi, pi].
func realAtan2(y, x *big.Float) *big.Float {
	if y == nil || x == nil {
		return nil
	}
	switch {
	case x.Sign() > 0:
		if x.IsInf() {
			if y.IsInf() {
				q := newFloat().Quo(floatPi, floatFromInt64(4))
				if y.Signbit() {
					q.Neg(q)
				}
				return q
			}
			z := newFloat()
			if y.Signbit() {
				z.Neg(z)
			}
			return z
		}
		return realAtan(newFloat().Quo(y, x))
	case x.Sign() < 0:
		var mag *big.Float
		switch {
		case x.IsInf() && y.IsInf():
			mag = newFloat().Mul(floatPi, newFloat().SetFloat64(0.75))
		case x.IsInf():
			mag = newFloat().Set(floatPi)
		default:
			// atan(|y|/x) is in (-pi/2, 0]; adding pi lands in (pi/2, pi].
			mag = newFloat().Add(realAtan(newFloat().Quo(fabs(y), x)), floatPi)
		}
		if y.Signbit() {
			return mag.Neg(mag)
		}
		return mag
	default: // x == 0
		if y.Sign() == 0 {
			if x.Signbit() {
				z := newFloat().Set(floatPi)
				if y.Signbit() {
					z.Neg(z)
				}
				return z
			}
			z := newFloat()
			if y.Signbit() {
				z.Neg(z)
			}
			return z
		}
		half := newFloat().Quo(floatPi, floatFromInt64(2))
		if y.Sign() < 0 {
			half.Neg(half)
		}
		return half
	}
}

// realSinh returns (e**x - e**-x)/2.
func realSinh(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	if x.IsInf() {
		return newFloat().Set(x)
	}
	ex := realExp(x)
	enx := realExp(fneg(x))
	return fquo(fsub(ex, enx), floatFromInt64(2))
}

// realCosh returns (e**x + e**-x)/2.
func realCosh(x *big.Float) *big.Float {
	if x == nil {
		return nil
	}
	if x.IsInf() {
		return newFloat().SetInf(false)
	}
	ex := realExp(x)
	enx := realExp(fneg(x))
	return fquo(fadd(ex, enx), floatFromInt64(2))
}

// isWholeFloat reports whether x is a finite whole number.
func isWholeFloat(x *big.Float) bool {
	if x == nil || x.IsInf() {
		return false
	}
	_, acc := x.Int(nil)
	return acc == big.Exact
}
