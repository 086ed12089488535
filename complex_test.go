// complex_test.go
package ccalc

import (
	"math/big"
	"testing"
)

var testEps = mustParseFloat("1e-60")

// near fails unless got is within 1e-60 of want, scaled by want's magnitude.
func near(t *testing.T, want, got *big.Float) {
	t.Helper()
	if got == nil {
		t.Fatalf("got NaN, want %v", want)
	}
	tol := fmul(fadd(fabs(want), floatFromInt64(1)), testEps)
	if fabs(fsub(got, want)).Cmp(tol) > 0 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func nearZ(t *testing.T, wantRe, wantIm *big.Float, got Complex) {
	t.Helper()
	if got.IsNaN() {
		t.Fatalf("got NaN, want (%v, %v)", wantRe, wantIm)
	}
	near(t, wantRe, got.Re)
	near(t, wantIm, got.Im)
}

func cplx(re, im string) Complex {
	return newComplex(mustParseFloat(re), mustParseFloat(im))
}

func Test_Complex_Arithmetic(t *testing.T) {
	p := cplx("1", "2").Mul(cplx("3", "4"))
	nearZ(t, floatFromInt64(-5), floatFromInt64(10), p)

	q := p.Div(cplx("3", "4"))
	nearZ(t, floatFromInt64(1), floatFromInt64(2), q)

	nearZ(t, floatFromInt64(1), floatFromInt64(-2), q.Conj())
	nearZ(t, floatFromInt64(-1), floatFromInt64(-2), q.Neg())
	nearZ(t, floatFromInt64(4), floatFromInt64(6), cplx("1", "2").Add(cplx("3", "4")))
	nearZ(t, floatFromInt64(-2), floatFromInt64(-2), cplx("1", "2").Sub(cplx("3", "4")))
}

func Test_Complex_DivByZero(t *testing.T) {
	r := cplx("1", "0").Div(cplx("0", "0"))
	if !r.IsInf() {
		t.Fatalf("1/0 = %v, want inf", r)
	}
	if !cplx("0", "0").Div(cplx("0", "0")).IsNaN() {
		t.Fatal("0/0 should be NaN")
	}
	inf := complexInf()
	if !inf.Div(cplx("2", "0")).IsInf() {
		t.Fatal("inf/2 should be inf")
	}
}

func Test_Complex_ExpLog(t *testing.T) {
	near(t, floatFromInt64(1), cplx("0", "0").Exp().Re)

	z := cplx("0.5", "0.25")
	nearZ(t, z.Re, z.Im, z.Exp().Log())

	// the branch cut maps the negative real axis to imaginary part +pi
	l := cplx("-1", "0").Log()
	if l.Re.Sign() != 0 || l.Im.Cmp(floatPi) != 0 {
		t.Fatalf("log(-1) = %v, want i*pi", l)
	}

	if !cplx("0", "0").Log().Re.IsInf() {
		t.Fatal("log(0) should be -inf")
	}

	near(t, floatFromInt64(3), cplx("8", "0").Log2().Re)
	near(t, floatFromInt64(3), cplx("1000", "0").Log10().Re)
}

func Test_Complex_SqrtCbrt(t *testing.T) {
	nearZ(t, floatFromInt64(3), newFloat(), cplx("9", "0").Sqrt())
	nearZ(t, newFloat(), floatFromInt64(2), cplx("-4", "0").Sqrt())
	nearZ(t, floatFromInt64(1), floatFromInt64(1), cplx("0", "2").Sqrt())
	nearZ(t, floatFromInt64(1), floatFromInt64(-1), cplx("0", "-2").Sqrt())

	near(t, floatFromInt64(-2), cplx("-8", "0").Cbrt().Re)
	near(t, floatFromInt64(3), cplx("27", "0").Cbrt().Re)
	// principal value: cbrt(8i) = 2 e**(i pi/6)
	nearZ(t, realSqrt(floatFromInt64(3)), floatFromInt64(1), cplx("0", "8").Cbrt())
}

func Test_Complex_PowWhole(t *testing.T) {
	r := cplx("-2", "0").Pow(cplx("3", "0"))
	if r.Re.Cmp(floatFromInt64(-8)) != 0 || r.Im.Sign() != 0 {
		t.Fatalf("(-2)**3 = %v, want exactly -8", r)
	}
	near(t, mustParseFloat("0.25"), cplx("2", "0").Pow(cplx("-2", "0")).Re)
	nearZ(t, floatFromInt64(-4), newFloat(), cplx("1", "1").Pow(cplx("4", "0")))

	near(t, floatFromInt64(1), cplx("0", "0").Pow(cplx("0", "0")).Re)
	if !cplx("0", "0").Pow(cplx("-1", "0")).IsInf() {
		t.Fatal("0**-1 should be inf")
	}
}

func Test_Complex_PowGeneral(t *testing.T) {
	near(t, realSqrt(floatFromInt64(2)), cplx("2", "0").Pow(cplx("0.5", "0")).Re)

	// i**i is real: e**(-pi/2)
	r := cplx("0", "1").Pow(cplx("0", "1"))
	nearZ(t, realExp(fneg(fquo(floatPi, floatFromInt64(2)))), newFloat(), r)
}

func Test_Complex_TrigQuadrants(t *testing.T) {
	pi := complexFromFloat(newFloat().Set(floatPi))
	halfPi := complexFromFloat(fquo(floatPi, floatFromInt64(2)))
	twoPi := complexFromFloat(fmul(floatPi, floatFromInt64(2)))

	if s := pi.Sin(); s.Re.Sign() != 0 {
		t.Fatalf("sin(pi) = %v, want exactly 0", s)
	}
	if c := pi.Cos(); c.Re.Cmp(floatFromInt64(-1)) != 0 {
		t.Fatalf("cos(pi) = %v, want exactly -1", c)
	}
	if s := halfPi.Sin(); s.Re.Cmp(floatFromInt64(1)) != 0 {
		t.Fatalf("sin(pi/2) = %v, want exactly 1", s)
	}
	if c := twoPi.Cos(); c.Re.Cmp(floatFromInt64(1)) != 0 {
		t.Fatalf("cos(2pi) = %v, want exactly 1", c)
	}
	if s := halfPi.Neg().Sin(); s.Re.Cmp(floatFromInt64(-1)) != 0 {
		t.Fatalf("sin(-pi/2) = %v, want exactly -1", s)
	}
}

func Test_Complex_Trig(t *testing.T) {
	x := cplx("0.7", "0")
	s, c := x.Sin(), x.Cos()
	near(t, floatFromInt64(1), fadd(fmul(s.Re, s.Re), fmul(c.Re, c.Re)))

	quarterPi := complexFromFloat(fquo(floatPi, floatFromInt64(4)))
	near(t, floatFromInt64(1), quarterPi.Tan().Re)

	// sin(i) = i sinh 1
	nearZ(t, newFloat(), realSinh(floatFromInt64(1)), cplx("0", "1").Sin())
}

func Test_Complex_InverseTrig(t *testing.T) {
	near(t, fquo(floatPi, floatFromInt64(4)), cplx("1", "0").Atan().Re)
	near(t, fquo(floatPi, floatFromInt64(2)), cplx("0", "0").Acos().Re)

	z := cplx("0.3", "0.4")
	nearZ(t, z.Re, z.Im, z.Asin().Sin())
	nearZ(t, z.Re, z.Im, z.Acosh().Cosh())
	near(t, mustParseFloat("0.5"), cplx("0.5", "0").Tanh().Atanh().Re)
	near(t, mustParseFloat("0.5"), cplx("0.5", "0").Sinh().Asinh().Re)
}

func Test_Complex_Hyperbolic(t *testing.T) {
	near(t, floatFromInt64(1), cplx("0", "0").Cosh().Re)

	x := cplx("0.5", "0")
	s, c := x.Sinh(), x.Cosh()
	near(t, floatFromInt64(1), fsub(fmul(c.Re, c.Re), fmul(s.Re, s.Re)))

	// sinh(i pi) = i sin(pi) = 0 exactly
	z := complexFromFloat(newFloat().Set(floatPi)).Mul(cplx("0", "1")).Sinh()
	if !z.IsZero() {
		t.Fatalf("sinh(i*pi) = %v, want 0", z)
	}
}

func Test_Complex_GammaReal(t *testing.T) {
	// whole positive arguments are exact
	if g := cplx("5", "0").Tgamma(); g.Re.Cmp(floatFromInt64(24)) != 0 {
		t.Fatalf("gamma(5) = %v, want exactly 24", g)
	}
	if g := cplx("1", "0").Tgamma(); g.Re.Cmp(floatFromInt64(1)) != 0 {
		t.Fatalf("gamma(1) = %v, want exactly 1", g)
	}

	if !cplx("0", "0").Tgamma().IsInf() {
		t.Fatal("gamma(0) should be a pole")
	}
	if !cplx("-3", "0").Tgamma().IsInf() {
		t.Fatal("gamma(-3) should be a pole")
	}

	sqrtPi := realSqrt(newFloat().Set(floatPi))
	near(t, sqrtPi, cplx("0.5", "0").Tgamma().Re)
	near(t, fneg(fmul(floatFromInt64(2), sqrtPi)), cplx("-0.5", "0").Tgamma().Re)
}

// coarseNear allows for the fixed-order Lanczos error on non-real arguments.
func coarseNear(t *testing.T, want string, got *big.Float) {
	t.Helper()
	w := mustParseFloat(want)
	if got == nil || fabs(fsub(got, w)).Cmp(mustParseFloat("1e-12")) > 0 {
		t.Fatalf("got %v, want %s", got, want)
	}
}

func Test_Complex_GammaComplex(t *testing.T) {
	g := cplx("1", "1").Tgamma()
	coarseNear(t, "0.498015668118356042713691117462", g.Re)
	coarseNear(t, "-0.154949828301810685124955130051", g.Im)

	// recurrence gamma(z+1) = z gamma(z), crossing the reflection boundary
	z := cplx("0.25", "0.5")
	lhs := z.Add(complexFromInt64(1)).Tgamma()
	rhs := z.Mul(z.Tgamma())
	d := fadd(fabs(fsub(lhs.Re, rhs.Re)), fabs(fsub(lhs.Im, rhs.Im)))
	if d.Cmp(mustParseFloat("1e-12")) > 0 {
		t.Fatalf("gamma recurrence off by %v at %v", d, z)
	}
}

func Test_Complex_Lgamma(t *testing.T) {
	near(t, realLog(floatFromInt64(24)), cplx("5", "0").Lgamma().Re)

	// gamma(-0.5) is negative, so its log gains an i*pi
	l := cplx("-0.5", "0").Lgamma()
	if l.Im.Cmp(floatPi) != 0 {
		t.Fatalf("lgamma(-0.5) imag = %v, want pi", l.Im)
	}
	near(t, realLog(fmul(floatFromInt64(2), realSqrt(newFloat().Set(floatPi)))), l.Re)

	if !cplx("0", "0").Lgamma().IsInf() {
		t.Fatal("lgamma(0) should be a pole")
	}
}

func Test_Complex_Dfac(t *testing.T) {
	near(t, floatFromInt64(15), cplx("5", "0").Dfac().Re)
	near(t, floatFromInt64(48), cplx("6", "0").Dfac().Re)
	near(t, floatFromInt64(105), cplx("7", "0").Dfac().Re)
	near(t, floatFromInt64(1), cplx("0", "0").Dfac().Re)
	near(t, floatFromInt64(1), cplx("-1", "0").Dfac().Re)
}

func Test_Complex_ScrubTiny(t *testing.T) {
	r := scrubTiny(Complex{mustParseFloat("1e-100"), floatFromInt64(1)})
	if r.Re.Sign() != 0 {
		t.Fatalf("tiny real part survived: %v", r)
	}
	r = scrubTiny(Complex{floatFromInt64(1), mustParseFloat("1e-100")})
	if r.Im.Sign() != 0 {
		t.Fatalf("tiny imaginary part survived: %v", r)
	}

	// plain lopsided values are not transcendental noise
	r = scrubTiny(Complex{mustParseFloat("1e-10"), floatFromInt64(1)})
	if r.Re.Sign() == 0 {
		t.Fatal("1e-10 scrubbed but is well above the noise floor")
	}

	// exp(i*pi) is exactly -1
	e := cplx("0", "1").Mul(complexFromFloat(newFloat().Set(floatPi))).Exp()
	if e.Re.Cmp(floatFromInt64(-1)) != 0 || e.Im.Sign() != 0 {
		t.Fatalf("exp(i*pi) = %v, want exactly -1", e)
	}
}

func Test_Complex_ArgNormProj(t *testing.T) {
	if a := cplx("0", "1").Arg(); a.Re.Cmp(fquo(floatPi, floatFromInt64(2))) != 0 {
		t.Fatalf("arg(i) = %v, want pi/2", a)
	}
	if a := cplx("-1", "0").Arg(); a.Re.Cmp(floatPi) != 0 {
		t.Fatalf("arg(-1) = %v, want pi", a)
	}
	near(t, fneg(fquo(floatPi, floatFromInt64(4))), cplx("1", "-1").Arg().Re)

	near(t, floatFromInt64(25), cplx("3", "4").Norm().Re)
	near(t, floatFromInt64(5), cplx("3", "4").Abs())

	p := Complex{newFloat().SetInf(false), floatFromInt64(5)}.Proj()
	if !p.Re.IsInf() || p.Im.Sign() != 0 {
		t.Fatalf("proj(inf+5i) = %v, want the point at infinity", p)
	}
	finite := cplx("3", "4")
	if got := finite.Proj(); got.Re.Cmp(finite.Re) != 0 || got.Im.Cmp(finite.Im) != 0 {
		t.Fatal("proj should pass finite values through")
	}
}
