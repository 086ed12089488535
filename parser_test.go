// parser_test.go
package ccalc

import (
	"errors"
	"testing"
)

func session(mod func(*Args)) *Parser {
	opts := NewArgs()
	if mod != nil {
		mod(&opts)
	}
	return NewParser(opts)
}

func evalVal(t *testing.T, p *Parser, input string) Value {
	t.Helper()
	res, err := p.Evaluate(input)
	if err != nil {
		t.Fatalf("%q: %v", input, err)
	}
	if !res.HasValue {
		t.Fatalf("%q: no value produced", input)
	}
	return res.Value
}

func evalFmt(t *testing.T, p *Parser, input string) string {
	t.Helper()
	val := evalVal(t, p, input)
	return NewOutputter(p.Options()).Format(val)
}

func evalErr(t *testing.T, p *Parser, input string) *CalcError {
	t.Helper()
	_, err := p.Evaluate(input)
	if err == nil {
		t.Fatalf("%q: unexpectedly succeeded", input)
	}
	var ce *CalcError
	if !errors.As(err, &ce) {
		t.Fatalf("%q: error %v is not a CalcError", input, err)
	}
	return ce
}

func Test_Parser_EndToEnd(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2+3*6", "20 (cplx base10)"},
		{"e^(i*pi)+1", "0 (cplx base10)"},
		{"@0du @w16 0xffff", "-1 (int base10)"},
		{"@ox 0xff & 0x0f", "f (uint base16)"},
		{"@w8 0xff + 1", "0 (int base10)"},
		{"1.0/0", "inf (cplx base10)"},
		{"@ox 1.0", "1p+0 (cplx base16)"},
		{"@pn @ox 255.0", "1.fep+7 (cplx base16)"},
		{"@pu @ox 255.0", "f.fp+4 (cplx base16)"},
		{"gamma(5)", "24 (cplx base10)"},
		{"5!", "120 (cplx base10)"},
		{"5!!", "15 (cplx base10)"},
	}
	for _, c := range cases {
		if got := evalFmt(t, session(nil), c.in); got != c.want {
			t.Fatalf("%q: got %q, want %q", c.in, got, c.want)
		}
	}
}

func Test_Parser_SinPi(t *testing.T) {
	z := evalVal(t, session(nil), "sin(pi)").Complex()
	if z.Im.Sign() != 0 {
		t.Fatalf("imag: got %v, want 0", z.Im)
	}
	if fabs(z.Re).Cmp(mustParseFloat("1e-30")) >= 0 {
		t.Fatalf("real: got %v, want magnitude below 1e-30", z.Re)
	}
}

func Test_Parser_Precedence(t *testing.T) {
	p := session(nil)
	// unary minus binds looser than ** unless folded into the literal
	if got := evalFmt(t, p, "-2**2"); got != "-4 (cplx base10)" {
		t.Fatalf("-2**2: got %q", got)
	}
	if got := evalFmt(t, p, "(-2)**2"); got != "4 (cplx base10)" {
		t.Fatalf("(-2)**2: got %q", got)
	}
	// exponentiation is right-associative
	if got := evalFmt(t, p, "2**3**2"); got != "512 (cplx base10)" {
		t.Fatalf("2**3**2: got %q", got)
	}
	// shifts bind looser than addition
	if got := evalFmt(t, p, "1+2<<3"); got != "24 (int base10)" {
		t.Fatalf("1+2<<3: got %q", got)
	}
}

func Test_Parser_Juxtaposition(t *testing.T) {
	p := session(nil)
	if got := evalFmt(t, p, "2 3"); got != "6 (cplx base10)" {
		t.Fatalf("2 3: got %q", got)
	}
	if got := evalFmt(t, p, "3(2+1)"); got != "9 (cplx base10)" {
		t.Fatalf("3(2+1): got %q", got)
	}
	if got := evalFmt(t, p, "2i"); got != "2i (cplx base10)" {
		t.Fatalf("2i: got %q", got)
	}
	if got := evalFmt(t, p, "2cos(0)"); got != "2 (cplx base10)" {
		t.Fatalf("2cos(0): got %q", got)
	}
	a := evalVal(t, p, "2pi").Complex()
	b := evalVal(t, p, "2*pi").Complex()
	if a.Im.Sign() != 0 || a.Re.Cmp(b.Re) != 0 {
		t.Fatalf("2pi: got %v, want %v", a, b)
	}
}

func Test_Parser_ShiftSaturation(t *testing.T) {
	w16 := func(a *Args) { a.IntWordSize = 16 }
	p := session(w16)
	if got := evalFmt(t, p, "1<<20"); got != "0 (int base10)" {
		t.Fatalf("1<<20: got %q", got)
	}
	if got := evalFmt(t, p, "-1>>20"); got != "-1 (int base10)" {
		t.Fatalf("-1>>20: got %q", got)
	}
	if got := evalFmt(t, p, "3>>20"); got != "0 (int base10)" {
		t.Fatalf("3>>20: got %q", got)
	}
	if got := evalFmt(t, p, "3>>1"); got != "1 (int base10)" {
		t.Fatalf("3>>1: got %q", got)
	}
}

func Test_Parser_Idempotence(t *testing.T) {
	p := session(nil)
	if got := evalFmt(t, p, "~~5"); got != "5 (int base10)" {
		t.Fatalf("~~5: got %q", got)
	}
	if got := evalFmt(t, p, "--5"); got != "5 (cplx base10)" {
		t.Fatalf("--5: got %q", got)
	}
}

func Test_Parser_Assignment(t *testing.T) {
	p := session(nil)
	if got := evalFmt(t, p, "x = 2+3"); got != "5 (cplx base10)" {
		t.Fatalf("x = 2+3: got %q", got)
	}
	if got := evalFmt(t, p, "x*2"); got != "10 (cplx base10)" {
		t.Fatalf("x*2: got %q", got)
	}
	if got := evalFmt(t, p, "x = 7"); got != "7 (cplx base10)" {
		t.Fatalf("x = 7: got %q", got)
	}

	// chained assignment binds every name on the way
	evalVal(t, p, "a = b = 2")
	if got := evalFmt(t, p, "a+b"); got != "4 (cplx base10)" {
		t.Fatalf("a+b: got %q", got)
	}
}

func Test_Parser_AssignmentShadowsInternals(t *testing.T) {
	p := session(nil)
	evalVal(t, p, "sin = 5")
	// the user binding wins, and the call form becomes a juxtaposed product
	if got := evalFmt(t, p, "sin(2)"); got != "10 (cplx base10)" {
		t.Fatalf("sin(2) shadowed: got %q", got)
	}
	res, err := p.Evaluate("delete sin")
	if err != nil || res.HasValue {
		t.Fatalf("delete sin: got %v, %v", res, err)
	}
	if got := evalFmt(t, p, "sin(0)"); got != "0 (cplx base10)" {
		t.Fatalf("sin(0) after delete: got %q", got)
	}
}

func Test_Parser_Delete(t *testing.T) {
	p := session(nil)
	evalVal(t, p, "x = 1")
	res, err := p.Evaluate("delete x")
	if err != nil || res.HasValue {
		t.Fatalf("delete x: got %v, %v", res, err)
	}
	if kind := evalErr(t, p, "x").Kind; kind != UndefinedIdentifier {
		t.Fatalf("x after delete: got kind %v", kind)
	}
	if kind := evalErr(t, p, "delete pi").Kind; kind != CantDeleteInternal {
		t.Fatalf("delete pi: got kind %v", kind)
	}
	if kind := evalErr(t, p, "delete cos").Kind; kind != CantDeleteInternal {
		t.Fatalf("delete cos: got kind %v", kind)
	}
	if kind := evalErr(t, p, "delete nosuch").Kind; kind != UndefinedIdentifier {
		t.Fatalf("delete nosuch: got kind %v", kind)
	}
	if kind := evalErr(t, p, "delete 5").Kind; kind != VariableIdentifierExpected {
		t.Fatalf("delete 5: got kind %v", kind)
	}
}

func Test_Parser_Last(t *testing.T) {
	p := session(nil)
	if got := evalFmt(t, p, "last"); got != "nan (cplx base10)" {
		t.Fatalf("fresh last: got %q", got)
	}
	evalVal(t, p, "2+2")
	if got := evalFmt(t, p, "last*2"); got != "8 (cplx base10)" {
		t.Fatalf("last*2: got %q", got)
	}
	// a failed expression leaves last untouched; note last*2 updated it
	evalErr(t, p, "@0du 1/0")
	if got := evalFmt(t, p, "last"); got != "8 (cplx base10)" {
		t.Fatalf("last after error: got %q", got)
	}
}

func Test_Parser_AtomicAssignment(t *testing.T) {
	p := session(nil)
	if kind := evalErr(t, p, "@0du z = 1/0").Kind; kind != IntegerDivisionBy0 {
		t.Fatalf("z = 1/0: got kind %v", kind)
	}
	if kind := evalErr(t, p, "z").Kind; kind != UndefinedIdentifier {
		t.Fatalf("z after failed assignment: got kind %v", kind)
	}
}

func Test_Parser_Options(t *testing.T) {
	p := session(nil)
	res, err := p.Evaluate("@ox @0d")
	if err != nil || res.HasValue {
		t.Fatalf("options-only line: got %v, %v", res, err)
	}
	// the applied options persist across lines
	if got := evalFmt(t, p, "255"); got != "ff (int base16)" {
		t.Fatalf("255 after @ox @0d: got %q", got)
	}
	// a default radix change retargets literals later in the same line
	if got := evalFmt(t, session(nil), "@0x 0ff"); got != "255 (int base10)" {
		t.Fatalf("@0x 0ff: got %q", got)
	}

	if kind := evalErr(t, session(nil), "@w16 @w32 1").Kind; kind != TooManyOptions {
		t.Fatalf("@w16 @w32: got kind %v", kind)
	}
	if kind := evalErr(t, session(nil), "@zz 1").Kind; kind != InvalidOption {
		t.Fatalf("@zz: got kind %v", kind)
	}
	if kind := evalErr(t, session(nil), "1+1 @ox").Kind; kind != OptionMustPrefaceMathExpr {
		t.Fatalf("trailing option: got kind %v", kind)
	}
}

func Test_Parser_OptionsPersistAcrossError(t *testing.T) {
	p := session(nil)
	evalErr(t, p, "@ox )")
	// the option run was applied before the expression failed
	if got := evalFmt(t, p, "255.0"); got != "1.fep+7 (cplx base16)" {
		t.Fatalf("255.0 after failed line: got %q", got)
	}
}

func Test_Parser_Help(t *testing.T) {
	p := session(nil)
	res, err := p.Evaluate("help")
	if err != nil || !res.HelpRequested || res.HasValue {
		t.Fatalf("help: got %v, %v", res, err)
	}
	res, err = p.Evaluate("@@help 2")
	if err != nil || !res.HelpRequested || !res.HasValue {
		t.Fatalf("@@help 2: got %v, %v", res, err)
	}
	if kind := evalErr(t, p, "2+help").Kind; kind != HelpInvalidHere {
		t.Fatalf("2+help: got kind %v", kind)
	}
}

func Test_Parser_ErrorKinds(t *testing.T) {
	cases := []struct {
		in   string
		kind ErrorKind
	}{
		{"2+", UnexpectedEndOfInput},
		{")", SyntaxError},
		{"sin 5", FunctionArgExpected},
		{"5!!!", MfacUnsupported},
		{"1.5 % 2", InvalidLeftOperand},
		{"2 ^| 1.5", InvalidRightOperand},
		{"2i & 1", InvalidLeftOperand},
		{"1 << -1", NegativeShiftInvalid},
		{"~i", InvalidOperand},
		{"i!", OpDomainRealOnly},
	}
	for _, c := range cases {
		if got := evalErr(t, session(nil), c.in).Kind; got != c.kind {
			t.Fatalf("%q: got kind %v, want %v", c.in, got, c.kind)
		}
	}

	ce := evalErr(t, session(nil), "(2")
	if ce.Kind != TokenExpected || ce.ExpectedID != RPAREN {
		t.Fatalf("(2: got kind %v, expected id %v", ce.Kind, ce.ExpectedID)
	}
}

func Test_Parser_UndefinedIdentifierHint(t *testing.T) {
	ce := evalErr(t, session(nil), "pii")
	if ce.Kind != UndefinedIdentifier || ce.Hint != "pi" {
		t.Fatalf("pii: got kind %v, hint %q", ce.Kind, ce.Hint)
	}
	ce = evalErr(t, session(nil), "zzqqxx")
	if ce.Kind != UndefinedIdentifier || ce.Hint != "" {
		t.Fatalf("zzqqxx: got kind %v, hint %q", ce.Kind, ce.Hint)
	}
}
