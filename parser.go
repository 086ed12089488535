// parser.go: recursive descent parser and evaluator
//
// What this file does
// -------------------
// The parser is value-producing: no syntax tree is built, each production
// evaluates as it parses and returns a Value. One Parser instance holds the
// session state: the options record, the variable table and the last
// successful result. Evaluate drives one input line:
//
//	input ::= "help" end
//	        | { option } [ "delete" ident end | math_expr end ]
//
// Leading options are interpreted and applied as soon as the option run
// ends, including retargeting the lexer's default radix for tokens not yet
// scanned; applied options persist even when the rest of the line fails.
// The last value and variable bindings commit only on success of the
// expression that produces them.
//
// The binary operator tiers live here; the per-operator value semantics
// live in parser_ops.go.
package ccalc

import "github.com/lithammer/fuzzysearch/fuzzy"

type variable struct {
	name string
	val  Value
}

type unaryFnEntry struct {
	name string
	fn   func(Complex) Complex
}

// unaryFnTable: simple unordered slice; small enough that linear search is
// adequate.
var unaryFnTable = []unaryFnEntry{
	{"exp", Complex.Exp}, // exp(n) is e raised to the power of n
	{"ln", Complex.Log},  // natural (base e) log
	{"log10", Complex.Log10},
	{"log2", Complex.Log2},
	{"sqrt", Complex.Sqrt},
	{"cbrt", Complex.Cbrt},
	{"sin", Complex.Sin},
	{"cos", Complex.Cos},
	{"tan", Complex.Tan},
	{"asin", Complex.Asin},
	{"acos", Complex.Acos},
	{"atan", Complex.Atan},
	{"sinh", Complex.Sinh},
	{"cosh", Complex.Cosh},
	{"tanh", Complex.Tanh},
	{"asinh", Complex.Asinh},
	{"acosh", Complex.Acosh},
	{"atanh", Complex.Atanh},
	{"gamma", Complex.Tgamma},
	{"lgamma", Complex.Lgamma},
	{"arg", Complex.Arg},   // phase angle
	{"norm", Complex.Norm}, // squared magnitude
	{"conj", Complex.Conj},
	{"proj", Complex.Proj}, // projection onto the Riemann sphere
}

func lookupUnaryFn(name string) (func(Complex) Complex, bool) {
	for _, e := range unaryFnTable {
		if e.name == name {
			return e.fn, true
		}
	}
	return nil, false
}

var internalValueNames = []string{"pi", "e", "i", "last"}

// Parser evaluates input lines and carries the session state between them.
type Parser struct {
	opts    Args
	lastVal Value
	vars    []variable
	// vars: simple unordered slice; should be small enough that linear
	// search will be adequate
}

// NewParser returns a parser seeded with the given options (typically the
// interpreted command line args, or NewArgs for the defaults).
func NewParser(opts Args) *Parser {
	return &Parser{opts: opts, lastVal: ComplexValue(complexNaN())}
}

// Options exposes the live session options; the output formatter reads the
// output radix, precision and normalization mode from here.
func (p *Parser) Options() *Args { return &p.opts }

// EvalResult is the outcome of one input line. HasValue is false for empty
// lines, options-only lines, help requests and deletes.
type EvalResult struct {
	Value         Value
	HasValue      bool
	HelpRequested bool
}

// Evaluate parses and evaluates one input line.
func (p *Parser) Evaluate(input string) (EvalResult, error) {
	lexer := newLookaheadLexer(input, p.opts.DefaultNumRadix)
	helpRequested := false

	if lexer.Peek().ID == HELP && lexer.Peek2().ID == END {
		return EvalResult{HelpRequested: true}, nil
	}

	if lexer.Peek().ID == OPTION {
		var args Args
		for {
			tok := lexer.Get()
			InterpretArg(tok.View, exprOptionCode, &args)
			if args.NOther > 0 {
				return EvalResult{}, newError(InvalidOption, tok)
			}
			if args.NDefault > 1 || args.NOutput > 1 || args.NWordSize > 1 ||
				args.NPrecision > 1 || args.NNormalized > 1 {
				return EvalResult{}, newError(TooManyOptions, tok)
			}
			// retarget before peeking, so the token after the option run is
			// scanned in the new default radix
			if args.NDefault > 0 {
				lexer.SetDefaultRadix(args.DefaultNumRadix)
			}
			if lexer.Peek().ID != OPTION {
				break
			}
		}
		helpRequested = args.NHelp > 0
		if args.NDefault > 0 {
			p.opts.DefaultNumTypeCode = args.DefaultNumTypeCode
			p.opts.DefaultNumRadix = args.DefaultNumRadix
			lexer.SetDefaultRadix(args.DefaultNumRadix)
		}
		if args.NOutput > 0 {
			p.opts.OutputRadix = args.OutputRadix
		}
		if args.NWordSize > 0 {
			p.opts.IntWordSize = args.IntWordSize
		}
		if args.NPrecision > 0 {
			p.opts.Precision = args.Precision
		}
		if args.NNormalized > 0 {
			p.opts.OutputFPNormalized = args.OutputFPNormalized
		}
	}

	if lexer.Peek().ID == DELETE {
		lexer.Get()
		identTok := lexer.Get()
		if identTok.ID != IDENTIFIER {
			return EvalResult{}, newError(VariableIdentifierExpected, identTok)
		}
		if tok := lexer.Get(); tok.ID != END {
			return EvalResult{}, newError(SyntaxError, tok)
		}
		if err := p.deleteVariable(identTok); err != nil {
			return EvalResult{}, err
		}
		return EvalResult{HelpRequested: helpRequested}, nil
	}

	if lexer.Peek().ID == END {
		return EvalResult{HelpRequested: helpRequested}, nil
	}

	val, err := p.mathExpr(lexer)
	if err != nil {
		return EvalResult{}, err
	}
	if lexer.Peek().ID == OPTION {
		return EvalResult{}, newError(OptionMustPrefaceMathExpr, lexer.Peek())
	}
	if tok := lexer.Get(); tok.ID != END {
		return EvalResult{}, newError(SyntaxError, tok)
	}

	p.lastVal = val
	return EvalResult{Value: val, HasValue: true, HelpRequested: helpRequested}, nil
}

func (p *Parser) deleteVariable(tok Token) error {
	name := tok.View
	for i := range p.vars {
		if p.vars[i].name == name {
			p.vars = append(p.vars[:i], p.vars[i+1:]...)
			return nil
		}
	}
	if _, ok := lookupUnaryFn(name); ok {
		return newError(CantDeleteInternal, tok)
	}
	for _, n := range internalValueNames {
		if n == name {
			return newError(CantDeleteInternal, tok)
		}
	}
	return p.undefinedIdentifier(tok)
}

// undefinedIdentifier builds the error with a "did you mean" candidate when
// a known name is close enough.
func (p *Parser) undefinedIdentifier(tok Token) *CalcError {
	err := newError(UndefinedIdentifier, tok)
	best := -1
	for _, name := range p.knownNames() {
		d := fuzzy.LevenshteinDistance(tok.View, name)
		if best < 0 || d < best {
			best = d
			err.Hint = name
		}
	}
	if best < 0 || best > 2 {
		err.Hint = ""
	}
	return err
}

func (p *Parser) knownNames() []string {
	names := make([]string, 0, len(p.vars)+len(unaryFnTable)+len(internalValueNames))
	for _, v := range p.vars {
		names = append(names, v.name)
	}
	for _, e := range unaryFnTable {
		names = append(names, e.name)
	}
	names = append(names, internalValueNames...)
	return names
}

func (p *Parser) internalValue(name string) (Value, bool) {
	switch name {
	case "pi":
		return ComplexValue(complexFromFloat(newFloat().Set(floatPi))), true
	case "e":
		return ComplexValue(complexFromFloat(newFloat().Set(floatE))), true
	case "i":
		return ComplexValue(imagUnit()), true
	case "last":
		return p.lastVal, true
	}
	return Value{}, false
}

// ----- productions -----

// mathExpr ::= bxorExpr { "|" bxorExpr }
func (p *Parser) mathExpr(lx *lookaheadLexer) (Value, error) {
	lval, err := p.bxorExpr(lx)
	if err != nil {
		return Value{}, err
	}
	for lx.Peek().ID == BOR {
		opTok := lx.Get()
		rval, err := p.bxorExpr(lx)
		if err != nil {
			return Value{}, err
		}
		lval, err = p.bitwiseValues(opTok, lval, rval, Uint128.Or)
		if err != nil {
			return Value{}, err
		}
	}
	return lval, nil
}

// bxorExpr ::= bandExpr { "^|" bandExpr }
func (p *Parser) bxorExpr(lx *lookaheadLexer) (Value, error) {
	lval, err := p.bandExpr(lx)
	if err != nil {
		return Value{}, err
	}
	for lx.Peek().ID == BXOR {
		opTok := lx.Get()
		rval, err := p.bandExpr(lx)
		if err != nil {
			return Value{}, err
		}
		lval, err = p.bitwiseValues(opTok, lval, rval, Uint128.Xor)
		if err != nil {
			return Value{}, err
		}
	}
	return lval, nil
}

// bandExpr ::= shiftExpr { "&" shiftExpr }
func (p *Parser) bandExpr(lx *lookaheadLexer) (Value, error) {
	lval, err := p.shiftExpr(lx)
	if err != nil {
		return Value{}, err
	}
	for lx.Peek().ID == BAND {
		opTok := lx.Get()
		rval, err := p.shiftExpr(lx)
		if err != nil {
			return Value{}, err
		}
		lval, err = p.bitwiseValues(opTok, lval, rval, Uint128.And)
		if err != nil {
			return Value{}, err
		}
	}
	return lval, nil
}

// shiftExpr ::= additiveExpr { ( "<<" | ">>" ) additiveExpr }
func (p *Parser) shiftExpr(lx *lookaheadLexer) (Value, error) {
	lval, err := p.additiveExpr(lx)
	if err != nil {
		return Value{}, err
	}
	for {
		id := lx.Peek().ID
		if id != SHIFTL && id != SHIFTR {
			return lval, nil
		}
		opTok := lx.Get()
		rval, err := p.additiveExpr(lx)
		if err != nil {
			return Value{}, err
		}
		lval, err = p.shiftValues(opTok, lval, rval, id == SHIFTL)
		if err != nil {
			return Value{}, err
		}
	}
}

// additiveExpr ::= term { ( "+" | "-" ) term }
func (p *Parser) additiveExpr(lx *lookaheadLexer) (Value, error) {
	lval, err := p.term(lx)
	if err != nil {
		return Value{}, err
	}
	for {
		id := lx.Peek().ID
		if id != ADD && id != SUB {
			return lval, nil
		}
		lx.Get()
		rval, err := p.term(lx)
		if err != nil {
			return Value{}, err
		}
		if id == ADD {
			lval = p.addValues(lval, rval)
		} else {
			lval = p.subValues(lval, rval)
		}
	}
}

// term ::= factor { ( "*" | "/" | "%" ) factor | juxtaposed_factor }
//
// A juxtaposed factor (2pi, 3(x+1)) multiplies with the same precedence as
// "*"; only identifiers, numbers, "(", "~" and "help" start one.
func (p *Parser) term(lx *lookaheadLexer) (Value, error) {
	lval, err := p.factor(lx)
	if err != nil {
		return Value{}, err
	}
	for {
		switch lx.Peek().ID {
		case MUL:
			lx.Get()
			rval, err := p.factor(lx)
			if err != nil {
				return Value{}, err
			}
			lval = p.mulValues(lval, rval)
		case DIV:
			opTok := lx.Get()
			rval, err := p.factor(lx)
			if err != nil {
				return Value{}, err
			}
			lval, err = p.divValues(opTok, lval, rval)
			if err != nil {
				return Value{}, err
			}
		case MOD:
			opTok := lx.Get()
			rval, err := p.factor(lx)
			if err != nil {
				return Value{}, err
			}
			lval, err = p.modValues(opTok, lval, rval)
			if err != nil {
				return Value{}, err
			}
		case IDENTIFIER, NUMBER, LPAREN, BNOT, HELP:
			rval, err := p.factor(lx)
			if err != nil {
				return Value{}, err
			}
			lval = p.mulValues(lval, rval)
		default:
			return lval, nil
		}
	}
}

// factor ::= "-" number            (negation folded into the number unless a
//
//	factorial or exponentiation op follows)
//	| ( "-" | "+" | "~" ) factor
//	| base { "!" | "!!" | mfac } [ ( "**" | "^" ) factor ]
//
// Exponentiation is evaluated right-to-left.
func (p *Parser) factor(lx *lookaheadLexer) (Value, error) {
	switch lx.Peek().ID {
	case SUB:
		lx.Get()
		// folding the minus into the number properly range checks the most
		// negative value of the word size
		if lx.Peek().ID == NUMBER {
			switch lx.Peek2().ID {
			case FAC, DFAC, MFAC, POW:
			default:
				return p.assumedNumber(lx, true)
			}
		}
		val, err := p.factor(lx)
		if err != nil {
			return Value{}, err
		}
		return p.negValue(val), nil
	case ADD:
		lx.Get()
		return p.factor(lx)
	case BNOT:
		opTok := lx.Get()
		val, err := p.factor(lx)
		if err != nil {
			return Value{}, err
		}
		return p.bnotValue(opTok, val)
	}

	lval, err := p.base(lx)
	if err != nil {
		return Value{}, err
	}

	for {
		id := lx.Peek().ID
		if id == FAC || id == DFAC {
			opTok := lx.Get()
			lval, err = p.facValue(opTok, lval, id == DFAC)
			if err != nil {
				return Value{}, err
			}
		} else if id == MFAC {
			return Value{}, newError(MfacUnsupported, lx.Get())
		} else {
			break
		}
	}

	if lx.Peek().ID == POW {
		lx.Get()
		rval, err := p.factor(lx)
		if err != nil {
			return Value{}, err
		}
		lval = p.powValues(lval, rval)
	}
	return lval, nil
}

// base ::= number | identifier_expr | "(" math_expr ")" | help
func (p *Parser) base(lx *lookaheadLexer) (Value, error) {
	switch lx.Peek().ID {
	case NUMBER:
		return p.assumedNumber(lx, false)
	case IDENTIFIER:
		return p.identifierExpr(lx)
	case LPAREN:
		return p.group(lx)
	case HELP:
		return Value{}, newError(HelpInvalidHere, lx.Peek())
	case END:
		return Value{}, newError(UnexpectedEndOfInput, lx.Peek())
	}
	return Value{}, newError(SyntaxError, lx.Peek())
}

// identifierExpr ::= variable [ "=" math_expr ]
//
//	| unary_fn group
//	| internal_value
//
// Lookup order: user variables first, then the unary function table, then
// the internal values. Assignment creates or updates a user variable and
// chains because "=" resolves here and identifierExpr is itself a valid
// base. Assigning to a function or internal value name is allowed; the
// user binding shadows it because variables are looked up first.
func (p *Parser) identifierExpr(lx *lookaheadLexer) (Value, error) {
	identTok := lx.Get()
	name := identTok.View

	for i := range p.vars {
		if p.vars[i].name == name {
			if lx.Peek().ID == EQ {
				lx.Get()
				val, err := p.mathExpr(lx)
				if err != nil {
					return Value{}, err
				}
				p.vars[i].val = val
			}
			return p.trimIfInt(p.vars[i].val), nil
		}
	}
	if lx.Peek().ID == EQ {
		lx.Get()
		val, err := p.mathExpr(lx)
		if err != nil {
			return Value{}, err
		}
		p.vars = append(p.vars, variable{name: name, val: val})
		return p.trimIfInt(val), nil
	}

	if fn, ok := lookupUnaryFn(name); ok {
		if lx.Peek().ID != LPAREN {
			return Value{}, newError(FunctionArgExpected, identTok)
		}
		arg, err := p.group(lx)
		if err != nil {
			return Value{}, err
		}
		return ComplexValue(fn(arg.Complex())), nil
	}

	if val, ok := p.internalValue(name); ok {
		return p.trimIfInt(val), nil
	}

	return Value{}, p.undefinedIdentifier(identTok)
}

// group ::= "(" math_expr ")"
func (p *Parser) group(lx *lookaheadLexer) (Value, error) {
	lx.Get() // caller assures the next token is "("
	val, err := p.mathExpr(lx)
	if err != nil {
		return Value{}, err
	}
	if tok := lx.Get(); tok.ID != RPAREN {
		return Value{}, newTokenExpectedError(RPAREN, tok)
	}
	return val, nil
}

func (p *Parser) assumedNumber(lx *lookaheadLexer, isNegative bool) (Value, error) {
	tok := lx.Get() // caller assures the next token is a number
	val, err := decodeNumber(tok, isNegative, &p.opts)
	if err != nil {
		return Value{}, err
	}
	return val, nil
}

// trimIfInt re-trims a stored integer value; the word size may have changed
// since it was bound.
func (p *Parser) trimIfInt(v Value) Value {
	switch v.Kind() {
	case KindUint:
		return UintValue(v.ival, p.opts.IntWordSize)
	case KindInt:
		return IntValue(Int128{v.ival}, p.opts.IntWordSize)
	}
	return v
}
