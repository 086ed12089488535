// parser_ops.go: per-operator value semantics
//
// Each operation below decides the result kind from its operand kinds:
// integer operands stay in the 128-bit container and are trimmed to the
// active word size, so narrow words wrap exactly like machine integers;
// anything else promotes to the complex float. Mixing a signed and an
// unsigned integer yields an unsigned result, matching the usual machine
// conversion.
//
// The remainder, shift and bitwise operations also accept a complex
// operand whose value is a whole real number in the signed range of the
// word size; it is taken as a signed integer. Add, subtract and multiply
// apply the same coercion when the other operand is already an integer,
// so forms like 0xff + 1 stay in the integer domain and wrap.
package ccalc

func isIntKind(v Value) bool { return v.Kind() == KindUint || v.Kind() == KindInt }

func mixedIntKind(a, b Value) ValueKind {
	if a.Kind() == KindUint || b.Kind() == KindUint {
		return KindUint
	}
	return KindInt
}

// intValue trims u to the active word size under the given kind.
func (p *Parser) intValue(kind ValueKind, u Uint128) Value {
	if kind == KindUint {
		return UintValue(u, p.opts.IntWordSize)
	}
	return IntValue(Int128{u}, p.opts.IntWordSize)
}

// arithIntPair coerces both operands to integers when at least one is
// already an integer and the other is a whole real number; +, - and *
// stay in the integer domain in that case.
func (p *Parser) arithIntPair(a, b Value) (Value, Value, bool) {
	if !isIntKind(a) && !isIntKind(b) {
		return Value{}, Value{}, false
	}
	la, ok := wholeRealInt(a, p.opts.IntWordSize)
	if !ok {
		return Value{}, Value{}, false
	}
	lb, ok := wholeRealInt(b, p.opts.IntWordSize)
	if !ok {
		return Value{}, Value{}, false
	}
	return la, lb, true
}

func (p *Parser) addValues(a, b Value) Value {
	if la, lb, ok := p.arithIntPair(a, b); ok {
		return p.intValue(mixedIntKind(la, lb), la.ival.Add(lb.ival))
	}
	return ComplexValue(a.Complex().Add(b.Complex()))
}

func (p *Parser) subValues(a, b Value) Value {
	if la, lb, ok := p.arithIntPair(a, b); ok {
		return p.intValue(mixedIntKind(la, lb), la.ival.Sub(lb.ival))
	}
	return ComplexValue(a.Complex().Sub(b.Complex()))
}

func (p *Parser) mulValues(a, b Value) Value {
	if la, lb, ok := p.arithIntPair(a, b); ok {
		return p.intValue(mixedIntKind(la, lb), la.ival.Mul(lb.ival))
	}
	return ComplexValue(a.Complex().Mul(b.Complex()))
}

func (p *Parser) divValues(opTok Token, a, b Value) (Value, error) {
	if isIntKind(a) && isIntKind(b) {
		if b.ival.IsZero() {
			return Value{}, newError(IntegerDivisionBy0, opTok)
		}
		if a.Kind() == KindInt && b.Kind() == KindInt {
			// signed quotient; -min/-1 wraps back to min via the trim
			return p.intValue(KindInt, a.Int().Quo(b.Int()).Uint128), nil
		}
		return p.intValue(KindUint, a.ival.Div(b.ival)), nil
	}
	return ComplexValue(a.Complex().Div(b.Complex())), nil
}

func (p *Parser) modValues(opTok Token, a, b Value) (Value, error) {
	lval, ok := wholeRealInt(a, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidLeftOperand, opTok)
	}
	rval, ok := wholeRealInt(b, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidRightOperand, opTok)
	}
	if rval.ival.IsZero() {
		return Value{}, newError(IntegerDivisionBy0, opTok)
	}
	if lval.Kind() == KindInt && rval.Kind() == KindInt {
		return p.intValue(KindInt, lval.Int().Rem(rval.Int()).Uint128), nil
	}
	return p.intValue(KindUint, lval.ival.Rem(rval.ival)), nil
}

func (p *Parser) bitwiseValues(opTok Token, a, b Value, op func(Uint128, Uint128) Uint128) (Value, error) {
	lval, ok := wholeRealInt(a, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidLeftOperand, opTok)
	}
	rval, ok := wholeRealInt(b, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidRightOperand, opTok)
	}
	// bitwise results are bit patterns, not quantities, and so are unsigned
	return p.intValue(KindUint, op(lval.ival, rval.ival)), nil
}

func (p *Parser) shiftValues(opTok Token, a, b Value, isLeft bool) (Value, error) {
	lval, ok := wholeRealInt(a, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidLeftOperand, opTok)
	}
	rval, ok := wholeRealInt(b, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidShiftArg, opTok)
	}
	if rval.Kind() == KindInt && rval.Int().IsNeg() {
		return Value{}, newError(NegativeShiftInvalid, opTok)
	}
	bits := p.opts.IntWordSize
	inRange := rval.ival.Cmp(U128(uint64(bits))) < 0
	arg := uint(rval.ival.Lo)

	// the result keeps the left operand's kind; a shift of the word size or
	// more gives the value an in-range shift approaches: 0, except a right
	// shift of a negative signed value, which approaches -1
	if isLeft {
		if !inRange {
			return p.intValue(lval.Kind(), Uint128{}), nil
		}
		return p.intValue(lval.Kind(), lval.ival.Shl(arg)), nil
	}
	if lval.Kind() == KindInt {
		if !inRange {
			if lval.Int().IsNeg() {
				return p.intValue(KindInt, Uint128{}.Not()), nil
			}
			return p.intValue(KindInt, Uint128{}), nil
		}
		return p.intValue(KindInt, lval.ival.Sar(arg)), nil
	}
	if !inRange {
		return p.intValue(KindUint, Uint128{}), nil
	}
	return p.intValue(KindUint, lval.ival.Shr(arg)), nil
}

func (p *Parser) negValue(v Value) Value {
	if isIntKind(v) {
		return p.intValue(v.Kind(), v.ival.Neg())
	}
	return ComplexValue(v.Complex().Neg())
}

func (p *Parser) bnotValue(opTok Token, v Value) (Value, error) {
	val, ok := wholeRealInt(v, p.opts.IntWordSize)
	if !ok {
		return Value{}, newError(InvalidOperand, opTok)
	}
	return p.intValue(val.Kind(), val.ival.Not()), nil
}

// facValue evaluates "!" (via the gamma function) or "!!". Both are
// defined for real operands only; a NaN passes through.
func (p *Parser) facValue(opTok Token, v Value, isDfac bool) (Value, error) {
	z := v.Complex()
	if !z.IsNaN() && !z.IsReal() {
		return Value{}, newError(OpDomainRealOnly, opTok)
	}
	if isDfac {
		return ComplexValue(z.Dfac()), nil
	}
	return ComplexValue(z.Add(complexFromInt64(1)).Tgamma()), nil
}

// powUint128 raises x to the power e by repeated squaring; overflow wraps
// in the 128-bit container and is trimmed by the caller.
func powUint128(x, e Uint128) Uint128 {
	r := U128(1)
	if e.Lo&1 != 0 {
		r = x
	}
	for {
		e = e.Shr(1)
		if e.IsZero() {
			break
		}
		x = x.Mul(x)
		if e.Lo&1 != 0 {
			r = r.Mul(x)
		}
	}
	return r
}

func (p *Parser) powValues(a, b Value) Value {
	if isIntKind(a) && isIntKind(b) {
		// the result keeps the base's kind; a negative exponent truncates
		// to 0 under integer division
		if b.Kind() == KindInt && b.Int().IsNeg() {
			return p.intValue(a.Kind(), Uint128{})
		}
		return p.intValue(a.Kind(), powUint128(a.ival, b.ival))
	}
	za := a.Complex()
	zb := b.Complex()
	// e ** z computes exp(z) directly, keeping identities like e**(i*pi)
	// sharp
	if za.IsReal() && za.Re.Cmp(floatE) == 0 {
		return ComplexValue(zb.Exp())
	}
	return ComplexValue(za.Pow(zb))
}
