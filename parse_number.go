// parse_number.go: number token decoding
//
// decodeNumber converts a number token's character sequence (scanned by
// scan_number.go) to internal numeric representation, and thus validates
// it. The two stages agree on the prefix rules; see scanPrefixLen.
//
// A literal is [0<p>[<t>]]<body>[<t>] with <p> one of b/o/d/x selecting
// the radix and <t> one of s/u/n selecting the type. A prefix forces the
// integer type until a decimal point, an exponent or an n suffix forces
// the complex type. Without a prefix the session's default radix and type
// apply. isNegative is true when the caller absorbed a unary minus into
// the number, which allows the most negative value of the word size to be
// written directly.
package ccalc

func typeForSuffix(c byte) (NumTypeCode, bool) {
	switch lower(c) {
	case signedSuffixCode:
		return IntCode, true
	case unsignedSuffixCode:
		return UintCode, true
	case complexSuffixCode:
		return ComplexCode, true
	}
	return 0, false
}

func decodeNumber(token Token, isNegative bool, opts *Args) (Value, *CalcError) {
	body := token.View
	typeCode := opts.DefaultNumTypeCode
	radix := opts.DefaultNumRadix

	// leading 0<p>[<t>] prefix; must mirror scanNumber's treatment
	if len(body) > 2 && body[0] == '0' {
		prefixCode := lower(body[1])
		if prefixLen := scanPrefixLen(newCursor(body), radix); prefixLen > 0 {
			if r, ok := radixForPrefix(prefixCode); ok {
				radix = r
				typeCode = IntCode
				body = body[prefixLen:]
				if len(body) > 0 {
					if t, ok := typeForSuffix(body[0]); ok {
						typeCode = t
						body = body[1:]
					}
				}
			}
		}
	}

	exponentCode := exponentCodeFor(radix)

	isSimple := true // no decimal point or exponent code
	for i := 0; i < len(body); i++ {
		if body[i] == '.' || lower(body[i]) == exponentCode {
			typeCode = ComplexCode
			isSimple = false
			break
		}
	}

	// trailing type suffix
	if len(body) > 0 {
		if t, ok := typeForSuffix(body[len(body)-1]); ok {
			if t != ComplexCode && !isSimple {
				return Value{}, newError(InvalidNumber, token)
			}
			typeCode = t
			body = body[:len(body)-1]
		}
	}

	if len(body) == 0 { // prevent empty string from being converted to 0
		return Value{}, newError(InvalidNumber, token)
	}

	// 0x is a special prefix code; reject it as a residual body head
	if (typeCode == ComplexCode || radix == Base16) &&
		len(body) > 1 && body[0] == '0' && lower(body[1]) == base16PrefixCode {
		return Value{}, newError(InvalidNumber, token)
	}

	if typeCode == ComplexCode {
		f, ok := fromCharsFloat(body, radix)
		if !ok {
			return Value{}, newError(InvalidNumber, token)
		}
		if isNegative {
			f = fneg(f)
		}
		return ComplexValue(complexFromFloat(f)), nil
	}

	// integer: accumulate the magnitude in the 128-bit container
	var mag Uint128
	radix128 := U128(uint64(radix))
	for i := 0; i < len(body); i++ {
		d := digitVal(body[i])
		if d < 0 || d >= int(radix) {
			return Value{}, newError(InvalidNumber, token)
		}
		m, ok := mag.MulCheck(radix128)
		if !ok {
			return Value{}, newError(OutOfRange, token)
		}
		mag = m.Add(U128(uint64(d)))
		if mag.Cmp(m) < 0 {
			return Value{}, newError(OutOfRange, token)
		}
	}

	bits := opts.IntWordSize

	if typeCode == UintCode {
		if mag.Cmp(uintMaxFor(bits)) > 0 {
			return Value{}, newError(OutOfRange, token)
		}
		if isNegative {
			mag = mag.Neg()
		}
		return UintValue(mag, bits), nil
	}

	// for base 10 perform normal signed range checking; for other bases
	// allow any bit pattern of the word size, so 0xffff converts to -1
	// under a 16-bit word
	if isNegative {
		if (radix == Base10 && mag.Cmp(intMinMagFor(bits)) > 0) ||
			mag.Cmp(uintMaxFor(bits)) > 0 {
			return Value{}, newError(OutOfRange, token)
		}
		return IntValue(Int128{mag.Neg()}, bits), nil
	}
	if (radix == Base10 && mag.Cmp(intMaxFor(bits)) > 0) ||
		mag.Cmp(uintMaxFor(bits)) > 0 {
		return Value{}, newError(OutOfRange, token)
	}
	return IntValue(Int128{mag}, bits), nil
}
