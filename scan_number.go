// scan_number.go: numeric literal scanning
//
// scanNumber advances the cursor over a maximal span of characters that
// resembles a number without interpreting it; the decoder in parse_number.go
// converts (and thus validates) the span later. The two stages agree on the
// prefix rules, so a span the scanner accepts is handed to the decoder
// exactly as scanned.
//
// The scan takes digits of the literal's radix (decimal digits always, so a
// stray digit joins its run and fails conversion rather than splitting the
// token), at most one decimal point, and a complete exponent. A letter that
// is not a digit of the radix ends the literal, so 2pi lexes as the number 2
// followed by the identifier pi and multiplies by juxtaposition. The type
// suffix letter after a radix prefix belongs to the literal; a trailing one
// is taken by the lexer, which can see whether an identifier follows.
package ccalc

// digitVal returns the value of a digit character, or -1 for a non-digit.
// Letter digits a-f/A-F cover the radices up to 16.
func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func isDigitIn(c byte, radix Radix) bool {
	v := digitVal(c)
	return v >= 0 && v < int(radix)
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlphaChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnumChar(c byte) bool { return isAlphaChar(c) || isDecDigit(c) }

// exponentCodeFor returns the exponent introducer for the radix: 'e' for
// decimal, 'p' for everything else (where 'e' would be a digit or is
// reserved for one).
func exponentCodeFor(radix Radix) byte {
	if radix == Base10 {
		return 'e'
	}
	return 'p'
}

// scanPrefixLen measures the radix prefix at the start of the span: 3 for
// the disambiguating 0bx/0dx combos (so binary and decimal literals can be
// written when their prefix letter is a digit of the default radix), 2 for
// an ordinary 0<letter> prefix whose letter is not a digit of the default
// radix, else 0 (the 0 is a leading digit). Callers guarantee Len() > 2 and
// a leading '0'.
func scanPrefixLen(c cursor, radix Radix) int {
	prefixCode := lower(c.At(1))
	if c.Len() > 3 && !isDigitIn(c.At(2), radix) && lower(c.At(2)) == base16PrefixCode &&
		(prefixCode == base2PrefixCode || prefixCode == base10PrefixCode) {
		return 3
	}
	if !isDigitIn(prefixCode, radix) {
		return 2
	}
	return 0
}

// exponentEndsLiteral reports whether the character after a scanned exponent
// digit run may end a number. A type suffix letter counts when nothing of an
// identifier follows it; any other letter or a decimal point means the
// exponent was not an exponent after all.
func exponentEndsLiteral(c cursor) bool {
	if c.AtEnd() {
		return true
	}
	ch := c.Cur()
	if !isAlphaChar(ch) && ch != '.' {
		return true
	}
	if _, ok := typeForSuffix(ch); ok {
		c.Advance()
		return c.AtEnd() || !isIdentChar(c.Cur())
	}
	return false
}

// scanNumber advances c over a numeric literal if one starts at the current
// position; otherwise c is left unmoved.
func scanNumber(c *cursor, defaultRadix Radix) {
	radix := defaultRadix
	numberIndicated := false
	hasAlnum := false

	c2 := *c

	if c.Len() > 2 && c.Cur() == '0' {
		numberIndicated = true
		prefixCode := lower(c.At(1))
		if prefixLen := scanPrefixLen(*c, radix); prefixLen > 0 {
			if r, ok := radixForPrefix(prefixCode); ok {
				radix = r
				c2.AdvanceN(prefixLen)
				if !c2.AtEnd() {
					if _, ok := typeForSuffix(c2.Cur()); ok {
						c2.Advance()
					}
				}
			} else { // have leading 0
				hasAlnum = true
				c2.Advance()
			}
		} else { // have leading digits
			hasAlnum = true
			c2.AdvanceN(2)
		}
	} else if !c2.AtEnd() && isDecDigit(c2.Cur()) { // have leading digit
		c2.Advance()
		hasAlnum = true
		numberIndicated = true
	}

	hasDecimalPoint := false
	exponentCode := exponentCodeFor(radix)

scan:
	for !c2.AtEnd() {
		switch ch := c2.Cur(); {
		case ch == '.' && !hasDecimalPoint:
			c2.Advance()
			hasDecimalPoint = true
		case hasAlnum && lower(ch) == exponentCode:
			// the introducer is taken only with a complete decimal
			// exponent, which ends the literal; otherwise it begins an
			// adjacent identifier
			c3 := c2
			c3.Advance()
			if !c3.AtEnd() && (c3.Cur() == '+' || c3.Cur() == '-') {
				c3.Advance()
			}
			digits := 0
			for !c3.AtEnd() && isDecDigit(c3.Cur()) {
				c3.Advance()
				digits++
			}
			if digits > 0 && exponentEndsLiteral(c3) {
				c2 = c3
			}
			break scan
		case isDigitIn(ch, radix) || isDecDigit(ch):
			c2.Advance()
			hasAlnum = true
		default:
			break scan
		}
	}

	if numberIndicated || (hasAlnum && hasDecimalPoint) {
		*c = c2
	}
}
