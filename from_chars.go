// from_chars.go: radix-aware floating point conversion
//
// fromCharsFloat is a specialized variation of strconv-style float parsing:
// - converts at the working float precision
// - does not recognize a leading minus sign
// - takes a radix parameter; if radix != 10 then the exponent is specified
//   with 'p'/'P' instead of 'e'/'E' and is a power of 2 expressed in decimal
// - 0x and 0X prefixes are not recognized in any case
package ccalc

import "math/big"

// expLimit caps the scanned exponent; anything beyond saturates, which the
// composition step turns into an infinity or a zero.
const expLimit = 1 << 30

// pow10Float returns 10**n at extended precision so repeated squaring
// rounding stays far below the working precision. n may be negative.
// Exponent overflow yields an infinity, underflow a zero.
func pow10Float(n int64) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	r := big.NewFloat(1).SetPrec(floatPrec + 64)
	b := big.NewFloat(10).SetPrec(floatPrec + 64)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, b)
		}
		b.Mul(b, b)
		n >>= 1
	}
	if neg {
		r.Quo(big.NewFloat(1).SetPrec(floatPrec+64), r)
	}
	return newFloat().Set(r)
}

// bitsPerDigit returns log2 of the radix for the power-of-two radices.
func bitsPerDigit(radix Radix) int {
	switch radix {
	case Base2:
		return 1
	case Base8:
		return 3
	default:
		return 4
	}
}

// fromCharsFloat converts s, a nonnegative floating point literal in the
// given radix, to a float at the working precision. The second result is
// false if s is not entirely a valid literal.
func fromCharsFloat(s string, radix Radix) (*big.Float, bool) {
	const (
		scanWhole = iota
		scanFraction
		scanExponent
	)
	state := scanWhole
	mant := new(big.Int)
	radixInt := big.NewInt(int64(radix))
	digitInt := new(big.Int)
	fracDigits := 0
	var exponent int64
	digits := false
	exponentDigits := false
	negativeExponent := false
	scanRadix := radix

	for i := 0; i < len(s); i++ {
		c := s[i]
		if d := digitVal(c); d >= 0 && d < int(scanRadix) {
			if state == scanExponent {
				if exponent < expLimit {
					exponent = exponent*10 + int64(d)
				}
				exponentDigits = true
			} else {
				mant.Mul(mant, radixInt)
				mant.Add(mant, digitInt.SetInt64(int64(d)))
				if state == scanFraction {
					fracDigits++
				}
			}
			digits = true
			continue
		}
		switch {
		case c == '.' && state == scanWhole:
			state = scanFraction
		case (lower(c) == 'e' && radix == Base10) || (lower(c) == 'p' && radix != Base10):
			if state == scanExponent || !digits {
				return nil, false
			}
			state = scanExponent
			scanRadix = Base10
			if i+1 < len(s) {
				if s[i+1] == '+' {
					i++
				} else if s[i+1] == '-' {
					i++
					negativeExponent = true
				}
			}
		default:
			return nil, false
		}
	}

	if !digits || (state == scanExponent && !exponentDigits) {
		return nil, false
	}
	if negativeExponent {
		exponent = -exponent
	}

	num := newFloat().SetInt(mant)
	if radix == Base10 {
		if e := exponent - int64(fracDigits); e != 0 {
			num = fmul(num, pow10Float(e))
		}
	} else {
		if e := exponent - int64(bitsPerDigit(radix))*int64(fracDigits); e != 0 && num.Sign() != 0 {
			num = newFloat().SetMantExp(num, int(e))
		}
	}
	return num, true
}
