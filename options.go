// options.go: option interpretation for command line and in-expression use
//
// What this file does
// -------------------
// One interpreter serves two surfaces: command line arguments introduced by
// '-' and in-expression tokens introduced by '@'. Both use the same little
// option language, so "-0x" on the command line and "@0x" inside an
// expression mean the same thing. InterpretArg records each recognized
// option into an Args record along with a per-class occurrence count; the
// caller decides how many occurrences per class it tolerates. Anything
// unrecognized lands in the OtherArg stash.
//
// Recognized forms (flag char stripped by the caller):
//
//	h, help, --help/@@help   help request
//	w8|w16|w32|w64|w128      integer word size
//	0<p>[<t>]                default number radix and type
//	o<p>                     output radix
//	m<p>[<t>]                both of the above
//	pr<N>                    output precision (0 = full)
//	pn | pu                  normalized vs unnormalized "p" notation
//
// with <p> one of b/o/d/x and <t> one of u/n (default signed).
package ccalc

import "strconv"

type Radix int

const (
	Base2  Radix = 2
	Base8  Radix = 8
	Base10 Radix = 10
	Base16 Radix = 16
)

// NumTypeCode selects the default interpretation of unadorned numbers.
type NumTypeCode int

const (
	ComplexCode NumTypeCode = iota
	UintCode
	IntCode
)

// prefix and suffix code letters shared by numeric literals and options
const (
	base2PrefixCode    = 'b'
	base8PrefixCode    = 'o'
	base10PrefixCode   = 'd'
	base16PrefixCode   = 'x'
	signedSuffixCode   = 's'
	unsignedSuffixCode = 'u'
	complexSuffixCode  = 'n'

	exprOptionCode = '@'
	cliOptionCode  = '-'
)

// DefaultPrecision is the output precision in significant digits when no
// pr option was given.
const DefaultPrecision = 25

// Args accumulates interpreted options plus per-class occurrence counts.
type Args struct {
	NHelp       uint
	NDefault    uint
	NOutput     uint
	NWordSize   uint
	NPrecision  uint
	NNormalized uint
	NOther      uint
	OtherArg    string // last unrecognized arg

	DefaultNumTypeCode NumTypeCode
	DefaultNumRadix    Radix
	OutputRadix        Radix
	IntWordSize        uint // bits: 8, 16, 32, 64 or 128
	Precision          uint
	OutputFPNormalized bool
}

// NewArgs returns the session defaults.
func NewArgs() Args {
	return Args{
		DefaultNumTypeCode: ComplexCode,
		DefaultNumRadix:    Base10,
		OutputRadix:        Base10,
		IntWordSize:        128,
		Precision:          DefaultPrecision,
		OutputFPNormalized: true,
	}
}

func radixForPrefix(c byte) (Radix, bool) {
	switch lower(c) {
	case base2PrefixCode:
		return Base2, true
	case base8PrefixCode:
		return Base8, true
	case base10PrefixCode:
		return Base10, true
	case base16PrefixCode:
		return Base16, true
	}
	return 0, false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// InterpretArg interprets one option body. The caller strips the leading
// flag char and passes it in as flagChar; a second flag char at the start
// of view selects the double-flag forms (--help, @@help).
func InterpretArg(view string, flagChar byte, args *Args) {
	if len(view) > 0 && view[0] == flagChar {
		if view[1:] == "help" {
			args.NHelp++
			return
		}
	} else if singleFlagOption(view, args) {
		return
	}
	args.OtherArg = view
	args.NOther++
}

func singleFlagOption(view string, args *Args) bool {
	switch view {
	case "h", "help":
		args.NHelp++
		return true
	case "w8", "w16", "w32", "w64", "w128":
		n, _ := strconv.Atoi(view[1:])
		args.IntWordSize = uint(n)
		args.NWordSize++
		return true
	case "pn":
		args.OutputFPNormalized = true
		args.NNormalized++
		return true
	case "pu":
		args.OutputFPNormalized = false
		args.NNormalized++
		return true
	}

	if len(view) > 2 && view[:2] == "pr" {
		n, err := strconv.Atoi(view[2:])
		if err != nil || n < 0 {
			return false
		}
		args.Precision = uint(n)
		args.NPrecision++
		return true
	}

	// ( '0' | 'o' | 'm' ) <prefix code> [ <suffix code> ]
	if len(view) < 2 {
		return false
	}
	optionCode := lower(view[0])
	radix, ok := radixForPrefix(view[1])
	if !ok {
		return false
	}
	rest := view[2:]

	updated := false
	if optionCode == '0' || optionCode == 'm' {
		typeCode := IntCode
		if len(rest) == 1 {
			switch lower(rest[0]) {
			case unsignedSuffixCode:
				typeCode = UintCode
				rest = rest[1:]
			case complexSuffixCode:
				typeCode = ComplexCode
				rest = rest[1:]
			}
		}
		if len(rest) == 0 {
			args.DefaultNumRadix = radix
			args.DefaultNumTypeCode = typeCode
			args.NDefault++
			updated = true
		}
	}
	if (optionCode == 'o' || optionCode == 'm') && len(rest) == 0 {
		args.OutputRadix = radix
		args.NOutput++
		updated = true
	}
	return updated
}
