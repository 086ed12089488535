package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	ccalc "github.com/mgeck64/ccalc"
)

const (
	appName     = "ccalc"
	historyFile = ".ccalc_history"
	promptMain  = "> "
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	args := ccalc.NewArgs()
	for _, a := range os.Args[1:] {
		if len(a) > 0 && a[0] == '-' {
			ccalc.InterpretArg(a[1:], '-', &args)
		} else {
			args.OtherArg = a
			args.NOther++
		}
	}

	if args.NDefault > 1 || args.NOutput > 1 || args.NWordSize > 1 ||
		args.NPrecision > 1 || args.NNormalized > 1 || args.NOther > 1 {
		fmt.Println("Too many or invalid arguments.")
		help()
		os.Exit(2)
	}
	if args.NHelp > 0 {
		help()
		return
	}

	parser := ccalc.NewParser(args)

	if args.OtherArg != "" { // expression provided as argument
		evaluate(args.OtherArg, parser, false)
		return
	}
	repl(parser)
}

func evaluate(input string, parser *ccalc.Parser, colored bool) {
	res, err := parser.Evaluate(input)
	if err != nil {
		var ce *ccalc.CalcError
		if errors.As(err, &ce) {
			report := ce.Report(input)
			if colored {
				report = red(report)
			}
			fmt.Println(report)
		} else {
			fmt.Println(err)
		}
		return
	}
	if res.HelpRequested {
		help()
	}
	if res.HasValue {
		out := ccalc.NewOutputter(parser.Options()).Format(res.Value)
		if colored {
			out = blue(out)
		}
		fmt.Println(out)
	}
}

func repl(parser *ccalc.Parser) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		evaluate(line, parser, true)
		ln.AppendHistory(line)
	}
}

func help() {
	fmt.Print(`Basic guide:
ccalc [<input defaults>] [<output base>] [<p notation>] [<mode>] [precision]
[<int word size>] [-h] [--help] [<expression>]

<expression>: A mathematical expression, e.g.: 2+3*6. If omitted then
expressions will continuously be input from stdin until end of input. Exception:
if <expression> is "help" then this content will be printed.

<input defaults>: Specifies the default representation type and default numeric
base for numbers:
    -0b  - signed integer type, binary base; e.g.: 1010
    -0o  - signed integer type, octal base; e.g.: 12
    -0d  - signed integer type, decimal base; e.g.: 10
    -0x  - signed integer type, hexadecimal base; e.g.: 0a (prepend a number
           with 0 if it consists only of letter digits)
    -0bu - unsigned integer type, binary base
    -0ou - unsigned integer type, octal base
    -0du - unsigned integer type, decimal base
    -0xu - unsigned integer type, hexadecimal base
    -0dn - complex type, decimal base -- the default; e.g.: 10, 10+2*i
    -0xn - complex type, hexadecimal base (hexadecimal floating point)
Complex type: Represents a complex number composed of a real and imaginary part,
both of which are high precision floating point. The full form of a complex
number can be given as a+b*i or a+bi. Examples: 10+2i (real part is 10,
imaginary part is 2i), 10 (real number; imaginary part is 0), 2i (imaginary
number; real part is 0).
Exception: If a number is specified with a decimal point or exponent then it
will be represented as complex type; e.g., for -0x and -0xu, the numbers 0a.1
and 0a1p-4 will both be represented as complex type and interpreted in
hexadecimal base.

<output base>: Specifies the numeric base of the output:
    -ob - binary
    -oo - octal
    -od - decimal -- the default
    -ox - hexadecimal

<p notation>: Specifies how binary, octal and hexadecimal floating point numbers
are output:
    -pn - normalized scientific "p" notation -- the default
    -pu - unnormalized scientific "p" notation
Note: The "p" exponent is always a power of 2 expressed in decimal.

<mode>: Combines <input defaults> and <output base>: -mb (-0b -ob), -mo (-0o
-oo), -md (-0d -od), -mx (-0x -ox), -mbu (-0bu -ob), -mou (-0ou -oo), -mdu
(-0du -od), -mxu (-0xu -ox), -mdn (-0dn -od), -mxn (-0xn -ox).

<precision>: -pr<n> specifies the precision (number of significant digits) in
which floating point numbers are output; e.g., -pr15. The default is 25. 0 is
special and will cause numbers to be output in full precision, including guard
digits. Does not affect integer type numbers.

<int word size>: Specifies the word size for the integer types:
    -w8   -   8 bits
    -w16  -  16 bits
    -w32  -  32 bits
    -w64  -  64 bits
    -w128 - 128 bits -- the default
Note: this does not affect the complex type.

Options may also be provided in an expression (e.g., when input from stdin);
options provided this way begin with '@' instead of '-' (because '-' is the
subtraction/negation operator); e.g., @0x @w32

A number may optionally be given a prefix, suffix or both to specify its numeric
base and representation type, overriding the default ones.
Prefixes:
    0b - binary base; e.g.: 0b1010
    0o - octal base; e.g.: 0o12
    0d - decimal base; e.g.: 0d10
    0x - hexadecimal base; e.g.: 0xa
Suffixes:
    s    - signed integer type; e.g., 0b1010s, 10s
    u    - unsigned integer type; e.g., 0b1010u, 10u
    n    - complex type; e.g., 0xan
    none - if the number has a prefix (e.g., 0d10) then signed integer type;
           otherwise (e.g., 10) the default representation type
Exception: If a number has a decimal point or exponent then it will be
represented as complex type; e.g., 0xa.1 and 0xa1p-4 will both be represented as
complex type and interpreted in hexadecimal base.
Note: 0b and 0d cannot be used when the default numeric base is hexadecimal
because those are valid hexadecimal numbers. For that case, the 0bx and 0dx
prefixes can be used to specify binary base and decimal base respectively.

Examples: The following are different ways of expressing the number 314:
0b100111010 (binary signed integer type), 0o472u (octal unsigned integer type),
314s (decimal signed integer type assuming decimal is the default base), 0x13a
(hexadecimal signed integer type), 0b1.0011101p+8 (normalized binary floating
point type), 0o472.0 (octal floating point type), 0o1.164p+8 (normalized octal
floating point type), 0d3.14e+2 (decimal floating point type), 0x13a.0
(hexadecimal floating point type), 0x1.3ap+8 (normalized hexadecimal floating
point type).

Available arithmetic operators:
    + (addition and unary plus) - (subtraction and negation) * (multiplication)
    / (division) % (modulus) ^ ** (exponentiation) ! !! (factorial and double
    factorial) ( ) (grouping)
Multiplication may also be implied by juxtaposition; e.g., 2pi, 3(x+1).

Available bitwise operators:
    ~ (not) & (and) | (or) ^| (xor) << >> (shift; algebraic for signed type)
Note: unlike C, C++ and many other programming languages, ^ means exponentiation
here, not bitwise xor; use ^| instead for bitwise xor.

Available symbolic values:
    pi, e (Euler's number), i (imaginary unit), last (last result); e.g.,
    e^(i*pi)+1

Available functions; e.g.: sin(5):
    exp - exp(n) is e raised to the power of n
    ln - natural (base e) log
    log10 - base 10 log
    log2 - base 2 log
    sqrt - square root
    cbrt - cubic root
    sin
    cos
    tan
    asin - arc sin
    acos - arc cos
    atan - arc tan
    sinh - hyperbolic sin
    cosh - hyperbolic cos
    tanh - hyperbolic tan
    asinh - inverse hyperbolic sin
    acosh - inverse hyperbolic cos
    atanh - inverse hyperbolic tan
    gamma
    lgamma - log gamma
    arg - phase angle
    norm - squared magnitude
    conj - conjugate
    proj - projection onto the Riemann sphere

Variables can be created and used in expressions, e.g.:
    approx_pi=22/7
    r=5
    approx_pi*r^2
Variable assignments can be chained, e.g.: x=y=2
A variable can be removed with delete; e.g.: delete r
`)
}
