package lexer

import (
	"math/big"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/jsonwc/cst/diag"
	"github.com/jsonwc/cst/internal/charclass"
	"github.com/jsonwc/cst/internal/invariant"
)

// Lexer turns UTF-8 source text into a lazy sequence of Symbols. It never
// returns an error from Next: recovery is encoded directly into the Symbol
// stream via ErrorString, UnknownSymbol, and UnterminatedBlockComment, each
// carrying its own diagnostics (spec.md §4.2, §5 — the core never aborts).
type Lexer struct {
	src []byte
	pos int

	debug     DebugLevel
	telemetry TelemetryMode
	onSymbol  func(Symbol)
}

// New constructs a Lexer over text. text must be valid UTF-8; malformed
// bytes are treated as the Unicode replacement character at that position,
// matching Go's own string-range decoding behavior rather than failing.
func New(text string, opts ...Opt) *Lexer {
	l := &Lexer{src: []byte(text)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Done reports whether the stream is exhausted.
func (l *Lexer) Done() bool { return l.pos >= len(l.src) }

// Next produces the next Symbol, or ok=false once the stream is exhausted.
func (l *Lexer) Next() (sym Symbol, ok bool) {
	if l.Done() {
		return Symbol{}, false
	}
	start := l.pos
	sym = l.next()
	invariant.Invariant(sym.Width > 0, "lexer: emitted zero-width symbol %s at %d", sym.Kind, start)
	invariant.Invariant(l.pos == start+sym.Width, "lexer: symbol width %d does not match bytes consumed %d", sym.Width, l.pos-start)
	if l.onSymbol != nil {
		l.onSymbol(sym)
	}
	return sym, true
}

// TokenizeAll drains a fresh Lexer over text, returning every Symbol in
// order. Widths sum to len(text) exactly (spec.md §8).
func TokenizeAll(text string, opts ...Opt) []Symbol {
	l := New(text, opts...)
	var out []Symbol
	for {
		s, ok := l.Next()
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out
}

func (l *Lexer) next() Symbol {
	c := l.src[l.pos]

	if charclass.AsciiIsDigit[c] || (c < 0x80 && charclass.AsciiIsIdentStart[c]) {
		return l.lexWord()
	}
	if c >= 0x80 {
		r, _ := utf8.DecodeRune(l.src[l.pos:])
		if charclass.Classify(r) == charclass.ValueChar {
			return l.lexWord()
		}
	}

	switch c {
	case '{':
		return l.single(CurlyOpen)
	case '}':
		return l.single(CurlyClose)
	case '[':
		return l.single(SquareOpen)
	case ']':
		return l.single(SquareClose)
	case ':':
		return l.single(Colon)
	case ',':
		return l.single(Comma)
	case '/':
		return l.lexSlash()
	case '"':
		return l.lexString()
	}

	if charclass.AsciiIsWhitespace[c] || (c >= 0x80 && l.runeClass() == charclass.Whitespace) {
		return l.lexWhitespace()
	}
	return l.lexUnknownRune()
}

func (l *Lexer) runeClass() charclass.Class {
	r, _ := utf8.DecodeRune(l.src[l.pos:])
	return charclass.Classify(r)
}

func (l *Lexer) single(k Kind) Symbol {
	l.pos++
	return Symbol{Kind: k, Width: 1}
}

// lexWord accumulates a maximal run of value-characters, then reclassifies
// the buffer as a boolean, integer, or undefined literal (spec.md §4.2.1).
func (l *Lexer) lexWord() Symbol {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c < 0x80 {
			if !charclass.AsciiIsIdentPart[c] {
				break
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if charclass.Classify(r) != charclass.ValueChar {
			break
		}
		l.pos += size
	}
	word := string(l.src[start:l.pos])
	width := l.pos - start

	switch word {
	case "true":
		return Symbol{Kind: BooleanLiteral, Width: width, Bool: true}
	case "false":
		return Symbol{Kind: BooleanLiteral, Width: width, Bool: false}
	}
	if n, ok := parseInteger(word); ok {
		return Symbol{Kind: IntegerLiteral, Width: width, Int: n}
	}
	return Symbol{
		Kind:  UndefinedValue,
		Width: width,
		Str:   word,
		errs: []diag.Error{
			diag.New(diag.UnrecognizedValue, diag.Error, 0, width, diag.StringParam(word)),
		},
	}
}

// parseInteger accepts an optional single leading sign followed by one or
// more ASCII digits and nothing else (spec.md §4.2.1).
func parseInteger(word string) (*big.Int, bool) {
	if word == "" {
		return nil, false
	}
	i := 0
	if word[0] == '+' || word[0] == '-' {
		i = 1
	}
	if i >= len(word) {
		return nil, false
	}
	for j := i; j < len(word); j++ {
		if word[j] < '0' || word[j] > '9' {
			return nil, false
		}
	}
	n := new(big.Int)
	digits := word[i:]
	if word[0] == '-' {
		digits = "-" + digits
	}
	n.SetString(digits, 10)
	return n, true
}

func (l *Lexer) lexWhitespace() Symbol {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c < 0x80 {
			if !charclass.AsciiIsWhitespace[c] {
				break
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if charclass.Classify(r) != charclass.Whitespace {
			break
		}
		l.pos += size
	}
	return Symbol{Kind: Whitespace, Width: l.pos - start}
}

func (l *Lexer) lexSlash() Symbol {
	start := l.pos
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
		l.pos += 2
		for l.pos < len(l.src) && l.src[l.pos] != '\n' && !(l.src[l.pos] == '\r') {
			l.pos++
		}
		return Symbol{Kind: Comment, Width: l.pos - start}
	}
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
		l.pos += 2
		for l.pos < len(l.src) {
			if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
				l.pos += 2
				return Symbol{Kind: Comment, Width: l.pos - start}
			}
			l.pos++
		}
		width := l.pos - start
		return Symbol{
			Kind:  UnterminatedBlockComment,
			Width: width,
			errs: []diag.Error{
				diag.New(diag.UnterminatedMultiLineComment, diag.Error, 0, width),
			},
		}
	}
	return l.lexUnknownRune()
}

// lexUnknownRune emits a single unassigned-grammar rune as its own
// one-symbol error token (spec.md §4.2).
func (l *Lexer) lexUnknownRune() Symbol {
	start := l.pos
	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.pos += size
	display := string(r)
	if !isAssigned(r) {
		display = escapeRune(r)
	}
	return Symbol{
		Kind:    UnknownSymbol,
		Width:   l.pos - start,
		Char:    r,
		Display: display,
		errs: []diag.Error{
			diag.New(diag.UnexpectedSymbol, diag.Error, 0, l.pos-start, diag.CharParam(r)),
		},
	}
}

func isAssigned(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
}

func escapeRune(r rune) string {
	return strconvQuoteRuneEscape(r)
}

func strconvQuoteRuneEscape(r rune) string {
	return "\\u" + padHex(int64(r))
}

func padHex(v int64) string {
	s := strconv.FormatInt(v, 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// lexString scans a double-quoted string literal, decoding escapes and
// recovering from every malformed case described in spec.md §4.2.2: illegal
// control characters, unrecognized escapes, and running off the end of
// input without a closing quote.
func (l *Lexer) lexString() Symbol {
	start := l.pos
	l.pos++ // opening quote
	var decoded []byte
	var errs []diag.Error
	terminated := false

scan:
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '"':
			l.pos++
			terminated = true
			break scan

		case c < 0x20 || c == 0x7f:
			errs = append(errs, diag.New(diag.IllegalControlCharacterInString, diag.Error, l.pos-start, 1, diag.StringParam(controlEscapeDisplay(c))))
			decoded = append(decoded, c)
			l.pos++

		case c == '\\':
			escStart := l.pos
			if l.pos+1 >= len(l.src) {
				errs = append(errs, diag.New(diag.UnrecognizedEscapeSequence, diag.Error, escStart-start, 1))
				l.pos++
				break scan
			}
			next := l.src[l.pos+1]
			switch next {
			case '"':
				decoded = append(decoded, '"')
				l.pos += 2
			case '\\':
				decoded = append(decoded, '\\')
				l.pos += 2
			case '/':
				decoded = append(decoded, '/')
				l.pos += 2
			case 'b':
				decoded = append(decoded, '\b')
				l.pos += 2
			case 'f':
				decoded = append(decoded, '\f')
				l.pos += 2
			case 'n':
				decoded = append(decoded, '\n')
				l.pos += 2
			case 'r':
				decoded = append(decoded, '\r')
				l.pos += 2
			case 't':
				decoded = append(decoded, '\t')
				l.pos += 2
			case 'v':
				decoded = append(decoded, '\v')
				l.pos += 2
			case 'u':
				hexStart := l.pos + 2
				j := hexStart
				for j < len(l.src) && j < hexStart+4 && isHexDigit(l.src[j]) {
					j++
				}
				if j-hexStart == 4 {
					v, _ := strconv.ParseUint(string(l.src[hexStart:hexStart+4]), 16, 32)
					var buf [4]byte
					n := utf8.EncodeRune(buf[:], rune(v))
					decoded = append(decoded, buf[:n]...)
					l.pos = hexStart + 4
				} else {
					errs = append(errs, diag.New(diag.UnrecognizedEscapeSequence, diag.Error, escStart-start, j-escStart, diag.StringParam(string(l.src[escStart:j]))))
					l.pos = j
				}
			default:
				errs = append(errs, diag.New(diag.UnrecognizedEscapeSequence, diag.Error, escStart-start, 2, diag.StringParam(string([]byte{'\\', next}))))
				l.pos += 2
			}

		case c < 0x80:
			decoded = append(decoded, c)
			l.pos++

		default:
			r, size := utf8.DecodeRune(l.src[l.pos:])
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], r)
			decoded = append(decoded, buf[:n]...)
			l.pos += size
		}
	}

	width := l.pos - start
	if !terminated {
		errs = append(errs, diag.New(diag.UnterminatedString, diag.Error, 0, width))
		return Symbol{Kind: ErrorString, Width: width, Str: string(decoded), errs: errs}
	}
	if len(errs) > 0 {
		return Symbol{Kind: ErrorString, Width: width, Str: string(decoded), errs: errs}
	}
	return Symbol{Kind: StringLiteral, Width: width, Str: string(decoded)}
}
