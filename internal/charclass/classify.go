// Package charclass classifies source code points for the JSON-WC tokenizer.
//
// The classifier answers one question: given a rune that is not one of the
// seven ASCII structural tokens (the tokenizer checks those directly), is it
// part of a value-like "word" token, insignificant whitespace, or an unknown
// symbol that should be emitted as its own one-rune error token?
package charclass

import "unicode"

// Class is the result of classifying a single rune.
type Class int

const (
	// ValueChar continues a word-like value token (identifier, number,
	// boolean, undefined literal).
	ValueChar Class = iota
	// Whitespace separates tokens without contributing a value.
	Whitespace
	// Unknown is a symbol outside the grammar; the tokenizer emits it as a
	// one-rune UnknownSymbol with a diagnostic.
	Unknown
)

// Classify maps r to its Class per spec.md §4.1.
//
// Table, by Unicode general category:
//
//	Letters, marks, digits, letter/other numbers, surrogates,
//	connector/dash punctuation            -> ValueChar
//	Open/close/quote punctuation,
//	currency/modifier/other symbols,
//	unassigned                            -> Unknown
//	Other punctuation (Po)                -> Unknown, except '.' -> ValueChar
//	Math symbol (Sm)                      -> Unknown, except '+' -> ValueChar
//	Space/line/paragraph separator,
//	control, format, private-use          -> Whitespace
func Classify(r rune) Class {
	switch {
	case r == '.' || r == '+':
		return ValueChar

	case unicode.IsLetter(r),
		unicode.Is(unicode.M, r),
		unicode.Is(unicode.Nd, r),
		unicode.Is(unicode.Nl, r),
		unicode.Is(unicode.No, r),
		unicode.Is(unicode.Cs, r),
		unicode.Is(unicode.Pc, r),
		unicode.Is(unicode.Pd, r):
		return ValueChar

	case unicode.Is(unicode.Zs, r),
		unicode.Is(unicode.Zl, r),
		unicode.Is(unicode.Zp, r),
		unicode.Is(unicode.Cc, r),
		unicode.Is(unicode.Cf, r),
		unicode.Is(unicode.Co, r):
		return Whitespace

	case unicode.Is(unicode.Ps, r),
		unicode.Is(unicode.Pe, r),
		unicode.Is(unicode.Pi, r),
		unicode.Is(unicode.Pf, r),
		unicode.Is(unicode.Sc, r),
		unicode.Is(unicode.Sk, r),
		unicode.Is(unicode.So, r),
		unicode.Is(unicode.Po, r),
		unicode.Is(unicode.Sm, r):
		return Unknown

	default:
		// Unassigned code points (Cn) and anything else not tabulated
		// fall through as Unknown, matching "unassigned -> unknown-symbol
		// candidate".
		return Unknown
	}
}

// ASCII fast-path tables, mirroring the byte-indexed arrays the tokenizer
// uses for the hot path before falling back to Classify for runes >= 128.
var (
	AsciiIsIdentStart [128]bool
	AsciiIsIdentPart  [128]bool
	AsciiIsWhitespace [128]bool
	AsciiIsDigit      [128]bool
)

func init() {
	for b := 0; b < 128; b++ {
		r := rune(b)
		switch Classify(r) {
		case ValueChar:
			AsciiIsIdentStart[b] = true
			AsciiIsIdentPart[b] = true
		case Whitespace:
			AsciiIsWhitespace[b] = true
		}
		if r >= '0' && r <= '9' {
			AsciiIsDigit[b] = true
		}
	}
	// '\n' is handled specially by the tokenizer (agglutinated but
	// newline-aware elsewhere); it still classifies as whitespace here.
}
