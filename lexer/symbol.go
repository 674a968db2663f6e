// Package lexer implements the tokenizer described in spec.md §4.2: a
// hand-written state machine that slices UTF-8 source text into a lazy
// sequence of Symbols, never failing, always accounting for every byte.
package lexer

import (
	"fmt"
	"math/big"

	"github.com/jsonwc/cst/diag"
)

// Kind identifies a Symbol's grammatical role. Background kinds are trivia;
// the rest are foreground (spec.md §3.1).
type Kind int

const (
	// Background (trivia) kinds.
	Whitespace Kind = iota
	Comment
	UnterminatedBlockComment

	// Structural foreground kinds, all width 1 byte.
	CurlyOpen
	CurlyClose
	SquareOpen
	SquareClose
	Colon
	Comma

	// Value-starter foreground kinds.
	IntegerLiteral
	StringLiteral
	BooleanLiteral
	UndefinedValue
	ErrorString
	UnknownSymbol
)

// IsBackground reports whether k is trivia rather than a semantic value.
func (k Kind) IsBackground() bool {
	return k == Whitespace || k == Comment || k == UnterminatedBlockComment
}

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case Comment:
		return "Comment"
	case UnterminatedBlockComment:
		return "UnterminatedBlockComment"
	case CurlyOpen:
		return "CurlyOpen"
	case CurlyClose:
		return "CurlyClose"
	case SquareOpen:
		return "SquareOpen"
	case SquareClose:
		return "SquareClose"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	case IntegerLiteral:
		return "IntegerLiteral"
	case StringLiteral:
		return "StringLiteral"
	case BooleanLiteral:
		return "BooleanLiteral"
	case UndefinedValue:
		return "UndefinedValue"
	case ErrorString:
		return "ErrorString"
	case UnknownSymbol:
		return "UnknownSymbol"
	default:
		return "Unknown"
	}
}

// Symbol is one unit of tokenizer output. Width is measured in UTF-8 bytes;
// summing the Width of every Symbol a Lexer emits reproduces len(text)
// exactly (spec.md §8, width-sum law). Symbol carries no absolute position —
// callers (the parser, or a red tree) accumulate widths to find one.
type Symbol struct {
	Kind  Kind
	Width int

	Int     *big.Int // IntegerLiteral: arbitrary-precision value
	Str     string    // StringLiteral/ErrorString: decoded text; UndefinedValue: raw word text
	Bool    bool      // BooleanLiteral: true/false
	Char    rune      // UnknownSymbol: the offending rune
	Display string    // UnknownSymbol: literal char, or \uXXXX escape if unassigned

	// errs holds diagnostics owned by this symbol, positioned relative to
	// the symbol's own start (offset 0). Populated eagerly at emission time
	// for ErrorString/UnterminatedBlockComment/UnknownSymbol/UndefinedValue;
	// this is observably identical to computing them "only when errors are
	// collected" since the cost is a handful of struct fields either way.
	errs []diag.Error
}

// LocalErrors returns this symbol's diagnostics, each repositioned by
// adding startOffset to its Start — the offset of this symbol's first byte
// within whatever stream the caller is reconstructing positions for.
func (s Symbol) LocalErrors(startOffset int) []diag.Error {
	if len(s.errs) == 0 {
		return nil
	}
	out := make([]diag.Error, len(s.errs))
	for i, e := range s.errs {
		e.Start += startOffset
		out[i] = e
	}
	return out
}

// True/False are the two BooleanLiteral values.
const (
	True  = true
	False = false
)

func controlEscapeDisplay(b byte) string {
	switch b {
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	default:
		return fmt.Sprintf(`\u%04x`, b)
	}
}
