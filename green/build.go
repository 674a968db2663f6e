package green

import (
	"math/big"

	"github.com/jsonwc/cst/diag"
	"github.com/jsonwc/cst/internal/invariant"
)

// Constructors enforce the hard preconditions in spec.md §6.3. They panic
// via internal/invariant on a violated precondition — a programmer error in
// the tokenizer or parser, never something malformed input can trigger.

// commonWhitespace is the shared instance returned for the most common run
// length, a single whitespace byte.
var commonWhitespace = &Whitespace{width: 1}

func NewWhitespace(width int) *Whitespace {
	invariant.Precondition(width >= 0, "green.NewWhitespace: width must not be negative, got %d", width)
	if width == 1 {
		return commonWhitespace
	}
	return &Whitespace{width: width}
}

func NewComment(width int) *Comment {
	invariant.Precondition(width >= 0, "green.NewComment: width must not be negative, got %d", width)
	return &Comment{width: width}
}

func NewUnterminatedBlockComment(width int, errs []diag.Error) *UnterminatedBlockComment {
	invariant.Precondition(width >= 0, "green.NewUnterminatedBlockComment: width must not be negative, got %d", width)
	return &UnterminatedBlockComment{width: width, Errors: errs}
}

func NewRootLevelValueDelimiter(width int, delimiterKind NodeKind) *RootLevelValueDelimiter {
	invariant.Precondition(width >= 0, "green.NewRootLevelValueDelimiter: width must not be negative, got %d", width)
	return &RootLevelValueDelimiter{width: width, DelimiterKind: delimiterKind}
}

func NewIntegerLiteral(width int, value *big.Int) *IntegerLiteral {
	invariant.Precondition(width >= 0, "green.NewIntegerLiteral: width must not be negative, got %d", width)
	invariant.NotNil(value, "value")
	return &IntegerLiteral{width: width, Value: value}
}

// NewStringLiteral builds a StringLiteral. spec.md §6.3 rejects a "null"
// decoded value; Go strings have no null state distinct from "", so an
// empty decoded string (e.g. from the input `""`) is legal and this
// precondition has no observable Go counterpart (see DESIGN.md).
func NewStringLiteral(width int, value string) *StringLiteral {
	invariant.Precondition(width >= 0, "green.NewStringLiteral: width must not be negative, got %d", width)
	return &StringLiteral{width: width, Value: value}
}

func NewUndefinedValue(width int, text string, errs []diag.Error) *UndefinedValue {
	invariant.Precondition(width >= 0, "green.NewUndefinedValue: width must not be negative, got %d", width)
	return &UndefinedValue{width: width, Text: text, Errors: errs}
}

func NewErrorString(width int, value string, errs []diag.Error) *ErrorString {
	invariant.Precondition(width >= 0, "green.NewErrorString: width must not be negative, got %d", width)
	invariant.Precondition(len(errs) > 0, "green.NewErrorString: errs must not be empty")
	return &ErrorString{width: width, Value: value, Errors: errs}
}

// NewUnknownSymbol rejects an empty display string (spec.md §6.3:
// "Null/empty displayCharValue for an unknown symbol (must be >= 1 char)").
func NewUnknownSymbol(width int, char rune, display string, errs []diag.Error) *UnknownSymbol {
	invariant.Precondition(width >= 0, "green.NewUnknownSymbol: width must not be negative, got %d", width)
	invariant.Precondition(display != "", "green.NewUnknownSymbol: display must not be empty")
	return &UnknownSymbol{width: width, Char: char, Display: display, Errors: errs}
}

// NewBackgroundList may legally be empty: a value with no preceding trivia
// at all is ordinary (spec.md §6.3 only lists List/Map/MultiValue/the
// KeyValue value-sections list as rejecting emptiness).
func NewBackgroundList(items []Node) *BackgroundList {
	width := 0
	for _, it := range items {
		width += it.Width()
	}
	return &BackgroundList{width: width, Items: items}
}

func NewValueWithBackground(bg *BackgroundList, value Node) *ValueWithBackground {
	invariant.NotNil(bg, "bg")
	invariant.NotNil(value, "value")
	return &ValueWithBackground{width: bg.Width() + value.Width(), Background: bg, Value: value}
}

// NewMultiValue rejects an empty Values slice (spec.md §6.3).
func NewMultiValue(values []*ValueWithBackground, trailing *BackgroundList) *MultiValue {
	invariant.Precondition(len(values) > 0, "green.NewMultiValue: values must not be empty")
	invariant.NotNil(trailing, "trailing")
	width := trailing.Width()
	for _, v := range values {
		width += v.Width()
	}
	return &MultiValue{width: width, Values: values, Trailing: trailing}
}

// NewList rejects a nil first MultiValue; close is nil for an unterminated
// list (spec.md §3.2: "the closing bracket is optional").
func NewList(open *Token, first *MultiValue, rest []CommaValue, close *Token) *List {
	invariant.NotNil(open, "open")
	invariant.NotNil(first, "first")
	width := open.Width() + first.Width()
	for _, r := range rest {
		width += r.Comma.Width() + r.Value.Width()
	}
	if close != nil {
		width += close.Width()
	}
	return &List{width: width, Open: open, First: first, Rest: rest, Close: close}
}

// NewKeyValue rejects an empty Extra slice (spec.md §6.3: "the
// value-sections list of KeyValue"). Even a colon-less entry carries one
// synthetic ColonValue whose Colon is nil and whose Value is a MissingValue
// MultiValue, so the value-sections list is never empty in practice.
func NewKeyValue(key *MultiValue, extra []ColonValue) *KeyValue {
	invariant.NotNil(key, "key")
	invariant.Precondition(len(extra) > 0, "green.NewKeyValue: extra value-sections must not be empty")
	width := key.Width()
	for _, e := range extra {
		if e.Colon != nil {
			width += e.Colon.Width()
		}
		width += e.Value.Width()
	}
	return &KeyValue{width: width, Key: key, Extra: extra}
}

// NewMap rejects an empty Entries slice (spec.md §6.3). Close is nil for an
// unterminated map.
func NewMap(open *Token, entries []*KeyValue, commas []*Token, close *Token) *Map {
	invariant.NotNil(open, "open")
	invariant.Precondition(len(entries) > 0, "green.NewMap: entries must not be empty")
	invariant.Precondition(len(commas) == len(entries)-1, "green.NewMap: need len(entries)-1 commas, got %d for %d entries", len(commas), len(entries))
	width := open.Width()
	for i, e := range entries {
		width += e.Width()
		if i < len(commas) {
			width += commas[i].Width()
		}
	}
	if close != nil {
		width += close.Width()
	}
	return &Map{width: width, Open: open, Entries: entries, Commas: commas, Close: close}
}

func NewRoot(syntax *MultiValue, errs []diag.Error) *Root {
	invariant.NotNil(syntax, "syntax")
	return &Root{width: syntax.Width(), Syntax: syntax, Errors: errs}
}
