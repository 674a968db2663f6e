package diag

import "fmt"

// ParamKind discriminates the payload carried by a Param.
type ParamKind int

const (
	// ParamChar carries a single rune, e.g. the char in UnexpectedSymbol.
	ParamChar ParamKind = iota
	// ParamString carries free text, e.g. the word in UnrecognizedValue.
	ParamString
	// ParamNullableInt carries an optional boxed integer.
	ParamNullableInt
)

// Param is one typed, ordered parameter attached to an Error. Kind
// discriminates which field is populated; the zero value of the unused
// fields is never read.
type Param struct {
	Kind ParamKind
	Char rune
	Str  string
	Int  *int64 // nil means "no value" for ParamNullableInt
}

// CharParam builds a Param carrying a rune.
func CharParam(r rune) Param { return Param{Kind: ParamChar, Char: r} }

// StringParam builds a Param carrying text.
func StringParam(s string) Param { return Param{Kind: ParamString, Str: s} }

// NullableIntParam builds a Param carrying an optional integer.
func NullableIntParam(v *int64) Param { return Param{Kind: ParamNullableInt, Int: v} }

// String renders the parameter's payload for display, independent of
// localized presentation (spec.md §1 keeps message rendering external).
func (p Param) String() string {
	switch p.Kind {
	case ParamChar:
		return string(p.Char)
	case ParamString:
		return p.Str
	case ParamNullableInt:
		if p.Int == nil {
			return "<none>"
		}
		return fmt.Sprintf("%d", *p.Int)
	default:
		return ""
	}
}

// Error is one diagnostic record: a stable Code, a severity Level, the
// source span it covers, and an ordered list of typed Params. It implements
// the standard error interface so host code can use it with fmt/errors.Is,
// but it stays a plain value struct for the soft-error lists
// that live on Root and on ErrorString/UnknownSymbol/UnterminatedBlockComment
// symbols (spec.md §3.4). The Params slice makes Error non-comparable with
// ==; compare two values with reflect.DeepEqual.
type Error struct {
	Code   Code
	Level  Level
	Start  int
	Length int
	Params []Param
}

// New constructs a Error, rejecting a negative Start or Length — these are
// hard preconditions (spec.md §6.3), not soft parse errors.
func New(code Code, level Level, start, length int, params ...Param) Error {
	if start < 0 {
		panic(fmt.Sprintf("diag.New: start must not be negative, got %d", start))
	}
	if length < 0 {
		panic(fmt.Sprintf("diag.New: length must not be negative, got %d", length))
	}
	return Error{Code: code, Level: level, Start: start, Length: length, Params: params}
}

// Error implements the error interface.
func (e Error) Error() string {
	if len(e.Params) == 0 {
		return fmt.Sprintf("%s at [%d,%d)", e.Code, e.Start, e.Start+e.Length)
	}
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s at [%d,%d): %v", e.Code, e.Start, e.Start+e.Length, parts)
}
