// Package green implements the immutable, width-only concrete syntax tree
// described in spec.md §3.2: a closed set of node variants behind a single
// Node interface, dispatched with one type switch per traversal — the Go
// rendering of a tagged sum type, following the same shape as the teacher's
// ExecutionNode/CommandNode/PipelineNode closed interface switched over in
// canonicalize*/writeExecutionNode.
package green

import (
	"math/big"

	"github.com/jsonwc/cst/diag"
)

// NodeKind identifies a Node's variant for switch dispatch without a type
// assertion, mirroring the teacher's NodeKind-tagged canonical nodes.
type NodeKind int

const (
	KindWhitespace NodeKind = iota
	KindComment
	KindUnterminatedBlockComment
	KindRootLevelValueDelimiter

	KindCurlyOpen
	KindCurlyClose
	KindSquareOpen
	KindSquareClose
	KindColon
	KindComma

	KindMissingValue
	KindIntegerLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindUndefinedValue
	KindErrorString
	KindUnknownSymbol
	KindList
	KindMap

	KindBackgroundList
	KindValueWithBackground
	KindMultiValue
	KindKeyValue
	KindRoot
)

func (k NodeKind) String() string {
	names := [...]string{
		"Whitespace", "Comment", "UnterminatedBlockComment", "RootLevelValueDelimiter",
		"CurlyOpen", "CurlyClose", "SquareOpen", "SquareClose", "Colon", "Comma",
		"MissingValue", "IntegerLiteral", "StringLiteral", "BooleanLiteral",
		"UndefinedValue", "ErrorString", "UnknownSymbol", "List", "Map",
		"BackgroundList", "ValueWithBackground", "MultiValue", "KeyValue", "Root",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// Node is the closed interface every green variant implements. Width is
// cached at construction time (spec.md §3.2: "recomputing is never
// necessary"). Children returns the node's direct syntactic children in
// source order, empty for terminals — the uniform surface the red tree
// walks generically; per-variant data is read back via a type switch on
// the concrete type, exactly like the teacher's canonicalize* functions.
type Node interface {
	Kind() NodeKind
	Width() int
	Children() []Node
}

// --- Background (trivia) terminals ---

// Whitespace is a maximal run of whitespace bytes (spec.md §4.2.4:
// agglutinative, so exactly one Whitespace node ever covers a given run).
type Whitespace struct{ width int }

func (n *Whitespace) Kind() NodeKind   { return KindWhitespace }
func (n *Whitespace) Width() int       { return n.width }
func (n *Whitespace) Children() []Node { return nil }

// Comment is a terminated line or block comment.
type Comment struct{ width int }

func (n *Comment) Kind() NodeKind   { return KindComment }
func (n *Comment) Width() int       { return n.width }
func (n *Comment) Children() []Node { return nil }

// UnterminatedBlockComment is a "/*" that never found its closing "*/".
type UnterminatedBlockComment struct {
	width  int
	Errors []diag.Error
}

func (n *UnterminatedBlockComment) Kind() NodeKind   { return KindUnterminatedBlockComment }
func (n *UnterminatedBlockComment) Width() int       { return n.width }
func (n *UnterminatedBlockComment) Children() []Node { return nil }

// RootLevelValueDelimiter wraps a stray top-level ','/':'/'}'/']' that the
// parser reclassified as trivia (spec.md §4.3.1). DelimiterKind names which
// structural token it wraps.
type RootLevelValueDelimiter struct {
	width         int
	DelimiterKind NodeKind
}

func (n *RootLevelValueDelimiter) Kind() NodeKind   { return KindRootLevelValueDelimiter }
func (n *RootLevelValueDelimiter) Width() int       { return n.width }
func (n *RootLevelValueDelimiter) Children() []Node { return nil }

// --- Structural tokens (all width 1, singleton instances) ---

// Token is a single-byte structural character: '{', '}', '[', ']', ':', or
// ','. Its Kind distinguishes which one.
type Token struct{ kind NodeKind }

func (n *Token) Kind() NodeKind   { return n.kind }
func (n *Token) Width() int       { return 1 }
func (n *Token) Children() []Node { return nil }

// Singleton structural tokens (spec.md §3.2 lifecycle note; §9 design
// notes: "shared single instances for each structural 1-char symbol").
var (
	TokCurlyOpen   = &Token{kind: KindCurlyOpen}
	TokCurlyClose  = &Token{kind: KindCurlyClose}
	TokSquareOpen  = &Token{kind: KindSquareOpen}
	TokSquareClose = &Token{kind: KindSquareClose}
	TokColon       = &Token{kind: KindColon}
	TokComma       = &Token{kind: KindComma}
)

// --- Value variants ---

// MissingValue is the zero-width placeholder for an expected-but-absent
// value. It is a singleton (spec.md §3.2 lifecycle note).
type MissingValue struct{}

func (n *MissingValue) Kind() NodeKind   { return KindMissingValue }
func (n *MissingValue) Width() int       { return 0 }
func (n *MissingValue) Children() []Node { return nil }

// TheMissingValue is the single shared MissingValue instance.
var TheMissingValue = &MissingValue{}

// IntegerLiteral holds an arbitrary-precision signed decimal integer.
type IntegerLiteral struct {
	width int
	Value *big.Int
}

func (n *IntegerLiteral) Kind() NodeKind   { return KindIntegerLiteral }
func (n *IntegerLiteral) Width() int       { return n.width }
func (n *IntegerLiteral) Children() []Node { return nil }

// StringLiteral holds a cleanly decoded string value.
type StringLiteral struct {
	width int
	Value string
}

func (n *StringLiteral) Kind() NodeKind   { return KindStringLiteral }
func (n *StringLiteral) Width() int       { return n.width }
func (n *StringLiteral) Children() []Node { return nil }

// BooleanLiteral holds a true/false value. Exactly two instances exist:
// TheTrue and TheFalse.
type BooleanLiteral struct {
	width int
	Value bool
}

func (n *BooleanLiteral) Kind() NodeKind   { return KindBooleanLiteral }
func (n *BooleanLiteral) Width() int       { return n.width }
func (n *BooleanLiteral) Children() []Node { return nil }

// TheTrue and TheFalse are the two BooleanLiteral singletons (spec.md §9:
// "BooleanLiteral.True"/"BooleanLiteral.False").
var (
	TheTrue  = &BooleanLiteral{width: 4, Value: true}
	TheFalse = &BooleanLiteral{width: 5, Value: false}
)

// UndefinedValue is a word that is neither a keyword nor a valid integer.
type UndefinedValue struct {
	width  int
	Text   string
	Errors []diag.Error
}

func (n *UndefinedValue) Kind() NodeKind   { return KindUndefinedValue }
func (n *UndefinedValue) Width() int       { return n.width }
func (n *UndefinedValue) Children() []Node { return nil }

// ErrorString is a malformed string literal; structurally indistinguishable
// from StringLiteral for traversal, but it carries its own lexical errors
// (spec.md §3.2).
type ErrorString struct {
	width  int
	Value  string
	Errors []diag.Error
}

func (n *ErrorString) Kind() NodeKind   { return KindErrorString }
func (n *ErrorString) Width() int       { return n.width }
func (n *ErrorString) Children() []Node { return nil }

// UnknownSymbol is a single code point outside the grammar.
type UnknownSymbol struct {
	width   int
	Char    rune
	Display string
	Errors  []diag.Error
}

func (n *UnknownSymbol) Kind() NodeKind   { return KindUnknownSymbol }
func (n *UnknownSymbol) Width() int       { return n.width }
func (n *UnknownSymbol) Children() []Node { return nil }

// --- Composite nodes ---

// BackgroundList is a (possibly empty) run of trivia nodes preceding a
// value.
type BackgroundList struct {
	width int
	Items []Node
}

func (n *BackgroundList) Kind() NodeKind   { return KindBackgroundList }
func (n *BackgroundList) Width() int       { return n.width }
func (n *BackgroundList) Children() []Node { return n.Items }

// ValueWithBackground pairs one Value node with the trivia that precedes
// it.
type ValueWithBackground struct {
	width      int
	Background *BackgroundList
	Value      Node
}

func (n *ValueWithBackground) Kind() NodeKind { return KindValueWithBackground }
func (n *ValueWithBackground) Width() int     { return n.width }
func (n *ValueWithBackground) Children() []Node {
	return []Node{n.Background, n.Value}
}

// MultiValue is a sequence of one or more ValueWithBackground, plus a
// trailing BackgroundList after the last value.
type MultiValue struct {
	width    int
	Values   []*ValueWithBackground
	Trailing *BackgroundList
}

func (n *MultiValue) Kind() NodeKind { return KindMultiValue }
func (n *MultiValue) Width() int     { return n.width }
func (n *MultiValue) Children() []Node {
	out := make([]Node, 0, len(n.Values)+1)
	for _, v := range n.Values {
		out = append(out, v)
	}
	return append(out, n.Trailing)
}

// CommaValue is one "," MultiValue pair inside a List.
type CommaValue struct {
	Comma *Token
	Value *MultiValue
}

// List is "[" MultiValue ("," MultiValue)* "]"?; Close is nil for an
// unterminated list.
type List struct {
	width int
	Open  *Token
	First *MultiValue
	Rest  []CommaValue
	Close *Token
}

func (n *List) Kind() NodeKind { return KindList }
func (n *List) Width() int     { return n.width }
func (n *List) Children() []Node {
	out := []Node{n.Open, n.First}
	for _, r := range n.Rest {
		out = append(out, r.Comma, r.Value)
	}
	if n.Close != nil {
		out = append(out, n.Close)
	}
	return out
}

// ColonValue is one ":" MultiValue pair inside a KeyValue.
type ColonValue struct {
	Colon *Token
	Value *MultiValue
}

// KeyValue is MultiValue (":" MultiValue)*; Key is the first (key) section,
// Extra holds every additional colon-separated section (normally exactly
// one, the value section; more than one is flagged
// MultiplePropertyKeySections by the parser).
type KeyValue struct {
	width int
	Key   *MultiValue
	Extra []ColonValue
}

func (n *KeyValue) Kind() NodeKind { return KindKeyValue }
func (n *KeyValue) Width() int     { return n.width }
func (n *KeyValue) Children() []Node {
	out := []Node{n.Key}
	for _, e := range n.Extra {
		out = append(out, e.Colon, e.Value)
	}
	return out
}

// Map is "{" KeyValue ("," KeyValue)* "}"?; Close is nil for an
// unterminated map.
type Map struct {
	width   int
	Open    *Token
	Entries []*KeyValue
	Commas  []*Token // len(Commas) == len(Entries)-1
	Close   *Token
}

func (n *Map) Kind() NodeKind { return KindMap }
func (n *Map) Width() int     { return n.width }
func (n *Map) Children() []Node {
	out := []Node{n.Open}
	for i, e := range n.Entries {
		out = append(out, e)
		if i < len(n.Commas) {
			out = append(out, n.Commas[i])
		}
	}
	if n.Close != nil {
		out = append(out, n.Close)
	}
	return out
}

// Root is the top of the tree: one MultiValue plus the full ordered error
// list for the parse (spec.md §3.2, §3.4).
type Root struct {
	width  int
	Syntax *MultiValue
	Errors []diag.Error
}

func (n *Root) Kind() NodeKind   { return KindRoot }
func (n *Root) Width() int       { return n.width }
func (n *Root) Children() []Node { return []Node{n.Syntax} }
