// Package greenio serializes a green.Root into a position-independent,
// deterministic byte form, adapted from the teacher's
// core/planfmt/canonical.go (CanonicalPlan/CanonicalNode mirror structs) and
// core/planfmt/writer.go (magic/version/preamble binary container). Where
// the teacher flattens an ExecutionNode tree keyed on a node-type byte, this
// package flattens a green.Node tree keyed on its NodeKind.
package greenio

import (
	"github.com/jsonwc/cst/diag"
	"github.com/jsonwc/cst/green"
)

// CanonicalError mirrors diag.Error with position-independent fields in
// canonical encoding order. Start/Length are kept: they describe the span
// *within the green tree's own width accounting*, not a file offset, so
// they remain part of the tree's content rather than its position in a
// larger document.
type CanonicalError struct {
	Code   string           `cbor:"1,keyasint"`
	Level  int              `cbor:"2,keyasint"`
	Start  int              `cbor:"3,keyasint"`
	Length int              `cbor:"4,keyasint"`
	Params []CanonicalParam `cbor:"5,keyasint,omitempty"`
}

// CanonicalParam mirrors diag.Param.
type CanonicalParam struct {
	Kind int    `cbor:"1,keyasint"`
	Char rune   `cbor:"2,keyasint,omitempty"`
	Str  string `cbor:"3,keyasint,omitempty"`
	Int  *int64 `cbor:"4,keyasint,omitempty"`
}

func canonicalizeErrors(errs []diag.Error) []CanonicalError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]CanonicalError, len(errs))
	for i, e := range errs {
		out[i] = CanonicalError{
			Code:   string(e.Code),
			Level:  int(e.Level),
			Start:  e.Start,
			Length: e.Length,
			Params: canonicalizeParams(e.Params),
		}
	}
	return out
}

func canonicalizeParams(params []diag.Param) []CanonicalParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]CanonicalParam, len(params))
	for i, p := range params {
		out[i] = CanonicalParam{Kind: int(p.Kind), Char: p.Char, Str: p.Str, Int: p.Int}
	}
	return out
}

// CanonicalNode is the flattened mirror of every green.Node variant, tagged
// by Kind the way the teacher's CanonicalNode is tagged by a NodeType byte.
// Only the fields relevant to a given Kind are populated; the rest take
// their zero value and are omitted from the CBOR encoding.
type CanonicalNode struct {
	Kind     int              `cbor:"1,keyasint"`
	Width    int              `cbor:"2,keyasint"`
	Text     string           `cbor:"3,keyasint,omitempty"`
	Int      string           `cbor:"4,keyasint,omitempty"` // IntegerLiteral: big.Int decimal string; RootLevelValueDelimiter: the wrapped delimiter's kind name
	Bool     bool             `cbor:"5,keyasint,omitempty"`
	Char     rune             `cbor:"6,keyasint,omitempty"`
	Errors   []CanonicalError `cbor:"7,keyasint,omitempty"`
	Children []CanonicalNode  `cbor:"8,keyasint,omitempty"`
}

// Canonicalize converts a green tree rooted at n into its mirror form, the
// position-independent snapshot that CBOR-encodes deterministically and
// hashes reproducibly across equal trees built from different source texts.
func Canonicalize(n green.Node) CanonicalNode {
	if n == nil {
		return CanonicalNode{Kind: -1}
	}
	// A colon-less KeyValue section stores a nil *Token as its Colon; the
	// interface value itself is non-nil (typed nil), so it must be checked
	// before any method call on n reaches a nil pointer receiver.
	if tok, ok := n.(*green.Token); ok && tok == nil {
		return CanonicalNode{Kind: -1}
	}
	out := CanonicalNode{Kind: int(n.Kind()), Width: n.Width()}

	switch v := n.(type) {
	case *green.IntegerLiteral:
		out.Int = v.Value.String()
	case *green.StringLiteral:
		out.Text = v.Value
	case *green.BooleanLiteral:
		out.Bool = v.Value
	case *green.UndefinedValue:
		out.Text = v.Text
		out.Errors = canonicalizeErrors(v.Errors)
	case *green.ErrorString:
		out.Text = v.Value
		out.Errors = canonicalizeErrors(v.Errors)
	case *green.UnknownSymbol:
		out.Char = v.Char
		out.Text = v.Display
		out.Errors = canonicalizeErrors(v.Errors)
	case *green.UnterminatedBlockComment:
		out.Errors = canonicalizeErrors(v.Errors)
	case *green.RootLevelValueDelimiter:
		out.Int = v.DelimiterKind.String()
	case *green.Root:
		out.Errors = canonicalizeErrors(v.Errors)
	}

	children := n.Children()
	if len(children) == 0 {
		return out
	}
	out.Children = make([]CanonicalNode, len(children))
	for i, c := range children {
		out.Children[i] = Canonicalize(c)
	}
	return out
}

// CanonicalizeRoot is a typed convenience wrapper over Canonicalize for a
// *green.Root, the usual entry point for a full parse result.
func CanonicalizeRoot(root *green.Root) CanonicalNode {
	return Canonicalize(root)
}
