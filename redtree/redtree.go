// Package redtree is the positioned view over a green.Node tree: spec.md
// §3.3's "red" layer. Where green nodes carry only width and are freely
// shared, a red Node wraps exactly one green node plus a parent back-link
// and an absolute start offset, and is never shared — a fresh red tree is
// built per traversal, but lazily, so a caller that only visits a handful
// of nodes never pays to materialize the rest.
//
// This mirrors the teacher's ExecutionNode tree in spirit (a closed node
// type walked generically) but has no direct teacher analog for the lazy,
// concurrently-safe child cache; see DESIGN.md for that call.
package redtree

import (
	"sync/atomic"

	"github.com/jsonwc/cst/green"
)

// Node is one positioned wrapper over a green.Node. The zero value is not
// usable; construct with NewRoot.
type Node struct {
	g        green.Node
	parent   *Node
	relStart int // start relative to parent; 0 for the root

	absStart int // parent.absStart + relStart, computed once at construction

	// children lazily materializes one *Node per green.Children() slot. A
	// nil green child (a colon-less KeyValue section's nil Colon) gets a
	// nil *Node slot that is never materialized and always reads back nil.
	// An unterminated List/Map's absent closing token has no slot at all.
	children []atomic.Pointer[Node]
}

// NewRoot builds the red root for g. absolute_start is 0 per spec.md §3.3.
func NewRoot(g green.Node) *Node {
	return newNode(g, nil, 0)
}

func newNode(g green.Node, parent *Node, relStart int) *Node {
	abs := relStart
	if parent != nil {
		abs = parent.absStart + relStart
	}
	var children []atomic.Pointer[Node]
	if g != nil {
		children = make([]atomic.Pointer[Node], len(g.Children()))
	}
	return &Node{g: g, parent: parent, relStart: relStart, absStart: abs, children: children}
}

// Green returns the wrapped green node.
func (n *Node) Green() green.Node { return n.g }

// Parent returns n's red parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// AbsoluteStart returns n's byte offset from the start of the parsed text.
func (n *Node) AbsoluteStart() int { return n.absStart }

// Width returns n's byte length, delegated to the wrapped green node.
func (n *Node) Width() int {
	if n.g == nil {
		return 0
	}
	return n.g.Width()
}

// End returns the exclusive end offset, AbsoluteStart()+Width().
func (n *Node) End() int { return n.absStart + n.Width() }

// ChildCount returns the number of structural child slots, including any
// that are structurally absent (nil green child).
func (n *Node) ChildCount() int { return len(n.children) }

// Child lazily materializes and returns the i'th red child, or nil if that
// green slot is structurally absent (a colon-less KeyValue section's
// missing colon). Concurrent calls for the same slot race harmlessly:
// at most one winner's *Node is published via CompareAndSwap, and every
// caller observes the same winning pointer afterward, satisfying spec.md
// §5's "once observed, stable for the lifetime of its parent."
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	slot := &n.children[i]
	if cached := slot.Load(); cached != nil {
		return cached
	}
	gc := n.g.Children()[i]
	if gc == nil || isNilTypedNode(gc) {
		return nil
	}
	built := newNode(gc, n, relStartOf(n.g, i))
	if slot.CompareAndSwap(nil, built) {
		return built
	}
	return slot.Load()
}

// Children materializes and returns every child slot in order (nils
// included for structurally absent slots), for callers that want the full
// row rather than random access.
func (n *Node) Children() []*Node {
	out := make([]*Node, n.ChildCount())
	for i := range out {
		out[i] = n.Child(i)
	}
	return out
}

// relStartOf computes the i'th child's byte offset relative to n, the sum
// of the widths of every preceding child (nil slots contribute 0, matching
// their own Width()).
func relStartOf(g green.Node, i int) int {
	children := g.Children()
	offset := 0
	for j := 0; j < i; j++ {
		c := children[j]
		if c == nil || isNilTypedNode(c) {
			continue
		}
		offset += c.Width()
	}
	return offset
}

// isNilTypedNode detects a typed-nil green.Node, the shape
// green.KeyValue.Extra[i].Colon == nil takes when stored back into the
// green.Node interface by Children().
func isNilTypedNode(n green.Node) bool {
	tok, ok := n.(*green.Token)
	return ok && tok == nil
}

// TerminalSymbolsInRange returns, in source order, every leaf red node
// (Width() > 0 structural tokens and value terminals; zero-width nodes
// like MissingValue are skipped since they cannot intersect a non-empty
// range and would otherwise appear twice at a boundary) whose
// [AbsoluteStart, AbsoluteStart+Width) intersects [start, start+length).
func (n *Node) TerminalSymbolsInRange(start, length int) []*Node {
	var out []*Node
	queryEnd := start + length
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		if cur.End() <= start || cur.AbsoluteStart() >= queryEnd {
			return
		}
		if cur.ChildCount() == 0 {
			if cur.Width() > 0 {
				out = append(out, cur)
			}
			return
		}
		for i := 0; i < cur.ChildCount(); i++ {
			walk(cur.Child(i))
		}
	}
	walk(n)
	return out
}
