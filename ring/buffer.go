// Package ring implements the bounded, newest-first history buffer
// described in spec.md §4.5: a fixed-capacity FIFO-over-most-recent
// container for host-side undo history and diagnostics replay. Nothing in
// the retrieved corpus implements this shape directly; the contract is
// taken verbatim from spec.md §4.5/§8 and built fresh in the idiom the rest
// of this module uses (precondition panics via internal/invariant, a
// generic value-holder type the way green.Node holds concrete payloads).
package ring

import "github.com/jsonwc/cst/internal/invariant"

// Buffer is a bounded container holding at most maxCapacity items, indexed
// from newest (index 0) to oldest (index Count()-1). The zero value is not
// usable; construct with New.
type Buffer[T any] struct {
	items       []T // items[0] is the oldest retained item, items[len-1] is the newest
	maxCapacity int
}

// New constructs a Buffer with the given capacity. maxCapacity must be >= 1
// (spec.md §4.5: "Values ≤ 0 are rejected").
func New[T any](maxCapacity int) *Buffer[T] {
	invariant.Precondition(maxCapacity >= 1, "ring.New: maxCapacity must be >= 1, got %d", maxCapacity)
	return &Buffer[T]{maxCapacity: maxCapacity}
}

// Count returns the number of items currently held.
func (b *Buffer[T]) Count() int { return len(b.items) }

// MaxCapacity returns the current capacity.
func (b *Buffer[T]) MaxCapacity() int { return b.maxCapacity }

// Add appends x as the newest item, evicting the oldest item first if the
// buffer is already at capacity.
func (b *Buffer[T]) Add(x T) {
	if len(b.items) == b.maxCapacity {
		// Evict oldest (index 0 of the backing slice) before appending.
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
	}
	b.items = append(b.items, x)
}

// At returns the item at i, where 0 is the most recently added item and
// Count()-1 is the oldest. Panics on an out-of-range index: a programmer
// error, not a soft runtime condition (spec.md §4.5 defines no "missing
// item" sentinel for this contract).
func (b *Buffer[T]) At(i int) T {
	invariant.Precondition(i >= 0 && i < len(b.items), "ring.Buffer.At: index %d out of range [0,%d)", i, len(b.items))
	return b.items[len(b.items)-1-i]
}

// SetMaxCapacity changes the capacity at runtime. Lowering it below the
// current Count trims the oldest excess items, preserving the relative
// order of what remains (spec.md §8's circular-buffer properties).
func (b *Buffer[T]) SetMaxCapacity(newCapacity int) {
	invariant.Precondition(newCapacity >= 1, "ring.Buffer.SetMaxCapacity: newCapacity must be >= 1, got %d", newCapacity)
	if excess := len(b.items) - newCapacity; excess > 0 {
		b.items = append(b.items[:0:0], b.items[excess:]...)
	}
	b.maxCapacity = newCapacity
}

// All returns every held item, newest first, as a fresh slice the caller
// may freely mutate.
func (b *Buffer[T]) All() []T {
	out := make([]T, len(b.items))
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}
