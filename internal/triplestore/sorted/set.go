package sorted

import (
	"fmt"
	"strings"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"golang.org/x/exp/slices"
)

// Set is a sorted set of node ids.
// Within an index, it holds all third components found under a fixed first and second component.
//
// The zero Set is empty and ready to use.
type Set struct {
	buf Buffer[impl.ID]
}

// NewSet creates a new empty set.
func NewSet() *Set {
	return new(Set)
}

// Find searches for id in this set.
// It reports whether id is present, and the position at which it is (or would be inserted).
// The position is the first one whose stored value is >= id.
func (set *Set) Find(id impl.ID) (found bool, pos int) {
	pos, found = slices.BinarySearchFunc(set.buf.Slice(), id, impl.ID.Compare)
	return found, pos
}

// Contains checks if id is contained in this set.
func (set *Set) Contains(id impl.ID) bool {
	found, _ := set.Find(id)
	return found
}

// Add adds id to this set, and reports if it was newly added.
func (set *Set) Add(id impl.ID) bool {
	found, pos := set.Find(id)
	if found {
		return false
	}
	set.buf.Insert(pos, id)
	return true
}

// Remove removes id from this set, and reports if it was present.
func (set *Set) Remove(id impl.ID) bool {
	found, pos := set.Find(id)
	if !found {
		return false
	}
	set.buf.Remove(pos)
	return true
}

// Len returns the number of ids in this set.
func (set *Set) Len() int {
	return set.buf.Len()
}

// Cap returns the capacity of the underlying buffer.
func (set *Set) Cap() int {
	return set.buf.Cap()
}

// Count returns the number of triples represented by this set, which is its size.
func (set *Set) Count() uint64 {
	return uint64(set.buf.Len())
}

// At returns the id at position i.
func (set *Set) At(i int) impl.ID {
	return set.buf.At(i)
}

// MemorySize returns the number of bytes allocated by this set.
func (set *Set) MemorySize() uintptr {
	return set.buf.MemorySize()
}

// String formats this set for debugging.
func (set *Set) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Set(size=%d, cap=%d)[", set.Len(), set.Cap())
	for i, id := range set.buf.Slice() {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%d", uint32(id))
	}
	builder.WriteString("]")
	return builder.String()
}

// Iter returns a new iterator over the ids in this set, in ascending order.
// Calling Iter again restarts from the beginning.
//
// The iterator must not be used after the set has been modified.
func (set *Set) Iter() *SetIter {
	return &SetIter{set: set}
}

// SetIter is a forward-only iterator over a [Set].
type SetIter struct {
	set *Set
	pos int
}

// Finished reports if there are no more ids.
func (it *SetIter) Finished() bool {
	return it.pos >= it.set.Len()
}

// Current returns the current id.
// When the iterator is finished, returns the invalid zero id.
func (it *SetIter) Current() impl.ID {
	if it.Finished() {
		return 0
	}
	return it.set.At(it.pos)
}

// Next advances to the next id.
func (it *SetIter) Next() {
	if !it.Finished() {
		it.pos++
	}
}
