// Package index implements a single permutation index of a triple collection.
//
// An [Index] stores triples in three nested sorted levels.
// The [Order] of the index determines which triple role is stored at which level.
// Triples can be enumerated using a [Cursor], either all of them or those below a bound prefix.
package index

import (
	"fmt"
	"unsafe"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/sorted"
)

// Index holds a set of triples, stored under a fixed [Order].
//
// An Index may not be modified concurrently.
// Any modification invalidates all outstanding cursors.
type Index struct {
	order Order
	root  *sorted.Root

	count      uint64 // number of triples, maintained on every insert and remove
	generation uint64 // incremented on every structural change
}

// New creates a new empty index with the given order.
func New(order Order) *Index {
	if !order.Valid() {
		panic(fmt.Sprintf("index.New: invalid order %d", uint8(order)))
	}
	return &Index{
		order: order,
		root:  sorted.NewRoot(),
	}
}

// Order returns the order of this index.
func (index *Index) Order() Order {
	return index.order
}

// Count returns the number of triples in this index.
func (index *Index) Count() uint64 {
	return index.count
}

// Insert inserts a triple into this index and reports if it was newly added.
// Inserting a triple that already exists has no effect.
func (index *Index) Insert(triple impl.Triple) bool {
	a, b, c := index.order.Project(triple)

	if !index.root.Ensure(a).Ensure(b).Add(c) {
		return false
	}

	index.count++
	index.generation++
	return true
}

// Remove removes a triple from this index and reports if it was present.
// Removing a triple that does not exist has no effect.
//
// Levels that become empty are removed as well.
func (index *Index) Remove(triple impl.Triple) bool {
	a, b, c := index.order.Project(triple)

	branch, ok := index.root.Get(a)
	if !ok {
		return false
	}
	leaf, ok := branch.Get(b)
	if !ok {
		return false
	}
	if !leaf.Remove(c) {
		return false
	}

	if branch.RemoveIfEmpty(b) {
		index.root.RemoveIfEmpty(a)
	}

	index.count--
	index.generation++
	return true
}

// Contains checks if this index contains the given triple.
func (index *Index) Contains(triple impl.Triple) bool {
	a, b, c := index.order.Project(triple)

	branch, ok := index.root.Get(a)
	if !ok {
		return false
	}
	leaf, ok := branch.Get(b)
	if !ok {
		return false
	}
	return leaf.Contains(c)
}

// Reset removes all triples from this index.
func (index *Index) Reset() {
	index.root = sorted.NewRoot()
	index.count = 0
	index.generation++
}

// Clone returns an independent copy of this index.
// It can be used to take a snapshot before iterating over an index that is modified concurrently.
func (index *Index) Clone() *Index {
	clone := New(index.order)
	for cursor := index.Cursor(); !cursor.Finished(); cursor.Next() {
		triple, _ := cursor.Current() // cannot fail, index is not modified
		clone.Insert(triple)
	}
	return clone
}

// MemorySize returns the number of bytes allocated by this index.
// This includes the unused capacity of every level.
//
// It is intended for diagnostics only.
func (index *Index) MemorySize() uintptr {
	return unsafe.Sizeof(*index) + index.root.MemorySize()
}

// Cursor returns a cursor over all triples in this index.
func (index *Index) Cursor() *Cursor {
	return newCursor(index)
}

// Lookup returns a cursor over all triples starting with the given prefix.
// The prefix holds up to three keys, matching the root, branch and leaf levels in the order of this index.
//
// When any key of the prefix does not exist, the returned cursor is finished.
func (index *Index) Lookup(prefix ...impl.ID) *Cursor {
	if len(prefix) > 3 {
		panic("Index.Lookup: prefix too long")
	}
	if len(prefix) == 0 {
		return newCursor(index)
	}

	found, i := index.root.Find(prefix[0])
	if !found {
		return finishedCursor(index)
	}
	if len(prefix) == 1 {
		return newCursor(index, i)
	}

	_, branch := index.root.At(i)
	found, j := branch.Find(prefix[1])
	if !found {
		return finishedCursor(index)
	}
	if len(prefix) == 2 {
		return newCursor(index, i, j)
	}

	_, leaf := branch.At(j)
	found, k := leaf.Find(prefix[2])
	if !found {
		return finishedCursor(index)
	}
	return newCursor(index, i, j, k)
}
