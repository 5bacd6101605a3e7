package sorted

import (
	"unsafe"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"golang.org/x/exp/slices"
)

// Child is a level that can be stored inside a [Map].
type Child interface {
	// Len returns the number of entries directly inside this level.
	Len() int

	// Count returns the number of triples represented by this level.
	Count() uint64

	// MemorySize returns the number of bytes allocated by this level, including its children.
	MemorySize() uintptr
}

// Entry is a single key-child pair inside a [Map].
type Entry[V Child] struct {
	Key   impl.ID
	Value V
}

// Map is a sorted map from node ids to exclusively owned children.
// Within an index, it is used both for the root level (children are branches)
// and the branch level (children are sets).
//
// A Map never holds an empty child once the owner of the map has called [RemoveIfEmpty].
// The zero Map is not ready to use, use [NewMap] instead.
type Map[V Child] struct {
	buf      Buffer[Entry[V]]
	newChild func() V
}

// NewMap creates a new empty map which uses newChild to create empty children.
func NewMap[V Child](newChild func() V) *Map[V] {
	return &Map[V]{newChild: newChild}
}

// Branch is the middle level of an index.
type Branch = Map[*Set]

// NewBranch creates a new empty branch.
func NewBranch() *Branch {
	return NewMap(NewSet)
}

// Root is the top level of an index.
type Root = Map[*Branch]

// NewRoot creates a new empty root.
func NewRoot() *Root {
	return NewMap(NewBranch)
}

func compareEntry[V Child](entry Entry[V], key impl.ID) int {
	return entry.Key.Compare(key)
}

// Find searches for key in this map.
// It reports whether key is present, and the position at which it is (or would be inserted).
func (mp *Map[V]) Find(key impl.ID) (found bool, pos int) {
	pos, found = slices.BinarySearchFunc(mp.buf.Slice(), key, compareEntry[V])
	return found, pos
}

// Get returns the child stored under key, if any.
func (mp *Map[V]) Get(key impl.ID) (child V, ok bool) {
	found, pos := mp.Find(key)
	if !found {
		return child, false
	}
	return mp.buf.At(pos).Value, true
}

// Ensure returns the child stored under key.
// If there is no such child, a new empty one is created and stored.
func (mp *Map[V]) Ensure(key impl.ID) V {
	found, pos := mp.Find(key)
	if found {
		return mp.buf.At(pos).Value
	}

	child := mp.newChild()
	mp.buf.Insert(pos, Entry[V]{Key: key, Value: child})
	return child
}

// Remove removes key and the child stored under it.
// It reports if key was present.
func (mp *Map[V]) Remove(key impl.ID) bool {
	found, pos := mp.Find(key)
	if !found {
		return false
	}
	mp.buf.Remove(pos)
	return true
}

// RemoveIfEmpty removes key if the child stored under it is empty.
// It reports if the key was removed.
//
// Owners call this after mutating a child, so that emptiness propagates upwards.
func (mp *Map[V]) RemoveIfEmpty(key impl.ID) bool {
	found, pos := mp.Find(key)
	if !found || mp.buf.At(pos).Value.Len() != 0 {
		return false
	}
	mp.buf.Remove(pos)
	return true
}

// At returns the key and child at position i.
func (mp *Map[V]) At(i int) (impl.ID, V) {
	entry := mp.buf.At(i)
	return entry.Key, entry.Value
}

// Len returns the number of keys in this map.
func (mp *Map[V]) Len() int {
	return mp.buf.Len()
}

// Cap returns the capacity of the underlying buffer.
func (mp *Map[V]) Cap() int {
	return mp.buf.Cap()
}

// Count returns the number of triples below this map.
// It walks all children; indexes keep their own running count instead.
func (mp *Map[V]) Count() (total uint64) {
	for _, entry := range mp.buf.Slice() {
		total += entry.Value.Count()
	}
	return total
}

// MemorySize returns the number of bytes allocated by this map and all of its children.
func (mp *Map[V]) MemorySize() uintptr {
	size := unsafe.Sizeof(*mp) - unsafe.Sizeof(mp.buf) + mp.buf.MemorySize()
	for _, entry := range mp.buf.Slice() {
		size += entry.Value.MemorySize()
	}
	return size
}
