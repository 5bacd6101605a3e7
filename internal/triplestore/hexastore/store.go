// Package hexastore implements a triple store that keeps the same triples in several permutation indexes.
//
// Each [index.Index] of a [Store] holds the full set of triples under a different [index.Order].
// Queries are answered by the index whose order allows the most direct lookup for the given [Pattern].
package hexastore

import (
	"fmt"
	"unsafe"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/index"
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/slices"
)

// Store holds a set of triples in one or more indexes.
// All indexes always describe the same set of triples.
//
// A Store is not safe for concurrent use, see [Guarded].
type Store struct {
	indexes []*index.Index // sorted by order, at most one per order
}

// New creates a new store holding one index per given order.
// Duplicate orders are ignored.
// When no order is given, uses only [index.SPO].
func New(orders ...index.Order) *Store {
	if len(orders) == 0 {
		orders = []index.Order{index.SPO}
	}

	orders = slices.Clone(orders)
	slices.Sort(orders)
	orders = slices.Compact(orders)

	store := &Store{indexes: make([]*index.Index, len(orders))}
	for i, order := range orders {
		store.indexes[i] = index.New(order)
	}
	return store
}

// NewHexastore creates a new store holding all six possible orders.
func NewHexastore() *Store {
	return New(index.Orders()...)
}

// Orders returns the orders of the indexes of this store, in ascending order.
func (store *Store) Orders() []index.Order {
	orders := make([]index.Order, len(store.indexes))
	for i, idx := range store.indexes {
		orders[i] = idx.Order()
	}
	return orders
}

// Index returns the index of this store with the given order, if any.
func (store *Store) Index(order index.Order) (*index.Index, bool) {
	for _, idx := range store.indexes {
		if idx.Order() == order {
			return idx, true
		}
	}
	return nil, false
}

// Insert inserts a triple into every index and reports if the store changed.
func (store *Store) Insert(triple impl.Triple) bool {
	return store.apply(triple, (*index.Index).Insert)
}

// Remove removes a triple from every index and reports if the store changed.
func (store *Store) Remove(triple impl.Triple) bool {
	return store.apply(triple, (*index.Index).Remove)
}

// apply applies op to every index and returns the common result.
// It panics if the indexes disagree, as they no longer hold the same triples.
func (store *Store) apply(triple impl.Triple, op func(*index.Index, impl.Triple) bool) bool {
	changed := op(store.indexes[0], triple)
	for _, idx := range store.indexes[1:] {
		if op(idx, triple) != changed {
			panic(fmt.Sprintf("hexastore: index %s is inconsistent with index %s on %v", idx.Order(), store.indexes[0].Order(), triple))
		}
	}
	return changed
}

// Contains checks if the store contains the given triple.
func (store *Store) Contains(triple impl.Triple) bool {
	return store.indexes[0].Contains(triple)
}

// Count returns the number of triples in this store.
func (store *Store) Count() uint64 {
	return store.indexes[0].Count()
}

// Reset removes all triples from this store.
func (store *Store) Reset() {
	for _, idx := range store.indexes {
		idx.Reset()
	}
}

// Clone returns an independent copy of this store.
func (store *Store) Clone() *Store {
	clone := &Store{indexes: make([]*index.Index, len(store.indexes))}
	for i, idx := range store.indexes {
		clone.indexes[i] = idx.Clone()
	}
	return clone
}

// MemorySize returns the number of bytes allocated by all indexes of this store.
// It is intended for diagnostics only.
func (store *Store) MemorySize() uintptr {
	size := unsafe.Sizeof(*store) + uintptr(cap(store.indexes))*unsafe.Sizeof(store.indexes[0])
	for _, idx := range store.indexes {
		size += idx.MemorySize()
	}
	return size
}

// Stats holds statistics about a store.
type Stats struct {
	Triples    uint64
	Orders     []index.Order
	MemorySize uintptr
}

// Stats returns statistics about this store.
func (store *Store) Stats() Stats {
	return Stats{
		Triples:    store.Count(),
		Orders:     store.Orders(),
		MemorySize: store.MemorySize(),
	}
}

func (stats Stats) String() string {
	return fmt.Sprintf("%s triple(s) in %d index(es) %v using %s", humanize.Comma(int64(stats.Triples)), len(stats.Orders), stats.Orders, humanize.Bytes(uint64(stats.MemorySize)))
}
