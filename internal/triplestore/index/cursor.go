package index

import (
	"errors"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/sorted"
)

var (
	ErrFinished    = errors.New("cursor is finished")
	ErrInvalidated = errors.New("cursor was invalidated by a modification of its index")
)

// Cursor enumerates the triples of an [Index] in ascending order.
// Triples are returned in subject, predicate, object form regardless of the order of the index.
//
// A cursor is only valid as long as the underlying index is not modified.
// Once the index is modified, [Cursor.Current] and [Cursor.Next] return [ErrInvalidated].
//
// Typical usage is:
//
//	for cursor := index.Cursor(); !cursor.Finished(); cursor.Next() {
//		triple, err := cursor.Current()
//		// ...
//	}
type Cursor struct {
	index      *Index
	generation uint64
	finished   bool

	// the leading levels are pinned to a single entry
	pins int
	pin  [3]int

	rootPos, rootEnd int
	rootKey          impl.ID

	branch               *sorted.Branch
	branchPos, branchEnd int
	branchKey            impl.ID

	leaf             *sorted.Set
	leafPos, leafEnd int
}

func finishedCursor(index *Index) *Cursor {
	return &Cursor{index: index, generation: index.generation, finished: true}
}

// newCursor creates a new cursor and positions it on the first triple.
// pins holds the positions of the pinned entries at the leading levels.
func newCursor(index *Index, pins ...int) *Cursor {
	cursor := &Cursor{
		index:      index,
		generation: index.generation,
		pins:       len(pins),
	}
	copy(cursor.pin[:], pins)

	cursor.rootPos, cursor.rootEnd = cursor.span(0, index.root.Len())
	cursor.seek()
	return cursor
}

// span returns the range of positions to visit on the given level.
func (cursor *Cursor) span(level int, length int) (start, end int) {
	if level < cursor.pins {
		return cursor.pin[level], cursor.pin[level] + 1
	}
	return 0, length
}

// seek moves the cursor forward until it points to a triple.
// If there is no such triple, the cursor is finished.
func (cursor *Cursor) seek() {
	for cursor.rootPos < cursor.rootEnd {
		if cursor.branch == nil {
			cursor.rootKey, cursor.branch = cursor.index.root.At(cursor.rootPos)
			cursor.branchPos, cursor.branchEnd = cursor.span(1, cursor.branch.Len())
		}

		for cursor.branchPos < cursor.branchEnd {
			if cursor.leaf == nil {
				cursor.branchKey, cursor.leaf = cursor.branch.At(cursor.branchPos)
				cursor.leafPos, cursor.leafEnd = cursor.span(2, cursor.leaf.Len())
			}
			if cursor.leafPos < cursor.leafEnd {
				return
			}

			// empty leaf, go to the next branch entry
			cursor.leaf = nil
			cursor.branchPos++
		}

		cursor.branch = nil
		cursor.rootPos++
	}

	cursor.finish()
}

func (cursor *Cursor) finish() {
	cursor.finished = true
	cursor.branch = nil
	cursor.leaf = nil
}

func (cursor *Cursor) invalidated() bool {
	return cursor.index != nil && cursor.index.generation != cursor.generation
}

// Finished reports if there are no more triples to return.
func (cursor *Cursor) Finished() bool {
	return cursor.finished
}

// Current returns the triple the cursor currently points to.
func (cursor *Cursor) Current() (impl.Triple, error) {
	if cursor.invalidated() {
		return impl.Triple{}, ErrInvalidated
	}
	if cursor.finished {
		return impl.Triple{}, ErrFinished
	}
	return cursor.index.order.Triple(cursor.rootKey, cursor.branchKey, cursor.leaf.At(cursor.leafPos)), nil
}

// Next advances the cursor to the next triple.
// When the index has been modified, the cursor is finished and [ErrInvalidated] is returned.
func (cursor *Cursor) Next() error {
	if cursor.invalidated() {
		cursor.finish()
		return ErrInvalidated
	}
	if cursor.finished {
		return ErrFinished
	}

	cursor.leafPos++
	cursor.seek()
	return nil
}

// Close releases all resources held by this cursor and finishes it.
// It is safe to call Close more than once.
func (cursor *Cursor) Close() error {
	cursor.finish()
	cursor.index = nil
	return nil
}
