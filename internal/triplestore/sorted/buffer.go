// Package sorted implements the sorted, duplicate-free arrays making up the levels of an index.
//
// All levels share a single growable [Buffer].
// A [Set] holds the innermost level (the ids found under a fixed first and second component),
// a [Map] holds the outer levels (ids mapped to an exclusively owned child level).
//
// None of the types in this package are safe for concurrent mutation.
package sorted

import "unsafe"

// MinCapacity is the smallest capacity a non-empty Buffer ever has.
const MinCapacity = 2

// Buffer is a growable array with explicit capacity management.
//
// The capacity doubles whenever an element is inserted into a full buffer,
// and halves whenever the size drops below a quarter of the capacity.
// The gap between the two thresholds prevents alternating inserts and removes from re-allocating every time.
//
// The zero Buffer is empty and ready to use.
type Buffer[E any] struct {
	elems []E // allocated storage, len(elems) is the capacity
	size  int // number of elements in use
}

// Len returns the number of elements in this buffer.
func (buf *Buffer[E]) Len() int {
	return buf.size
}

// Cap returns the number of elements this buffer can hold before having to grow.
func (buf *Buffer[E]) Cap() int {
	return len(buf.elems)
}

// At returns the element at position i.
// i must be in [0, Len()).
func (buf *Buffer[E]) At(i int) E {
	if i >= buf.size {
		panic("Buffer.At: index out of range")
	}
	return buf.elems[i]
}

// Slice returns the elements currently in use.
// The returned slice aliases the buffer and is invalidated by the next Insert or Remove.
func (buf *Buffer[E]) Slice() []E {
	return buf.elems[:buf.size]
}

// Insert inserts elem at position pos, shifting all later elements to the right.
// pos must be in [0, Len()].
//
// When the buffer is full, it is first grown.
// Growing allocates and copies into a fresh array before anything is modified,
// so a failed allocation leaves the buffer untouched.
func (buf *Buffer[E]) Insert(pos int, elem E) {
	if pos < 0 || pos > buf.size {
		panic("Buffer.Insert: index out of range")
	}

	if buf.size == len(buf.elems) {
		capacity := 2 * len(buf.elems)
		if capacity < MinCapacity {
			capacity = MinCapacity
		}
		buf.resize(capacity)
	}

	copy(buf.elems[pos+1:buf.size+1], buf.elems[pos:buf.size])
	buf.elems[pos] = elem
	buf.size++
}

// Remove removes the element at position pos, shifting all later elements to the left.
// pos must be in [0, Len()).
//
// When the remaining elements use less than a quarter of the capacity, the buffer is shrunk.
func (buf *Buffer[E]) Remove(pos int) {
	if pos < 0 || pos >= buf.size {
		panic("Buffer.Remove: index out of range")
	}

	copy(buf.elems[pos:buf.size-1], buf.elems[pos+1:buf.size])
	buf.size--

	// clear the now unused slot, so that it does not keep a child alive
	var zero E
	buf.elems[buf.size] = zero

	if capacity := len(buf.elems); capacity > MinCapacity && buf.size < capacity/4 {
		capacity /= 2
		if capacity < MinCapacity {
			capacity = MinCapacity
		}
		buf.resize(capacity)
	}
}

// resize moves the elements into a new array of the given capacity.
func (buf *Buffer[E]) resize(capacity int) {
	elems := make([]E, capacity)
	copy(elems, buf.elems[:buf.size])
	buf.elems = elems
}

// MemorySize returns the number of bytes allocated by this buffer.
// Children referenced by elements are not included.
func (buf *Buffer[E]) MemorySize() uintptr {
	var zero E
	return unsafe.Sizeof(*buf) + uintptr(len(buf.elems))*unsafe.Sizeof(zero)
}
