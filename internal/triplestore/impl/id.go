package impl

// cspell:words twiesing

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ID identifies a single node (an RDF term) within a store.
// Not all IDs are valid, see [Valid].
//
// IDs are totally ordered by their numerical value.
// The mapping between IDs and the terms they represent is owned by a node map, see package imap.
type ID uint32

// IDLen is the size of an encoded ID in bytes.
const IDLen = 4

// Valid checks if this ID is valid.
// The zero ID is never handed out for a node, and is used to represent an unbound position.
func (id ID) Valid() bool {
	return id != 0
}

// Reset resets this id to an invalid value.
func (id *ID) Reset() {
	*id = 0
}

// Inc increments this ID, and then returns a copy of the new value.
// It is the equivalent of the "++" operator.
//
// When Inc() exceeds the maximum possible value for an ID, panics.
func (id *ID) Inc() ID {
	if *id == ^ID(0) {
		// NOTE(twiesing): If this line is ever reached we should increase the size of the ID type.
		panic("ID.Inc: Overflow (not enough IDs)")
	}
	*id++
	return *id
}

// Compare compares this ID to another id.
// The result will be 0 if id == other, -1 if id < other, and +1 if id > other.
func (id ID) Compare(other ID) int {
	switch {
	case id < other:
		return -1
	case id > other:
		return 1
	default:
		return 0
	}
}

// String formats this id as a string.
// It is only intended for debugging, and should not be used for production code.
func (id ID) String() string {
	return fmt.Sprintf("ID(%d)", uint32(id))
}

// Encode encodes id using a big endian encoding into dest.
// dest must be of at least size [IDLen].
//
// Comparing two encoded ids using [bytes.Compare] produces the same result as [Compare].
func (id ID) Encode(dest []byte) {
	binary.BigEndian.PutUint32(dest, uint32(id))
}

// Decode sets this id to be the value that has been decoded from src.
// src must be of at least size IDLen, or a runtime panic occurs.
func (id *ID) Decode(src []byte) {
	*id = ID(binary.BigEndian.Uint32(src))
}

var errMarshal = errors.New("MarshalIDs: invalid length")

// MarshalIDs writes the encoded ids into dst, one after the other.
func MarshalIDs(dst []byte, ids ...ID) error {
	if len(dst) < len(ids)*IDLen {
		return errMarshal
	}
	for i, id := range ids {
		id.Encode(dst[i*IDLen:])
	}
	return nil
}

// MarshalID encodes a single id into a new slice.
func MarshalID(value ID) ([]byte, error) {
	dest := make([]byte, IDLen)
	return dest, MarshalIDs(dest, value)
}

var errUnmarshal = errors.New("UnmarshalID: invalid length")

// UnmarshalID behaves like [dest.Decode], but produces an error
// when there are insufficient number of bytes in src.
func UnmarshalID(dest *ID, src []byte) error {
	if len(src) < IDLen {
		return errUnmarshal
	}
	dest.Decode(src)
	return nil
}
