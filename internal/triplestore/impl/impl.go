// Package impl holds the basic types shared by all parts of the triplestore.
package impl

import "fmt"

// Label is the textual representation of a single RDF term.
// It uses N-Quads syntax, e.g. "<http://example.com/>", "_:b0" or "\"hello\"@en".
type Label string

// Position names one of the three roles of a triple.
type Position uint8

const (
	Subject Position = iota
	Predicate
	Object
)

func (p Position) String() string {
	switch p {
	case Subject:
		return "subject"
	case Predicate:
		return "predicate"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Position(%d)", uint8(p))
	}
}

// Triple is a (subject, predicate, object) fact, each component a node id.
type Triple struct {
	Subject   ID
	Predicate ID
	Object    ID
}

// Get returns the component of this triple at the given position.
func (t Triple) Get(p Position) ID {
	switch p {
	case Subject:
		return t.Subject
	case Predicate:
		return t.Predicate
	case Object:
		return t.Object
	}
	panic("Triple.Get: invalid position")
}

// Set sets the component of this triple at the given position.
func (t *Triple) Set(p Position, id ID) {
	switch p {
	case Subject:
		t.Subject = id
	case Predicate:
		t.Predicate = id
	case Object:
		t.Object = id
	default:
		panic("Triple.Set: invalid position")
	}
}

// Compare compares two triples lexicographically in (subject, predicate, object) order.
func (t Triple) Compare(other Triple) int {
	if c := t.Subject.Compare(other.Subject); c != 0 {
		return c
	}
	if c := t.Predicate.Compare(other.Predicate); c != 0 {
		return c
	}
	return t.Object.Compare(other.Object)
}

func (t Triple) String() string {
	return fmt.Sprintf("{ %d, %d, %d }", t.Subject, t.Predicate, t.Object)
}
