package bindings

import (
	"errors"
	"fmt"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

// Iterator is a forward-only sequence of [Bindings] sharing the same columns.
type Iterator interface {
	// Finished reports if there are no more bindings.
	Finished() bool

	// Current returns the current bindings.
	Current() (*Bindings, error)

	// Next moves to the next bindings.
	Next() error

	// Close releases any resources held by this iterator.
	Close() error

	// Columns returns the number of columns of each bindings.
	Columns() int

	// Names returns the names of the columns.
	Names() []string
}

// Source is a forward-only sequence of triples.
// It is implemented by cursors and query results.
type Source interface {
	Finished() bool
	Current() (impl.Triple, error)
	Next() error
	Close() error
}

var errNoColumns = errors.New("no variable names given")

// NewPatternIterator returns an iterator that binds the components of each triple in source to the given names.
// The names are given in subject, predicate, object order.
// Components with an empty name are not part of the bindings, typically because they were bound in the query.
func NewPatternIterator(source Source, names [3]string) (Iterator, error) {
	iter := &patternIterator{source: source}
	for i, name := range names {
		if name == "" {
			continue
		}
		iter.positions = append(iter.positions, impl.Position(i))
		iter.names = append(iter.names, name)
	}
	if len(iter.names) == 0 {
		source.Close()
		return nil, fmt.Errorf("failed to create iterator: %w", errNoColumns)
	}
	return iter, nil
}

type patternIterator struct {
	source    Source
	positions []impl.Position
	names     []string
}

func (iter *patternIterator) Finished() bool {
	return iter.source.Finished()
}

func (iter *patternIterator) Current() (*Bindings, error) {
	triple, err := iter.source.Current()
	if err != nil {
		return nil, err
	}

	nodes := make([]impl.ID, len(iter.positions))
	for i, position := range iter.positions {
		nodes[i] = triple.Get(position)
	}
	return &Bindings{Names: iter.names, Nodes: nodes}, nil
}

func (iter *patternIterator) Next() error {
	return iter.source.Next()
}

func (iter *patternIterator) Close() error {
	return iter.source.Close()
}

func (iter *patternIterator) Columns() int {
	return len(iter.names)
}

func (iter *patternIterator) Names() []string {
	return iter.names
}

// Drain reads all remaining bindings from iter and closes it.
func Drain(iter Iterator) (all []*Bindings, err error) {
	defer func() {
		err = errors.Join(err, iter.Close())
	}()

	for !iter.Finished() {
		bindings, err := iter.Current()
		if err != nil {
			return all, err
		}
		all = append(all, bindings)
		if err := iter.Next(); err != nil {
			return all, err
		}
	}
	return all, nil
}
