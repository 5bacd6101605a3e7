// Package loader reads RDF data into a store.
package loader

import (
	"io"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/terms"
	"github.com/cayleygraph/quad/nquads"
)

// Source represents a source of triples
type Source interface {
	// Open opens this data source.
	//
	// It is valid to call open more than once after Next() returns a token with err = io.EOF.
	// In this case the second call to open should reset the data source.
	Open() error

	// Close closes this source.
	Close() error

	// Next scans the next token
	Next() Token
}

// Token represents a single triple read from a source.
// When Err is not nil, the labels are not set.
// When Err is io.EOF, the source is exhausted.
type Token struct {
	Err       error
	Subject   impl.Label
	Predicate impl.Label
	Object    impl.Label
}

// QuadSource reads triples from an N-Quads file.
// The graph label of each quad is ignored.
type QuadSource struct {
	Reader io.ReadSeeker
	reader *nquads.Reader
}

func (qs *QuadSource) Open() error {
	// if we previously had a reader
	// then we need to reset the state
	if qs.reader != nil {
		if err := qs.reader.Close(); err != nil {
			return err
		}
		if _, err := qs.Reader.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	qs.reader = nquads.NewReader(qs.Reader, true)
	return nil
}

// Next reads the next token from the QuadSource
func (qs *QuadSource) Next() Token {
	value, err := qs.reader.ReadQuad()
	if err != nil {
		return Token{Err: err}
	}

	var tok Token
	if tok.Subject, err = terms.FromQuad(value.Subject); err != nil {
		return Token{Err: err}
	}
	if tok.Predicate, err = terms.FromQuad(value.Predicate); err != nil {
		return Token{Err: err}
	}
	if tok.Object, err = terms.FromQuad(value.Object); err != nil {
		return Token{Err: err}
	}
	return tok
}

func (qs *QuadSource) Close() error {
	if qs.reader != nil {
		return qs.reader.Close()
	}
	return nil
}

// SliceSource is a source holding a fixed list of triples.
type SliceSource struct {
	Triples [][3]impl.Label
	pos     int
}

func (ss *SliceSource) Open() error {
	ss.pos = 0
	return nil
}

func (ss *SliceSource) Close() error {
	return nil
}

func (ss *SliceSource) Next() Token {
	if ss.pos >= len(ss.Triples) {
		return Token{Err: io.EOF}
	}
	triple := ss.Triples[ss.pos]
	ss.pos++
	return Token{Subject: triple[0], Predicate: triple[1], Object: triple[2]}
}
