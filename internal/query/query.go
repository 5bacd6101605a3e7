// Package query answers a single triple pattern given as labels.
package query

import (
	"fmt"
	"io"
	"strings"

	"github.com/FAU-CDI/hexastore/internal/triplestore/bindings"
	"github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

// Terms hold the terms of a pattern in subject, predicate, object order.
// An empty term or '?' is a wildcard named after its position, a term of the form '?name' is a wildcard named name.
// Any other term is the label of a node.
type Terms struct {
	Subject, Predicate, Object string
}

// Given checks if any term was given.
func (terms Terms) Given() bool {
	return terms.Subject != "" || terms.Predicate != "" || terms.Object != ""
}

// Names returns the names of the wildcards, with an empty name for every label.
func (terms Terms) Names() (names [3]string) {
	for i, term := range terms.all() {
		switch {
		case term == "" || term == "?":
			names[i] = impl.Position(i).String()
		case strings.HasPrefix(term, "?"):
			names[i] = strings.TrimPrefix(term, "?")
		}
	}
	return names
}

func (terms Terms) all() [3]string {
	return [3]string{terms.Subject, terms.Predicate, terms.Object}
}

// Resolve turns the labels of terms into a pattern.
// known is false if any label is not known to nodes, in which case the pattern matches nothing.
func (terms Terms) Resolve(nodes *imap.NodeMap) (pattern hexastore.Pattern, known bool, err error) {
	names := terms.Names()

	var triple impl.Triple
	for i, term := range terms.all() {
		if names[i] != "" {
			continue
		}

		position := impl.Position(i)
		id, ok, err := nodes.Get(impl.Label(term))
		if err != nil {
			return pattern, false, fmt.Errorf("failed to resolve %s: %w", position, err)
		}
		if !ok {
			return pattern, false, nil
		}
		triple.Set(position, id)
	}

	return hexastore.Pattern{Subject: triple.Subject, Predicate: triple.Predicate, Object: triple.Object}, true, nil
}

// Run writes one line for every binding of the wildcards in terms to w.
// When terms hold no wildcards, a single line containing true or false is written.
func Run(w io.Writer, store *hexastore.Store, nodes *imap.NodeMap, terms Terms) (e error) {
	pattern, known, err := terms.Resolve(nodes)
	if err != nil {
		return err
	}

	names := terms.Names()
	if names == [3]string{} {
		_, err := fmt.Fprintln(w, known && store.Contains(pattern.Triple()))
		return err
	}
	if !known {
		return nil
	}

	iter, err := bindings.NewPatternIterator(store.Match(pattern), names)
	if err != nil {
		return err
	}
	defer func() {
		if err := iter.Close(); err != nil && e == nil {
			e = err
		}
	}()

	for !iter.Finished() {
		row, err := iter.Current()
		if err != nil {
			return err
		}
		line, err := row.Format(nodes)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := iter.Next(); err != nil {
			return fmt.Errorf("failed to advance results: %w", err)
		}
	}
	return nil
}
