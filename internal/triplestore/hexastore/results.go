package hexastore

import (
	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/index"
	"github.com/tkw1536/pkglib/iterator"
)

// Plan describes how a [Pattern] is answered by a [Store].
type Plan struct {
	Index  *index.Index
	Prefix []impl.ID // bound components looked up directly, in the order of Index

	// Filter indicates that some bound components are not part of Prefix.
	// Triples returned by the index must then be filtered.
	Filter bool
}

// Select picks the index to answer the given pattern.
//
// It chooses the index whose order has the longest prefix of bound components.
// Ties are broken in favor of the lowest order.
// If no order starts with a bound component, the first index is scanned and filtered.
func (store *Store) Select(pattern Pattern) Plan {
	var plan Plan
	for _, idx := range store.indexes {
		prefix := pattern.prefix(idx.Order())
		if plan.Index == nil || len(prefix) > len(plan.Prefix) {
			plan.Index = idx
			plan.Prefix = prefix
		}
	}
	plan.Filter = len(plan.Prefix) < pattern.BoundCount()
	return plan
}

// Match returns all triples matching the given pattern.
//
// The returned results are only valid until the next modification of the store.
func (store *Store) Match(pattern Pattern) *Results {
	plan := store.Select(pattern)
	results := &Results{
		cursor:  plan.Index.Lookup(plan.Prefix...),
		pattern: pattern,
		filter:  plan.Filter,
	}
	results.err = results.skip()
	return results
}

// Results is a forward-only sequence of triples matching a [Pattern].
type Results struct {
	cursor  *index.Cursor
	pattern Pattern
	filter  bool
	err     error // error that occurred while skipping ahead
}

// skip advances the underlying cursor until it points to a matching triple.
func (results *Results) skip() error {
	if !results.filter {
		return nil
	}
	for !results.cursor.Finished() {
		triple, err := results.cursor.Current()
		if err != nil {
			return err
		}
		if results.pattern.Matches(triple) {
			return nil
		}
		if err := results.cursor.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Finished reports if there are no more triples.
func (results *Results) Finished() bool {
	return results.cursor.Finished()
}

// Current returns the current triple.
func (results *Results) Current() (impl.Triple, error) {
	if results.err != nil {
		return impl.Triple{}, results.err
	}
	return results.cursor.Current()
}

// Next advances to the next matching triple.
// Once an error occurred, Next returns it and finishes the results.
func (results *Results) Next() error {
	if results.err != nil {
		results.cursor.Close()
		return results.err
	}
	if err := results.cursor.Next(); err != nil {
		return err
	}
	results.err = results.skip()
	return results.err
}

// Close releases the resources associated with these results.
func (results *Results) Close() error {
	return results.cursor.Close()
}

// Drain returns all remaining triples and closes the results.
func (results *Results) Drain() (triples []impl.Triple, err error) {
	defer results.Close()

	for !results.Finished() {
		triple, err := results.Current()
		if err != nil {
			return triples, err
		}
		triples = append(triples, triple)
		if err := results.Next(); err != nil {
			return triples, err
		}
	}
	return triples, nil
}

// Iterator returns an iterator over the remaining triples.
// The results are closed once the iterator is.
func (results *Results) Iterator() iterator.Iterator[impl.Triple] {
	return iterator.New(func(generator iterator.Generator[impl.Triple]) {
		defer generator.Return()
		defer results.Close()

		for !results.Finished() {
			triple, err := results.Current()
			if generator.YieldError(err) {
				return
			}
			if generator.Yield(triple) {
				return
			}
			if generator.YieldError(results.Next()) {
				return
			}
		}
	})
}
