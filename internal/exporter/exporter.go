// Package exporter writes the triples of a store to external formats.
package exporter

import (
	"fmt"

	"github.com/FAU-CDI/hexastore/internal/status"
	"github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

// Exporter receives triples to export.
type Exporter interface {
	// Begin is called before the first triple.
	// count is the expected number of triples, or 0 if unknown.
	Begin(count uint64) error

	// Add adds a single triple.
	Add(triple Triple) error

	// End is called once all triples have been added.
	End() error

	// Close closes this exporter and any underlying resources.
	Close() error
}

// Triple is a triple with resolved labels.
type Triple struct {
	Subject   impl.Label
	Predicate impl.Label
	Object    impl.Label
}

// Export resolves all triples in store matching pattern and passes them to exporter.
// The store must not be modified during the export.
func Export(store *hexastore.Store, nodes *imap.NodeMap, pattern hexastore.Pattern, exporter Exporter, st *status.Status) error {
	var count uint64
	if pattern.BoundCount() == 0 {
		count = store.Count()
	}
	if err := exporter.Begin(count); err != nil {
		return fmt.Errorf("failed to begin export: %w", err)
	}

	triples := store.Match(pattern).Iterator()
	defer triples.Close()

	var index int
	for triples.Next() {
		triple, err := resolve(nodes, triples.Datum())
		if err != nil {
			return err
		}
		if err := exporter.Add(triple); err != nil {
			return fmt.Errorf("failed to export triple: %w", err)
		}

		index++
		st.SetCT(index, int(count))
	}
	if err := triples.Err(); err != nil {
		return fmt.Errorf("failed to iterate triples: %w", err)
	}

	if err := exporter.End(); err != nil {
		return fmt.Errorf("failed to end export: %w", err)
	}
	return nil
}

func resolve(nodes *imap.NodeMap, triple impl.Triple) (labeled Triple, err error) {
	if labeled.Subject, err = nodes.Externalize(triple.Subject); err != nil {
		return labeled, fmt.Errorf("failed to resolve subject: %w", err)
	}
	if labeled.Predicate, err = nodes.Externalize(triple.Predicate); err != nil {
		return labeled, fmt.Errorf("failed to resolve predicate: %w", err)
	}
	if labeled.Object, err = nodes.Externalize(triple.Object); err != nil {
		return labeled, fmt.Errorf("failed to resolve object: %w", err)
	}
	return labeled, nil
}
