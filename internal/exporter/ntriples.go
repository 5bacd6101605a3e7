package exporter

import (
	"fmt"
	"io"

	"github.com/FAU-CDI/hexastore/internal/triplestore/terms"
	"github.com/anglo-korean/rdf"
)

// NTriples writes triples in N-Triples format.
type NTriples struct {
	Writer io.Writer

	encoder *rdf.TripleEncoder
}

func (nt *NTriples) Begin(count uint64) error {
	nt.encoder = rdf.NewTripleEncoder(nt.Writer, rdf.NTriples)
	return nil
}

func (nt *NTriples) Add(triple Triple) error {
	spo, err := terms.Triple(triple.Subject, triple.Predicate, triple.Object)
	if err != nil {
		return err
	}
	if err := nt.encoder.Encode(spo); err != nil {
		return fmt.Errorf("failed to encode triple: %w", err)
	}
	return nil
}

// End flushes all triples to the writer.
func (nt *NTriples) End() error {
	if err := nt.encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush triples: %w", err)
	}
	return nil
}

// Close closes the writer if it is an io.Closer.
func (nt *NTriples) Close() error {
	if closer, ok := nt.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
