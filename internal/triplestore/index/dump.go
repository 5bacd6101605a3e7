package index

import (
	"fmt"
	"io"
)

// Dump writes a human-readable representation of the index structure to w.
//
// The output lists every root key, every branch key below it and the leaf set below that.
// It is intended for debugging only; the format may change at any time.
func (index *Index) Dump(w io.Writer) error {
	positions := index.order.Positions()
	if _, err := fmt.Fprintf(w, "Index(%s, triples=%d)\n", index.order, index.count); err != nil {
		return fmt.Errorf("failed to dump index: %w", err)
	}

	for i := 0; i < index.root.Len(); i++ {
		a, branch := index.root.At(i)
		if _, err := fmt.Fprintf(w, "- %s %d (%d entries)\n", positions[0], a, branch.Len()); err != nil {
			return fmt.Errorf("failed to dump index: %w", err)
		}

		for j := 0; j < branch.Len(); j++ {
			b, leaf := branch.At(j)
			if _, err := fmt.Fprintf(w, "  - %s %d: %s %s\n", positions[1], b, positions[2], leaf); err != nil {
				return fmt.Errorf("failed to dump index: %w", err)
			}
		}
	}
	return nil
}
