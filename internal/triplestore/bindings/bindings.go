// Package bindings associates triples returned by a query with variable names.
package bindings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

// Bindings holds one row of query results.
// Each column binds a variable name to a node.
type Bindings struct {
	Names []string
	Nodes []impl.ID
}

var errColumnMismatch = errors.New("number of names and nodes differ")

// New creates a new set of bindings.
func New(names []string, nodes []impl.ID) (*Bindings, error) {
	if len(names) != len(nodes) {
		return nil, fmt.Errorf("failed to create bindings: %w", errColumnMismatch)
	}
	return &Bindings{Names: names, Nodes: nodes}, nil
}

// Len returns the number of columns.
func (bindings *Bindings) Len() int {
	return len(bindings.Nodes)
}

// Name returns the variable name of the given column.
func (bindings *Bindings) Name(column int) string {
	return bindings.Names[column]
}

// Node returns the node bound in the given column.
func (bindings *Bindings) Node(column int) impl.ID {
	return bindings.Nodes[column]
}

// Lookup returns the node bound to the variable with the given name.
func (bindings *Bindings) Lookup(name string) (impl.ID, bool) {
	for i, candidate := range bindings.Names {
		if candidate == name {
			return bindings.Nodes[i], true
		}
	}
	return 0, false
}

// Labeler resolves node ids into labels.
type Labeler interface {
	Externalize(id impl.ID) (impl.Label, error)
}

// Format formats these bindings, using labeler to resolve nodes.
// If labeler is nil, nodes are formatted as ids.
func (bindings *Bindings) Format(labeler Labeler) (string, error) {
	var builder strings.Builder
	builder.WriteString("{ ")
	for i, id := range bindings.Nodes {
		if i > 0 {
			builder.WriteString(", ")
		}

		var value string
		if labeler == nil {
			value = fmt.Sprint(uint32(id))
		} else {
			label, err := labeler.Externalize(id)
			if err != nil {
				return "", fmt.Errorf("failed to format column %q: %w", bindings.Names[i], err)
			}
			value = string(label)
		}

		fmt.Fprintf(&builder, "%s=%s", bindings.Names[i], value)
	}
	builder.WriteString(" }")
	return builder.String(), nil
}

func (bindings *Bindings) String() string {
	value, _ := bindings.Format(nil) // cannot fail without a labeler
	return value
}
