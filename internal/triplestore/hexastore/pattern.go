package hexastore

import (
	"fmt"
	"strings"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/index"
)

// Pattern restricts the triples returned by a query.
// Components holding the invalid zero id are unbound and match any id.
type Pattern struct {
	Subject   impl.ID
	Predicate impl.ID
	Object    impl.ID
}

// Triple returns the pattern as a triple, with unbound components set to zero.
func (pattern Pattern) Triple() impl.Triple {
	return impl.Triple{Subject: pattern.Subject, Predicate: pattern.Predicate, Object: pattern.Object}
}

// Bound checks if the given position is bound in this pattern.
func (pattern Pattern) Bound(position impl.Position) bool {
	return pattern.Triple().Get(position).Valid()
}

// BoundCount returns the number of bound positions.
func (pattern Pattern) BoundCount() (count int) {
	for _, id := range [...]impl.ID{pattern.Subject, pattern.Predicate, pattern.Object} {
		if id.Valid() {
			count++
		}
	}
	return count
}

// Matches checks if the given triple matches this pattern.
func (pattern Pattern) Matches(triple impl.Triple) bool {
	return (!pattern.Subject.Valid() || pattern.Subject == triple.Subject) &&
		(!pattern.Predicate.Valid() || pattern.Predicate == triple.Predicate) &&
		(!pattern.Object.Valid() || pattern.Object == triple.Object)
}

// prefix returns the bound leading components of this pattern in the given order.
func (pattern Pattern) prefix(order index.Order) []impl.ID {
	triple := pattern.Triple()

	var prefix []impl.ID
	for _, position := range order.Positions() {
		id := triple.Get(position)
		if !id.Valid() {
			break
		}
		prefix = append(prefix, id)
	}
	return prefix
}

func (pattern Pattern) String() string {
	parts := make([]string, 3)
	for i, id := range [...]impl.ID{pattern.Subject, pattern.Predicate, pattern.Object} {
		if id.Valid() {
			parts[i] = fmt.Sprint(uint32(id))
		} else {
			parts[i] = "?"
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
