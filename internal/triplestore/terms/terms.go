// Package terms converts between RDF terms and the labels stored in a node map.
//
// A label is the N-Quads serialization of a term.
// Two terms map to the same label iff they are the same term.
package terms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/anglo-korean/rdf"
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

var (
	errNilValue     = errors.New("value is nil")
	errEmptyLabel   = errors.New("label is empty")
	errInvalidLabel = errors.New("label is not a single term")
)

// FromQuad returns the label of the given value.
func FromQuad(value quad.Value) (impl.Label, error) {
	if value == nil {
		return "", errNilValue
	}
	return impl.Label(value.String()), nil
}

// ToQuad parses a label back into a value.
func ToQuad(label impl.Label) (quad.Value, error) {
	if label == "" {
		return nil, errEmptyLabel
	}

	// iris and blank nodes are handled directly
	switch value := quad.StringToValue(string(label)).(type) {
	case quad.IRI, quad.BNode:
		return value, nil
	}

	// everything else is a literal; parse it in the object position of a dummy statement
	reader := nquads.NewReader(strings.NewReader("_:s <p> "+string(label)+" .\n"), true)
	defer reader.Close()

	q, err := reader.ReadQuad()
	if err != nil {
		return nil, fmt.Errorf("failed to parse label %q: %w", label, err)
	}
	if q.Object == nil || q.Label != nil {
		return nil, fmt.Errorf("failed to parse label %q: %w", label, errInvalidLabel)
	}
	return q.Object, nil
}

// ToRDF converts a label into an rdf term.
func ToRDF(label impl.Label) (rdf.Term, error) {
	value, err := ToQuad(label)
	if err != nil {
		return nil, err
	}

	switch value := value.(type) {
	case quad.IRI:
		return rdf.NewIRI(string(value))
	case quad.BNode:
		return rdf.NewBlank(string(value))
	case quad.String:
		return rdf.NewLiteral(string(value))
	case quad.LangString:
		return rdf.NewLangLiteral(string(value.Value), value.Lang)
	case quad.TypedString:
		datatype, err := rdf.NewIRI(string(value.Type))
		if err != nil {
			return nil, fmt.Errorf("invalid datatype of %q: %w", label, err)
		}
		return rdf.NewTypedLiteral(string(value.Value), datatype), nil
	default:
		return rdf.NewLiteral(fmt.Sprint(value.Native()))
	}
}

var (
	errInvalidSubject   = errors.New("subject must be an iri or blank node")
	errInvalidPredicate = errors.New("predicate must be an iri")
	errInvalidObject    = errors.New("label is not a valid object")
)

// Triple converts the labels of a triple into an rdf triple.
func Triple(subject, predicate, object impl.Label) (triple rdf.Triple, err error) {
	s, err := ToRDF(subject)
	if err != nil {
		return triple, fmt.Errorf("failed to convert subject: %w", err)
	}
	subj, ok := s.(rdf.Subject)
	if !ok {
		return triple, fmt.Errorf("failed to convert subject %q: %w", subject, errInvalidSubject)
	}

	p, err := ToRDF(predicate)
	if err != nil {
		return triple, fmt.Errorf("failed to convert predicate: %w", err)
	}
	pred, ok := p.(rdf.Predicate)
	if !ok {
		return triple, fmt.Errorf("failed to convert predicate %q: %w", predicate, errInvalidPredicate)
	}

	o, err := ToRDF(object)
	if err != nil {
		return triple, fmt.Errorf("failed to convert object: %w", err)
	}

	obj, ok := o.(rdf.Object)
	if !ok {
		return triple, fmt.Errorf("failed to convert object %q: %w", object, errInvalidObject)
	}

	return rdf.Triple{Subj: subj, Pred: pred, Obj: obj}, nil
}
