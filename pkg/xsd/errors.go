package xsd

import (
	"fmt"

	"github.com/caprica-project/go-owlgen/pkg/owl"
)

// ErrEmptyValue aliases the literal model's empty-value condition. It is the
// only recoverable parse error: extension-base parsing swallows it, anywhere
// else it aborts the current document.
var ErrEmptyValue = owl.ErrEmptyValue

// UnknownValueError reports an enumeration lookup miss: the document uses a
// value absent from the schema's declared vocabulary.
type UnknownValueError struct {
	Type  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("xsd: value %q is not part of the %s vocabulary", e.Value, e.Type)
}

// TypeConflictError reports choice branches that bind the same tag to
// different types. It is a schema-authoring defect detected at compile time.
type TypeConflictError struct {
	Tag string
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("xsd: choice branches bind %s to conflicting types", e.Tag)
}

// UnresolvedReferenceError reports a name with no registry entry, either a
// type reference or an element tag with no declaration.
type UnresolvedReferenceError struct {
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("xsd: no declaration registered for %s", e.Name)
}

// NamespaceError reports a wildcard capture outside both the declared
// wildcard namespace and the pass-through set.
type NamespaceError struct {
	Namespace string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("xsd: namespace %s is not representable", e.Namespace)
}
