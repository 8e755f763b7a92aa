package xsd

import (
	"github.com/caprica-project/go-owlgen/internal/xmlutil"
	"github.com/caprica-project/go-owlgen/pkg/owl"
)

// XSNamespace is the XML Schema definition namespace.
const XSNamespace = "http://www.w3.org/2001/XMLSchema"

// Schema is a compiled XSD: a registry of named types and root elements plus
// the prelude of schema-derived declarations. The registry is shared and
// read-only once Compile returns; the prelude grows only through the
// idempotent class marks taken during parsing.
type Schema struct {
	// TargetNamespace is the schema's declared target namespace.
	TargetNamespace string

	nsmap         map[string]string
	elements      map[string]*Element
	types         map[string]typeDef
	typeOrder     []string
	prelude       []owl.Entry
	rawNamespaces []string
	nameOverrides map[string]string
}

// Prelude returns the schema-derived declarations gathered so far: class
// declarations for every marked type and the shared enumeration singletons.
func (s *Schema) Prelude() []owl.Entry {
	out := make([]owl.Entry, len(s.prelude))
	copy(out, s.prelude)
	return out
}

// qualify forms the registry key for a local name in the target namespace.
func (s *Schema) qualify(local string) string {
	return xmlutil.Qualify(s.TargetNamespace, local)
}

// resolve dereferences a type reference, looking named references up in the
// registry. Lazy resolution tolerates arbitrary declaration order, including
// mutual reference between top-level types.
func (s *Schema) resolve(ref TypeRef) (typeDef, error) {
	if ref.inline != nil {
		return ref.inline, nil
	}
	t, ok := s.types[ref.name]
	if !ok {
		return nil, &UnresolvedReferenceError{Name: ref.name}
	}
	return t, nil
}

// publicName maps a local tag name through the per-dataset overrides.
func (s *Schema) publicName(local string) string {
	if override, ok := s.nameOverrides[local]; ok {
		return override
	}
	return local
}

// markClass appends the type's Class declaration to the prelude exactly once.
// Alone types never emit a class: their content is flattened into the owner.
func (s *Schema) markClass(t *ComplexType, publicName string) {
	if t.marked || t.alone {
		return
	}
	t.marked = true
	s.prelude = append(s.prelude, owl.Class{Name: publicName, Annotations: t.annotations})
}
