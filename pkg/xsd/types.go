package xsd

import (
	"github.com/antchfx/xmlquery"

	"github.com/caprica-project/go-owlgen/pkg/owl"
)

// typeDef is implemented by every registered schema type: built-in literal
// kinds, simple types, and complex types. Implementations are immutable after
// compilation except for the one-shot marked/alone mutations on ComplexType.
type typeDef interface {
	// Alone reports whether parsed content is flattened into the owner
	// instead of becoming a nested individual.
	Alone() bool
	// parse converts an instance node into its semantic value.
	parse(p *parser, node *xmlquery.Node) (owl.Value, error)
}

// textType is the subset of types that can also parse raw attribute text.
type textType interface {
	typeDef
	parseText(p *parser, value string) (owl.Value, error)
}

// TypeRef is a reference to a type, either by qualified name (resolved
// lazily through the registry, tolerating forward and mutual references) or
// as an inline anonymous type.
type TypeRef struct {
	name   string
	inline typeDef
}

func namedRef(name string) TypeRef {
	return TypeRef{name: name}
}

func inlineRef(t typeDef) TypeRef {
	return TypeRef{inline: t}
}

func (r TypeRef) isZero() bool {
	return r.name == "" && r.inline == nil
}

// equal reports whether two references identify the same type object: equal
// names for named references, object identity for inline ones.
func (r TypeRef) equal(other TypeRef) bool {
	if r.name != "" || other.name != "" {
		return r.name == other.name
	}
	return r.inline == other.inline
}

// literalType binds a built-in XSD datatype to a literal parse function.
type literalType struct {
	datatype owl.Name
	parseFn  func(value string, datatype owl.Name) (owl.Literal, error)
}

func (t *literalType) Alone() bool {
	return false
}

func (t *literalType) parse(_ *parser, node *xmlquery.Node) (owl.Value, error) {
	return t.parseFn(leadingText(node), t.datatype)
}

func (t *literalType) parseText(_ *parser, value string) (owl.Value, error) {
	return t.parseFn(value, t.datatype)
}

// Element binds a tag name to a type, named or inline.
type Element struct {
	name        string
	annotations []string
	typeRef     TypeRef
}

// Attribute binds an attribute name to a type. The required flag is kept for
// schema fidelity; absent optional attributes are simply skipped when
// parsing.
type Attribute struct {
	name     string
	required bool
	typeRef  TypeRef
}

// content is one of the three content models a complex type may carry.
type content interface {
	Alone() bool
	parse(p *parser, node *xmlquery.Node) ([]owl.Has, error)
}

// Wildcard captures arbitrary markup from a declared namespace as one opaque
// blob.
type Wildcard struct {
	namespace string
}

// Sequence is an ordered list of named children (elements and choices)
// merged into one dispatch table, or, exclusively, a single wildcard
// capture.
type Sequence struct {
	names      map[string]*Element
	childCount int
	wildcard   *Wildcard
	alone      bool
}

func (s *Sequence) Alone() bool {
	return s.alone
}

// Choice merges its alternative branches (elements and sequences) into one
// dispatch table; conflicting bindings for a shared tag are a compile-time
// defect.
type Choice struct {
	names map[string]*Element
}

func (c *Choice) Alone() bool {
	return false
}

// Extension is a base type reference plus additional attributes. It is never
// alone: the base may contribute either a plain literal value or assertions.
type Extension struct {
	base       TypeRef
	attributes []*Attribute
}

func (e *Extension) Alone() bool {
	return false
}

// ComplexType is a named or anonymous complex type: an ordered attribute
// list plus an optional content model. The alone flag is computed at
// construction; marked latches when the type's Class declaration reaches the
// prelude.
type ComplexType struct {
	name        string
	annotations []string
	attributes  []*Attribute
	content     content
	alone       bool
	marked      bool
}

func (t *ComplexType) Alone() bool {
	return t.alone
}

// computeAlone applies the flatten rule: no content with exactly one
// attribute, or alone content with at most one attribute.
func (t *ComplexType) computeAlone() {
	if t.content == nil {
		t.alone = len(t.attributes) == 1
		return
	}
	t.alone = t.content.Alone() && len(t.attributes) <= 1
}

// enumValue is one declared vocabulary term: its singleton individual is
// created at compile time, added once to the prelude, and shared by
// reference across every document parsed against the schema.
type enumValue struct {
	value     string
	singleton *owl.Individual
}

// Restriction is a finite vocabulary mapping declared values to their
// shared singletons.
type Restriction struct {
	base   TypeRef
	values map[string]*enumValue
}

// SimpleType is an enumerated vocabulary. It is never alone: it always
// contributes a distinct shared individual.
type SimpleType struct {
	name        string
	annotations []string
	restriction *Restriction
}

func (t *SimpleType) Alone() bool {
	return false
}
