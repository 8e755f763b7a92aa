package owl

// Value is the object side of an assertion: a Literal, an *Individual, or a
// ValueList of either.
type Value interface {
	isValue()
}

// ValueList holds a multi-valued assertion object.
type ValueList []Value

func (ValueList) isValue() {}

// Has is a subject-less assertion: an attribute or relation name paired with
// its value. The subject is supplied by the owning Individual at
// serialization time.
type Has struct {
	Name  string
	Value Value
}

// Naming configures identity resolution. It is consumed at serialization
// time, never during graph construction.
type Naming struct {
	// IDAttributes is the priority list of ID-bearing assertion names.
	IDAttributes []string
	// NameAttributes is the priority list of display-name assertion names.
	NameAttributes []string
	// TypeAliases substitutes public type names in ID-derived identities.
	TypeAliases map[string]string
}

// Entry is an ontology-level declaration: a Class or an *Individual.
type Entry interface {
	isEntry()
}

// Class declares an ontology class derived from a schema type.
type Class struct {
	Name        string
	Annotations []string
}

func (Class) isEntry() {}

// Individual is a graph node: a fallback display name, a public type name, an
// ordered assertion list, human-readable annotations, and an Ignore flag that
// keeps bookkeeping nodes (shared enumeration singletons) out of nested
// serialization.
type Individual struct {
	fallback string
	typeName string

	Assertions  []Has
	Annotations []string
	Ignore      bool
}

func (*Individual) isValue() {}
func (*Individual) isEntry() {}

// IndividualOption customises a new Individual.
type IndividualOption func(*Individual)

// WithType sets the individual's public type name.
func WithType(name string) IndividualOption {
	return func(i *Individual) {
		i.typeName = name
	}
}

// WithAssertions appends assertions whose subject is the individual.
func WithAssertions(assertions ...Has) IndividualOption {
	return func(i *Individual) {
		i.Assertions = append(i.Assertions, assertions...)
	}
}

// WithAnnotations appends human-readable annotations.
func WithAnnotations(annotations ...string) IndividualOption {
	return func(i *Individual) {
		i.Annotations = append(i.Annotations, annotations...)
	}
}

// AsIgnored marks the individual as bookkeeping-only.
func AsIgnored() IndividualOption {
	return func(i *Individual) {
		i.Ignore = true
	}
}

// NewIndividual constructs an Individual with the given fallback display
// name, applying any options.
func NewIndividual(name string, opts ...IndividualOption) *Individual {
	ind := &Individual{fallback: name}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(ind)
	}
	return ind
}

// TypeName returns the individual's public type name.
func (i *Individual) TypeName() string {
	return i.typeName
}

// ID returns the value of the first ID-bearing assertion per the naming
// priority list.
func (i *Individual) ID(naming Naming) (string, bool) {
	for _, attr := range naming.IDAttributes {
		for _, has := range i.Assertions {
			if has.Name != attr {
				continue
			}
			if lit, ok := has.Value.(Literal); ok {
				return lit.Value(), true
			}
		}
	}
	return "", false
}

// DisplayName returns the value of the first present name-like assertion,
// falling back to the name given at construction.
func (i *Individual) DisplayName(naming Naming) string {
	for _, attr := range naming.NameAttributes {
		for _, has := range i.Assertions {
			if has.Name != attr {
				continue
			}
			switch v := has.Value.(type) {
			case Literal:
				return v.Value()
			case *Individual:
				return v.DisplayName(naming)
			}
		}
	}
	return i.fallback
}

// Slug resolves the individual's public identity: `<alias(type)>-<id>` when
// an ID assertion is present, otherwise a deterministic slug of the type name
// and display name.
func (i *Individual) Slug(naming Naming) string {
	if id, ok := i.ID(naming); ok {
		typeName := i.typeName
		if alias, ok := naming.TypeAliases[typeName]; ok {
			typeName = alias
		}
		return typeName + "-" + id
	}
	return Slugify(i.typeName+i.DisplayName(naming), RoleIndividual)
}
