package owl

import (
	"io"
	"strings"
)

// DefaultBase is the ontology IRI base used when a Writer leaves Base empty.
const DefaultBase = "https://owl.caprica-project.org"

// Writer serializes an ordered entry list plus a rule layer into an OWL/XML
// ontology document. Slug resolution happens here, on first need, driven by
// the writer's Naming configuration.
type Writer struct {
	// Base is the ontology IRI base; the dataset kind is appended to it.
	Base string
	// Kind is the lowercase dataset kind forming the ontology IRI suffix.
	Kind string
	// Naming drives identity resolution for individuals and relations.
	Naming Naming
}

// Write emits the complete ontology document.
func (w Writer) Write(out io.Writer, entries []Entry, rules []Rule) error {
	base := w.Base
	if base == "" {
		base = DefaultBase
	}
	ontologyIRI := base + "/" + w.Kind

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n")
	b.WriteString("<Ontology xmlns=\"http://www.w3.org/2002/07/owl#\"\n")
	b.WriteString("     xml:base=\"" + ontologyIRI + "\"\n")
	b.WriteString("     xmlns:rdf=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\"\n")
	b.WriteString("     xmlns:xml=\"http://www.w3.org/XML/1998/namespace\"\n")
	b.WriteString("     xmlns:xsd=\"http://www.w3.org/2001/XMLSchema#\"\n")
	b.WriteString("     xmlns:rdfs=\"http://www.w3.org/2000/01/rdf-schema#\"\n")
	b.WriteString("     ontologyIRI=\"" + ontologyIRI + "\">\n")
	b.WriteString("    <Prefix name=\"\" IRI=\"" + ontologyIRI + "\"/>\n")
	b.WriteString("    <Prefix name=\"owl\" IRI=\"http://www.w3.org/2002/07/owl#\"/>\n")
	b.WriteString("    <Prefix name=\"rdf\" IRI=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\"/>\n")
	b.WriteString("    <Prefix name=\"xml\" IRI=\"http://www.w3.org/XML/1998/namespace\"/>\n")
	b.WriteString("    <Prefix name=\"xsd\" IRI=\"http://www.w3.org/2001/XMLSchema#\"/>\n")
	b.WriteString("    <Prefix name=\"rdfs\" IRI=\"http://www.w3.org/2000/01/rdf-schema#\"/>")

	for _, entry := range entries {
		switch e := entry.(type) {
		case Class:
			w.writeClass(&b, e)
		case *Individual:
			// Top-level entries are declared unconditionally; the Ignore
			// flag only suppresses re-declaration during nested emission.
			w.writeIndividual(&b, e)
		}
	}
	for _, rule := range rules {
		rule.writeOWL(&b)
	}
	b.WriteString("\n</Ontology>\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func (w Writer) writeClass(b *strings.Builder, c Class) {
	slug := Slugify(c.Name, RolePlain)
	b.WriteString("\n    <Declaration>")
	b.WriteString("\n        <Class IRI=\"#" + slug + "\"/>")
	b.WriteString("\n    </Declaration>")
	for _, annotation := range c.Annotations {
		w.writeComment(b, slug, annotation)
	}
}

func (w Writer) writeIndividual(b *strings.Builder, ind *Individual) {
	slug := ind.Slug(w.Naming)
	b.WriteString("\n    <Declaration>")
	b.WriteString("\n        <NamedIndividual IRI=\"#" + slug + "\"/>")
	b.WriteString("\n    </Declaration>")
	b.WriteString("\n    <AnnotationAssertion>")
	b.WriteString("\n        <AnnotationProperty IRI=\"http://www.w3.org/2000/01/rdf-schema#label\"/>")
	b.WriteString("\n        <IRI>#" + slug + "</IRI>")
	b.WriteString("\n        <Literal>" + Escape(ind.DisplayName(w.Naming)) + "</Literal>")
	b.WriteString("\n    </AnnotationAssertion>")
	for _, annotation := range ind.Annotations {
		w.writeComment(b, slug, annotation)
	}
	if ind.typeName != "" {
		b.WriteString("\n    <ClassAssertion>")
		b.WriteString("\n        <Class IRI=\"#" + Slugify(ind.typeName, RolePlain) + "\"/>")
		b.WriteString("\n        <NamedIndividual IRI=\"#" + slug + "\"/>")
		b.WriteString("\n    </ClassAssertion>")
	}
	for _, has := range ind.Assertions {
		w.writeAssertion(b, slug, has)
	}
}

func (w Writer) writeComment(b *strings.Builder, slug, annotation string) {
	b.WriteString("\n    <AnnotationAssertion>")
	b.WriteString("\n        <AnnotationProperty IRI=\"http://www.w3.org/2000/01/rdf-schema#comment\"/>")
	b.WriteString("\n        <IRI>#" + slug + "</IRI>")
	b.WriteString("\n        <Literal>" + Escape(annotation) + "</Literal>")
	b.WriteString("\n    </AnnotationAssertion>")
}

func (w Writer) writeAssertion(b *strings.Builder, subjectSlug string, has Has) {
	property := Slugify(has.Name, RoleProperty)
	for _, value := range flattenValue(has.Value) {
		switch v := value.(type) {
		case Literal:
			b.WriteString("\n    <DataPropertyAssertion>")
			b.WriteString("\n        <DataProperty IRI=\"#" + property + "\"/>")
			b.WriteString("\n        <NamedIndividual IRI=\"#" + subjectSlug + "\"/>")
			b.WriteString("\n        <Literal datatypeIRI=\"" + v.Datatype().IRI() + "\">" + v.escaped() + "</Literal>")
			b.WriteString("\n    </DataPropertyAssertion>")
		case *Individual:
			b.WriteString("\n    <ObjectPropertyAssertion>")
			b.WriteString("\n        <ObjectProperty IRI=\"#" + property + "\"/>")
			b.WriteString("\n        <NamedIndividual IRI=\"#" + subjectSlug + "\"/>")
			b.WriteString("\n        <NamedIndividual IRI=\"#" + v.Slug(w.Naming) + "\"/>")
			b.WriteString("\n    </ObjectPropertyAssertion>")
			if !v.Ignore {
				w.writeIndividual(b, v)
			}
		}
	}
}

func flattenValue(value Value) []Value {
	switch v := value.(type) {
	case ValueList:
		out := make([]Value, 0, len(v))
		for _, item := range v {
			out = append(out, flattenValue(item)...)
		}
		return out
	case nil:
		return nil
	default:
		return []Value{value}
	}
}
