package owl

import (
	"fmt"
	"strings"
)

// Atom is a single body or head term of a rule: a class membership test or an
// object/data relation over shared variable names. The core carries atoms as
// data; it never evaluates them.
type Atom interface {
	writeOWL(b *strings.Builder)
}

// iri prefixes local names with '#', leaving absolute IRIs untouched.
func iri(s string) string {
	if strings.Contains(s, "#") {
		return s
	}
	return "#" + s
}

// ClassAtom asserts that a variable belongs to a class.
type ClassAtom struct {
	Variable string
	Class    string
}

func (a ClassAtom) writeOWL(b *strings.Builder) {
	b.WriteString("\n            <ClassAtom>")
	b.WriteString("\n                <Class IRI=\"" + iri(a.Class) + "\"/>")
	b.WriteString("\n                <Variable IRI=\"" + iri(a.Variable) + "\"/>")
	b.WriteString("\n            </ClassAtom>")
}

// ObjectPropertyAtom relates two variables through an object property.
type ObjectPropertyAtom struct {
	Subject   string
	Predicate string
	Object    string
}

func (a ObjectPropertyAtom) writeOWL(b *strings.Builder) {
	b.WriteString("\n            <ObjectPropertyAtom>")
	b.WriteString("\n                <ObjectProperty IRI=\"" + iri(a.Predicate) + "\"/>")
	b.WriteString("\n                <Variable IRI=\"" + iri(a.Subject) + "\"/>")
	b.WriteString("\n                <Variable IRI=\"" + iri(a.Object) + "\"/>")
	b.WriteString("\n            </ObjectPropertyAtom>")
}

// DataPropertyAtom relates two variables through a data property.
type DataPropertyAtom struct {
	Subject   string
	Predicate string
	Object    string
}

func (a DataPropertyAtom) writeOWL(b *strings.Builder) {
	b.WriteString("\n            <DataPropertyAtom>")
	b.WriteString("\n                <DataProperty IRI=\"" + iri(a.Predicate) + "\"/>")
	b.WriteString("\n                <Variable IRI=\"" + iri(a.Subject) + "\"/>")
	b.WriteString("\n                <Variable IRI=\"" + iri(a.Object) + "\"/>")
	b.WriteString("\n            </DataPropertyAtom>")
}

func splitTriple(triple string) (string, string, string) {
	parts := strings.Fields(triple)
	if len(parts) != 3 {
		panic(fmt.Sprintf("owl: malformed triple %q", triple))
	}
	if parts[1] == "a" {
		panic(fmt.Sprintf("owl: class atom %q written as a property triple", triple))
	}
	return parts[0], parts[1], parts[2]
}

// OP builds an ObjectPropertyAtom from a "subject predicate object" triple.
// It panics on malformed input to surface configuration mistakes early.
func OP(triple string) ObjectPropertyAtom {
	s, p, o := splitTriple(triple)
	return ObjectPropertyAtom{Subject: s, Predicate: p, Object: o}
}

// DP builds a DataPropertyAtom from a "subject predicate object" triple.
func DP(triple string) DataPropertyAtom {
	s, p, o := splitTriple(triple)
	return DataPropertyAtom{Subject: s, Predicate: p, Object: o}
}

// Rule is a named implication over atoms.
type Rule struct {
	Name string
	Body []Atom
	Head []Atom
}

func (r Rule) writeOWL(b *strings.Builder) {
	b.WriteString("\n    <DLSafeRule>")
	b.WriteString("\n        <Annotation>")
	b.WriteString("\n            <AnnotationProperty IRI=\"http://swrl.stanford.edu/ontologies/3.3/swrla.owl#isRuleEnabled\"/>")
	b.WriteString("\n            <Literal datatypeIRI=\"http://www.w3.org/2001/XMLSchema#boolean\">true</Literal>")
	b.WriteString("\n        </Annotation>")
	b.WriteString("\n        <Annotation>")
	b.WriteString("\n            <AnnotationProperty abbreviatedIRI=\"rdfs:label\"/>")
	b.WriteString("\n            <Literal>" + Escape(r.Name) + "</Literal>")
	b.WriteString("\n        </Annotation>")
	b.WriteString("\n        <Body>")
	for _, atom := range r.Body {
		atom.writeOWL(b)
	}
	b.WriteString("\n        </Body>")
	b.WriteString("\n        <Head>")
	for _, atom := range r.Head {
		atom.writeOWL(b)
	}
	b.WriteString("\n        </Head>")
	b.WriteString("\n    </DLSafeRule>")
}
