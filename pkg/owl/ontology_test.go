package owl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/caprica-project/go-owlgen/pkg/owl"
)

func writeOntology(t *testing.T, entries []owl.Entry, rules []owl.Rule) string {
	t.Helper()
	w := owl.Writer{Kind: "cwe", Naming: naming}
	var buf bytes.Buffer
	if err := w.Write(&buf, entries, rules); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestWriterEnvelope(t *testing.T) {
	out := writeOntology(t, nil, nil)
	for _, want := range []string{
		`<?xml version="1.0"?>`,
		`ontologyIRI="https://owl.caprica-project.org/cwe"`,
		`<Prefix name="owl" IRI="http://www.w3.org/2002/07/owl#"/>`,
		"</Ontology>\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriterClassDeclaration(t *testing.T) {
	out := writeOntology(t, []owl.Entry{owl.Class{
		Name:        "Observed Example",
		Annotations: []string{"An example seen in the wild"},
	}}, nil)
	if !strings.Contains(out, `<Class IRI="#ObservedExample"/>`) {
		t.Fatalf("missing class declaration:\n%s", out)
	}
	if !strings.Contains(out, "<Literal>An example seen in the wild</Literal>") {
		t.Fatalf("missing class comment:\n%s", out)
	}
}

func TestWriterIndividual(t *testing.T) {
	ind := owl.NewIndividual("Weakness_3",
		owl.WithType("Weakness"),
		owl.WithAssertions(
			owl.Has{Name: "ID", Value: text(t, "79")},
			owl.Has{Name: "Name", Value: text(t, "Cross-site Scripting")},
		),
	)
	out := writeOntology(t, []owl.Entry{ind}, nil)
	for _, want := range []string{
		`<NamedIndividual IRI="#CWE-79"/>`,
		`<Class IRI="#Weakness"/>`,
		`<DataProperty IRI="#hasID"/>`,
		`<Literal datatypeIRI="http://www.w3.org/2001/XMLSchema#string">79</Literal>`,
		"<Literal>Cross-site Scripting</Literal>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriterNestedIndividualEmittedOnce(t *testing.T) {
	child := owl.NewIndividual("Consequence_4",
		owl.WithType("Consequence"),
		owl.WithAssertions(owl.Has{Name: "Scope", Value: text(t, "Integrity")}),
	)
	parent := owl.NewIndividual("Weakness_2",
		owl.WithType("Weakness"),
		owl.WithAssertions(
			owl.Has{Name: "ID", Value: text(t, "89")},
			owl.Has{Name: "Common_Consequence", Value: child},
		),
	)
	out := writeOntology(t, []owl.Entry{parent}, nil)
	if !strings.Contains(out, `<ObjectProperty IRI="#hasCommonConsequence"/>`) {
		t.Fatalf("missing object property assertion:\n%s", out)
	}
	// declaration, class assertion, the parent's object assertion, and the
	// subject of its own Scope assertion
	if got := strings.Count(out, `<NamedIndividual IRI="#indConsequenceConsequence4"/>`); got != 4 {
		t.Fatalf("nested individual referenced %d times, want 4:\n%s", got, out)
	}
}

func TestWriterSkipsIgnoredNestedIndividuals(t *testing.T) {
	singleton := owl.NewIndividual("Draft", owl.WithType("StatusEnumeration"), owl.AsIgnored())
	parent := owl.NewIndividual("Weakness_5",
		owl.WithType("Weakness"),
		owl.WithAssertions(
			owl.Has{Name: "ID", Value: text(t, "20")},
			owl.Has{Name: "Status", Value: singleton},
		),
	)
	out := writeOntology(t, []owl.Entry{singleton, parent}, nil)
	// declared once as a top-level entry, referenced once from the parent,
	// never re-declared during nested emission
	if got := strings.Count(out, `<Declaration>
        <NamedIndividual IRI="#indStatusEnumerationDraft"/>`); got != 1 {
		t.Fatalf("singleton declared %d times, want 1:\n%s", got, out)
	}
	if !strings.Contains(out, `<ObjectProperty IRI="#hasStatus"/>`) {
		t.Fatalf("missing status assertion:\n%s", out)
	}
}

func TestWriterValueListFlattening(t *testing.T) {
	ind := owl.NewIndividual("Entry_1",
		owl.WithType("Entry"),
		owl.WithAssertions(owl.Has{Name: "Phase", Value: owl.ValueList{
			text(t, "Design"),
			owl.ValueList{text(t, "Implementation")},
		}}),
	)
	out := writeOntology(t, []owl.Entry{ind}, nil)
	if got := strings.Count(out, `<DataProperty IRI="#hasPhase"/>`); got != 2 {
		t.Fatalf("list assertion emitted %d times, want 2:\n%s", got, out)
	}
}

func TestWriterRules(t *testing.T) {
	rule := owl.Rule{
		Name: "hasCWE",
		Body: []owl.Atom{
			owl.ClassAtom{Variable: "a", Class: "AttackPattern"},
			owl.DP("a hasID id"),
		},
		Head: []owl.Atom{owl.OP("a hasCWE w")},
	}
	out := writeOntology(t, nil, []owl.Rule{rule})
	for _, want := range []string{
		"<DLSafeRule>",
		"<Literal>hasCWE</Literal>",
		`<Class IRI="#AttackPattern"/>`,
		`<Variable IRI="#a"/>`,
		`<ObjectProperty IRI="#hasCWE"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRuleAtomIRIHandling(t *testing.T) {
	rule := owl.Rule{
		Name: "crossOntology",
		Body: []owl.Atom{owl.ClassAtom{Variable: "w", Class: "https://owl.caprica-project.org/cwe#Weakness"}},
		Head: []owl.Atom{owl.OP("w relatedTo w")},
	}
	out := writeOntology(t, nil, []owl.Rule{rule})
	if !strings.Contains(out, `<Class IRI="https://owl.caprica-project.org/cwe#Weakness"/>`) {
		t.Fatalf("absolute IRI was prefixed:\n%s", out)
	}
}

func TestOPRejectsClassTriple(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for class atom written as a triple")
		}
	}()
	owl.OP("w a Weakness")
}
