// Package owl holds the entity model shared by the schema compiler and the
// instance parser: literals, individuals, classes, Has-assertions, the
// deterministic slug algorithm that gives every entity a stable identity, and
// the OWL/XML writer that serializes an ordered entry list into an ontology
// document.
package owl
