// Package orchestrator coordinates the full conversion pipeline: fetch the
// schema and data documents, compile the schema, parse the data into an
// entity graph, and serialize the result as an OWL/XML ontology.
package orchestrator
