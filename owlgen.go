// Package owlgen converts XML documents into OWL/XML ontologies driven by
// their XSD schemas. The root package re-exports the pipeline entry points;
// advanced callers compose pkg/xsd, pkg/owl, and pkg/dataset directly.
package owlgen

import (
	"context"

	"github.com/caprica-project/go-owlgen/pkg/dataset"
	"github.com/caprica-project/go-owlgen/pkg/orchestrator"
	"github.com/caprica-project/go-owlgen/pkg/schema"
)

// Request aliases the orchestrator request for convenience.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate converts one built-in dataset kind using its published endpoints
// and returns the serialized ontology. It is the simplest entry point.
func Generate(ctx context.Context, kind string, options ...orchestrator.Option) ([]byte, error) {
	d, err := dataset.Builtin(kind)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(options...).Generate(ctx, Request{Dataset: d})
}

// GenerateFromFiles converts a dataset using local schema and data documents
// instead of the published endpoints.
func GenerateFromFiles(ctx context.Context, d dataset.Dataset, schemaPath, dataPath string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, Request{
		Dataset:      d,
		SchemaSource: schema.SourceFromFile(schemaPath),
		DataSource:   schema.SourceFromFile(dataPath),
	})
}
