package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/caprica-project/go-owlgen/internal/fetch"
	"github.com/caprica-project/go-owlgen/pkg/dataset"
	"github.com/caprica-project/go-owlgen/pkg/owl"
	"github.com/caprica-project/go-owlgen/pkg/schema"
	"github.com/caprica-project/go-owlgen/pkg/xsd"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithHTTPClient injects the HTTP client used for URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) {
		o.fetcher.Client = client
	}
}

// WithTimeout bounds a single URL retrieval.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.fetcher.Timeout = d
	}
}

// WithFS supplies the filesystem backing fs.FS sources.
func WithFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.fetcher.FS = fsys
	}
}

// WithBaseIRI overrides the ontology IRI base for generated documents.
func WithBaseIRI(base string) Option {
	return func(o *Orchestrator) {
		o.base = base
	}
}

// Request describes one conversion: which dataset to convert and, optionally,
// where to read its schema and data from. Omitted sources default to the
// dataset's published endpoints.
type Request struct {
	Dataset      dataset.Dataset
	SchemaSource schema.Source
	DataSource   schema.Source
}

// Orchestrator runs conversions. The zero value, via New, retrieves documents
// over HTTP with the default client.
type Orchestrator struct {
	fetcher fetch.Fetcher
	base    string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Generate runs the pipeline for one request and returns the serialized
// OWL/XML document.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if req.Dataset.Kind == "" {
		return nil, errors.New("orchestrator: request has no dataset")
	}
	schemaSrc, err := defaultSource(req.SchemaSource, req.Dataset.SchemaURL)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: schema source: %w", err)
	}
	dataSrc, err := defaultSource(req.DataSource, req.Dataset.DataURL)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: data source: %w", err)
	}

	schemaDoc, err := o.loadXML(ctx, schemaSrc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load schema: %w", err)
	}
	dataDoc, err := o.loadXML(ctx, dataSrc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load data: %w", err)
	}

	compiled, err := xsd.Compile(schemaDoc, req.Dataset.CompileOptions())
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compile %s schema: %w", req.Dataset.Kind, err)
	}
	entries, err := compiled.ParseDocument(dataDoc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse %s data: %w", req.Dataset.Kind, err)
	}
	all := append(compiled.Prelude(), entries...)

	writer := owl.Writer{
		Base:   o.base,
		Kind:   strings.ToLower(req.Dataset.Kind),
		Naming: req.Dataset.Naming(),
	}
	var buf bytes.Buffer
	if err := writer.Write(&buf, all, req.Dataset.Rules()); err != nil {
		return nil, fmt.Errorf("orchestrator: write %s ontology: %w", req.Dataset.Kind, err)
	}
	return buf.Bytes(), nil
}

func (o *Orchestrator) loadXML(ctx context.Context, src schema.Source) (*xmlquery.Node, error) {
	doc, err := o.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	node, err := xmlquery.Parse(bytes.NewReader(doc.Raw()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", doc.Location(), err)
	}
	return node, nil
}

func defaultSource(src schema.Source, url string) (schema.Source, error) {
	if src != nil {
		return src, nil
	}
	if url == "" {
		return nil, errors.New("no source and no default endpoint")
	}
	return schema.SourceFromURL(url), nil
}
