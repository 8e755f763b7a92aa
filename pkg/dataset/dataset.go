// Package dataset holds the per-dataset declarative configuration the core
// consumes: retrieval endpoints, naming priority lists, type aliases,
// structural patches, and the inference rule layer. Built-in definitions for
// the CWE, CAPEC, and CVE families are embedded; custom datasets load from
// YAML documents with the same shape.
package dataset

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/caprica-project/go-owlgen/pkg/owl"
	"github.com/caprica-project/go-owlgen/pkg/xsd"
)

//go:embed datasets/*.yaml
var builtinFS embed.FS

// Patch mirrors xsd.Patch in configuration form.
type Patch struct {
	Type string   `yaml:"type"`
	Path []string `yaml:"path,omitempty"`
}

// Dataset describes one convertible document family.
type Dataset struct {
	// Kind names the dataset (CWE, CAPEC, CVE, or a custom identifier).
	Kind string `yaml:"kind"`
	// SchemaURL and DataURL are the default retrieval endpoints.
	SchemaURL string `yaml:"schema"`
	DataURL   string `yaml:"data"`

	IDAttributes   []string          `yaml:"idAttributes"`
	NameAttributes []string          `yaml:"nameAttributes"`
	TypeAliases    map[string]string `yaml:"typeAliases,omitempty"`
	NameOverrides  map[string]string `yaml:"nameOverrides,omitempty"`
	RawNamespaces  []string          `yaml:"rawNamespaces,omitempty"`
	SkipPushdown   []string          `yaml:"skipPushdown,omitempty"`
	Patches        []Patch           `yaml:"patches,omitempty"`
}

// Load decodes a dataset definition from YAML.
func Load(r io.Reader) (Dataset, error) {
	var d Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("dataset: decode: %w", err)
	}
	if strings.TrimSpace(d.Kind) == "" {
		return Dataset{}, fmt.Errorf("dataset: definition has no kind")
	}
	return d, nil
}

// LoadFile decodes a dataset definition from a YAML file.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f)
}

// Builtin returns the embedded definition for a known dataset kind. The
// lookup is case-insensitive.
func Builtin(kind string) (Dataset, error) {
	name := "datasets/" + strings.ToLower(kind) + ".yaml"
	f, err := builtinFS.Open(name)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: unknown kind %q", kind)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f)
}

// Kinds lists the embedded dataset kinds in sorted order.
func Kinds() []string {
	entries, err := builtinFS.ReadDir("datasets")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		out = append(out, strings.ToUpper(name))
	}
	sort.Strings(out)
	return out
}

// Naming converts the dataset's priority lists into the serialization-time
// naming configuration.
func (d Dataset) Naming() owl.Naming {
	return owl.Naming{
		IDAttributes:   d.IDAttributes,
		NameAttributes: d.NameAttributes,
		TypeAliases:    d.TypeAliases,
	}
}

// CompileOptions converts the dataset's structural configuration into
// schema compile options.
func (d Dataset) CompileOptions() xsd.Options {
	patches := make([]xsd.Patch, 0, len(d.Patches))
	for _, p := range d.Patches {
		patches = append(patches, xsd.Patch{Type: p.Type, Path: p.Path})
	}
	return xsd.Options{
		RawNamespaces: d.RawNamespaces,
		NameOverrides: d.NameOverrides,
		SkipPushdown:  d.SkipPushdown,
		Patches:       patches,
	}
}

// Rules returns the dataset's inference rule layer. Custom kinds have none.
func (d Dataset) Rules() []owl.Rule {
	return rulesFor(strings.ToUpper(d.Kind))
}
