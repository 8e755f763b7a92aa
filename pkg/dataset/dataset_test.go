package dataset_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/caprica-project/go-owlgen/pkg/dataset"
)

func TestKinds(t *testing.T) {
	got := dataset.Kinds()
	want := []string{"CAPEC", "CVE", "CWE"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinCWE(t *testing.T) {
	d, err := dataset.Builtin("cwe")
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if d.Kind != "CWE" {
		t.Fatalf("Kind = %q", d.Kind)
	}
	if !strings.HasSuffix(d.DataURL, ".zip") {
		t.Fatalf("CWE data endpoint should be zipped, got %q", d.DataURL)
	}
	if got := d.TypeAliases["Weakness"]; got != "CWE" {
		t.Fatalf("Weakness alias = %q", got)
	}
	opts := d.CompileOptions()
	if len(opts.Patches) != 2 {
		t.Fatalf("CWE patches = %#v", opts.Patches)
	}
}

func TestBuiltinCAPECPatchPath(t *testing.T) {
	d, err := dataset.Builtin("CAPEC")
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	opts := d.CompileOptions()
	var found bool
	for _, p := range opts.Patches {
		if p.Type == "ExecutionFlowType" {
			found = true
			if diff := cmp.Diff([]string{"Attack_Step", "Technique"}, p.Path); diff != "" {
				t.Fatalf("patch path mismatch (-want +got):\n%s", diff)
			}
		}
	}
	if !found {
		t.Fatalf("ExecutionFlowType patch missing: %#v", opts.Patches)
	}
}

func TestBuiltinCVENameOverride(t *testing.T) {
	d, err := dataset.Builtin("CVE")
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if got := d.NameOverrides["item"]; got != "Vulnerability" {
		t.Fatalf("item override = %q", got)
	}
	naming := d.Naming()
	if diff := cmp.Diff([]string{"ID", "seq"}, naming.IDAttributes); diff != "" {
		t.Fatalf("ID attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinUnknownKind(t *testing.T) {
	if _, err := dataset.Builtin("nvd"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestLoadCustomDataset(t *testing.T) {
	src := `
kind: ACME
schema: https://example.com/acme.xsd
data: https://example.com/acme.xml
idAttributes: [ID]
nameAttributes: [Name]
rawNamespaces: [http://www.w3.org/1999/xhtml]
patches:
  - type: WrapperType
    path: [Inner]
`
	d, err := dataset.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Kind != "ACME" {
		t.Fatalf("Kind = %q", d.Kind)
	}
	if got := d.Rules(); got != nil {
		t.Fatalf("custom dataset should carry no rules, got %d", len(got))
	}
	opts := d.CompileOptions()
	if len(opts.Patches) != 1 || opts.Patches[0].Type != "WrapperType" {
		t.Fatalf("patches = %#v", opts.Patches)
	}
}

func TestLoadRejectsMissingKind(t *testing.T) {
	if _, err := dataset.Load(strings.NewReader("schema: https://example.com/x.xsd\n")); err == nil {
		t.Fatal("expected error for definition without a kind")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	if _, err := dataset.Load(strings.NewReader("kind: X\nbogus: true\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
