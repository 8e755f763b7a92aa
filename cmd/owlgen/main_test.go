package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectedKinds(t *testing.T) {
	kinds := []string{"CAPEC", "CWE", "CVE"}

	cases := []struct {
		name  string
		flags map[string]*kindFlags
		all   bool
		want  []string
	}{
		{
			name: "explicit flag",
			flags: map[string]*kindFlags{
				"CAPEC": {},
				"CWE":   {enabled: true},
				"CVE":   {},
			},
			want: []string{"CWE"},
		},
		{
			name: "schema override implies the kind",
			flags: map[string]*kindFlags{
				"CAPEC": {},
				"CWE":   {schemaPath: "cwe.xsd"},
				"CVE":   {},
			},
			want: []string{"CWE"},
		},
		{
			name: "data override implies the kind",
			flags: map[string]*kindFlags{
				"CAPEC": {dataPath: "capec.xml"},
				"CWE":   {},
				"CVE":   {},
			},
			want: []string{"CAPEC"},
		},
		{
			name: "all wins regardless of flags",
			flags: map[string]*kindFlags{
				"CAPEC": {},
				"CWE":   {},
				"CVE":   {},
			},
			all:  true,
			want: []string{"CAPEC", "CWE", "CVE"},
		},
		{
			name: "nothing selected",
			flags: map[string]*kindFlags{
				"CAPEC": {},
				"CWE":   {},
				"CVE":   {},
			},
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := selectedKinds(kinds, tc.flags, tc.all)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("selectedKinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
