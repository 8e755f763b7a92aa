package owl_test

import (
	"testing"

	"github.com/caprica-project/go-owlgen/pkg/owl"
)

var naming = owl.Naming{
	IDAttributes:   []string{"ID", "seq"},
	NameAttributes: []string{"Name", "name", "Title"},
	TypeAliases:    map[string]string{"Weakness": "CWE"},
}

func text(t *testing.T, value string) owl.Literal {
	t.Helper()
	lit, err := owl.NewText(value, owl.Name{Space: owl.XSDNamespace, Local: "string"})
	if err != nil {
		t.Fatalf("NewText(%q): %v", value, err)
	}
	return lit
}

func TestIndividualSlugFromID(t *testing.T) {
	ind := owl.NewIndividual("Weakness_12",
		owl.WithType("Weakness"),
		owl.WithAssertions(
			owl.Has{Name: "ID", Value: text(t, "79")},
			owl.Has{Name: "Name", Value: text(t, "Cross-site Scripting")},
		),
	)
	if got := ind.Slug(naming); got != "CWE-79" {
		t.Fatalf("Slug = %q, want CWE-79", got)
	}
}

func TestIndividualSlugWithoutAlias(t *testing.T) {
	ind := owl.NewIndividual("Item_3",
		owl.WithType("Item"),
		owl.WithAssertions(owl.Has{Name: "ID", Value: text(t, "42")}),
	)
	if got := ind.Slug(naming); got != "Item-42" {
		t.Fatalf("Slug = %q, want Item-42", got)
	}
}

func TestIndividualSlugFallsBackToDisplayName(t *testing.T) {
	ind := owl.NewIndividual("Reference_7",
		owl.WithType("Reference"),
		owl.WithAssertions(owl.Has{Name: "Title", Value: text(t, "Secure Coding")}),
	)
	if got := ind.Slug(naming); got != "indReferenceSecureCoding" {
		t.Fatalf("Slug = %q, want indReferenceSecureCoding", got)
	}
}

func TestIndividualIDPriorityOrder(t *testing.T) {
	ind := owl.NewIndividual("x",
		owl.WithType("Entry"),
		owl.WithAssertions(
			owl.Has{Name: "seq", Value: text(t, "2")},
			owl.Has{Name: "ID", Value: text(t, "1")},
		),
	)
	id, ok := ind.ID(naming)
	if !ok || id != "1" {
		t.Fatalf("ID = %q, %v; want 1, true", id, ok)
	}
}

func TestIndividualDisplayNameFallback(t *testing.T) {
	ind := owl.NewIndividual("Entry_9", owl.WithType("Entry"))
	if got := ind.DisplayName(naming); got != "Entry_9" {
		t.Fatalf("DisplayName = %q, want Entry_9", got)
	}
}

func TestIndividualDisplayNameFollowsNestedIndividual(t *testing.T) {
	inner := owl.NewIndividual("fallback",
		owl.WithAssertions(owl.Has{Name: "Name", Value: text(t, "Inner Name")}),
	)
	outer := owl.NewIndividual("outer",
		owl.WithAssertions(owl.Has{Name: "Name", Value: inner}),
	)
	if got := outer.DisplayName(naming); got != "Inner Name" {
		t.Fatalf("DisplayName = %q, want Inner Name", got)
	}
}
