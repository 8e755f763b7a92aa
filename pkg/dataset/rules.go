package dataset

import (
	"unicode"
	"unicode/utf8"

	"github.com/caprica-project/go-owlgen/pkg/owl"
)

// natureRelations are the cross-reference natures shared by CWE and CAPEC
// entries. Each one maps to the enumeration singleton the schema compiler
// creates for the Nature attribute.
var natureRelations = []string{
	"canAlsoBe", "canFollow", "canPrecede", "childOf", "peerOf", "requires",
	"startsWith",
}

// rulesFor builds the SWRL rule layer for a built-in dataset kind. Custom
// kinds carry no rules.
func rulesFor(kind string) []owl.Rule {
	var (
		rules []owl.Rule
		typ   string
	)
	switch kind {
	case "CAPEC":
		typ = "AttackPattern"
		rules = []owl.Rule{{
			Name: "hasCWE",
			Body: []owl.Atom{
				owl.ClassAtom{Variable: "a", Class: "AttackPattern"},
				owl.DP("a hasID id"),
				owl.ClassAtom{Variable: "w", Class: "https://owl.caprica-project.org/cwe#Weakness"},
				owl.DP("w https://owl.caprica-project.org/cwe#hasCAPECID id"),
			},
			Head: []owl.Atom{owl.OP("a hasCWE w")},
		}}
	case "CWE":
		typ = "Weakness"
		rules = []owl.Rule{{
			Name: "hasCAPEC",
			Body: []owl.Atom{
				owl.ClassAtom{Variable: "w", Class: "Weakness"},
				owl.DP("w hasCAPECID id"),
				owl.ClassAtom{Variable: "a", Class: "https://owl.caprica-project.org/capec#AttackPattern"},
				owl.DP("a https://owl.caprica-project.org/capec#hasID id"),
			},
			Head: []owl.Atom{owl.OP("w hasCAPEC a")},
		}, {
			Name: "hasCVE",
			Body: []owl.Atom{
				owl.ClassAtom{Variable: "w", Class: "Weakness"},
				owl.OP("w hasObservedExample e"),
				owl.DP("e hasReference id"),
				owl.ClassAtom{Variable: "v", Class: "https://owl.caprica-project.org/cve#Vulnerability"},
				owl.DP("v https://owl.caprica-project.org/cve#hasName id"),
			},
			Head: []owl.Atom{owl.OP("w hasCVE v")},
		}}
	case "CVE":
		return []owl.Rule{{
			Name: "hasCWE",
			Body: []owl.Atom{
				owl.ClassAtom{Variable: "v", Class: "Vulnerability"},
				owl.ClassAtom{Variable: "w", Class: "https://owl.caprica-project.org/cwe#Weakness"},
				owl.OP("w https://owl.caprica-project.org/cwe#hasCVE v"),
			},
			Head: []owl.Atom{owl.OP("v hasCWE w")},
		}}
	default:
		return nil
	}

	rules = append(rules, owl.Rule{
		Name: "relatedTo",
		Body: []owl.Atom{
			owl.OP("s1 hasRelated" + typ + " r"),
			owl.DP("r has" + kind + "ID id"),
			owl.DP("s2 hasID id"),
		},
		Head: []owl.Atom{owl.OP("s1 relatedTo s2")},
	})
	for _, relation := range natureRelations {
		rules = append(rules, owl.Rule{
			Name: relation,
			Body: []owl.Atom{
				owl.OP("s1 hasRelated" + typ + " r"),
				owl.OP("r hasNature indRelatedNatureEnumeration" + upperFirst(relation)),
				owl.DP("r has" + kind + "ID id"),
				owl.DP("s2 hasID id"),
			},
			Head: []owl.Atom{owl.OP("s1 " + relation + " s2")},
		})
	}
	return rules
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
