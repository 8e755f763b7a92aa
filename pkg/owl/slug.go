package owl

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role selects the slug flavor. Property slugs get a "has" prefix, individual
// slugs an "ind" prefix; plain slugs are used for class names.
type Role int

const (
	RolePlain Role = iota
	RoleProperty
	RoleIndividual
)

var (
	parenPattern  = regexp.MustCompile(`\s*\(.*?\)`)
	quotedPattern = regexp.MustCompile(`:\s*'([^']*?)'`)
	delimiters    = regexp.MustCompile("[ \u00a0\n\t,_-]+")
)

type replacement struct {
	symbol string
	word   string
}

// Replacement tables are ordered; reordering them changes emitted slugs and
// breaks the join key shared with externally configured rules.
var innerReplacements = []replacement{
	{"/", "Slash"},
	{":", "Colon"},
}

var symbolReplacements = []replacement{
	{"#", "Sharp"},
	{"+", "Plus"},
	{".", "Dot"},
	{`\`, "Backslash"},
	{"&", "And"},
	{"'", ""},
	{"/", "Or"},
	{":", ""},
	{"*", "Wildcard"},
	{"=", "Equal"},
	{`"`, ""},
	{"%", "Percent"},
	{"<", "Below"},
	{">", "Above"},
	{"^", ""},
}

func replaceSymbols(s string, table []replacement) string {
	for _, r := range table {
		s = strings.ReplaceAll(s, r.symbol, " "+r.word+" ")
	}
	return s
}

// Slugify normalizes a display string into a stable identifier: parenthetical
// asides are stripped, single-quoted segments after a colon are expanded with
// the inner symbol table, remaining symbols are expanded with the outer table,
// and the result is split on delimiters and camel-cased. The function is a
// pure function of (string, role) and is idempotent once normalized.
func Slugify(s string, role Role) string {
	if role == RoleProperty {
		s = strings.ReplaceAll(s, "@", "")
	}
	s = parenPattern.ReplaceAllString(s, "")
	s = quotedPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := quotedPattern.FindStringSubmatch(m)[1]
		return " " + replaceSymbols(inner, innerReplacements) + " "
	})
	s = replaceSymbols(s, symbolReplacements)

	words := delimiters.Split(strings.TrimSpace(s), -1)
	var b strings.Builder
	switch role {
	case RoleProperty:
		b.WriteString("has")
	case RoleIndividual:
		b.WriteString("ind")
	}
	b.WriteString(capitalize(words[0]))
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	`\`, `\\`,
)

// Escape renders a string safe for embedding in the OWL/XML output.
func Escape(s string) string {
	return escaper.Replace(s)
}
