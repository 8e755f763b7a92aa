package xsd

import (
	"html"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/caprica-project/go-owlgen/internal/xmlutil"
)

var (
	annotationPolicyOnce sync.Once
	annotationPolicy     *bluemonday.Policy
)

func annotationSanitizer() *bluemonday.Policy {
	annotationPolicyOnce.Do(func() {
		annotationPolicy = bluemonday.StrictPolicy()
	})
	return annotationPolicy
}

// sanitizeAnnotation reduces documentation content to plain text. Schema
// authors embed XHTML inside xs:documentation; the markup is stripped and
// entities are folded back so annotations read naturally in the ontology.
func sanitizeAnnotation(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := annotationSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// annotations collects the documentation strings attached to a schema node
// through xs:annotation/xs:documentation.
func annotations(node *xmlquery.Node) []string {
	var out []string
	for _, ann := range xmlutil.ElementChildren(node) {
		if ann.NamespaceURI != XSNamespace || ann.Data != "annotation" {
			continue
		}
		for _, doc := range xmlutil.ElementChildren(ann) {
			if doc.NamespaceURI != XSNamespace || doc.Data != "documentation" {
				continue
			}
			if text := sanitizeAnnotation(xmlutil.LeadingText(doc)); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}
