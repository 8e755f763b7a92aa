// Package xmlutil provides qualified-name and traversal helpers over
// xmlquery node trees.
package xmlutil

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Qualify joins a namespace URI and a local name into the registry key form
// "{namespace}local". Names without a namespace stay plain.
func Qualify(namespace, local string) string {
	if namespace == "" {
		return local
	}
	return "{" + namespace + "}" + local
}

// QName returns the registry key for an element node.
func QName(n *xmlquery.Node) string {
	return Qualify(n.NamespaceURI, n.Data)
}

// Local extracts the local part of a registry key.
func Local(qualified string) string {
	if i := strings.LastIndex(qualified, "}"); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// Root returns the first element child of a document node.
func Root(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// ElementChildren collects the direct element children of a node in document
// order.
func ElementChildren(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// LeadingText returns the text content preceding the first element child,
// mirroring a document-tree "text" accessor.
func LeadingText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b.WriteString(c.Data)
		case xmlquery.ElementNode:
			return b.String()
		}
	}
	return b.String()
}

// InnerMarkup concatenates a node's leading text with the serialized markup
// of all its element children, producing the opaque wildcard capture blob.
func InnerMarkup(n *xmlquery.Node) string {
	var b strings.Builder
	b.WriteString(LeadingText(n))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			b.WriteString(c.OutputXML(true))
		}
	}
	return b.String()
}

// LookupAttr finds an attribute by local name, reporting presence.
func LookupAttr(n *xmlquery.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Name.Local == name && attr.Name.Space != "xmlns" {
			return attr.Value, true
		}
	}
	return "", false
}

// NamespaceMap extracts prefix bindings declared on a node. The default
// namespace is stored under the empty prefix.
func NamespaceMap(n *xmlquery.Node) map[string]string {
	out := make(map[string]string)
	for _, attr := range n.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			out[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			out[""] = attr.Value
		}
	}
	return out
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes character data for embedding inside an XML element.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
