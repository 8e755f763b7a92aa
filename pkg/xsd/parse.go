package xsd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/caprica-project/go-owlgen/internal/xmlutil"
	"github.com/caprica-project/go-owlgen/pkg/owl"
)

// placeholderName marks a value assertion waiting to be claimed by the
// owning element's name.
const placeholderName = "@@value"

// parser carries the per-document state: the shared compiled schema and a
// document-order position counter that disambiguates individuals until slug
// assignment.
type parser struct {
	schema *Schema
	pos    int
}

func leadingText(node *xmlquery.Node) string {
	return xmlutil.LeadingText(node)
}

// ParseDocument walks an instance document against the compiled schema and
// returns the entity graph rooted at the document element. The root is parsed
// through its type directly, so an alone root still materializes its
// individual instead of flattening into a caller that does not exist.
// Serialize the result after Prelude to obtain the complete per-document
// output.
func (s *Schema) ParseDocument(doc *xmlquery.Node) ([]owl.Entry, error) {
	root := xmlutil.Root(doc)
	if root == nil {
		return nil, errors.New("xsd: document has no root element")
	}
	el, ok := s.elements[xmlutil.QName(root)]
	if !ok {
		return nil, &UnresolvedReferenceError{Name: xmlutil.QName(root)}
	}
	p := &parser{schema: s}
	t, err := s.resolve(el.typeRef)
	if err != nil {
		return nil, err
	}
	value, err := t.parse(p, root)
	if err != nil {
		return nil, err
	}
	ind, ok := value.(*owl.Individual)
	if !ok {
		return nil, fmt.Errorf("xsd: root element %s reduces to a scalar value", root.Data)
	}
	return []owl.Entry{ind}, nil
}

// parse resolves the element's type and parses the node through it. Alone
// types splice their assertions into the caller, with any placeholder value
// claimed under this element's name; everything else is wrapped as a single
// named assertion.
func (e *Element) parse(p *parser, node *xmlquery.Node) ([]owl.Has, error) {
	t, err := p.schema.resolve(e.typeRef)
	if err != nil {
		return nil, err
	}
	value, err := t.parse(p, node)
	if err != nil {
		return nil, err
	}
	name := p.schema.publicName(node.Data)
	if !t.Alone() {
		return []owl.Has{{Name: name, Value: value}}, nil
	}
	ind, ok := value.(*owl.Individual)
	if !ok {
		return nil, fmt.Errorf("xsd: flattened element %s yielded no assertions", name)
	}
	out := make([]owl.Has, 0, len(ind.Assertions))
	for _, has := range ind.Assertions {
		if has.Name == placeholderName {
			out = append(out, owl.Has{Name: name, Value: has.Value})
			continue
		}
		out = append(out, has)
	}
	return out, nil
}

// parse resolves the attribute's raw string value through its type.
func (a *Attribute) parse(p *parser, raw string) (owl.Has, error) {
	t, err := p.schema.resolve(a.typeRef)
	if err != nil {
		return owl.Has{}, err
	}
	tt, ok := t.(textType)
	if !ok {
		return owl.Has{}, fmt.Errorf("xsd: attribute %s is bound to a non-scalar type", a.name)
	}
	value, err := tt.parseText(p, raw)
	if err != nil {
		return owl.Has{}, err
	}
	return owl.Has{Name: a.name, Value: value}, nil
}

func (t *ComplexType) parse(p *parser, node *xmlquery.Node) (owl.Value, error) {
	var assertions []owl.Has
	for _, attr := range t.attributes {
		raw, ok := xmlutil.LookupAttr(node, attr.name)
		if !ok {
			continue
		}
		has, err := attr.parse(p, raw)
		if err != nil {
			return nil, err
		}
		assertions = append(assertions, has)
	}
	if t.content != nil {
		more, err := t.content.parse(p, node)
		if err != nil {
			return nil, err
		}
		assertions = append(assertions, more...)
	}
	name := p.schema.publicName(node.Data)
	p.schema.markClass(t, name)
	p.pos++
	return owl.NewIndividual(
		fmt.Sprintf("%s_%d", name, p.pos),
		owl.WithType(name),
		owl.WithAssertions(assertions...),
	), nil
}

func (t *SimpleType) parse(p *parser, node *xmlquery.Node) (owl.Value, error) {
	text := strings.TrimSpace(leadingText(node))
	if text == "" {
		return nil, ErrEmptyValue
	}
	return t.restriction.lookup(t.name, text)
}

func (t *SimpleType) parseText(_ *parser, value string) (owl.Value, error) {
	return t.restriction.lookup(t.name, value)
}

// lookup resolves a declared vocabulary value to its shared singleton.
func (r *Restriction) lookup(typeName, value string) (owl.Value, error) {
	v := strings.TrimSpace(value)
	ev, ok := r.values[v]
	if !ok {
		return nil, &UnknownValueError{Type: typeName, Value: v}
	}
	return ev.singleton, nil
}

func (s *Sequence) parse(p *parser, node *xmlquery.Node) ([]owl.Has, error) {
	if s.wildcard != nil {
		value, err := s.wildcard.capture(p, node)
		if err != nil {
			return nil, err
		}
		return []owl.Has{{Name: placeholderName, Value: value}}, nil
	}
	return dispatchChildren(p, node, s.names)
}

func (c *Choice) parse(p *parser, node *xmlquery.Node) ([]owl.Has, error) {
	return dispatchChildren(p, node, c.names)
}

// dispatchChildren walks the node's children in document order, parsing each
// through the merged dispatch table and flattening list-shaped results.
func dispatchChildren(p *parser, node *xmlquery.Node, names map[string]*Element) ([]owl.Has, error) {
	var assertions []owl.Has
	for _, child := range xmlutil.ElementChildren(node) {
		el, ok := names[xmlutil.QName(child)]
		if !ok {
			return nil, &UnresolvedReferenceError{Name: xmlutil.QName(child)}
		}
		sub, err := el.parse(p, child)
		if err != nil {
			return nil, err
		}
		assertions = append(assertions, sub...)
	}
	return assertions, nil
}

func (e *Extension) parse(p *parser, node *xmlquery.Node) ([]owl.Has, error) {
	var assertions []owl.Has
	for _, attr := range e.attributes {
		raw, ok := xmlutil.LookupAttr(node, attr.name)
		if !ok {
			continue
		}
		has, err := attr.parse(p, raw)
		if err != nil {
			return nil, err
		}
		assertions = append(assertions, has)
	}
	base, err := p.schema.resolve(e.base)
	if err != nil {
		return nil, err
	}
	value, err := base.parse(p, node)
	if err != nil {
		// An empty base value just means the extension carries attributes
		// only; anything else aborts the document.
		if errors.Is(err, ErrEmptyValue) {
			return assertions, nil
		}
		return nil, err
	}
	switch v := value.(type) {
	case owl.Literal:
		assertions = append(assertions, owl.Has{Name: placeholderName, Value: v})
	case *owl.Individual:
		assertions = append(assertions, v.Assertions...)
	}
	return assertions, nil
}

// capture concatenates the node's text and the serialized markup of its
// children into one opaque blob, wrapped as a div in the wildcard's declared
// namespace. A schema type registered for that div tag parses the blob;
// otherwise the blob becomes a raw markup literal, provided the declared
// namespace is one of the pass-through namespaces.
func (w *Wildcard) capture(p *parser, node *xmlquery.Node) (owl.Value, error) {
	blob := xmlutil.InnerMarkup(node)
	if t, ok := p.schema.types[xmlutil.Qualify(w.namespace, "div")]; ok {
		if tt, ok := t.(textType); ok {
			return tt.parseText(p, blob)
		}
	}
	for _, ns := range p.schema.rawNamespaces {
		if ns != w.namespace {
			continue
		}
		prefix := wrapperPrefix(ns)
		markup := "<" + prefix + `:div xmlns:` + prefix + `="` + ns + `">` + xmlutil.EscapeText(blob) + "</" + prefix + ":div>"
		return owl.NewRawText(markup, owl.Name{Space: ns, Local: "div"}), nil
	}
	return nil, &NamespaceError{Namespace: w.namespace}
}

// wrapperPrefix picks the namespace prefix for the raw div wrapper. XHTML
// keeps its conventional prefix; other pass-through namespaces get a neutral
// one.
func wrapperPrefix(ns string) string {
	if ns == owl.XHTMLNamespace {
		return "xhtml"
	}
	return "ns"
}
