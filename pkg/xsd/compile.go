package xsd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/caprica-project/go-owlgen/internal/xmlutil"
	"github.com/caprica-project/go-owlgen/pkg/owl"
)

// Patch forces a type to be flattened into its owner. Path descends through
// content-model dispatch tables into nested anonymous types.
type Patch struct {
	Type string
	Path []string
}

// Options carries the per-dataset configuration consumed at compile time.
type Options struct {
	// RawNamespaces lists the wildcard pass-through namespaces. Defaults to
	// XHTML when empty.
	RawNamespaces []string
	// NameOverrides rewrites public names keyed by local tag name.
	NameOverrides map[string]string
	// SkipPushdown names types whose documentation stays attached to the
	// relation instead of travelling to the surviving class.
	SkipPushdown []string
	// Patches are applied after registration, before annotation pushdown.
	Patches []Patch
}

// Compile parses an XSD document into a Schema. All one-time registry
// mutations (patches, annotation pushdown) complete here, strictly before
// any instance document is parsed.
func Compile(doc *xmlquery.Node, opts Options) (*Schema, error) {
	root := xmlutil.Root(doc)
	if root == nil || root.NamespaceURI != XSNamespace || root.Data != "schema" {
		return nil, errors.New("xsd: document has no xs:schema root")
	}

	s := &Schema{
		elements:      make(map[string]*Element),
		types:         builtinRegistry(),
		nameOverrides: opts.NameOverrides,
		rawNamespaces: opts.RawNamespaces,
	}
	if len(s.rawNamespaces) == 0 {
		s.rawNamespaces = []string{owl.XHTMLNamespace}
	}
	s.TargetNamespace, _ = xmlutil.LookupAttr(root, "targetNamespace")
	s.nsmap = xmlutil.NamespaceMap(root)

	c := &compiler{schema: s}
	for _, node := range xmlutil.ElementChildren(root) {
		if node.NamespaceURI != XSNamespace {
			continue
		}
		switch node.Data {
		case "element":
			el, err := c.compileElement(node)
			if err != nil {
				return nil, err
			}
			s.elements[s.qualify(el.name)] = el
		case "complexType":
			ct, err := c.compileComplexType(node)
			if err != nil {
				return nil, err
			}
			c.register(ct.name, ct)
		case "simpleType":
			st, err := c.compileSimpleType(node, "")
			if err != nil {
				return nil, err
			}
			c.register(st.name, st)
		}
	}

	if err := c.applyPatches(opts.Patches); err != nil {
		return nil, err
	}
	if err := c.pushAnnotations(opts.SkipPushdown); err != nil {
		return nil, err
	}
	return s, nil
}

// builtinRegistry pre-registers the built-in literal types. These entries are
// never overridden by schema declarations.
func builtinRegistry() map[string]typeDef {
	text := &literalType{datatype: owl.Name{Space: XSNamespace, Local: "string"}, parseFn: owl.NewText}
	date := &literalType{datatype: owl.Name{Space: XSNamespace, Local: "date"}, parseFn: owl.NewDate}
	integer := &literalType{datatype: owl.Name{Space: XSNamespace, Local: "integer"}, parseFn: owl.NewInteger}
	fragment := &literalType{datatype: owl.Name{Space: XSNamespace, Local: "integer"}, parseFn: owl.NewDateFragment}

	q := func(local string) string { return xmlutil.Qualify(XSNamespace, local) }
	return map[string]typeDef{
		q("string"):  text,
		q("token"):   text,
		q("anyURI"):  text,
		q("date"):    date,
		q("integer"): integer,
		q("gYear"):   integer,
		q("gMonth"):  fragment,
		q("gDay"):    fragment,
	}
}

type compiler struct {
	schema *Schema
}

func (c *compiler) register(name string, t typeDef) {
	key := c.schema.qualify(name)
	c.schema.types[key] = t
	c.schema.typeOrder = append(c.schema.typeOrder, key)
}

// typeRef converts a prefixed or plain type reference into a registry key.
// Plain references resolve against the target namespace.
func (c *compiler) typeRef(ref string) (TypeRef, error) {
	parts := strings.Split(ref, ":")
	switch len(parts) {
	case 1:
		return namedRef(c.schema.qualify(parts[0])), nil
	case 2:
		uri, ok := c.schema.nsmap[parts[0]]
		if !ok {
			return TypeRef{}, fmt.Errorf("xsd: unknown namespace prefix %q in type reference %q", parts[0], ref)
		}
		return namedRef(xmlutil.Qualify(uri, parts[1])), nil
	default:
		return TypeRef{}, fmt.Errorf("xsd: malformed type reference %q", ref)
	}
}

func (c *compiler) compileElement(node *xmlquery.Node) (*Element, error) {
	el := &Element{annotations: annotations(node)}
	el.name, _ = xmlutil.LookupAttr(node, "name")

	if ref, ok := xmlutil.LookupAttr(node, "type"); ok {
		typeRef, err := c.typeRef(ref)
		if err != nil {
			return nil, err
		}
		el.typeRef = typeRef
		return el, nil
	}

	for _, child := range xmlutil.ElementChildren(node) {
		if child.NamespaceURI != XSNamespace {
			continue
		}
		switch child.Data {
		case "complexType":
			ct, err := c.compileComplexType(child)
			if err != nil {
				return nil, err
			}
			el.typeRef = inlineRef(ct)
			return el, nil
		case "simpleType":
			st, err := c.compileSimpleType(child, "")
			if err != nil {
				return nil, err
			}
			el.typeRef = inlineRef(st)
			return el, nil
		}
	}
	return nil, fmt.Errorf("xsd: element %s declares no type", el.name)
}

func (c *compiler) compileAttribute(node *xmlquery.Node) (*Attribute, error) {
	attr := &Attribute{}
	attr.name, _ = xmlutil.LookupAttr(node, "name")
	use, _ := xmlutil.LookupAttr(node, "use")
	attr.required = use == "required"

	if ref, ok := xmlutil.LookupAttr(node, "type"); ok {
		typeRef, err := c.typeRef(ref)
		if err != nil {
			return nil, err
		}
		attr.typeRef = typeRef
		return attr, nil
	}
	for _, child := range xmlutil.ElementChildren(node) {
		if child.NamespaceURI == XSNamespace && child.Data == "simpleType" {
			st, err := c.compileSimpleType(child, attr.name)
			if err != nil {
				return nil, err
			}
			attr.typeRef = inlineRef(st)
			return attr, nil
		}
	}
	return nil, fmt.Errorf("xsd: attribute %s declares no type", attr.name)
}

func (c *compiler) compileComplexType(node *xmlquery.Node) (*ComplexType, error) {
	ct := &ComplexType{annotations: annotations(node)}
	ct.name, _ = xmlutil.LookupAttr(node, "name")

	for _, child := range xmlutil.ElementChildren(node) {
		if child.NamespaceURI != XSNamespace {
			continue
		}
		switch child.Data {
		case "attribute":
			attr, err := c.compileAttribute(child)
			if err != nil {
				return nil, err
			}
			ct.attributes = append(ct.attributes, attr)
		case "sequence":
			if ct.content != nil {
				return nil, fmt.Errorf("xsd: type %s has more than one content model", ct.name)
			}
			seq, err := c.compileSequence(child)
			if err != nil {
				return nil, err
			}
			ct.content = seq
		case "choice":
			if ct.content != nil {
				return nil, fmt.Errorf("xsd: type %s has more than one content model", ct.name)
			}
			choice, err := c.compileChoice(child)
			if err != nil {
				return nil, err
			}
			ct.content = choice
		case "simpleContent", "complexContent":
			if ct.content != nil {
				return nil, fmt.Errorf("xsd: type %s has more than one content model", ct.name)
			}
			ext, err := c.compileExtension(child)
			if err != nil {
				return nil, err
			}
			ct.content = ext
		}
	}
	ct.computeAlone()
	return ct, nil
}

func (c *compiler) compileExtension(contentNode *xmlquery.Node) (*Extension, error) {
	var extNode *xmlquery.Node
	for _, child := range xmlutil.ElementChildren(contentNode) {
		if child.NamespaceURI == XSNamespace && child.Data == "extension" {
			extNode = child
			break
		}
	}
	if extNode == nil {
		return nil, fmt.Errorf("xsd: %s without an extension is unsupported", contentNode.Data)
	}
	base, ok := xmlutil.LookupAttr(extNode, "base")
	if !ok {
		return nil, errors.New("xsd: extension declares no base type")
	}
	baseRef, err := c.typeRef(base)
	if err != nil {
		return nil, err
	}
	ext := &Extension{base: baseRef}
	for _, child := range xmlutil.ElementChildren(extNode) {
		if child.NamespaceURI == XSNamespace && child.Data == "attribute" {
			attr, err := c.compileAttribute(child)
			if err != nil {
				return nil, err
			}
			ext.attributes = append(ext.attributes, attr)
		}
	}
	return ext, nil
}

func (c *compiler) compileSequence(node *xmlquery.Node) (*Sequence, error) {
	seq := &Sequence{names: make(map[string]*Element)}
	var named int
	for _, child := range xmlutil.ElementChildren(node) {
		if child.NamespaceURI != XSNamespace {
			continue
		}
		switch child.Data {
		case "element":
			el, err := c.compileElement(child)
			if err != nil {
				return nil, err
			}
			if err := mergeName(seq.names, c.schema.qualify(el.name), el); err != nil {
				return nil, err
			}
			named++
		case "choice":
			choice, err := c.compileChoice(child)
			if err != nil {
				return nil, err
			}
			for tag, el := range choice.names {
				if err := mergeName(seq.names, tag, el); err != nil {
					return nil, err
				}
			}
			named++
		case "any":
			if seq.wildcard != nil {
				return nil, errors.New("xsd: sequence declares more than one wildcard")
			}
			ns, _ := xmlutil.LookupAttr(child, "namespace")
			seq.wildcard = &Wildcard{namespace: ns}
		}
	}
	if seq.wildcard != nil && named > 0 {
		return nil, errors.New("xsd: sequence mixes a wildcard with named children")
	}
	seq.childCount = named
	seq.alone = named <= 1
	return seq, nil
}

func (c *compiler) compileChoice(node *xmlquery.Node) (*Choice, error) {
	choice := &Choice{names: make(map[string]*Element)}
	for _, child := range xmlutil.ElementChildren(node) {
		if child.NamespaceURI != XSNamespace {
			continue
		}
		switch child.Data {
		case "element":
			el, err := c.compileElement(child)
			if err != nil {
				return nil, err
			}
			if err := mergeName(choice.names, c.schema.qualify(el.name), el); err != nil {
				return nil, err
			}
		case "sequence":
			seq, err := c.compileSequence(child)
			if err != nil {
				return nil, err
			}
			for tag, el := range seq.names {
				if err := mergeName(choice.names, tag, el); err != nil {
					return nil, err
				}
			}
		}
	}
	return choice, nil
}

// mergeName inserts a dispatch entry, enforcing the type-safety invariant:
// branches that share a tag must resolve to the same type object.
func mergeName(names map[string]*Element, tag string, el *Element) error {
	existing, ok := names[tag]
	if !ok {
		names[tag] = el
		return nil
	}
	if !existing.typeRef.equal(el.typeRef) {
		return &TypeConflictError{Tag: tag}
	}
	return nil
}

func (c *compiler) compileSimpleType(node *xmlquery.Node, fallbackName string) (*SimpleType, error) {
	st := &SimpleType{annotations: annotations(node)}
	st.name, _ = xmlutil.LookupAttr(node, "name")
	if st.name == "" {
		st.name = fallbackName
	}

	var restrictionNode *xmlquery.Node
	for _, child := range xmlutil.ElementChildren(node) {
		if child.NamespaceURI == XSNamespace && child.Data == "restriction" {
			restrictionNode = child
			break
		}
	}
	if restrictionNode == nil {
		return nil, fmt.Errorf("xsd: simple type %s has no restriction (lists and unions are unsupported)", st.name)
	}

	r := &Restriction{values: make(map[string]*enumValue)}
	if base, ok := xmlutil.LookupAttr(restrictionNode, "base"); ok {
		baseRef, err := c.typeRef(base)
		if err != nil {
			return nil, err
		}
		r.base = baseRef
	}
	for _, child := range xmlutil.ElementChildren(restrictionNode) {
		if child.NamespaceURI != XSNamespace || child.Data != "enumeration" {
			continue
		}
		value, _ := xmlutil.LookupAttr(child, "value")
		if _, exists := r.values[value]; exists {
			continue
		}
		singleton := owl.NewIndividual(value,
			owl.WithType(st.name),
			owl.WithAnnotations(annotations(child)...),
			owl.AsIgnored(),
		)
		c.schema.prelude = append(c.schema.prelude, singleton)
		r.values[value] = &enumValue{value: value, singleton: singleton}
	}
	st.restriction = r
	return st, nil
}

// applyPatches forces flattening on configured types, descending through
// dispatch tables for patches that reach nested anonymous types.
func (c *compiler) applyPatches(patches []Patch) error {
	for _, patch := range patches {
		key := c.schema.qualify(patch.Type)
		t, ok := c.schema.types[key]
		if !ok {
			return &UnresolvedReferenceError{Name: key}
		}
		ct, ok := t.(*ComplexType)
		if !ok {
			return fmt.Errorf("xsd: patch target %s is not a complex type", key)
		}
		for _, step := range patch.Path {
			next, err := c.descend(ct, step)
			if err != nil {
				return fmt.Errorf("xsd: patch %s: %w", patch.Type, err)
			}
			ct = next
		}
		ct.alone = true
	}
	return nil
}

func (c *compiler) descend(ct *ComplexType, step string) (*ComplexType, error) {
	var names map[string]*Element
	switch content := ct.content.(type) {
	case *Sequence:
		names = content.names
	case *Choice:
		names = content.names
	default:
		return nil, fmt.Errorf("no dispatch table to reach %s", step)
	}
	el, ok := names[c.schema.qualify(step)]
	if !ok {
		return nil, &UnresolvedReferenceError{Name: c.schema.qualify(step)}
	}
	t, err := c.schema.resolve(el.typeRef)
	if err != nil {
		return nil, err
	}
	next, ok := t.(*ComplexType)
	if !ok {
		return nil, fmt.Errorf("%s does not resolve to a complex type", step)
	}
	return next, nil
}

// pushAnnotations moves documentation from flattened wrappers down to the
// child that survives the flattening. Once flattened, the wrapper's class is
// never emitted, so its documentation must travel to whichever class does
// get emitted. This pass runs exactly once, before any document is parsed.
func (c *compiler) pushAnnotations(skip []string) error {
	skipSet := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipSet[name] = true
	}
	for _, key := range c.schema.typeOrder {
		ct, ok := c.schema.types[key].(*ComplexType)
		if !ok || !ct.alone || len(ct.annotations) == 0 {
			continue
		}
		if skipSet[xmlutil.Local(key)] {
			continue
		}
		visited := map[*ComplexType]bool{ct: true}
		if err := c.pushInto(ct, ct.annotations, visited); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) pushInto(ct *ComplexType, anns []string, visited map[*ComplexType]bool) error {
	target, err := c.survivor(ct)
	if err != nil {
		return err
	}
	next, ok := target.(*ComplexType)
	if !ok {
		// Attribute-only or wildcard survivors have no class of their own;
		// the documentation stays where it is.
		return nil
	}
	if next.marked {
		return fmt.Errorf("xsd: annotation pushdown into %s after its class was emitted", next.name)
	}
	if next.alone {
		if visited[next] {
			return nil
		}
		visited[next] = true
		return c.pushInto(next, anns, visited)
	}
	next.annotations = append(next.annotations, anns...)
	return nil
}

// survivor resolves the single piece of content that outlives flattening.
func (c *compiler) survivor(ct *ComplexType) (typeDef, error) {
	if ct.content == nil {
		if len(ct.attributes) == 1 {
			return c.schema.resolve(ct.attributes[0].typeRef)
		}
		return nil, nil
	}
	seq, ok := ct.content.(*Sequence)
	if !ok || seq.wildcard != nil || seq.childCount != 1 || len(seq.names) != 1 {
		return nil, nil
	}
	for _, el := range seq.names {
		return c.schema.resolve(el.typeRef)
	}
	return nil, nil
}
