package owl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Well-known namespaces used by the literal model and the wildcard capture.
const (
	XSDNamespace   = "http://www.w3.org/2001/XMLSchema"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// ErrEmptyValue reports a literal node with no text content. It is a
// recoverable condition: extension-base parsing swallows it, everywhere else
// it aborts the enclosing document.
var ErrEmptyValue = errors.New("owl: empty literal value")

// Name is a namespace-qualified identifier.
type Name struct {
	Space string
	Local string
}

// IRI renders the name as an ontology IRI.
func (n Name) IRI() string {
	return n.Space + "#" + n.Local
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// LiteralKind enumerates the supported scalar kinds.
type LiteralKind int

const (
	KindText LiteralKind = iota
	KindDate
	KindInteger
)

const dateLayout = "2006-01-02"

// Literal is an immutable scalar value carrying its datatype IRI and a
// rendering rule keyed by kind.
type Literal struct {
	kind     LiteralKind
	datatype Name
	text     string
	date     time.Time
	number   int64
}

func (Literal) isValue() {}

// NewText parses a text literal, trimming surrounding whitespace.
func NewText(value string, datatype Name) (Literal, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Literal{}, ErrEmptyValue
	}
	return Literal{kind: KindText, datatype: datatype, text: v}, nil
}

// NewRawText builds a text literal without trimming or emptiness checks, for
// opaque captured markup.
func NewRawText(value string, datatype Name) Literal {
	return Literal{kind: KindText, datatype: datatype, text: value}
}

// NewDate parses a calendar date literal (YYYY-MM-DD).
func NewDate(value string, datatype Name) (Literal, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Literal{}, ErrEmptyValue
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return Literal{}, fmt.Errorf("owl: parse date %q: %w", v, err)
	}
	return Literal{kind: KindDate, datatype: datatype, date: t}, nil
}

// NewInteger parses an integer literal.
func NewInteger(value string, datatype Name) (Literal, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Literal{}, ErrEmptyValue
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return Literal{}, fmt.Errorf("owl: parse integer %q: %w", v, err)
	}
	return Literal{kind: KindInteger, datatype: datatype, number: n}, nil
}

// NewDateFragment parses a compact date fragment (gMonth/gDay lexical forms
// such as "--06") into an integer literal.
func NewDateFragment(value string, datatype Name) (Literal, error) {
	v := strings.ReplaceAll(strings.TrimSpace(value), "-", "")
	if v == "" {
		return Literal{}, ErrEmptyValue
	}
	return NewInteger(v, datatype)
}

// Kind returns the literal's scalar kind.
func (l Literal) Kind() LiteralKind {
	return l.kind
}

// Datatype returns the literal's datatype name.
func (l Literal) Datatype() Name {
	return l.datatype
}

// Value renders the parsed value back into its canonical lexical form.
func (l Literal) Value() string {
	switch l.kind {
	case KindDate:
		return l.date.Format(dateLayout)
	case KindInteger:
		return strconv.FormatInt(l.number, 10)
	default:
		return l.text
	}
}

// escaped renders the value for embedding in OWL/XML. Dates and integers have
// canonical forms that need no escaping.
func (l Literal) escaped() string {
	if l.kind == KindText {
		return Escape(l.text)
	}
	return l.Value()
}
