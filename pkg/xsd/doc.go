// Package xsd compiles an XML Schema into a reusable type model and walks
// conforming instance documents against it, producing the entity graph
// defined by package owl.
//
// The compiler supports the subset of XSD the document families actually
// use: sequences, choices, simple/complex-content extensions, enumerated
// restrictions, and a single wildcard capture. Groups, unions, lists, mixed
// content, and non-enumeration restrictions are deliberately unsupported.
package xsd
