// Package traits defines the serialization annotations recognized by the
// xmlcodec schema compiler. Every trait here lives in the "ews.serde" trait
// namespace; the compiler treats any other trait in that namespace as an
// error and ignores traits from foreign namespaces entirely.
package traits

// XMLNamespace declares an XML namespace emitted on the annotated type's
// root element. An empty Prefix declares the default namespace (xmlns=...);
// a non-empty Prefix declares a prefixed namespace (xmlns:prefix=...).
//
// A shape may declare any number of prefixed namespaces but at most one
// default namespace.
type XMLNamespace struct {
	Prefix string
	URI    string
}

// TraitID identifies the trait.
func (*XMLNamespace) TraitID() string { return "ews.serde#xmlNamespace" }

// XMLNamePrefix declares the namespace prefix prepended to the annotated
// type's own element name, e.g. Prefix "t" on FolderId yields the element
// name "t:FolderId". At most one declaration per shape.
type XMLNamePrefix struct {
	Prefix string
}

// TraitID identifies the trait.
func (*XMLNamePrefix) TraitID() string { return "ews.serde#xmlNamePrefix" }

// XMLAttribute marks a named member to serialize as an XML attribute on
// its owning element's start tag rather than as a child element. It is
// rejected on positional members, whose attribute name could not be
// derived.
type XMLAttribute struct{}

// TraitID identifies the trait.
func (*XMLAttribute) TraitID() string { return "ews.serde#xmlAttribute" }
