package xml

// A Name represents an XML name. Space holds the namespace prefix as it
// appears in the document, not a resolved URI; an empty Space renders the
// local name alone.
type Name struct {
	Space, Local string
}

// An Attr represents an attribute in an XML element (Name=Value).
type Attr struct {
	Name  Name
	Value string
}

// Attribute returns an attribute with the given local name.
func Attribute(name, value string) Attr {
	return Attr{Name: Name{Local: name}, Value: value}
}

// DefaultNamespace returns the attribute declaring uri as the default
// namespace, i.e. xmlns="uri".
func DefaultNamespace(uri string) Attr {
	return Attr{Name: Name{Local: "xmlns"}, Value: uri}
}

// Namespace returns the attribute declaring uri under the given prefix,
// i.e. xmlns:prefix="uri".
func Namespace(prefix, uri string) Attr {
	return Attr{Name: Name{Space: "xmlns", Local: prefix}, Value: uri}
}

// A StartElement represents an XML start element. Attributes are written
// in slice order.
type StartElement struct {
	Name Name
	Attr []Attr
}

// Copy creates a new copy of StartElement with its own attribute slice.
func (e StartElement) Copy() StartElement {
	attrs := make([]Attr, len(e.Attr))
	copy(attrs, e.Attr)
	e.Attr = attrs
	return e
}

// End returns the corresponding XML end element.
func (e StartElement) End() EndElement {
	return EndElement{e.Name}
}

// An EndElement represents an XML end element.
type EndElement struct {
	Name Name
}
