package xml

// ElementWriter is the capability to write a value as a complete XML
// element (or, for transparent values such as scalar text, as element
// content). The xmlcodec compiler accepts any Go type implementing it as
// an element-role member without a registered schema.
type ElementWriter interface {
	WriteXMLElement(e *Encoder) error
}

// AttributeWriter is the capability to write a value as an attribute with
// the given name onto a start-element builder. Implementations append to
// start.Attr; leaving the builder untouched expresses an absent value.
type AttributeWriter interface {
	WriteXMLAttribute(start *StartElement, name string)
}
