package xml

import (
	"io"
	"strconv"
)

const (
	leftAngleBracket  = '<'
	rightAngleBracket = '>'
	forwardSlash      = '/'
	colon             = ':'
	equals            = '='
	quote             = '"'
)

// header is the XML document declaration emitted by WriteDeclaration.
const header = `<?xml version="1.0" encoding="utf-8"?>`

// Encoder writes XML events to an underlying io.Writer.
//
// The first error returned by the writer is latched: every later write
// becomes a no-op and Err returns that first error. XML serialization is
// not safe to resume over a partially written stream, so callers observing
// a non-nil Err must discard the output.
type Encoder struct {
	w       io.Writer
	scratch []byte
	err     error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, scratch: make([]byte, 0, 64)}
}

// Err returns the first error observed from the underlying writer.
func (e *Encoder) Err() error {
	return e.err
}

// WriteDeclaration writes the XML document declaration.
func (e *Encoder) WriteDeclaration() {
	e.writeString(header)
}

// WriteStartElement writes el including its namespace declarations and
// attributes, in slice order. Attribute values are escaped.
func (e *Encoder) WriteStartElement(el StartElement) {
	e.writeByte(leftAngleBracket)
	e.writeName(el.Name)

	for _, attr := range el.Attr {
		e.writeByte(' ')
		e.writeAttribute(attr)
	}

	e.writeByte(rightAngleBracket)
}

// WriteEndElement writes the end tag for el.
func (e *Encoder) WriteEndElement(el EndElement) {
	e.writeByte(leftAngleBracket)
	e.writeByte(forwardSlash)
	e.writeName(el.Name)
	e.writeByte(rightAngleBracket)
}

// WriteText writes s as escaped character data.
func (e *Encoder) WriteText(s string) {
	e.writeEscaped(s)
}

// WriteBool writes v as XML boolean text.
func (e *Encoder) WriteBool(v bool) {
	e.scratch = strconv.AppendBool(e.scratch[:0], v)
	e.write(e.scratch)
}

// WriteLong writes v as XML number text.
func (e *Encoder) WriteLong(v int64) {
	e.scratch = strconv.AppendInt(e.scratch[:0], v, 10)
	e.write(e.scratch)
}

// WriteDouble writes v as XML number text.
func (e *Encoder) WriteDouble(v float64, bits int) {
	e.scratch = strconv.AppendFloat(e.scratch[:0], v, 'g', -1, bits)
	e.write(e.scratch)
}

func (e *Encoder) writeName(n Name) {
	if len(n.Space) != 0 {
		e.writeString(n.Space)
		e.writeByte(colon)
	}
	e.writeString(n.Local)
}

// writeAttribute renders attr. A namespace declaration attribute carries
// "xmlns" in attr.Name.Space; a declaration of the default namespace has
// an empty Local and renders as a bare xmlns.
func (e *Encoder) writeAttribute(attr Attr) {
	name := attr.Name
	if len(name.Local) == 0 {
		name.Local = name.Space
		name.Space = ""
	}

	e.writeName(name)
	e.writeByte(equals)
	e.writeByte(quote)
	e.writeEscaped(attr.Value)
	e.writeByte(quote)
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(p); err != nil {
		e.err = err
	}
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
	}
}

func (e *Encoder) writeByte(c byte) {
	if e.err != nil {
		return
	}
	if bw, ok := e.w.(io.ByteWriter); ok {
		if err := bw.WriteByte(c); err != nil {
			e.err = err
		}
		return
	}
	if _, err := e.w.Write([]byte{c}); err != nil {
		e.err = err
	}
}
