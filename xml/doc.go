// Package xml provides the XML event writer the generated serializers
// drive at call time.
//
// Serializer functions build a StartElement, attach namespace declarations
// and attributes to it in order, then emit it together with the element's
// content through an Encoder. The Encoder latches the first error returned
// by the underlying io.Writer; once a write fails the remaining writes for
// that value are dropped and the error surfaces unchanged from the
// top-level call.
package xml
