// Package soap frames EWS operations in SOAP request envelopes.
package soap

import (
	"io"

	"github.com/ewsproto/ews-go/types"
	"github.com/ewsproto/ews-go/xml"
	"github.com/ewsproto/ews-go/xmlcodec"
)

// WriteRequest writes a complete SOAP request document carrying contents
// as the envelope body, XML declaration included. The first error from w
// aborts the remaining writes; the partial stream must be discarded.
func WriteRequest(w io.Writer, contents types.BodyContents) error {
	env := types.Envelope{Body: types.Body{Contents: contents}}

	e := xml.NewEncoder(w)
	e.WriteDeclaration()
	if err := xmlcodec.WriteElement(e, env); err != nil {
		return err
	}
	return e.Err()
}
