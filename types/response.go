package types

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// ResponseEnvelope is the SOAP envelope of an EWS response. Responses are
// decoded with the standard library decoder; the schema registry only
// drives serialization.
type ResponseEnvelope struct {
	Body ResponseBody `xml:"Body"`
}

// ResponseBody is the body of a SOAP response envelope.
type ResponseBody struct {
	FindItemResponse *FindItemResponse `xml:"FindItemResponse"`
}

// FindItemResponse is the result of a FindItem operation.
type FindItemResponse struct {
	ResponseMessages ResponseMessages `xml:"ResponseMessages"`
}

// Messages flattens the items of every response message into one list.
func (r *FindItemResponse) Messages() []Message {
	var out []Message
	for _, m := range r.ResponseMessages.FindItemResponseMessages {
		out = append(out, m.RootFolder.Items.Messages...)
	}
	return out
}

// ResponseMessages groups the per-folder response messages.
type ResponseMessages struct {
	FindItemResponseMessages []FindItemResponseMessage `xml:"FindItemResponseMessage"`
}

// FindItemResponseMessage reports the result of searching one folder.
type FindItemResponseMessage struct {
	ResponseClass string     `xml:"ResponseClass,attr"`
	ResponseCode  string     `xml:"ResponseCode"`
	RootFolder    RootFolder `xml:"RootFolder"`
}

// RootFolder is the folder results are drawn from.
type RootFolder struct {
	TotalItemsInView        int   `xml:"TotalItemsInView,attr"`
	IncludesLastItemInRange bool  `xml:"IncludesLastItemInRange,attr"`
	Items                   Items `xml:"Items"`
}

// Items holds the items found in a folder.
type Items struct {
	Messages []Message `xml:"Message"`
}

// Message is an email message.
type Message struct {
	ItemId       ItemId `xml:"ItemId"`
	Subject      string `xml:"Subject"`
	IsRead       *bool  `xml:"IsRead"`
	DateTimeSent string `xml:"DateTimeSent"`
}

// ItemId uniquely identifies an item in a mailbox.
type ItemId struct {
	Id        string `xml:"Id,attr"`
	ChangeKey string `xml:"ChangeKey,attr"`
}

// ParseResponseEnvelope decodes an EWS response document. The decoder
// honors the document's declared character encoding.
func ParseResponseEnvelope(r io.Reader) (*ResponseEnvelope, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	var env ResponseEnvelope
	if err := d.Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}
