package autodiscover

import (
	"bytes"

	"github.com/ewsproto/ews-go/xml"
)

// Namespace URIs of the POX autodiscover exchange.
const (
	requestSchemaURI  = "http://schemas.microsoft.com/exchange/autodiscover/outlook/requestschema/2006"
	responseSchemaURI = "http://schemas.microsoft.com/exchange/autodiscover/outlook/responseschema/2006a"
)

// requestBody builds the POX autodiscover request document for the given
// mailbox address.
func requestBody(address string) ([]byte, error) {
	var buf bytes.Buffer
	e := xml.NewEncoder(&buf)
	e.WriteDeclaration()

	root := xml.StartElement{
		Name: xml.Name{Local: "Autodiscover"},
		Attr: []xml.Attr{xml.DefaultNamespace(requestSchemaURI)},
	}
	e.WriteStartElement(root)

	request := xml.StartElement{Name: xml.Name{Local: "Request"}}
	e.WriteStartElement(request)

	writeTextElement(e, "EMailAddress", address)
	writeTextElement(e, "AcceptableResponseSchema", responseSchemaURI)

	e.WriteEndElement(request.End())
	e.WriteEndElement(root.End())

	if err := e.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTextElement(e *xml.Encoder, name, text string) {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	e.WriteStartElement(start)
	e.WriteText(text)
	e.WriteEndElement(start.End())
}
