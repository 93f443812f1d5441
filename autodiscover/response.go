package autodiscover

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

// endpointFromResponse scans a POX autodiscover response for the EWS
// endpoint URL, the ASUrl element under Account/Protocol. A token scan
// keeps the parse independent of the rest of the response schema, which
// varies widely between servers.
func endpointFromResponse(r io.Reader) (string, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	var inAccount, inProtocol, inASUrl bool
	var endpoint string
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Account":
				inAccount = true
			case "Protocol":
				inProtocol = inAccount
			case "ASUrl":
				inASUrl = inProtocol
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "Account":
				inAccount = false
			case "Protocol":
				inProtocol = false
			case "ASUrl":
				inASUrl = false
			}
		case xml.CharData:
			if inASUrl && endpoint == "" {
				endpoint = string(t)
			}
		}
	}

	if endpoint == "" {
		return "", errors.New("autodiscover: response carries no ASUrl")
	}
	return endpoint, nil
}
