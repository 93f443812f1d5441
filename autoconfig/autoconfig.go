// Package autoconfig looks up mail server settings in the Thunderbird
// ISPDB, a public database of client configuration records. It is a
// fallback for providers that do not answer autodiscover.
package autoconfig

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/ewsproto/ews-go/transport"
	"golang.org/x/net/html/charset"
)

// ispdbBase is the ISPDB lookup service.
const ispdbBase = "https://autoconfig.thunderbird.net/v1.1/"

// ClientConfig is the root of an ISPDB client configuration record.
type ClientConfig struct {
	EmailProvider EmailProvider `xml:"emailProvider"`
	OAuth2        *OAuth2       `xml:"oAuth2"`
}

// EmailProvider describes one provider's mail services.
type EmailProvider struct {
	ID               string          `xml:"id,attr"`
	Domains          []string        `xml:"domain"`
	DisplayName      string          `xml:"displayName"`
	DisplayShortName string          `xml:"displayShortName"`
	Documentation    []Documentation `xml:"documentation"`
	IncomingServers  []Server        `xml:"incomingServer"`
	OutgoingServers  []Server        `xml:"outgoingServer"`
}

// Server describes one incoming or outgoing mail server.
type Server struct {
	// Type is the mail protocol, e.g. "imap", "smtp" or "exchange".
	Type           string   `xml:"type,attr"`
	Hostname       string   `xml:"hostname"`
	Port           int      `xml:"port"`
	SocketType     string   `xml:"socketType"`
	Username       string   `xml:"username"`
	Authentication []string `xml:"authentication"`
}

// Socket types a Server may advertise.
const (
	SocketTypePlain    = "plain"
	SocketTypeSSL      = "SSL"
	SocketTypeStartTLS = "STARTTLS"
)

// Documentation links a provider's setup instructions.
type Documentation struct {
	URL          string   `xml:"url,attr"`
	Descriptions []string `xml:"descr"`
}

// OAuth2 carries the provider's OAuth2 parameters, when it supports them.
type OAuth2 struct {
	Issuer   string `xml:"issuer"`
	Scope    string `xml:"scope"`
	AuthURL  string `xml:"authURL"`
	TokenURL string `xml:"tokenURL"`
}

// Parse decodes an ISPDB client configuration document. The decoder
// honors the document's declared character encoding.
func Parse(r io.Reader) (*ClientConfig, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	var config ClientConfig
	if err := d.Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Lookup fetches the ISPDB record for domain. A nil client uses
// http.DefaultClient.
func Lookup(ctx context.Context, client transport.ClientDo, domain string) (*ClientConfig, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ispdbBase+domain, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("autoconfig: no record for %q (status %d)", domain, resp.StatusCode)
	}

	return Parse(resp.Body)
}
