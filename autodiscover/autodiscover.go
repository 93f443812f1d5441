// Package autodiscover locates the EWS endpoint serving a mailbox using
// the Autodiscover protocols: the POX (plain old XML) exchange for
// on-premises and hosted servers, and the unauthenticated JSON v2
// endpoint as an alternative.
package autodiscover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ewsproto/ews-go/logging"
	"github.com/ewsproto/ews-go/transport"
	"golang.org/x/sync/errgroup"
)

// ErrAuthRequired is returned when every reachable autodiscover endpoint
// demanded credentials the client does not have.
var ErrAuthRequired = errors.New("autodiscover: authentication required")

// Options configures a Client.
type Options struct {
	// HTTPClient sends the probe requests. Defaults to
	// http.DefaultClient.
	HTTPClient transport.ClientDo

	// Credentials, when set, authenticate the probes with Basic
	// authentication. Many servers answer autodiscover without them.
	Credentials *transport.Credentials

	// Logger receives probe diagnostics. Defaults to a no-op logger.
	Logger logging.Logger
}

// Client performs autodiscover lookups.
type Client struct {
	options Options
}

// New returns a Client configured by the given option functions.
func New(optFns ...func(*Options)) *Client {
	options := Options{
		HTTPClient: http.DefaultClient,
		Logger:     logging.Noop{},
	}
	for _, fn := range optFns {
		fn(&options)
	}
	return &Client{options: options}
}

// WithCredentials returns an option function setting the probe identity.
func WithCredentials(username, password string) func(*Options) {
	return func(o *Options) {
		o.Credentials = &transport.Credentials{Username: username, Password: password}
	}
}

// CandidateEndpoints returns the autodiscover URLs to probe for the
// mailbox address, most specific first.
func CandidateEndpoints(address string) ([]string, error) {
	domain, err := domainOf(address)
	if err != nil {
		return nil, err
	}
	return []string{
		fmt.Sprintf("https://autodiscover.%s/autodiscover/autodiscover.xml", domain),
		fmt.Sprintf("https://%s/autodiscover/autodiscover.xml", domain),
	}, nil
}

func domainOf(address string) (string, error) {
	at := strings.LastIndexByte(address, '@')
	if at < 0 || at == len(address)-1 {
		return "", fmt.Errorf("autodiscover: %q is not a mailbox address", address)
	}
	return address[at+1:], nil
}

// Locate probes the candidate endpoints for address concurrently and
// returns the EWS endpoint URL from the most specific one that answered.
func (c *Client) Locate(ctx context.Context, address string) (string, error) {
	candidates, err := CandidateEndpoints(address)
	if err != nil {
		return "", err
	}

	body, err := requestBody(address)
	if err != nil {
		return "", err
	}

	g, ctx := errgroup.WithContext(ctx)
	endpoints := make([]string, len(candidates))
	failures := make([]error, len(candidates))
	for i, url := range candidates {
		i, url := i, url
		g.Go(func() error {
			endpoint, err := c.probe(ctx, url, body)
			if err != nil {
				c.options.Logger.Logf(logging.Debug, "probe %s: %v", url, err)
				failures[i] = fmt.Errorf("%s: %w", url, err)
				return nil
			}
			endpoints[i] = endpoint
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	// Preference follows candidate order, not answer order.
	for _, endpoint := range endpoints {
		if endpoint != "" {
			return endpoint, nil
		}
	}

	for _, err := range failures {
		if !errors.Is(err, ErrAuthRequired) {
			return "", errors.Join(failures...)
		}
	}
	return "", ErrAuthRequired
}

func (c *Client) probe(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	if c.options.Credentials != nil {
		req.SetBasicAuth(c.options.Credentials.Username, c.options.Credentials.Password)
	}

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		return "", ErrAuthRequired
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("autodiscover: server responded with status %d", resp.StatusCode)
	}

	return endpointFromResponse(resp.Body)
}
