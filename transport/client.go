// Package transport sends serialized EWS operations to an Exchange
// endpoint over HTTP.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ewsproto/ews-go/logging"
	"github.com/ewsproto/ews-go/soap"
	"github.com/ewsproto/ews-go/types"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Office 365 EWS endpoint.
const DefaultEndpoint = "https://outlook.office365.com/EWS/Exchange.asmx"

// contentType is the media type EWS expects for SOAP requests.
const contentType = "text/xml; charset=utf-8"

// ClientDo provides the interface for custom HTTP client implementations.
type ClientDo interface {
	Do(*http.Request) (*http.Response, error)
}

// ClientDoFunc provides a helper to wrap a function as an HTTP client.
type ClientDoFunc func(*http.Request) (*http.Response, error)

// Do invokes the underlying function, returning the result.
func (fn ClientDoFunc) Do(r *http.Request) (*http.Response, error) {
	return fn(r)
}

// Credentials is a Basic authentication identity.
type Credentials struct {
	Username string
	Password string
}

// Options configures a Client.
type Options struct {
	// Endpoint is the EWS endpoint URL requests are posted to. Defaults
	// to DefaultEndpoint.
	Endpoint string

	// HTTPClient sends the requests. Defaults to http.DefaultClient.
	HTTPClient ClientDo

	// Credentials authenticate each request.
	Credentials Credentials

	// Logger receives request diagnostics. Defaults to a no-op logger.
	Logger logging.Logger

	// Limiter, when set, bounds the request rate. Exchange throttles
	// chatty clients hard; pacing requests avoids server backoff.
	Limiter *rate.Limiter
}

// Client posts EWS operations to a single Exchange endpoint.
type Client struct {
	options Options
}

// New returns a Client configured by the given option functions.
func New(optFns ...func(*Options)) *Client {
	options := Options{
		Endpoint:   DefaultEndpoint,
		HTTPClient: http.DefaultClient,
		Logger:     logging.Noop{},
	}
	for _, fn := range optFns {
		fn(&options)
	}
	return &Client{options: options}
}

// WithCredentials returns an option function setting the client identity.
func WithCredentials(username, password string) func(*Options) {
	return func(o *Options) {
		o.Credentials = Credentials{Username: username, Password: password}
	}
}

// WithEndpoint returns an option function setting the endpoint URL.
func WithEndpoint(url string) func(*Options) {
	return func(o *Options) {
		o.Endpoint = url
	}
}

// Post frames contents in a SOAP envelope, posts it to the endpoint, and
// returns the raw response document.
func (c *Client) Post(ctx context.Context, contents types.BodyContents) ([]byte, error) {
	var body bytes.Buffer
	if err := soap.WriteRequest(&body, contents); err != nil {
		return nil, err
	}

	if c.options.Limiter != nil {
		if err := c.options.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.Endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(c.options.Credentials.Username, c.options.Credentials.Password)

	c.options.Logger.Logf(logging.Debug, "POST %s (%d bytes)", c.options.Endpoint, body.Len())

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.options.Logger.Logf(logging.Warn, "request failed with status %d", resp.StatusCode)
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: payload}
	}
	return payload, nil
}

// FindItem sends a FindItem operation and decodes its response.
func (c *Client) FindItem(ctx context.Context, op *types.FindItem) (*types.FindItemResponse, error) {
	payload, err := c.Post(ctx, types.BodyContentsMemberFindItem{Value: *op})
	if err != nil {
		return nil, err
	}

	env, err := types.ParseResponseEnvelope(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if env.Body.FindItemResponse == nil {
		return nil, fmt.Errorf("transport: response envelope carries no FindItemResponse")
	}
	return env.Body.FindItemResponse, nil
}

// ResponseError is returned when the server answers with a non-200
// status. Body retains the response payload for diagnosis.
type ResponseError struct {
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("transport: server responded with status %d", e.StatusCode)
}
