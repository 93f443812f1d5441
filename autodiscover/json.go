package autodiscover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jmespath/go-jmespath"
)

// jsonHost answers Autodiscover v2 queries for Exchange Online mailboxes.
const jsonHost = "autodiscover-s.outlook.com"

// LocateJSON queries the Autodiscover v2 JSON endpoint for the EWS URL
// serving address. The endpoint needs no authentication, which makes it
// a useful first try for hosted mailboxes.
func (c *Client) LocateJSON(ctx context.Context, address string) (string, error) {
	u := url.URL{
		Scheme:   "https",
		Host:     jsonHost,
		Path:     "/autodiscover/autodiscover.json/v1.0/" + address,
		RawQuery: "Protocol=EWS",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("autodiscover: server responded with status %d", resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", err
	}

	result, err := jmespath.Search("Url", doc)
	if err != nil {
		return "", err
	}
	endpoint, ok := result.(string)
	if !ok || endpoint == "" {
		return "", fmt.Errorf("autodiscover: response carries no EWS URL")
	}
	return endpoint, nil
}
