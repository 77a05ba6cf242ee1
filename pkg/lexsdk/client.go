package lexsdk

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Default cookie and header names used by the API.
const (
	CSRFCookieName    = "csrf"
	SessionCookieName = "auth"
	CSRFHeaderName    = "X-CSRF-Token"
)

// SDKClient talks to the lexdesk API the way the web app does: it keeps the
// session and CSRF cookies in a jar and echoes the CSRF cookie in the
// X-CSRF-Token header on state-changing requests.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Origin, when set, is sent as the Origin header on every request.
	Origin string

	base *url.URL
}

// NewSDKClient creates a client with its own cookie jar.
func NewSDKClient(baseURL string) (*SDKClient, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &SDKClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		base: u,
	}, nil
}

// Cookie returns the value of the named cookie held for the API, if any.
func (c *SDKClient) Cookie(name string) string {
	if c.HTTPClient.Jar == nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// CSRFToken returns the CSRF token issued to this client, if any.
func (c *SDKClient) CSRFToken() string {
	return c.Cookie(CSRFCookieName)
}
