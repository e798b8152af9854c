package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout caps a single round trip. Callers usually set a tighter
// deadline on the context.
const DefaultHTTPTimeout = 30 * time.Second

// SDKClient talks to the matchday auth endpoint. It holds no session state;
// pkg/session owns that.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
}
