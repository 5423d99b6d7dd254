package httpx

import (
	"net/http"
	"time"
)

// Doer is the minimal HTTP client interface used across lookup providers.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UserAgent identifies outbound lookup requests to the metadata services.
const UserAgent = "bibmerge/1.0 (mailto:bibmerge@localhost)"

// SetUA sets the shared User-Agent header on the request.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", UserAgent)
	}
}

// NewClient returns the default client used by providers: a plain net/http
// client with the standard lookup timeout.
func NewClient() *http.Client { return &http.Client{Timeout: 10 * time.Second} }
