// Package health pkg/health/checker.go
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const defaultCheckTimeout = 3 * time.Second

// HTTPChecker probes an HTTP liveness endpoint. Any 2xx/3xx response
// counts as available; only reachability matters, not the body.
type HTTPChecker struct {
	URL    string
	client *http.Client
}

// NewHTTPChecker creates a checker for the given liveness URL. A zero
// timeout falls back to the default probe timeout.
func NewHTTPChecker(url string, timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	return &HTTPChecker{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPChecker) Check(ctx context.Context) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, http.NoBody)
	if err != nil {
		return false, fmt.Sprintf("invalid probe request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Sprintf("probe failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return false, fmt.Sprintf("probe returned status %d", resp.StatusCode)
	}

	return true, fmt.Sprintf("probe returned status %d", resp.StatusCode)
}
