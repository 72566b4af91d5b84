package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// VersionPath is the GraphQL engine endpoint probed for readiness.
const VersionPath = "/v1/version"

// ServiceHealthChecker defines the interface for checking service health
type ServiceHealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// VersionChecker probes the GraphQL engine's version endpoint.
type VersionChecker struct {
	url    string
	client *http.Client
}

// NewVersionChecker creates a checker for http://localhost:<port>/v1/version.
// timeout bounds a single probe; it does not bound the overall wait.
func NewVersionChecker(port int, timeout time.Duration) *VersionChecker {
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout
	return &VersionChecker{
		url:    EndpointURL(port) + VersionPath,
		client: client,
	}
}

// EndpointURL is the base URL of the GraphQL engine on the local machine.
func EndpointURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

// URL returns the probed URL.
func (v *VersionChecker) URL() string {
	return v.url
}

// CheckHealth performs one GET and succeeds on any 2xx response.
func (v *VersionChecker) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", v.url, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused by the next probe.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d", v.url, resp.StatusCode)
	}
	return nil
}
