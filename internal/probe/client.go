package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a response body is retained. Only the
// federation and OpenID probes read bodies, and both need far less.
const maxBodyBytes = 64 * 1024

// Client issues single-attempt HTTP probes with a fixed per-request timeout
// and User-Agent. It is constructed once per run, never mutated afterwards,
// and safe for concurrent use by every probe task.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient validates the user agent and builds the shared probe client.
// An unusable user agent is a fatal precondition: it would silently corrupt
// every request, so the run must not start.
func NewClient(timeout time.Duration, userAgent string) (*Client, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("user agent must not be empty")
	}
	for _, r := range userAgent {
		if r < 0x20 || r > 0x7e {
			return nil, fmt.Errorf("user agent contains invalid character %q", r)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}, nil
}

// NewClientWithTransport is a constructor for tests: it accepts a canned
// transport so probes can be pointed at fake backends.
func NewClientWithTransport(rt http.RoundTripper, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Transport: rt},
		userAgent: userAgent,
	}
}

// Get performs exactly one attempt against url and classifies the result.
// There are no retries; ambiguity is the evaluator's problem, not the
// transport's.
func (c *Client) Get(ctx context.Context, url string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// A request that cannot be built behaves like a hostname that
		// cannot be reached.
		return Outcome{Failure: FailureConnect, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Failure: Classify(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		// The status line arrived; a truncated body still counts as a
		// response for presence purposes.
		return Outcome{StatusCode: resp.StatusCode, Failure: FailureNone, Err: err}
	}

	return Outcome{StatusCode: resp.StatusCode, Body: string(body), Failure: FailureNone}
}
