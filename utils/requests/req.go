package requests

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const DEFAULT_TIMEOUT = 8 * time.Second

var pingClient = http.Client{Timeout: 2 * time.Second} // Use when performing HEAD requests.

// Sends GET requests with a shared timeout and an optional rate limiter.
// The zero value is not usable, create one with [NewClient].
type Client struct {
	http    *http.Client
	limiter *rate.Limiter // nil means unlimited
}

// Creates a client whose requests time out after timeout. When reqPerMin is above 0,
// requests wait for a token so no more than reqPerMin are sent each minute.
func NewClient(timeout time.Duration, reqPerMin int) *Client {
	c := &Client{http: &http.Client{Timeout: timeout}}
	if reqPerMin > 0 {
		perSec := rate.Limit(float64(reqPerMin) / 60)
		c.limiter = rate.NewLimiter(perSec, 1)
	}

	return c
}

// Sends a HEAD request to url, returning the received response.
func Head(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}

	r, err := pingClient.Do(req)
	if err != nil {
		return nil, err // network error or timeout
	}

	defer r.Body.Close()
	return r, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}

	return c.limiter.Wait(ctx)
}

// Reads the response body all at once with [io.ReadAll], but with an additional check for client/server error codes so that we know the body
// is safe to read. If the caller is not expecting an empty body, they should handle it appropriately with a length check
// as no error will be output in such a case.
func ReadResponseBody(r *http.Response) ([]byte, error) {
	defer r.Body.Close()

	if r.StatusCode >= 400 {
		return nil, fmt.Errorf("failed to read response body. %s", r.Status)
	}

	return io.ReadAll(r.Body)
}
