package requests

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("error waiting to send GET request to %s:\n  %w", url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GET request to %s:\n  %w", url, err)
	}

	start := time.Now()
	response, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error during GET request to %s:\n  %w", url, err)
	}

	if _, ok := GetResponseStatus(response.StatusCode); !ok {
		log.WithFields(log.Fields{"url": url, "status": response.Status}).Debug("GET returned a non-ok status")
	}

	resBody, err := ReadResponseBody(response)
	if err != nil {
		return nil, fmt.Errorf("error during GET request to %s:\n  %w", url, err)
	}

	log.WithFields(log.Fields{"url": url, "bytes": len(resBody), "took": time.Since(start)}).Debug("GET request complete")
	return resBody, nil
}
