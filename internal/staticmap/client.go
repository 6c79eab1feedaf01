package staticmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches rendered map images from the static-map provider. Fetches
// are single-attempt; callers decide how to degrade when an image is missing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *Client) FetchImage(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(c.baseURL, c.apiKey), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("static map fetch: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
