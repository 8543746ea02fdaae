package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// userIDHeader carries the identity normally injected by the auth proxy.
const userIDHeader = "X-User-ID"

// Client is a JSON API client acting as a fixed user.
type Client struct {
	client *http.Client
	url    string
	userID int64
}

// NewClient creates a client for the given server URL. A zero userID makes
// unauthenticated requests.
func NewClient(url string, userID int64) *Client {
	return &Client{
		client: &http.Client{},
		url:    url,
		userID: userID,
	}
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err == nil {
			if closeErr := resp.Body.Close(); closeErr != nil {
				return fmt.Errorf("close response body: %w", closeErr)
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get performs a GET request and decodes the JSON response into out when out
// is non-nil. Returns the response status code.
func (c *Client) Get(ctx context.Context, urlPath string, out any) (int, error) {
	return c.do(ctx, http.MethodGet, urlPath, nil, out)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, urlPath string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPost, urlPath, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, urlPath string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPut, urlPath, body, out)
}

func (c *Client) do(ctx context.Context, method, urlPath string, body, out any) (_ int, err error) {
	var reader io.Reader
	if body != nil {
		encoded, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return 0, fmt.Errorf("marshal request body: %w", marshalErr)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != 0 {
		req.Header.Set(userIDHeader, strconv.FormatInt(c.userID, 10))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close response body: %w", closeErr))
		}
	}()

	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response body: %w", err)
		}
	}

	return resp.StatusCode, nil
}
