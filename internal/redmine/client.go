// Package redmine implements the JSON REST transport against a Redmine
// server. It only moves bytes and status codes; interpreting responses
// is left to the callers.
package redmine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/errors"
)

// Client is an authenticated Redmine REST client. The API key is
// appended to every request as the "key" query parameter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ domain.Transport = (*Client)(nil)

// NewClient creates a client for the given Redmine domain and API key.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// buildURL resolves a path and query against the configured domain and
// attaches the API key.
func (c *Client) buildURL(path string, query url.Values) string {
	values := url.Values{}
	for name, vs := range query {
		values[name] = vs
	}
	values.Set("key", c.apiKey)
	return c.baseURL + path + "?" + values.Encode()
}

// Get performs a GET request and returns the raw JSON body. It fails on
// network errors and on any non-2xx status.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	logrus.Debugf("GET %s", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query), nil)
	if err != nil {
		return nil, errors.NewNetworkError("preparing GET "+path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("requesting "+path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.NewNetworkError("reading the response for "+path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewStatusError("GET "+path, resp.StatusCode)
	}

	return json.RawMessage(body), nil
}

// Post sends a JSON body and returns the HTTP status code. Only network
// failures are errors; status interpretation belongs to the caller.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (int, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Put sends a JSON body and returns the HTTP status code.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (int, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request and returns the HTTP status code.
func (c *Client) Delete(ctx context.Context, path string) (int, error) {
	return c.send(ctx, http.MethodDelete, path, nil)
}

// send performs a write request with an optional JSON body.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (int, error) {
	logrus.Debugf("%s %s", method, path)

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, errors.NewParseError(fmt.Sprintf("the request body for %s %s", method, path), err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, nil), payload)
	if err != nil {
		return 0, errors.NewNetworkError(fmt.Sprintf("preparing %s %s", method, path), err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.NewNetworkError("requesting "+path, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return resp.StatusCode, nil
}
