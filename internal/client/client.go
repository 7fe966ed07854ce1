// Package client is the HTTP client for a running daybook server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a daybook server over HTTP with basic auth.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// DupeEntry mirrors the server's duplicate report.
type DupeEntry struct {
	Date                string `json:"date"`
	Src                 string `json:"src"`
	Dest                string `json:"dest"`
	Amount              string `json:"amount"`
	OriginalPerspective string `json:"original_perspective"`
	ActualPerspective   string `json:"actual_perspective"`
}

// LoadResult reports how a batch reconciled on the server.
type LoadResult struct {
	Count      int         `json:"count"`
	Duplicates []DupeEntry `json:"duplicates"`
}

// DumpFilter narrows a dump. Empty fields are dont-cares; dates are any
// format the server's date parser accepts.
type DumpFilter struct {
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Accounts []string `json:"accounts,omitempty"`
	Types    []string `json:"types,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Ping checks the server is up and the credentials are accepted.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/v1/ping", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Load sends a canonical CSV document to the server.
func (c *Client) Load(ctx context.Context, thisName, rows string, skipInvalid bool) (*LoadResult, error) {
	body := map[string]any{
		"this_name":    thisName,
		"rows":         rows,
		"skip_invalid": skipInvalid,
	}
	resp, err := c.do(ctx, http.MethodPost, "/v1/load", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result LoadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding load response: %w", err)
	}
	return &result, nil
}

// Dump fetches the ledger as a canonical CSV document.
func (c *Client) Dump(ctx context.Context, filter DumpFilter) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/dump", filter)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading dump: %w", err)
	}
	return string(data), nil
}

// Clear empties the server's ledger.
func (c *Client) Clear(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/clear", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// checkStatus turns a non-2xx response into an error, preferring the
// server's JSON error message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server returned %s: %s", resp.Status, payload.Error)
	}
	return fmt.Errorf("server returned %s", resp.Status)
}
