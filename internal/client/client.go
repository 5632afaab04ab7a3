// Package client is a Go client for the expense REST API. It never parses a
// non-2xx body as a success payload: the status code is checked first and
// server-signaled failures surface as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tracker/internal/core"
	"tracker/internal/store"
)

// APIError is a failure the server reported with an error payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// NotFound reports whether err is a server-side 404.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Client talks to a running expense server.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient is for tests that need a custom transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// List fetches all expenses, newest first.
func (c *Client) List(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a new expense and returns the stored record.
func (c *Client) Create(ctx context.Context, f store.Fields) (core.Expense, error) {
	var out core.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", f, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// Update patches the expense with the given id. Only the non-nil fields of f
// change on the server.
func (c *Client) Update(ctx context.Context, id string, f store.Fields) (core.Expense, error) {
	var out core.Expense
	if err := c.do(ctx, http.MethodPut, expensePath(id), f, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// Delete removes the expense and returns the id the server confirmed.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var out struct {
		DeletedID string `json:"deletedId"`
	}
	if err := c.do(ctx, http.MethodDelete, expensePath(id), nil, &out); err != nil {
		return "", err
	}
	return out.DeletedID, nil
}

func expensePath(id string) string {
	return "/expenses/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("reaching server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// apiErrorFrom builds an *APIError from a failed response. The body may not
// be JSON at all (proxies, panics), so a fallback message keeps the status
// visible either way.
func apiErrorFrom(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

// IsNotFound reports whether err represents a missing expense, either from
// the server or from a local store lookup.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.NotFound()
	}
	return errors.Is(err, store.ErrNotFound)
}
