// Package api is the client of the remote expenses collection.
//
// Every call is a single request/response round trip. There is no retry,
// and no timeout unless the injected *http.Client or the context sets one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

const collectionPath = "/expenses"

// maxErrorBody bounds how much of a rejected response is kept in StatusError.
const maxErrorBody = 512

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *applog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient. This is where timeouts or a
// custom transport go.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *applog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.WithComponent(applog.ComponentAPI)
		}
	}
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url scheme %q: must be http or https", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: http.DefaultClient,
		logger:     applog.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListExpenses fetches the whole collection.
func (c *Client) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	if err := c.do(ctx, http.MethodGet, collectionPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExpense posts the editable fields and returns the record the server
// created, id included.
func (c *Client) CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error) {
	var out core.Expense
	if err := c.do(ctx, http.MethodPost, collectionPath, e, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// UpdateExpense replaces the record with the same id. The response body is
// ignored.
func (c *Client) UpdateExpense(ctx context.Context, e core.Expense) error {
	return c.do(ctx, http.MethodPut, itemPath(e.ID), e, nil)
}

// DeleteExpense removes the record with the given id.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id string) string {
	return collectionPath + "/" + url.PathEscape(id)
}

// do performs one round trip. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return networkFailure(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkFailure(op, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Remote call completed",
		applog.FieldMethod, method,
		applog.FieldPath, path,
		applog.FieldStatusCode, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return networkFailure(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
